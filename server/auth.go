package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

type loginRequest struct {
	TeamID   string `json:"teamId"`
	Password string `json:"password"`
}

type teamResponse struct {
	Success bool        `json:"success"`
	Team    *model.Team `json:"team"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleLogin checks team credentials by plain equality. The full team record
// comes back on success, password included, so the client can keep it cached
// and re-login after a refresh.
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request"})
	}

	teams := s.store.List(c.Request().Context())
	for i := range teams {
		if teams[i].ID == req.TeamID && teams[i].Password == req.Password {
			logger.Info("Team logged in", logger.F("team", req.TeamID))
			return c.JSON(http.StatusOK, teamResponse{Success: true, Team: &teams[i]})
		}
	}

	logger.Warn("Login failed", logger.F("team", req.TeamID))
	return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Invalid credentials"})
}
