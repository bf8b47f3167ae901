package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/minhokang/busanhunt/internal/logger"
)

type renameRequest struct {
	TeamID string `json:"teamId"`
	Name   string `json:"name"`
}

// handleTeamRename updates the team's display name. An empty name is a
// no-op, not an error; the unchanged record still comes back.
func (s *Server) handleTeamRename(c echo.Context) error {
	var req renameRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request"})
	}

	ctx := c.Request().Context()

	team := s.store.Get(ctx, req.TeamID)
	if team == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Team not found"})
	}

	if req.Name != "" {
		team.Name = req.Name
	}

	if err := s.store.Update(ctx, *team); err != nil {
		logger.Error("Failed to persist rename",
			logger.F("team", req.TeamID), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to save team"})
	}

	logger.Info("Team renamed", logger.F("team", req.TeamID), logger.F("name", team.Name))
	return c.JSON(http.StatusOK, teamResponse{Success: true, Team: team})
}
