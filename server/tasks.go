package server

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/minhokang/busanhunt/internal/logger"
)

// optionalString distinguishes a field that is absent from one that is
// explicitly null: {"image": null} clears the media reference, while a
// request without "image" leaves it untouched.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

type taskUpdateRequest struct {
	TeamID    string         `json:"teamId"`
	TaskID    string         `json:"taskId"`
	Completed *bool          `json:"completed"`
	Image     optionalString `json:"image"`
}

// handleTaskUpdate applies a partial update to one task: completion flag
// and/or media reference. Inline base64 payloads are decoded and persisted
// through the media store; any other change of the reference deletes the
// previous blob best-effort before the new value is stored.
func (s *Server) handleTaskUpdate(c echo.Context) error {
	var req taskUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request"})
	}

	ctx := c.Request().Context()

	team := s.store.Get(ctx, req.TeamID)
	if team == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Team not found"})
	}

	task := team.Task(req.TaskID)
	if task == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Task not found"})
	}

	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if req.Image.Set {
		previous := task.Image

		if req.Image.Value != nil && strings.HasPrefix(*req.Image.Value, "data:image") {
			// Inline upload: decode and persist, then reference the stored URL
			payload, err := decodeDataURL(*req.Image.Value)
			if err != nil {
				logger.Error("Failed to decode image payload",
					logger.F("team", req.TeamID), logger.F("task", req.TaskID),
					logger.F("error", err))
				return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to save image"})
			}

			name := fmt.Sprintf("%s-%s-%d.jpg", req.TeamID, req.TaskID, time.Now().UnixMilli())
			url, err := s.media.Save(ctx, name, payload)
			if err != nil {
				logger.Error("Failed to save image", logger.F("name", name), logger.F("error", err))
				return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to save image"})
			}
			task.Image = &url
		} else {
			// Plain URL or null (clear)
			task.Image = req.Image.Value
		}

		// Remove the blob the old reference pointed at once the value has
		// genuinely changed. Failure leaves an orphan, never a failed update.
		if previous != nil && *previous != "" &&
			(task.Image == nil || *task.Image != *previous) {
			if err := s.media.Delete(ctx, *previous); err != nil {
				logger.Warn("Failed to delete replaced media",
					logger.F("url", *previous), logger.F("error", err))
			}
		}
	}

	if err := s.store.Update(ctx, *team); err != nil {
		logger.Error("Failed to persist task update",
			logger.F("team", req.TeamID), logger.F("task", req.TaskID),
			logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Failed to save team"})
	}

	return c.JSON(http.StatusOK, teamResponse{Success: true, Team: team})
}

// decodeDataURL extracts the payload of a data:<mime>;base64,<data> URL
func decodeDataURL(dataURL string) ([]byte, error) {
	_, encoded, ok := strings.Cut(dataURL, ";base64,")
	if !ok {
		return nil, fmt.Errorf("not a base64 data URL")
	}
	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return payload, nil
}
