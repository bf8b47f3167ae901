package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/media"
)

// ticketTTL is how long a direct-upload ticket stays valid
const ticketTTL = 15 * time.Minute

// uploadTicket is a one-time permit for a direct upload. The handshake hands
// the ticket out over the JSON tier; the bytes then go straight to the media
// store via PUT /upload/direct/:ticket, bypassing the JSON body-size limit.
type uploadTicket struct {
	Name      string
	ExpiresAt time.Time
}

type uploadResponse struct {
	Success bool   `json:"success"`
	URL     string `json:"url"`
}

type handshakeRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type handshakeResponse struct {
	Success   bool   `json:"success"`
	UploadURL string `json:"uploadUrl"`
	ExpiresAt string `json:"expiresAt"`
}

// handleUpload accepts either a multipart file upload or a JSON handshake
// requesting a direct-upload ticket
func (s *Server) handleUpload(c echo.Context) error {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEApplicationJSON) {
		return s.handleUploadHandshake(c)
	}
	return s.handleMultipartUpload(c)
}

func (s *Server) handleMultipartUpload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "No file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Upload failed"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Upload failed"})
	}

	name := uploadName(fileHeader.Filename)
	url, err := s.media.Save(c.Request().Context(), name, data)
	if err != nil {
		logger.Error("Failed to save upload", logger.F("name", name), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Upload failed"})
	}

	logger.Info("Media uploaded", logger.F("name", name), logger.F("bytes", len(data)))
	return c.JSON(http.StatusOK, uploadResponse{Success: true, URL: url})
}

// handleUploadHandshake issues a one-time direct-upload ticket
func (s *Server) handleUploadHandshake(c echo.Context) error {
	var req handshakeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request"})
	}
	if req.Filename == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "No file uploaded"})
	}

	ticket := uuid.NewString()
	expires := time.Now().Add(ticketTTL)

	s.ticketMu.Lock()
	for id, t := range s.tickets {
		if time.Now().After(t.ExpiresAt) {
			delete(s.tickets, id)
		}
	}
	s.tickets[ticket] = uploadTicket{Name: uploadName(req.Filename), ExpiresAt: expires}
	s.ticketMu.Unlock()

	logger.Info("Direct upload ticket issued", logger.F("ticket", ticket))
	return c.JSON(http.StatusOK, handshakeResponse{
		Success:   true,
		UploadURL: "/upload/direct/" + ticket,
		ExpiresAt: expires.Format(time.RFC3339),
	})
}

// handleDirectUpload receives the bytes for a previously issued ticket
func (s *Server) handleDirectUpload(c echo.Context) error {
	id := c.Param("ticket")

	s.ticketMu.Lock()
	ticket, ok := s.tickets[id]
	delete(s.tickets, id) // single use
	s.ticketMu.Unlock()

	if !ok || time.Now().After(ticket.ExpiresAt) {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Unknown or expired upload ticket"})
	}

	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error("Failed to read direct upload", logger.F("ticket", id), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Upload failed"})
	}

	url, err := s.media.Save(c.Request().Context(), ticket.Name, data)
	if err != nil {
		logger.Error("Failed to save direct upload", logger.F("name", ticket.Name), logger.F("error", err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Upload failed"})
	}

	logger.Info("Direct upload stored", logger.F("name", ticket.Name), logger.F("bytes", len(data)))
	return c.JSON(http.StatusOK, uploadResponse{Success: true, URL: url})
}

// handleMedia streams a blob back from backends the client cannot reach
// directly. Local media never hits this path; echo serves it under /uploads.
func (s *Server) handleMedia(c echo.Context) error {
	opener, ok := s.media.(media.Opener)
	if !ok {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Not found"})
	}

	name := c.Param("name")
	rc, err := opener.Open(c.Request().Context(), name)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "Not found"})
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, ctype, rc)
}

// uploadName derives a collision-free stored name from the original filename
func uploadName(original string) string {
	base := strings.ReplaceAll(filepath.Base(original), " ", "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), base)
}
