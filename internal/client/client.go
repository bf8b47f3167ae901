package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/minhokang/busanhunt/internal/model"
)

// Config holds the client connection state. The original web app remembers
// the team id and password in browser storage so a refresh can re-login;
// the CLI keeps the same state in ~/.busanhunt/client.json.
type Config struct {
	ServerURL string `json:"server_url"`
	TeamID    string `json:"team_id"`
	Password  string `json:"password"`
	LastSync  int64  `json:"last_sync"`
}

// Client talks to the hunt server
type Client struct {
	config     *Config
	configPath string
	httpClient *http.Client
}

// New creates a new API client
func New() (*Client, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	c := &Client{
		configPath: filepath.Join(home, ".busanhunt", "client.json"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	c.loadConfig()

	return c, nil
}

func (c *Client) loadConfig() {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		c.config = &Config{
			ServerURL: "http://localhost:8080",
		}
		return
	}

	c.config = &Config{}
	json.Unmarshal(data, c.config)
	if c.config.ServerURL == "" {
		c.config.ServerURL = "http://localhost:8080"
	}
}

func (c *Client) saveConfig() error {
	dir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// SetServer sets the hunt server URL
func (c *Client) SetServer(url string) error {
	c.config.ServerURL = url
	return c.saveConfig()
}

// IsLoggedIn returns true if team credentials are stored
func (c *Client) IsLoggedIn() bool {
	return c.config.TeamID != ""
}

// TeamID returns the logged-in team id
func (c *Client) TeamID() string {
	return c.config.TeamID
}

// Status returns the server URL, team id and last sync time
func (c *Client) Status() (string, string, int64) {
	return c.config.ServerURL, c.config.TeamID, c.config.LastSync
}

// UpdateSyncTime records the current time as the last successful sync
func (c *Client) UpdateSyncTime() error {
	c.config.LastSync = time.Now().Unix()
	return c.saveConfig()
}

// apiError is the server's failure envelope
type apiError struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// teamEnvelope is the server's success envelope for team-returning calls
type teamEnvelope struct {
	Success bool        `json:"success"`
	Team    *model.Team `json:"team"`
}

// postJSON posts a JSON body and decodes the team envelope
func (c *Client) postJSON(path string, body any) (*model.Team, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(
		c.config.ServerURL+path,
		"application/json",
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%s (%d)", apiErr.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var envelope teamEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, err
	}
	if envelope.Team == nil {
		return nil, fmt.Errorf("server returned no team")
	}
	return envelope.Team, nil
}

// Login checks the credentials against the server and stores them on success
func (c *Client) Login(teamID, password string) (*model.Team, error) {
	team, err := c.postJSON("/login", map[string]string{
		"teamId":   teamID,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	c.config.TeamID = teamID
	c.config.Password = password
	if err := c.saveConfig(); err != nil {
		return nil, err
	}
	return team, nil
}

// Logout clears the stored credentials
func (c *Client) Logout() error {
	c.config.TeamID = ""
	c.config.Password = ""
	c.config.LastSync = 0
	return c.saveConfig()
}

// Refresh re-logs in with the stored credentials and returns the fresh record
func (c *Client) Refresh() (*model.Team, error) {
	if !c.IsLoggedIn() {
		return nil, fmt.Errorf("not logged in")
	}
	return c.Login(c.config.TeamID, c.config.Password)
}

// UpdateTask sends a partial task update. completed may be nil to leave the
// flag alone; imageSet distinguishes "leave the image" from "set it to image"
// where a nil image clears the reference.
func (c *Client) UpdateTask(taskID string, completed *bool, image *string, imageSet bool) (*model.Team, error) {
	body := map[string]any{
		"teamId": c.config.TeamID,
		"taskId": taskID,
	}
	if completed != nil {
		body["completed"] = *completed
	}
	if imageSet {
		body["image"] = image
	}

	team, err := c.postJSON("/tasks", body)
	if err != nil {
		return nil, fmt.Errorf("task update failed: %w", err)
	}
	return team, nil
}

// RenameTeam changes the team's display name
func (c *Client) RenameTeam(name string) (*model.Team, error) {
	team, err := c.postJSON("/team", map[string]string{
		"teamId": c.config.TeamID,
		"name":   name,
	})
	if err != nil {
		return nil, fmt.Errorf("rename failed: %w", err)
	}
	return team, nil
}

// UploadFile uploads a local file through the multipart endpoint and returns
// the URL to attach to a task
func (c *Client) UploadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(
		c.config.ServerURL+"/upload",
		writer.FormDataContentType(),
		&buf,
	)
	if err != nil {
		return "", fmt.Errorf("failed to connect: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed: %s", string(respBody))
	}

	var result struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.URL, nil
}
