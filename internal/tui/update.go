package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

// flushedMsg reports the outcome of a background flush
type flushedMsg struct {
	team *model.Team
	err  error
}

// refreshedMsg carries a freshly pulled team record
type refreshedMsg struct {
	team *model.Team
	err  error
}

// uploadedMsg reports the outcome of a background media upload
type uploadedMsg struct {
	taskID string
	url    string
	err    error
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// flushCmd pushes queued changes to the server in the background
func (m Model) flushCmd() tea.Cmd {
	api, store := m.api, m.store
	return func() tea.Msg {
		result, err := api.Flush(store)
		if err != nil {
			return flushedMsg{err: err}
		}
		return flushedMsg{team: result.Team}
	}
}

// refreshCmd pulls the authoritative record from the server
func (m Model) refreshCmd() tea.Cmd {
	api, store := m.api, m.store
	return func() tea.Msg {
		team, err := api.Refresh()
		if err != nil {
			return refreshedMsg{err: err}
		}
		_ = store.SaveTeam(team)
		return refreshedMsg{team: team}
	}
}

// uploadCmd uploads a local file and reports the stored URL
func (m Model) uploadCmd(taskID, path string) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		url, err := api.UploadFile(path)
		return uploadedMsg{taskID: taskID, url: url, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flushedMsg:
		if msg.err != nil {
			m.sync = syncFailed
			m.message = "Sync failed — changes kept locally"
			return m, nil
		}
		m.sync = syncClean
		if msg.team != nil {
			m.team = msg.team
			m.buildRows()
		}
		return m, nil

	case refreshedMsg:
		if msg.err != nil {
			m.sync = syncFailed
			m.message = "Refresh failed — showing cached data"
			return m, nil
		}
		m.team = msg.team
		m.buildRows()
		m.sync = syncClean
		m.message = "Up to date"
		return m, nil

	case uploadedMsg:
		if msg.err != nil {
			m.message = fmt.Sprintf("Upload failed: %v", msg.err)
			return m, nil
		}
		return m.attachURL(msg.taskID, msg.url)

	case tea.KeyMsg:
		switch m.mode {
		case ModeRename, ModeAttach:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, keys.Toggle):
		return m.handleToggle()

	case key.Matches(msg, keys.Rename):
		m.mode = ModeRename
		m.input.Placeholder = "New team name..."
		m.input.SetValue(m.team.Name)
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Attach):
		if m.currentTask() == nil {
			return m, nil
		}
		m.mode = ModeAttach
		m.input.Placeholder = "Path to photo/video..."
		m.input.SetValue("")
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Clear):
		return m.handleClearMedia()

	case key.Matches(msg, keys.Refresh):
		m.message = "Refreshing..."
		return m, m.refreshCmd()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// moveCursor steps the cursor over task rows, skipping category headers
func (m *Model) moveCursor(delta int) {
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= len(m.rows) {
			return
		}
		if m.rows[i].header == "" {
			m.cursor = i
			return
		}
	}
}

// handleToggle flips the completion flag on the task under the cursor:
// cache first, then a background flush
func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil {
		return m, nil
	}

	task.Completed = !task.Completed
	completed := task.Completed

	if err := m.store.SaveTeam(m.team); err != nil {
		logger.Error("Failed to save team to cache", logger.F("error", err))
	}
	if err := m.store.Enqueue(cache.NewTaskOp(m.team.ID, task.ID, &completed, nil, false)); err != nil {
		logger.Error("Failed to enqueue toggle", logger.F("error", err))
		m.message = "Failed to queue change"
		return m, nil
	}

	m.sync = syncPending
	if completed {
		m.message = "Completed: " + truncate(task.Title, 30)
	} else {
		m.message = "Reopened: " + truncate(task.Title, 30)
	}
	return m, m.flushCmd()
}

// handleClearMedia removes the proof reference from the task under the cursor
func (m Model) handleClearMedia() (tea.Model, tea.Cmd) {
	task := m.currentTask()
	if task == nil || !task.HasImage() {
		return m, nil
	}

	task.Image = nil
	if err := m.store.SaveTeam(m.team); err != nil {
		logger.Error("Failed to save team to cache", logger.F("error", err))
	}
	if err := m.store.Enqueue(cache.NewTaskOp(m.team.ID, task.ID, nil, nil, true)); err != nil {
		logger.Error("Failed to enqueue media clear", logger.F("error", err))
		m.message = "Failed to queue change"
		return m, nil
	}

	m.sync = syncPending
	m.message = "Media cleared"
	return m, m.flushCmd()
}

// attachURL records an uploaded URL against a task and queues the change
func (m Model) attachURL(taskID, url string) (tea.Model, tea.Cmd) {
	task := m.team.Task(taskID)
	if task == nil {
		return m, nil
	}

	task.Image = &url
	if err := m.store.SaveTeam(m.team); err != nil {
		logger.Error("Failed to save team to cache", logger.F("error", err))
	}
	if err := m.store.Enqueue(cache.NewTaskOp(m.team.ID, taskID, nil, &url, true)); err != nil {
		logger.Error("Failed to enqueue media attach", logger.F("error", err))
		m.message = "Failed to queue change"
		return m, nil
	}

	m.sync = syncPending
	m.message = "Media attached"
	return m, m.flushCmd()
}

// updateInput handles the rename and attach modals
func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = ModeNormal
		m.input.Blur()

		switch mode {
		case ModeRename:
			// Empty names are a no-op, same as the server treats them
			if value == "" || value == m.team.Name {
				return m, nil
			}
			m.team.Name = value
			if err := m.store.SaveTeam(m.team); err != nil {
				logger.Error("Failed to save team to cache", logger.F("error", err))
			}
			if err := m.store.Enqueue(cache.NewRenameOp(m.team.ID, value)); err != nil {
				logger.Error("Failed to enqueue rename", logger.F("error", err))
				m.message = "Failed to queue change"
				return m, nil
			}
			m.sync = syncPending
			m.message = "Renamed to " + value
			return m, m.flushCmd()

		case ModeAttach:
			task := m.currentTask()
			if value == "" || task == nil {
				return m, nil
			}
			m.message = "Uploading..."
			return m, m.uploadCmd(task.ID, value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
