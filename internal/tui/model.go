package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/minhokang/busanhunt/internal/cache"
	"github.com/minhokang/busanhunt/internal/client"
	"github.com/minhokang/busanhunt/internal/logger"
	"github.com/minhokang/busanhunt/internal/model"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeRename
	ModeAttach
	ModeHelp
)

// syncState is the reconciliation state shown in the status bar
type syncState int

const (
	syncClean   syncState = iota // everything confirmed by the server
	syncPending                  // local changes queued or in flight
	syncFailed                   // last flush failed; local state stands
)

// row is one rendered line of the checklist: a category header or a task
type row struct {
	header string // non-empty for category headers
	task   int    // index into team.Tasks for task rows
}

// Model is the checklist TUI model
type Model struct {
	api   *client.Client
	store *cache.Cache
	team  *model.Team

	rows   []row
	cursor int // index into rows; always sits on a task row

	// UI state
	width  int
	height int
	mode   Mode
	sync   syncState

	input   textinput.Model
	message string
}

// NewModel creates a new checklist model over the loaded session
func NewModel(api *client.Client, store *cache.Cache, team *model.Team) Model {
	logger.Info("Initializing TUI model", logger.F("team", team.ID))

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		api:   api,
		store: store,
		team:  team,
		mode:  ModeNormal,
		input: ti,
	}

	m.buildRows()
	m.cursor = m.firstTaskRow()

	return m
}

// buildRows flattens the task list into header and task rows, grouping by
// category in catalog order
func (m *Model) buildRows() {
	m.rows = m.rows[:0]
	var category string
	for i, t := range m.team.Tasks {
		if t.Category != category {
			category = t.Category
			m.rows = append(m.rows, row{header: category})
		}
		m.rows = append(m.rows, row{task: i})
	}
}

func (m *Model) firstTaskRow() int {
	for i, r := range m.rows {
		if r.header == "" {
			return i
		}
	}
	return 0
}

// currentTask returns the task under the cursor, or nil on a header row
func (m *Model) currentTask() *model.Task {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	r := m.rows[m.cursor]
	if r.header != "" {
		return nil
	}
	return &m.team.Tasks[r.task]
}
