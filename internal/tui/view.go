package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	list := m.renderChecklist()
	statusBar := m.renderStatusBar()

	mainContent := lipgloss.JoinVertical(lipgloss.Left, header, list)

	if m.mode == ModeRename || m.mode == ModeAttach {
		modal := m.renderModal()
		mainContent = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			modal,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	if m.mode == ModeHelp {
		mainContent = m.renderHelp()
	}

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, statusBar)
}

func (m Model) renderHeader() string {
	done := len(m.team.Tasks) - m.team.Pending()
	title := fmt.Sprintf("🏖  %s — %d/%d done", m.team.Name, done, len(m.team.Tasks))
	return HeaderStyle.Render(title)
}

func (m Model) renderChecklist() string {
	width := m.width - 4
	var s string

	for i, r := range m.rows {
		if r.header != "" {
			if i > 0 {
				s += "\n"
			}
			s += CategoryStyle.Render(r.header) + "\n"
			s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", min(width, 40))) + "\n"
			continue
		}

		t := m.team.Tasks[r.task]

		cursor := "  "
		style := TaskItemStyle
		if i == m.cursor {
			cursor = "❯ "
			style = TaskItemSelectedStyle
		}

		icon := "[ ]"
		if t.Completed {
			icon = "[x]"
			if i != m.cursor {
				style = TaskDoneStyle
			}
		}

		proof := ""
		if t.HasImage() {
			proof = " 📎"
		}

		line := fmt.Sprintf("%s%s %-4s %s%s", cursor, icon, t.ID, truncate(t.Title, width-14), proof)
		s += style.Render(line) + "\n"
	}

	return ListStyle.Height(m.height - 4).Render(s)
}

func (m Model) renderStatusBar() string {
	help := "x:toggle  a:attach  c:clear  r:rename  R:refresh  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}

	var syncMsg string
	switch m.sync {
	case syncClean:
		syncMsg = SyncOKStyle.Render("✓ synced")
	case syncPending:
		syncMsg = SyncPendingStyle.Render("… syncing")
	case syncFailed:
		syncMsg = SyncErrorStyle.Render("! sync failed")
	}

	avail := m.width - lipgloss.Width(help) - lipgloss.Width(syncMsg) - 4
	if avail > 0 {
		help += strings.Repeat(" ", avail) + syncMsg
	} else {
		help += " " + syncMsg
	}

	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderModal() string {
	title := "Rename Team"
	if m.mode == ModeAttach {
		title = "Attach Media"
		if task := m.currentTask(); task != nil {
			title = "Attach Media: " + task.ID
		}
	}

	content := lipgloss.NewStyle().Bold(true).Render(title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += HelpStyle.Render("Enter:save  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Navigation              │
│  ──────────              │
│  j/↓    Move down        │
│  k/↑    Move up          │
│                          │
│  Actions                 │
│  ───────                 │
│  x/Enter Toggle done     │
│  a       Attach media    │
│  c       Clear media     │
│  r       Rename team     │
│  R       Refresh         │
│                          │
│  Other                   │
│  ─────                   │
│  ?       Toggle help     │
│  q       Quit            │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, help)
}
