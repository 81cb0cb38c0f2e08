package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// maxVisible bounds the number of versions rendered at once; the cursor
// scrolls the window over longer listings.
const maxVisible = 10

// SelectModel presents a version listing for the user to pick from. The
// first (most recent) entry is highlighted by default; typing narrows the
// listing, arrow keys move, enter confirms, esc/ctrl+c aborts.
type SelectModel struct {
	choices  []string
	filtered []string
	cursor   int
	filter   textinput.Model

	choice  string
	done    bool
	aborted bool
}

// NewSelectModel creates the initial model over versions.
func NewSelectModel(versions []string) *SelectModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "filter: "
	ti.Focus()

	return &SelectModel{
		choices:  versions,
		filtered: versions,
		filter:   ti,
	}
}

// Init implements tea.Model.
func (m *SelectModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key events.
func (m *SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "esc":
			// esc first clears an active filter, then aborts.
			if m.filter.Value() != "" {
				m.filter.SetValue("")
				m.refilter()
				return m, nil
			}
			m.aborted = true
			m.done = true
			return m, tea.Quit
		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.choice = m.filtered[m.cursor]
			m.done = true
			return m, tea.Quit
		}

		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.refilter()
		return m, cmd
	}
	return m, nil
}

func (m *SelectModel) refilter() {
	query := strings.ToLower(m.filter.Value())
	if query == "" {
		m.filtered = m.choices
	} else {
		filtered := make([]string, 0, len(m.choices))
		for _, v := range m.choices {
			if strings.Contains(strings.ToLower(v), query) {
				filtered = append(filtered, v)
			}
		}
		m.filtered = filtered
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

// View renders the picker.
func (m *SelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("select a terraform version to install"))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  no versions match"))
		b.WriteString("\n")
	}

	start, end := m.window()
	for i := start; i < end; i++ {
		line := "  " + m.filtered[i]
		if i == m.cursor {
			line = selectedStyle.Render("> " + m.filtered[i])
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if end < len(m.filtered) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", len(m.filtered)-end)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("↑/↓ move · enter select · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// window returns the visible slice bounds keeping the cursor in view.
func (m *SelectModel) window() (int, int) {
	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := start + maxVisible
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	return start, end
}

// Choice returns the selected version; ok is false when the user aborted.
func (m *SelectModel) Choice() (string, bool) {
	if m.aborted || !m.done {
		return "", false
	}
	return m.choice, true
}

// Prompt runs the selector to completion and returns the chosen version.
// Abort or a non-interactive terminal is a hard interactive error.
func Prompt(ctx context.Context, versions []string) (string, error) {
	final, err := tea.NewProgram(NewSelectModel(versions), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTypeInteractive, "running version selector", err)
	}

	m, ok := final.(*SelectModel)
	if !ok {
		return "", apperrors.New(apperrors.ErrTypeInteractive,
			fmt.Sprintf("unexpected model type %T", final))
	}
	choice, ok := m.Choice()
	if !ok {
		return "", apperrors.New(apperrors.ErrTypeInteractive, "selection aborted")
	}
	return choice, nil
}
