package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	momfitdomain "momfit.app/cli/internal/core/domain/momfit"
)

// symptomPicker is a checklist over the known symptom codes.
type symptomPicker struct {
	cursor    int
	selected  map[momfitdomain.Symptom]bool
	submitted bool
}

func newSymptomPicker() symptomPicker {
	return symptomPicker{selected: map[momfitdomain.Symptom]bool{}}
}

func (m symptomPicker) Init() tea.Cmd {
	return nil
}

func (m symptomPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(momfitdomain.AllSymptoms)-1 {
			m.cursor++
		}

	case " ", "x":
		s := momfitdomain.AllSymptoms[m.cursor]
		if m.selected[s] {
			delete(m.selected, s)
		} else {
			m.selected[s] = true
		}

	case "enter":
		m.submitted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m symptomPicker) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("How are you feeling today?"))
	b.WriteString("\n\n")

	for i, s := range momfitdomain.AllSymptoms {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ]"
		if m.selected[s] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s", cursor, check, strings.ToLower(string(s)))
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("[↑↓] Move | [Space] Toggle | [Enter] Submit | [q] Cancel"))
	b.WriteString("\n")
	return b.String()
}

// Symptoms returns the selection in display order.
func (m symptomPicker) Symptoms() []momfitdomain.Symptom {
	out := make([]momfitdomain.Symptom, 0, len(m.selected))
	for _, s := range momfitdomain.AllSymptoms {
		if m.selected[s] {
			out = append(out, s)
		}
	}
	return out
}

// pickSymptoms runs the checklist; ok is false when the user cancelled.
func pickSymptoms(in io.Reader, out io.Writer) (symptoms []momfitdomain.Symptom, ok bool, err error) {
	program := tea.NewProgram(newSymptomPicker(), tea.WithInput(in), tea.WithOutput(out))
	final, err := program.Run()
	if err != nil {
		return nil, false, fmt.Errorf("symptom picker failed: %w", err)
	}
	picker := final.(symptomPicker)
	if !picker.submitted {
		return nil, false, nil
	}
	return picker.Symptoms(), true, nil
}
