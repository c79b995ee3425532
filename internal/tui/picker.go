// Package tui renders the output-format picker as a terminal UI.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rcliao/promptmate/internal/catalog"
	"github.com/rcliao/promptmate/internal/filter"
	"github.com/rcliao/promptmate/internal/selector"
)

// Styles holds the picker's lipgloss styles.
type Styles struct {
	Title    lipgloss.Style
	Chip     lipgloss.Style
	Section  lipgloss.Style
	Row      lipgloss.Style
	Active   lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	InputBox lipgloss.Style
}

// DefaultStyles returns the default picker styles.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Chip:     lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("237")).Foreground(lipgloss.Color("252")),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244")).MarginTop(1),
		Row:      lipgloss.NewStyle().PaddingLeft(2),
		Active:   lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(lipgloss.Color("212")),
		Notice:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		InputBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	}
}

// Model is the bubbletea model of the picker.
type Model struct {
	picker *selector.Picker
	input  textinput.Model
	styles Styles

	status string
	err    error
	done   bool
}

// New returns a picker model over s with the dropdown closed.
func New(s *selector.Store) Model {
	in := textinput.New()
	in.Placeholder = "Type to filter or add your own format..."
	in.CharLimit = 120
	in.Width = 48
	in.Focus()

	return Model{
		picker: selector.NewPicker(s),
		input:  in,
		styles: DefaultStyles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Selection returns the current selection.
func (m Model) Selection() []string {
	return m.picker.Store.Selection()
}

// Dropdown exposes the dropdown state.
func (m Model) Dropdown() *selector.Dropdown {
	return m.picker.Dropdown
}

// Status returns the last notice shown.
func (m Model) Status() string {
	return m.status
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	p := m.picker
	switch key.String() {
	case "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "esc":
		if p.Dropdown.State() == selector.Closed {
			m.done = true
			return m, tea.Quit
		}
		p.Dropdown.Escape()
		return m, nil
	case "down":
		p.Dropdown.Down(len(p.Items()))
		return m, nil
	case "up":
		p.Dropdown.Up(len(p.Items()))
		return m, nil
	case "enter":
		res, err := p.Enter()
		m.report(res, err)
		m.input.SetValue(p.Dropdown.Query())
		return m, nil
	case "ctrl+f":
		if item, ok := p.Dropdown.Active(p.Items()); ok {
			on, err := p.Store.ToggleFavorite(item.Value)
			m.err = err
			if err == nil {
				m.status = favoriteStatus(item.Value, on)
			}
		}
		return m, nil
	case "ctrl+d":
		if item, ok := p.Dropdown.Active(p.Items()); ok && item.Source != filter.SourceCatalog && p.Store.IsCustom(item.Value) {
			res, err := p.Store.RemoveCustom(item.Value)
			m.report(res, err)
			p.Items()
		}
		return m, nil
	case "ctrl+x":
		m.report(p.ClearAll(), nil)
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != p.Dropdown.Query() {
		p.Dropdown.Input(m.input.Value())
		p.Items()
	} else {
		p.Dropdown.Focus()
	}
	return m, cmd
}

func (m *Model) report(res selector.Result, err error) {
	m.err = err
	m.status = ""
	if err == nil {
		m.status = res.Message
	}
}

func favoriteStatus(v string, on bool) string {
	if on {
		return fmt.Sprintf("Added %q to favorites.", v)
	}
	return fmt.Sprintf("Removed %q from favorites.", v)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}
	p := m.picker
	s := m.styles

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Output format"))
	sb.WriteString("\n")

	sel := p.Store.Selection()
	if len(sel) == 0 {
		sb.WriteString(s.Muted.Render("nothing selected"))
	} else {
		chips := make([]string, len(sel))
		for i, v := range sel {
			chips[i] = s.Chip.Render(v)
		}
		sb.WriteString(strings.Join(chips, " "))
	}
	fmt.Fprintf(&sb, "  %s\n", s.Muted.Render(fmt.Sprintf("%d/%d", len(sel), p.Store.MaxSelected())))

	sb.WriteString(s.InputBox.Render(m.input.View()))
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(s.Error.Render(errorText(m.err)))
		sb.WriteString("\n")
	case m.status != "":
		sb.WriteString(s.Notice.Render(m.status))
		sb.WriteString("\n")
	}

	if p.Dropdown.State() == selector.Open {
		sb.WriteString(m.renderItems(p.Items()))
	}

	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("[↑/↓] Move  [Enter] Toggle/Add  [Ctrl+F] Favorite  [Ctrl+D] Delete custom  [Ctrl+X] Clear  [Esc] Close"))
	return sb.String()
}

func (m Model) renderItems(items []filter.Item) string {
	p := m.picker
	s := m.styles
	var sb strings.Builder

	if len(items) == 0 {
		sb.WriteString(s.Muted.Render("No matches. Press Enter to add your own format."))
		sb.WriteString("\n")
		return sb.String()
	}

	var section string
	for i, item := range items {
		if h := m.heading(item); h != section {
			section = h
			sb.WriteString(s.Section.Render(h))
			sb.WriteString("\n")
		}
		mark := "[ ]"
		if p.Store.IsSelected(item.Value) {
			mark = "[x]"
		}
		star := ""
		if p.Store.IsFavorite(item.Value) {
			star = " *"
		}
		row := fmt.Sprintf("%s %s%s", mark, item.Value, star)
		if i == p.Dropdown.Cursor() {
			sb.WriteString(s.Active.Render("> " + row))
		} else {
			sb.WriteString(s.Row.Render("  " + row))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) heading(item filter.Item) string {
	switch item.Source {
	case filter.SourceFavorite:
		return "Favorites"
	case filter.SourceCustom:
		return catalog.CustomLabel
	}
	if rec, ok := m.picker.Store.Resolve(item.Value); ok {
		return rec.CategoryLabel
	}
	return item.CategoryID
}

func errorText(err error) string {
	switch {
	case errors.Is(err, selector.ErrEmptyInput):
		return "Type a format name first."
	case errors.Is(err, selector.ErrUnknownOption):
		return "That format no longer exists."
	}
	return err.Error()
}

// Run starts the picker on the terminal and returns the final selection.
func Run(s *selector.Store, opts ...tea.ProgramOption) ([]string, error) {
	final, err := tea.NewProgram(New(s), opts...).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Selection(), nil
}
