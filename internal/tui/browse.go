package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/gerunddev/recipemd/internal/catalog"
	"github.com/gerunddev/recipemd/internal/render"
	"github.com/gerunddev/recipemd/internal/styles"
	"github.com/gerunddev/recipemd/recipemd"
)

type browseModel struct {
	table       table.Model
	viewport    viewport.Model
	entries     []catalog.Entry
	rounding    int
	showingView bool
	selected    *catalog.Entry
	multiplier  int64
	width       int
	height      int
}

// InitBrowseModel creates a new recipe browser model
func InitBrowseModel(entries []catalog.Entry, rounding int) browseModel {
	columns := []table.Column{
		{Title: "Recipe", Width: 30},
		{Title: "Yields", Width: 20},
		{Title: "Tags", Width: 25},
		{Title: "File", Width: 30},
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.Recipe.Title,
			yieldsLine(e.Recipe),
			strings.Join(e.Recipe.Tags, ", "),
			e.Path,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		table:      t,
		viewport:   vp,
		entries:    entries,
		rounding:   rounding,
		multiplier: 1,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingView {
			// In recipe view
			switch msg.String() {
			case "q", "esc":
				m.showingView = false
				m.multiplier = 1
				return m, nil
			case "+", "=":
				m.multiplier++
				m.renderSelected()
				return m, nil
			case "-", "_":
				if m.multiplier > 1 {
					m.multiplier--
					m.renderSelected()
				}
				return m, nil
			case "up", "k":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			case "down", "j":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
		} else {
			// In table view
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "up", "k":
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			case "down", "j":
				m.table, cmd = m.table.Update(msg)
				return m, cmd
			case "enter":
				if len(m.entries) > 0 {
					selectedIdx := m.table.Cursor()
					if selectedIdx < len(m.entries) {
						m.selected = &m.entries[selectedIdx]
						m.showingView = true
						m.multiplier = 1
						m.renderSelected()
						m.viewport.GotoTop()
					}
				}
				return m, nil
			}
		}
	}

	return m, nil
}

func (m *browseModel) renderSelected() {
	if m.selected == nil {
		return
	}
	recipe := m.selected.Recipe
	if m.multiplier != 1 {
		recipe = recipemd.Multiply(recipe, decimal.NewFromInt(m.multiplier))
	}
	markdown := recipemd.Serialize(recipe, m.rounding)
	m.viewport.SetContent(render.Markdown(markdown, m.viewport.Width-4))
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("RecipeMD Browser"))
	b.WriteString("\n\n")

	if m.showingView {
		// Show recipe view
		label := m.selected.Recipe.Title
		if m.multiplier != 1 {
			label = fmt.Sprintf("%s (×%d)", label, m.multiplier)
		}
		b.WriteString(styles.HighlightStyle.Render(label))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • + scale up • - scale down • esc/q back"))
		b.WriteString("\n")
	} else {
		// Show table view
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("Recipes: %d", len(m.entries))))
		b.WriteString("\n\n")
		b.WriteString(styles.TableStyle.Render(m.table.View()))
		b.WriteString("\n\n")
		if details := m.cursorDetails(); details != "" {
			b.WriteString(details)
			b.WriteString("\n\n")
		}
		b.WriteString(styles.HelpStyle.Render("↑/k up • ↓/j down • enter view • q quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// cursorDetails summarizes the recipe under the cursor: yields and tags
func (m browseModel) cursorDetails() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return ""
	}
	recipe := m.entries[idx].Recipe

	var parts []string
	if len(recipe.Yields) > 0 {
		parts = append(parts, styles.YieldStyle.Render(yieldsLine(recipe)))
	}
	if len(recipe.Tags) > 0 {
		parts = append(parts, styles.TagStyle.Render(strings.Join(recipe.Tags, ", ")))
	}
	return strings.Join(parts, "  ")
}

func yieldsLine(r *recipemd.Recipe) string {
	yields := make([]string, len(r.Yields))
	for i, y := range r.Yields {
		yields[i] = y.String()
	}
	return strings.Join(yields, ", ")
}

// RunBrowse starts the recipe browser over the given entries
func RunBrowse(entries []catalog.Entry, rounding int) error {
	m := InitBrowseModel(entries, rounding)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
