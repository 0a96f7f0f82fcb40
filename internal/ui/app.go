// Package ui is the interactive terminal table for browsing a loaded
// record set: filter, sort, paginate, and per-record detail.
package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vecscope/vecscope/internal/vectordata"
	"github.com/vecscope/vecscope/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selStyle    = lipgloss.NewStyle().Reverse(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Model is the bubbletea model for the record table.
type Model struct {
	data *vectordata.VectorData
	path string

	query    view.Query
	page     view.Page
	selected int // row index within the current page

	filtering  bool // the filter input has focus
	showDetail bool

	width  int
	height int
	ready  bool
}

// NewModel creates the table model for a loaded snapshot.
func NewModel(data *vectordata.VectorData, path string) *Model {
	m := &Model{
		data:  data,
		path:  path,
		query: view.Query{Sort: view.SortByID, PageSize: view.DefaultPageSize},
	}
	m.refresh()
	return m
}

// Run starts the interactive viewer and blocks until the user quits.
func Run(data *vectordata.VectorData, path string) error {
	_, err := tea.NewProgram(NewModel(data, path), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) refresh() {
	m.page = view.Apply(m.data, m.query)
	if m.selected >= len(m.page.Records) {
		m.selected = len(m.page.Records) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.query.PageSize = m.rowsPerPage()
		m.refresh()

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateTable(msg)
	}

	return m, nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filtering = false
	case "backspace":
		if len(m.query.Filter) > 0 {
			m.query.Filter = m.query.Filter[:len(m.query.Filter)-1]
			m.query.Page = 0
			m.refresh()
		}
	default:
		if len(msg.String()) == 1 {
			m.query.Filter += msg.String()
			m.query.Page = 0
			m.refresh()
		}
	}
	return m, nil
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.showDetail {
			m.showDetail = false
		}
	case "/":
		m.filtering = true
	case "enter":
		if len(m.page.Records) > 0 {
			m.showDetail = true
		}
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.page.Records)-1 {
			m.selected++
		}
	case "right", "n":
		if m.query.Page < m.page.TotalPages-1 {
			m.query.Page++
			m.selected = 0
			m.refresh()
		}
	case "left", "p":
		if m.query.Page > 0 {
			m.query.Page--
			m.selected = 0
			m.refresh()
		}
	case "s":
		m.cycleSort()
	case "r":
		m.query.Desc = !m.query.Desc
		m.refresh()
	}
	return m, nil
}

func (m *Model) cycleSort() {
	for i, key := range view.SortKeys {
		if key == m.query.Sort {
			m.query.Sort = view.SortKeys[(i+1)%len(view.SortKeys)]
			m.refresh()
			return
		}
	}
	m.query.Sort = view.SortKeys[0]
	m.refresh()
}

// rowsPerPage leaves room for the header, column row, status and help lines.
func (m *Model) rowsPerPage() int {
	rows := m.height - 6
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showDetail {
		return m.detailView()
	}
	return m.tableView()
}

func (m *Model) tableView() string {
	var b strings.Builder

	title := fmt.Sprintf("vecscope — %s (%s, %d records, %d dims)",
		m.path, m.data.Type, m.data.Count, m.data.Dimension)
	b.WriteString(headerStyle.Render(title) + "\n")

	status := fmt.Sprintf("sort: %s%s  filter: %q  page %d/%d  %d matching",
		m.query.Sort, sortArrow(m.query.Desc), m.query.Filter,
		m.page.Page+1, m.page.TotalPages, m.page.Total)
	if m.filtering {
		status += "  (typing filter, enter to apply)"
	}
	b.WriteString(dimStyle.Render(status) + "\n\n")

	idW, srcW := 20, 24
	textW := m.width - idW - srcW - 12
	if textW < 20 {
		textW = 20
	}

	b.WriteString(titleStyle.Render(fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		idW, "ID", srcW, "SOURCE", textW, "TEXT", "DIM")) + "\n")

	for i, rec := range m.page.Records {
		line := fmt.Sprintf("%-*s  %-*s  %-*s  %d",
			idW, truncate(rec.ID, idW),
			srcW, truncate(rec.Source, srcW),
			textW, truncate(oneLine(rec.Text), textW),
			len(rec.Vector))
		if i == m.selected {
			line = selStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if len(m.page.Records) == 0 {
		b.WriteString(errStyle.Render("no records match the current filter") + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("↑/↓ select · ←/→ page · s sort · r reverse · / filter · enter detail · q quit"))
	return b.String()
}

func (m *Model) detailView() string {
	rec := m.page.Records[m.selected]

	vector, _ := json.Marshal(rec.Vector)
	metadata := "{}"
	if rec.Metadata != nil {
		if raw, err := json.MarshalIndent(rec.Metadata, "", "  "); err == nil {
			metadata = string(raw)
		}
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Record detail") + "\n\n")
	b.WriteString(titleStyle.Render("ID      ") + rec.ID + "\n")
	b.WriteString(titleStyle.Render("Source  ") + rec.Source + "\n")
	b.WriteString(titleStyle.Render("Dims    ") + fmt.Sprintf("%d", len(rec.Vector)) + "\n\n")
	b.WriteString(titleStyle.Render("Text") + "\n" + wrap(rec.Text, m.width-2) + "\n\n")
	b.WriteString(titleStyle.Render("Vector") + "\n" + truncate(string(vector), m.width*3) + "\n\n")
	b.WriteString(titleStyle.Render("Metadata") + "\n" + metadata + "\n\n")
	b.WriteString(dimStyle.Render("esc back · q quit"))
	return b.String()
}

func sortArrow(desc bool) string {
	if desc {
		return "▼"
	}
	return "▲"
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

func wrap(s string, width int) string {
	if width < 10 {
		return s
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(s) {
		if line+len(word)+1 > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += len(word)
	}
	return b.String()
}
