package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/colonyops/shelf/internal/core/sorting"
	"github.com/colonyops/shelf/internal/core/styles"
)

const (
	folderGlyph   = "▸ "
	documentGlyph = "  "
)

// View implements tea.Model.
func (m Model) View() string {
	if m.focus == focusViewer && m.pane.Visible() {
		return m.pane.View()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.focus == focusSearchInput {
		b.WriteString(styles.SearchBarStyle.Render("open with search: "))
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	crumbs := []string{"Library"}
	for _, f := range m.lib.Breadcrumb(m.folderID) {
		crumbs = append(crumbs, f.Name)
	}
	return styles.TitleStyle.Render("shelf ") +
		styles.BreadcrumbStyle.Render(strings.Join(crumbs, " › "))
}

// renderGrid lays the entries out in m.columns columns, row-major, matching
// cursor movement (left/right step one entry, up/down step one row).
func (m Model) renderGrid() string {
	if len(m.entries) == 0 {
		return styles.MutedStyle.Render("  (empty folder)")
	}

	colWidth := 30
	if m.width > 0 {
		colWidth = max(m.width/m.columns-2, 12)
	}

	var rows []string
	for start := 0; start < len(m.entries); start += m.columns {
		end := min(start+m.columns, len(m.entries))
		cells := make([]string, 0, m.columns)
		for i := start; i < end; i++ {
			cells = append(cells, m.renderEntry(i, colWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderEntry(i, width int) string {
	e := m.entries[i]

	glyph := documentGlyph
	style := styles.DocumentStyle
	if e.isFolder() {
		glyph = folderGlyph
		style = styles.FolderStyle
	}
	if i == m.cursor {
		style = styles.SelectedStyle
	}

	label := glyph + e.name()
	detail := m.entryDetail(e)
	if detail != "" {
		label += styles.MutedStyle.Render(" · " + detail)
	}

	return style.Width(width).MaxWidth(width).Render(label)
}

// entryDetail shows the value of the active sort field next to each item.
func (m Model) entryDetail(e entry) string {
	switch m.sortState.Field {
	case sorting.FieldSize:
		if e.isFolder() {
			return humanize.Bytes(uint64(e.folder.TotalSize))
		}
		return humanize.Bytes(uint64(e.document.FileSize))
	case sorting.FieldPages:
		if e.isFolder() {
			return fmt.Sprintf("%d items", e.folder.ItemCount)
		}
		return fmt.Sprintf("%d pages", e.document.PageCount)
	case sorting.FieldModified, sorting.FieldOpened, sorting.FieldCreated:
		raw := timestampFor(e, m.sortState.Field)
		if raw == "" {
			return ""
		}
		return raw[:min(10, len(raw))] // date part only
	default:
		return ""
	}
}

func timestampFor(e entry, f sorting.Field) string {
	t := e.document
	if e.isFolder() {
		switch f {
		case sorting.FieldOpened:
			return e.folder.Opened
		case sorting.FieldCreated:
			return e.folder.Created
		default:
			return e.folder.Modified
		}
	}
	switch f {
	case sorting.FieldOpened:
		return t.Opened
	case sorting.FieldCreated:
		return t.Created
	default:
		return t.Modified
	}
}

func (m Model) renderStatusBar() string {
	dir := "↑"
	if m.sortState.Descending {
		dir = "↓"
	}

	folders, documents := m.lib.Children(m.folderID)
	var size int64
	for _, d := range documents {
		size += d.FileSize
	}
	for _, f := range folders {
		size += f.TotalSize
	}

	parts := []string{
		fmt.Sprintf("sort: %s %s", m.sortState.Field, dir),
		fmt.Sprintf("%d folders, %d documents", len(folders), len(documents)),
		humanize.Bytes(uint64(size)),
		fmt.Sprintf("%d cols", m.columns),
	}
	if n := len(m.lib.Errors()); n > 0 {
		parts = append(parts, styles.ErrorStyle.Render(fmt.Sprintf("%d failed items", n)))
	}

	width := m.width
	if width <= 0 {
		width = 80
	}
	return styles.StatusBarStyle.Width(width).Render(" " + strings.Join(parts, "  •  "))
}
