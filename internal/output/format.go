// Package output provides themed formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/service"
)

// Palette holds the styles for one resolved theme.
type Palette struct {
	Header    lipgloss.Style
	Num       lipgloss.Style
	Pending   lipgloss.Style
	Completed lipgloss.Style
	Meta      lipgloss.Style
	Error     lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
}

// PaletteFor returns the palette for the resolved theme. Styles are bound
// to a renderer for w, so writing to a non-terminal (pipes, test buffers)
// produces plain text.
func PaletteFor(w io.Writer, dark bool) Palette {
	r := lipgloss.NewRenderer(w)
	if dark {
		return Palette{
			Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
			Num:       r.NewStyle().Foreground(lipgloss.Color("245")),
			Pending:   r.NewStyle().Foreground(lipgloss.Color("252")),
			Completed: r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("242")),
			Meta:      r.NewStyle().Faint(true),
			Error:     r.NewStyle().Foreground(lipgloss.Color("203")),
			User:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
			Assistant: r.NewStyle().Foreground(lipgloss.Color("114")),
		}
	}
	return Palette{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		Num:       r.NewStyle().Foreground(lipgloss.Color("240")),
		Pending:   r.NewStyle().Foreground(lipgloss.Color("235")),
		Completed: r.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("246")),
		Meta:      r.NewStyle().Faint(true),
		Error:     r.NewStyle().Foreground(lipgloss.Color("124")),
		User:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("26")),
		Assistant: r.NewStyle().Foreground(lipgloss.Color("28")),
	}
}

// FormatTask formats one task line.
// Format: "{ID:>6}  [x] {TITLE}\n" with the title struck through when completed.
func FormatTask(w io.Writer, task service.Task, p Palette) {
	box := "[ ]"
	style := p.Pending
	if task.Completed {
		box = "[x]"
		style = p.Completed
	}
	fmt.Fprintf(w, "%s  %s %s\n",
		p.Num.Render(fmt.Sprintf("%6d", task.ID)),
		box,
		style.Render(normalizeTitle(task.Title)),
	)
}

// FormatTaskDetail formats the full task entity for the show command.
func FormatTaskDetail(w io.Writer, task service.Task, p Palette) {
	status := "pending"
	if task.Completed {
		status = "completed"
	}
	fmt.Fprintf(w, "%s %s\n", p.Header.Render("title:"), normalizeTitle(task.Title))
	if task.Description != "" {
		fmt.Fprintf(w, "%s %s\n", p.Header.Render("description:"), task.Description)
	}
	fmt.Fprintf(w, "%s %s\n", p.Header.Render("status:"), status)
	fmt.Fprintf(w, "%s %s\n", p.Meta.Render("created:"), task.CreatedAt)
	fmt.Fprintf(w, "%s %s\n", p.Meta.Render("updated:"), task.UpdatedAt)
}

// FormatError writes the inline error banner to w.
func FormatError(w io.Writer, msg string, p Palette) {
	fmt.Fprintln(w, p.Error.Render("error: "+msg))
}

// FormatCounts formats the dashboard summary line.
func FormatCounts(w io.Writer, total, completed, pending int, p Palette) {
	fmt.Fprintf(w, "%s %d total, %d completed, %d pending\n",
		p.Header.Render("tasks:"), total, completed, pending)
}

// FormatConversation formats one conversation list line.
func FormatConversation(w io.Writer, conv service.Conversation, p Palette) {
	fmt.Fprintf(w, "%s  %s\n",
		p.Num.Render(fmt.Sprintf("%6d", conv.ID)),
		p.Meta.Render(conv.UpdatedAt),
	)
}

// FormatMessage formats one transcript message with its role marker.
func FormatMessage(w io.Writer, msg service.Message, p Palette) {
	marker := p.User.Render("you")
	if msg.Role == service.RoleAssistant {
		marker = p.Assistant.Render("assistant")
	}
	fmt.Fprintf(w, "%s: %s\n", marker, normalizeTitle(msg.Content))
}

// FormatProfile formats the profile page.
func FormatProfile(w io.Writer, user service.User, p Palette) {
	fmt.Fprintf(w, "%s %s\n", p.Header.Render("name:"), user.Name)
	fmt.Fprintf(w, "%s %s\n", p.Header.Render("email:"), user.Email)
	if user.Bio != "" {
		fmt.Fprintf(w, "%s %s\n", p.Header.Render("bio:"), user.Bio)
	}
}

// normalizeTitle normalizes text for single-line display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
