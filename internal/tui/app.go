// Package tui is the interactive interface: a task pane and a chat pane
// side by side, wired to the same controllers the one-shot commands use.
// When the assistant mutates tasks, the task pane refreshes through the
// task-change signal.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskflow/internal/chatctl"
	"taskflow/internal/events"
	"taskflow/internal/service"
	"taskflow/internal/taskctl"
)

type pane int

const (
	paneTasks pane = iota
	paneChat
)

// messages produced by async commands
type (
	tasksLoadedMsg  struct{}
	taskOpDoneMsg   struct{}
	chatRepliedMsg  struct{}
	tasksChangedMsg struct{}
	opErrMsg        struct{ err error }
)

// Model is the bubbletea model for the interactive interface.
type Model struct {
	ctx    context.Context
	tasks  *taskctl.Controller
	chat   *chatctl.Controller
	reg    *events.Registry
	styles styles

	focus    pane
	selected int
	input    string
	width    int
	height   int
	status   string
	quitting bool
}

type styles struct {
	title     lipgloss.Style
	active    lipgloss.Style
	inactive  lipgloss.Style
	selected  lipgloss.Style
	completed lipgloss.Style
	user      lipgloss.Style
	assistant lipgloss.Style
	errLine   lipgloss.Style
	hint      lipgloss.Style
}

// newStyles picks colors from the resolved theme preference rather than the
// terminal's own background detection, so `taskflow theme` wins.
func newStyles(dark bool) styles {
	accent, dim, user, errc := "25", "243", "28", "160"
	if dark {
		accent, dim, user, errc = "39", "241", "76", "203"
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		active:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(accent)).Padding(0, 1),
		inactive:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(dim)).Padding(0, 1),
		selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color(dim)),
		user:      lipgloss.NewStyle().Foreground(lipgloss.Color(user)),
		assistant: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		errLine:   lipgloss.NewStyle().Foreground(lipgloss.Color(errc)),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color(dim)),
	}
}

// New builds the model. Tasks are loaded on Init.
func New(ctx context.Context, svc service.Service, reg *events.Registry, userID string, dark bool) *Model {
	return &Model{
		ctx:    ctx,
		tasks:  taskctl.New(svc, userID),
		chat:   chatctl.New(svc, reg, userID),
		reg:    reg,
		styles: newStyles(dark),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.loadTasks()
}

func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		if err := m.tasks.Load(m.ctx); err != nil {
			return opErrMsg{err}
		}
		return tasksLoadedMsg{}
	}
}

func (m *Model) sendChat(text string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.chat.Send(m.ctx, text); err != nil {
			return opErrMsg{err}
		}
		return chatRepliedMsg{}
	}
}

func (m *Model) toggleTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.tasks.Toggle(m.ctx, id); err != nil {
			return opErrMsg{err}
		}
		return taskOpDoneMsg{}
	}
}

func (m *Model) deleteTask(id int64) tea.Cmd {
	return func() tea.Msg {
		if err := m.tasks.Delete(m.ctx, id); err != nil {
			return opErrMsg{err}
		}
		return taskOpDoneMsg{}
	}
}

func (m *Model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.tasks.Create(m.ctx, title, ""); err != nil {
			return opErrMsg{err}
		}
		return taskOpDoneMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tasksChangedMsg:
		// Assistant-driven mutation; refresh the task pane.
		return m, m.loadTasks()

	case tasksLoadedMsg, taskOpDoneMsg:
		m.clampSelection()
		m.status = m.tasks.Err()
		return m, nil

	case chatRepliedMsg:
		m.status = m.chat.Err()
		return m, nil

	case opErrMsg:
		if e := m.tasks.Err(); e != "" {
			m.status = e
		} else if e := m.chat.Err(); e != "" {
			m.status = e
		} else {
			m.status = msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyTab:
		if m.focus == paneTasks {
			m.focus = paneChat
		} else {
			m.focus = paneTasks
		}
		m.input = ""
		return m, nil
	}

	if m.focus == paneChat {
		return m.handleChatKey(msg)
	}
	return m.handleTasksKey(msg)
}

func (m *Model) handleTasksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An input in progress captures printable keys for the new task title.
	if m.input != "" || msg.String() == "n" {
		switch msg.Type {
		case tea.KeyEnter:
			title := strings.TrimPrefix(m.input, "n")
			m.input = ""
			title = strings.TrimSpace(title)
			if title == "" {
				return m, nil
			}
			return m, m.createTask(title)
		case tea.KeyEsc:
			m.input = ""
			return m, nil
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
			return m, nil
		case tea.KeyRunes, tea.KeySpace:
			m.input += msg.String()
			return m, nil
		}
		return m, nil
	}

	tasks := m.tasks.Tasks()
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(tasks)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "r":
		return m, m.loadTasks()
	case " ", "x":
		if m.selected < len(tasks) {
			return m, m.toggleTask(tasks[m.selected].ID)
		}
	case "d":
		if m.selected < len(tasks) {
			return m, m.deleteTask(tasks[m.selected].ID)
		}
	}
	return m, nil
}

func (m *Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := strings.TrimSpace(m.input)
		m.input = ""
		if text == "" || m.chat.Sending() {
			return m, nil
		}
		return m, m.sendChat(text)
	case tea.KeyEsc:
		m.input = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.input += msg.String()
		return m, nil
	}
	return m, nil
}

func (m *Model) clampSelection() {
	if n := len(m.tasks.Tasks()); m.selected >= n && n > 0 {
		m.selected = n - 1
	} else if n == 0 {
		m.selected = 0
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	paneWidth := m.width/2 - 4
	if paneWidth < 20 {
		paneWidth = 20
	}

	left := m.viewTasks(paneWidth)
	right := m.viewChat(paneWidth)

	leftStyle, rightStyle := m.styles.inactive, m.styles.inactive
	if m.focus == paneTasks {
		leftStyle = m.styles.active
	} else {
		rightStyle = m.styles.active
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		leftStyle.Width(paneWidth).Render(left),
		rightStyle.Width(paneWidth).Render(right),
	)

	var footer string
	if m.status != "" {
		footer = m.styles.errLine.Render(m.status)
	} else if m.focus == paneTasks {
		footer = m.styles.hint.Render("j/k move · space toggle · d delete · n new · r reload · tab chat · q quit")
	} else {
		footer = m.styles.hint.Render("type and enter to send · tab tasks · ctrl+c quit")
	}
	return body + "\n" + footer + "\n"
}

func (m *Model) viewTasks(width int) string {
	var b strings.Builder
	tasks := m.tasks.Tasks()
	total, completed, pending := taskctl.Counts(tasks)
	b.WriteString(m.styles.title.Render(fmt.Sprintf("Tasks  %d total · %d done · %d open", total, completed, pending)))
	b.WriteString("\n\n")
	if len(tasks) == 0 {
		b.WriteString(m.styles.hint.Render("no tasks"))
	}
	for i, t := range tasks {
		mark := "[ ]"
		line := t.Title
		if t.Completed {
			mark = "[x]"
			line = m.styles.completed.Render(line)
		}
		row := fmt.Sprintf("%s %s", mark, line)
		if i == m.selected && m.focus == paneTasks {
			row = m.styles.selected.Render("> ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(truncate(row, width))
		b.WriteString("\n")
	}
	if m.focus == paneTasks && m.input != "" {
		b.WriteString("\nnew: " + strings.TrimPrefix(m.input, "n") + "▏")
	}
	return b.String()
}

func (m *Model) viewChat(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Assistant"))
	b.WriteString("\n\n")
	msgs := m.chat.Messages()
	if len(msgs) == 0 {
		b.WriteString(m.styles.hint.Render("ask the assistant to manage your tasks"))
		b.WriteString("\n")
	}

	// Show only the tail that fits.
	visible := m.height - 8
	if visible < 4 {
		visible = 4
	}
	if len(msgs) > visible {
		msgs = msgs[len(msgs)-visible:]
	}
	for _, msg := range msgs {
		prefix := m.styles.user.Render("you: ")
		if msg.Role == service.RoleAssistant {
			prefix = m.styles.assistant.Render("assistant: ")
		}
		b.WriteString(truncate(prefix+msg.Content, width))
		b.WriteString("\n")
	}
	if m.chat.Sending() {
		b.WriteString(m.styles.hint.Render("…"))
		b.WriteString("\n")
	}
	if m.focus == paneChat {
		b.WriteString("\n> " + m.input + "▏")
	}
	return b.String()
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) > width-1 {
		r = r[:width-1]
	}
	return string(r) + "…"
}

// Run starts the interactive program and blocks until it exits. Task-change
// signals published while it runs are forwarded into the update loop.
func Run(ctx context.Context, svc service.Service, reg *events.Registry, userID string, dark bool) error {
	m := New(ctx, svc, reg, userID, dark)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	unsubscribe := reg.Subscribe(events.TasksChanged, func() {
		p.Send(tasksChangedMsg{})
	})
	defer unsubscribe()

	_, err := p.Run()
	return err
}
