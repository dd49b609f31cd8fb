package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/money"
)

type goalsState int

const (
	goalsStateChild goalsState = iota
	goalsStateBrowse
)

// OpenDetailMsg asks the root model to open the selected goal's detail view.
type OpenDetailMsg struct {
	Goal *goal.Goal
}

// OpenContributeMsg asks the root model to open the contribute form.
type OpenContributeMsg struct {
	Goal *goal.Goal
}

type GoalsModel struct {
	CommonModel
	goalService *goal.Service

	state goalsState
	form  *huh.Form
	table table.Model
	goals []*goal.Goal

	childInput string
	childID    uuid.UUID

	loading bool
	err     error
}

func NewGoalsModel(goalSvc *goal.Service) GoalsModel {
	columns := []table.Column{
		{Title: "Name", Width: 25},
		{Title: "Status", Width: 10},
		{Title: "Saved", Width: 10},
		{Title: "Target", Width: 10},
		{Title: "Progress", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := GoalsModel{
		goalService: goalSvc,
		table:       t,
	}
	m.form = m.buildChildForm()

	return m
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state == goalsStateChild {
		return "Enter: confirm | Esc: back"
	}

	return "Esc: back | Enter: detail | c: contribute | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.goals = msg.goals
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case goalsStateChild:
		return m.updateChild(msg)
	case goalsStateBrowse:
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m GoalsModel) buildChildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("child_id").
				Title("Child account ID").
				Value(&m.childInput).
				Validate(func(s string) error {
					if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("not a valid account id")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m GoalsModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.childID = uuid.MustParse(strings.TrimSpace(m.form.GetString("child_id")))
	m.state = goalsStateBrowse
	m.loading = true

	return m, m.loadGoalsCmd()
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadGoalsCmd()
		case "enter":
			if g := m.selected(); g != nil {
				return m, func() tea.Msg { return OpenDetailMsg{Goal: g} }
			}
		case "c":
			if g := m.selected(); g != nil {
				return m, func() tea.Msg { return OpenContributeMsg{Goal: g} }
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m GoalsModel) selected() *goal.Goal {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.goals) {
		return nil
	}

	return m.goals[idx]
}

func (m GoalsModel) View() string {
	if m.state == goalsStateChild {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			"Whose goals?\n\n" + m.form.View(),
		)
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(tableView)
}

func (m *GoalsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.goals))
	for _, g := range m.goals {
		rows = append(rows, table.Row{
			g.Name,
			string(g.Status),
			FormatAmount(g.CurrentAmount),
			FormatAmount(g.TargetAmount),
			fmt.Sprintf("%s%%", money.RoundMinor(money.Percent(g.CurrentAmount, g.TargetAmount))),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadGoalsMsg struct {
	goals []*goal.Goal
	err   error
}

func (m GoalsModel) loadGoalsCmd() tea.Cmd {
	childID := m.childID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.goalService.List(ctx, childID)
		return loadGoalsMsg{goals: goals, err: err}
	}
}
