package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/money"
)

type DetailModel struct {
	CommonModel
	goalService *goal.Service

	goal       *goal.Goal
	milestones []*goal.Milestone
	ledger     table.Model
	bar        progress.Model

	loading bool
	err     error
}

func NewDetailModel(goalSvc *goal.Service, g *goal.Goal) DetailModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 16},
		{Title: "Amount", Width: 10},
		{Title: "Balance", Width: 10},
		{Title: "Description", Width: 30},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return DetailModel{
		goalService: goalSvc,
		goal:        g,
		ledger:      t,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		loading:     true,
	}
}

func (m DetailModel) Title() string     { return "Goal Detail" }
func (m DetailModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DetailModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.goal = msg.goal
		m.milestones = msg.milestones
		m.refreshLedger(msg.ledger)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.ledger, cmd = m.ledger.Update(msg)

	return m, cmd
}

func (m DetailModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goal...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	pct := money.Percent(m.goal.CurrentAmount, m.goal.TargetAmount)

	header := fmt.Sprintf("%s (%s)\n%s of %s saved\n\n%s",
		m.goal.Name,
		m.goal.Status,
		FormatAmount(m.goal.CurrentAmount),
		FormatAmount(m.goal.TargetAmount),
		m.bar.ViewAs(pct.InexactFloat64()/100),
	)

	var ladder strings.Builder
	for _, ms := range m.milestones {
		mark := "[ ]"
		if ms.IsAchieved {
			mark = "[x]"
		}

		line := fmt.Sprintf("%s %3d%%  %s", mark, ms.PercentComplete, FormatAmount(ms.TargetAmount))
		if ms.BonusAmount.IsPositive() {
			line += fmt.Sprintf("  (+%s bonus)", FormatAmount(ms.BonusAmount))
		}

		ladder.WriteString(line + "\n")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.ledger.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().PaddingBottom(1).Render(ladder.String()),
		tableView,
	))
}

func (m *DetailModel) refreshLedger(ledger []*goal.Contribution) {
	rows := make([]table.Row, 0, len(ledger))
	for _, c := range ledger {
		rows = append(rows, table.Row{
			FormatDate(c.CreatedAt),
			string(c.Type),
			FormatAmount(c.Amount),
			FormatAmount(c.GoalBalanceAfter),
			c.Description,
		})
	}

	m.ledger.SetRows(rows)
}

// Messages

type loadDetailMsg struct {
	goal       *goal.Goal
	milestones []*goal.Milestone
	ledger     []*goal.Contribution
	err        error
}

func (m DetailModel) loadCmd() tea.Cmd {
	goalID := m.goal.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.goalService.Get(ctx, goalID)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		milestones, err := m.goalService.Milestones(ctx, goalID)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		ledger, err := m.goalService.History(ctx, goalID)
		if err != nil {
			return loadDetailMsg{err: err}
		}

		return loadDetailMsg{goal: g, milestones: milestones, ledger: ledger}
	}
}
