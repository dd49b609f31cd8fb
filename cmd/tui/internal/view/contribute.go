package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/sproutbank/sprout/internal/contribution"
	"github.com/sproutbank/sprout/internal/goal"
)

type contributeState int

const (
	contributeStateForm contributeState = iota
	contributeStateSaving
	contributeStateResult
)

type ContributeModel struct {
	CommonModel
	contributionService *contribution.Service

	state contributeState
	goal  *goal.Goal
	form  *huh.Form

	amount      string
	description string

	spinner spinner.Model
	event   *contribution.ProgressEvent
	err     error
}

func NewContributeModel(svc *contribution.Service, g *goal.Goal) ContributeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := ContributeModel{
		contributionService: svc,
		goal:                g,
		spinner:             s,
	}
	m.form = m.buildForm()

	return m
}

func (m ContributeModel) Title() string { return "Contribute" }

func (m ContributeModel) ShortHelp() string {
	switch m.state {
	case contributeStateSaving:
		return "Saving..."
	case contributeStateResult:
		return "Esc: back to goals"
	}

	return "Enter: confirm | Esc: cancel"
}

func (m ContributeModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ContributeModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Amount to add to %q", m.goal.Name)).
				Placeholder("5.00").
				Value(&m.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a valid amount")
					}

					if !d.IsPositive() {
						return fmt.Errorf("amount must be positive")
					}

					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Note").
				Placeholder("birthday money").
				Value(&m.description),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ContributeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case contributeDoneMsg:
		m.state = contributeStateResult
		m.event = msg.event
		m.err = msg.err

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	switch m.state {
	case contributeStateForm:
		return m.updateForm(msg)
	case contributeStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ContributeModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

	m.state = contributeStateSaving

	return m, tea.Batch(m.spinner.Tick, m.contributeCmd())
}

func (m ContributeModel) View() string {
	switch m.state {
	case contributeStateSaving:
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Moving money...")

	case contributeStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Added! %q is now at %s of %s (%s%%)\n",
			m.goal.Name,
			FormatAmount(m.event.NewAmount),
			FormatAmount(m.event.TargetAmount),
			m.event.Percentage,
		)

		if m.event.MatchAmountAdded != nil {
			fmt.Fprintf(&b, "Parent match added: %s\n", FormatAmount(*m.event.MatchAmountAdded))
		}

		if m.event.MilestoneReached != nil {
			fmt.Fprintf(&b, "Milestone reached: %d%%\n", *m.event.MilestoneReached)
		}

		if m.event.ChallengeCompleted {
			b.WriteString("Challenge completed!\n")
		}

		if m.event.IsCompleted {
			b.WriteString("Goal complete!\n")
		}

		return lipgloss.NewStyle().Padding(2).Render(b.String())
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}

// Messages

type contributeDoneMsg struct {
	event *contribution.ProgressEvent
	err   error
}

func (m ContributeModel) contributeCmd() tea.Cmd {
	goalID := m.goal.ID
	amount := decimal.RequireFromString(strings.TrimSpace(m.form.GetString("amount")))
	description := m.form.GetString("description")

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		event, err := m.contributionService.Contribute(ctx, goalID, amount, description)
		return contributeDoneMsg{event: event, err: err}
	}
}
