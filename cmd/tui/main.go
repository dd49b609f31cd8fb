package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/sproutbank/sprout/cmd/tui/internal/view"
	"github.com/sproutbank/sprout/internal/config"
	"github.com/sproutbank/sprout/internal/contribution"
	contributionStore "github.com/sproutbank/sprout/internal/contribution/store"
	"github.com/sproutbank/sprout/internal/database"
	"github.com/sproutbank/sprout/internal/events"
	"github.com/sproutbank/sprout/internal/goal"
	goalStore "github.com/sproutbank/sprout/internal/goal/store"
)

type model struct {
	goalService         *goal.Service
	contributionService *contribution.Service

	currentView View

	goalsView      view.GoalsModel
	detailView     view.DetailModel
	contributeView view.ContributeModel
}

type View int

const (
	ViewMenu       View = 0
	ViewGoals      View = 1
	ViewDetail     View = 2
	ViewContribute View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	goalSvc := goal.NewService(goalStore.New(db))
	contributionSvc := contribution.NewService(contributionStore.New(db), events.LogPublisher{}, cfg.Contribution.Timeout)

	return model{
		goalService:         goalSvc,
		contributionService: contributionSvc,
		currentView:         ViewMenu,
		goalsView:           view.NewGoalsModel(goalSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.goalService)

				return m, m.goalsView.Init()
			}
		}
	case view.OpenDetailMsg:
		m.currentView = ViewDetail
		m.detailView = view.NewDetailModel(m.goalService, msg.Goal)

		return m, m.detailView.Init()
	case view.OpenContributeMsg:
		m.currentView = ViewContribute
		m.contributeView = view.NewContributeModel(m.contributionService, msg.Goal)

		return m, m.contributeView.Init()
	case view.BackMsg:
		// Detail and contribute sit on top of the goals list.
		if m.currentView == ViewDetail || m.currentView == ViewContribute {
			m.currentView = ViewGoals
			return m, nil
		}

		m.currentView = ViewMenu

		return m, nil
	}

	switch m.currentView {
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewDetail:
		var newModel tea.Model
		newModel, cmd = m.detailView.Update(msg)
		m.detailView = newModel.(view.DetailModel)
	case ViewContribute:
		var newModel tea.Model
		newModel, cmd = m.contributeView.Update(msg)
		m.contributeView = newModel.(view.ContributeModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Sprout TUI\n\n" +
				"1. Savings Goals\n\n" +
				"q. Quit",
		)
	case ViewGoals:
		return m.goalsView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewContribute:
		return m.contributeView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
