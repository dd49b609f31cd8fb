// Package statement renders a goal's contribution ledger as a CSV statement
// for download by the parent dashboard.
package statement

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/sproutbank/sprout/internal/goal"
)

// Service handles statement generation over the goal ledger.
type Service struct {
	goals   *goal.Service
	printer *message.Printer
}

func NewService(goals *goal.Service) *Service {
	return &Service{
		goals:   goals,
		printer: message.NewPrinter(language.English),
	}
}

var header = []string{"date", "type", "description", "amount", "goal_balance"}

// WriteCSV streams the goal's full ledger to w, oldest entry first, with a
// trailing summary row for the current amount against the target.
func (s *Service) WriteCSV(ctx context.Context, goalID uuid.UUID, w io.Writer) error {
	g, err := s.goals.Get(ctx, goalID)
	if err != nil {
		return err
	}

	contributions, err := s.goals.History(ctx, goalID)
	if err != nil {
		return fmt.Errorf("loading ledger: %w", err)
	}

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, c := range contributions {
		record := []string{
			c.CreatedAt.Format(time.DateOnly),
			string(c.Type),
			c.Description,
			s.formatAmount(c.Amount),
			s.formatAmount(c.GoalBalanceAfter),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing ledger row: %w", err)
		}
	}

	summary := []string{"", "total", g.Name, s.formatAmount(g.CurrentAmount), s.formatAmount(g.TargetAmount)}
	if err := cw.Write(summary); err != nil {
		return fmt.Errorf("writing summary row: %w", err)
	}

	cw.Flush()

	return cw.Error()
}

// Filename derives a download filename from the goal, in the same
// YYYYMMDD_Name shape the rest of the system uses for exports.
func (s *Service) Filename(g *goal.Goal, now time.Time) string {
	safeName := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, g.Name)

	return fmt.Sprintf("%s_%s.csv", now.Format("20060102"), safeName)
}

// formatAmount renders through the locale printer on the minor-unit integer.
// Ledger amounts carry exactly two decimal places, so the shift is exact.
func (s *Service) formatAmount(d decimal.Decimal) string {
	units := d.Shift(2).IntPart()

	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}

	return sign + s.printer.Sprint(number.Decimal(units/100)) + fmt.Sprintf(".%02d", units%100)
}
