package contribution_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sproutbank/sprout/internal/challenge"
	"github.com/sproutbank/sprout/internal/contribution"
	"github.com/sproutbank/sprout/internal/goal"
	"github.com/sproutbank/sprout/internal/matching"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// harness wires a mock unit of work that tracks the goal balance the way the
// real store does, and records every ledger insert and milestone achievement.
type harness struct {
	repo *contribution.MockRepository
	tx   *contribution.MockTx
	pub  *contribution.MockPublisher
	svc  *contribution.Service

	current  decimal.Decimal
	inserted []*goal.Contribution
	achieved []uuid.UUID
}

func newHarness(t *testing.T, g *goal.Goal) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)

	h := &harness{
		repo:    contribution.NewMockRepository(ctrl),
		tx:      contribution.NewMockTx(ctrl),
		pub:     contribution.NewMockPublisher(ctrl),
		current: g.CurrentAmount,
	}

	h.svc = contribution.NewService(h.repo, h.pub, time.Second)

	h.repo.EXPECT().Begin(gomock.Any(), g.ID).Return(h.tx, nil)
	h.tx.EXPECT().Rollback().Return(nil).AnyTimes()
	h.tx.EXPECT().Goal(gomock.Any()).Return(g, nil)

	h.tx.EXPECT().ApplyDelta(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, delta decimal.Decimal) (decimal.Decimal, error) {
			h.current = h.current.Add(delta)
			return h.current, nil
		}).AnyTimes()

	h.tx.EXPECT().InsertContribution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *goal.Contribution) error {
			h.inserted = append(h.inserted, c)
			return nil
		}).AnyTimes()

	h.tx.EXPECT().AchieveMilestone(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID, _ time.Time) error {
			h.achieved = append(h.achieved, id)
			return nil
		}).AnyTimes()

	return h
}

func activeGoal(target, current string) *goal.Goal {
	return &goal.Goal{
		ID:            uuid.New(),
		OwnerChildID:  uuid.New(),
		Name:          "New Bike",
		TargetAmount:  d(target),
		CurrentAmount: d(current),
		Status:        goal.StatusActive,
	}
}

func ladder(goalID uuid.UUID, target string, achievedUpTo int) []*goal.Milestone {
	percents := []int{25, 50, 75, 100}
	ms := make([]*goal.Milestone, len(percents))

	for i, pct := range percents {
		ms[i] = &goal.Milestone{
			ID:              uuid.New(),
			GoalID:          goalID,
			PercentComplete: pct,
			TargetAmount:    d(target).Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)),
			IsAchieved:      pct <= achievedUpTo,
		}
	}

	return ms
}

// Scenario: no matching rule, the deposit fully funds the goal.
func TestService_Contribute_CompletesGoal(t *testing.T) {
	g := activeGoal("100", "0")
	h := newHarness(t, g)

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(ladder(g.ID, "100", 0), nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().SetStatus(gomock.Any(), goal.StatusCompleted).Return(nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("100"), "birthday money")
	require.NoError(t, err)

	require.Len(t, h.inserted, 1)
	assert.Equal(t, goal.TypeChildDeposit, h.inserted[0].Type)
	assert.True(t, h.inserted[0].Amount.Equal(d("100")))
	assert.True(t, h.inserted[0].GoalBalanceAfter.Equal(d("100")))

	// The whole ladder is crossed by one deposit, in ascending order.
	assert.Len(t, h.achieved, 4)

	assert.True(t, event.IsCompleted)
	assert.True(t, event.NewAmount.Equal(d("100")))
	require.NotNil(t, event.MilestoneReached)
	assert.Equal(t, 100, *event.MilestoneReached)
	assert.Nil(t, event.MatchAmountAdded)
}

// Scenario: ratio match 0.5 with no cap adds half the deposit.
func TestService_Contribute_RatioMatch(t *testing.T) {
	g := activeGoal("1000", "0")
	h := newHarness(t, g)

	rule := &matching.Rule{
		ID:         uuid.New(),
		GoalID:     g.ID,
		Type:       matching.RatioMatch,
		MatchRatio: d("0.5"),
		IsActive:   true,
	}

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(rule, nil)
	h.tx.EXPECT().AddMatched(gomock.Any(), rule.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
			assert.True(t, amount.Equal(d("10")))
			return nil
		})
	h.tx.EXPECT().Milestones(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("20"), "")
	require.NoError(t, err)

	require.Len(t, h.inserted, 2)
	assert.Equal(t, goal.TypeChildDeposit, h.inserted[0].Type)
	assert.Equal(t, goal.TypeParentMatch, h.inserted[1].Type)
	assert.True(t, h.inserted[1].Amount.Equal(d("10")))
	assert.True(t, h.inserted[1].GoalBalanceAfter.Equal(d("30")))
	require.NotNil(t, h.inserted[1].SourceID)
	assert.Equal(t, rule.ID, *h.inserted[1].SourceID)

	assert.True(t, event.NewAmount.Equal(d("30")))
	require.NotNil(t, event.MatchAmountAdded)
	assert.True(t, event.MatchAmountAdded.Equal(d("10")))
	assert.False(t, event.IsCompleted)
}

// Scenario: a nearly exhausted lifetime cap clamps the match.
func TestService_Contribute_MatchClampedToCap(t *testing.T) {
	g := activeGoal("1000", "0")
	h := newHarness(t, g)

	cap := d("5")
	rule := &matching.Rule{
		ID:                 uuid.New(),
		GoalID:             g.ID,
		Type:               matching.RatioMatch,
		MatchRatio:         d("1"),
		MaxMatchAmount:     &cap,
		TotalMatchedAmount: d("4"),
		IsActive:           true,
	}

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(rule, nil)
	h.tx.EXPECT().AddMatched(gomock.Any(), rule.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
			assert.True(t, amount.Equal(d("1")), "cap remaining should clamp the match to 1, got %s", amount)
			return nil
		})
	h.tx.EXPECT().Milestones(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	_, err := h.svc.Contribute(context.Background(), g.ID, d("10"), "")
	require.NoError(t, err)

	require.Len(t, h.inserted, 2)
	assert.True(t, h.inserted[1].Amount.Equal(d("1")))
	assert.True(t, h.current.Equal(d("11")))
}

// Scenario: one deposit crosses two milestones; higher ones stay unachieved.
func TestService_Contribute_CrossesTwoMilestones(t *testing.T) {
	g := activeGoal("100", "40")
	h := newHarness(t, g)

	ms := ladder(g.ID, "100", 25)

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(ms, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("40"), "")
	require.NoError(t, err)

	// 40 -> 80 crosses the 50% and 75% steps; 100% stays open.
	require.Len(t, h.achieved, 2)
	assert.Equal(t, ms[1].ID, h.achieved[0])
	assert.Equal(t, ms[2].ID, h.achieved[1])
	assert.False(t, ms[3].IsAchieved)

	require.NotNil(t, event.MilestoneReached)
	assert.Equal(t, 75, *event.MilestoneReached)
	assert.False(t, event.IsCompleted)
}

// Scenario: a deposit crosses a bonus-bearing milestone; the bonus is paid as
// its own ledger entry and counts toward the steps above it.
func TestService_Contribute_PaysMilestoneBonus(t *testing.T) {
	g := activeGoal("100", "0")
	h := newHarness(t, g)

	ms := ladder(g.ID, "100", 0)
	ms[1].BonusAmount = d("5") // 50% step

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(ms, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("70"), "")
	require.NoError(t, err)

	// 0 -> 70 crosses 25% and 50%; the 50% bonus lifts 70 to 75, which
	// crosses the 75% step inside the same ladder pass.
	require.Len(t, h.achieved, 3)
	assert.Equal(t, ms[0].ID, h.achieved[0])
	assert.Equal(t, ms[1].ID, h.achieved[1])
	assert.Equal(t, ms[2].ID, h.achieved[2])
	assert.False(t, ms[3].IsAchieved)

	require.Len(t, h.inserted, 2)
	assert.Equal(t, goal.TypeMilestoneBonus, h.inserted[1].Type)
	assert.True(t, h.inserted[1].Amount.Equal(d("5")))
	assert.True(t, h.inserted[1].GoalBalanceAfter.Equal(d("75")))
	require.NotNil(t, h.inserted[1].SourceID)
	assert.Equal(t, ms[1].ID, *h.inserted[1].SourceID)

	assert.True(t, event.NewAmount.Equal(d("75")))
	require.NotNil(t, event.MilestoneReached)
	assert.Equal(t, 75, *event.MilestoneReached)
	assert.False(t, event.IsCompleted)
}

// Scenario: a bonus is paid exactly once per milestone; re-crossing an
// achieved step pays nothing.
func TestService_Contribute_MilestoneBonusPaidOnce(t *testing.T) {
	g := activeGoal("100", "55")
	h := newHarness(t, g)

	ms := ladder(g.ID, "100", 50)
	ms[1].BonusAmount = d("5") // 50% step, already achieved

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(ms, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("20"), "")
	require.NoError(t, err)

	// 55 -> 75 crosses only the 75% step; the achieved 50% step is skipped.
	require.Len(t, h.achieved, 1)
	assert.Equal(t, ms[2].ID, h.achieved[0])

	require.Len(t, h.inserted, 1)
	assert.Equal(t, goal.TypeChildDeposit, h.inserted[0].Type)

	assert.True(t, event.NewAmount.Equal(d("75")))
}

// Scenario: the deposit resolves the challenge and the challenge bonus itself
// crosses a milestone, picked up by the second ladder pass.
func TestService_Contribute_ChallengeBonusCrossesMilestone(t *testing.T) {
	g := activeGoal("100", "45")
	h := newHarness(t, g)

	ms := ladder(g.ID, "100", 25)

	ch := &challenge.Challenge{
		ID:           uuid.New(),
		GoalID:       g.ID,
		TargetAmount: d("70"),
		StartDate:    time.Now().UTC().Add(-24 * time.Hour),
		EndDate:      time.Now().UTC().Add(24 * time.Hour),
		BonusAmount:  d("10"),
		Status:       challenge.StatusActive,
	}

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(ms, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(ch, nil)
	h.tx.EXPECT().CompleteChallenge(gomock.Any(), ch.ID, gomock.Any()).Return(nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("25"), "")
	require.NoError(t, err)

	// 45 -> 70 crosses 50% in the first pass; the 10 bonus lifts 70 to 80,
	// and the second pass picks up the 75% step.
	require.Len(t, h.achieved, 2)
	assert.Equal(t, ms[1].ID, h.achieved[0])
	assert.Equal(t, ms[2].ID, h.achieved[1])

	require.Len(t, h.inserted, 2)
	assert.Equal(t, goal.TypeChallengeBonus, h.inserted[1].Type)
	assert.True(t, h.inserted[1].GoalBalanceAfter.Equal(d("80")))

	assert.True(t, event.ChallengeCompleted)
	assert.True(t, event.NewAmount.Equal(d("80")))
	require.NotNil(t, event.MilestoneReached)
	assert.Equal(t, 75, *event.MilestoneReached)
	assert.False(t, event.IsCompleted)
}

// Scenario: the deposit reaches the challenge target before its deadline;
// the bonus is paid inside the same unit of work.
func TestService_Contribute_ResolvesChallenge(t *testing.T) {
	g := activeGoal("100", "45")
	h := newHarness(t, g)

	ch := &challenge.Challenge{
		ID:           uuid.New(),
		GoalID:       g.ID,
		TargetAmount: d("50"),
		StartDate:    time.Now().UTC().Add(-24 * time.Hour),
		EndDate:      time.Now().UTC().Add(24 * time.Hour),
		BonusAmount:  d("5"),
		Status:       challenge.StatusActive,
	}

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(ch, nil)
	h.tx.EXPECT().CompleteChallenge(gomock.Any(), ch.ID, gomock.Any()).Return(nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("5"), "")
	require.NoError(t, err)

	require.Len(t, h.inserted, 2)
	assert.Equal(t, goal.TypeChallengeBonus, h.inserted[1].Type)
	assert.True(t, h.inserted[1].Amount.Equal(d("5")))
	assert.True(t, h.inserted[1].GoalBalanceAfter.Equal(d("55")))

	assert.True(t, event.ChallengeCompleted)
	assert.True(t, event.NewAmount.Equal(d("55")))
	assert.False(t, event.IsCompleted)
}

// Scenario: an expired challenge is left for the sweep; no bonus is paid.
func TestService_Contribute_IgnoresExpiredChallenge(t *testing.T) {
	g := activeGoal("100", "45")
	h := newHarness(t, g)

	ch := &challenge.Challenge{
		ID:           uuid.New(),
		GoalID:       g.ID,
		TargetAmount: d("50"),
		EndDate:      time.Now().UTC().Add(-time.Hour),
		BonusAmount:  d("5"),
		Status:       challenge.StatusActive,
	}

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(nil)
	h.tx.EXPECT().ActiveRule(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().Milestones(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(ch, nil)
	h.tx.EXPECT().Commit().Return(nil)
	h.pub.EXPECT().PublishProgress(gomock.Any(), gomock.Any()).Return(nil)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("5"), "")
	require.NoError(t, err)

	assert.Len(t, h.inserted, 1)
	assert.False(t, event.ChallengeCompleted)
	assert.True(t, event.NewAmount.Equal(d("50")))
}

// Scenario: the debit fails; nothing is inserted and nothing is published.
func TestService_Contribute_InsufficientFunds(t *testing.T) {
	g := activeGoal("100", "0")
	h := newHarness(t, g)

	h.tx.EXPECT().DebitBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).Return(goal.ErrInsufficientFunds)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("500"), "")
	assert.ErrorIs(t, err, goal.ErrInsufficientFunds)
	assert.Nil(t, event)
	assert.Empty(t, h.inserted)
}

func TestService_Contribute_GoalNotActive(t *testing.T) {
	g := activeGoal("100", "0")
	g.Status = goal.StatusPaused
	h := newHarness(t, g)

	event, err := h.svc.Contribute(context.Background(), g.ID, d("10"), "")
	assert.ErrorIs(t, err, goal.ErrNotActive)
	assert.Nil(t, event)
	assert.Empty(t, h.inserted)
}

func TestService_Contribute_RejectsNonPositiveAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := contribution.NewService(contribution.NewMockRepository(ctrl), nil, time.Second)

	_, err := svc.Contribute(context.Background(), uuid.New(), d("0"), "")
	assert.ErrorIs(t, err, goal.ErrValidation)

	_, err = svc.Contribute(context.Background(), uuid.New(), d("-5"), "")
	assert.ErrorIs(t, err, goal.ErrValidation)
}

func TestService_Contribute_LockTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := contribution.NewMockRepository(ctrl)
	svc := contribution.NewService(repo, nil, time.Second)

	goalID := uuid.New()
	repo.EXPECT().Begin(gomock.Any(), goalID).Return(nil, contribution.ErrLockTimeout)

	_, err := svc.Contribute(context.Background(), goalID, d("10"), "")
	assert.ErrorIs(t, err, contribution.ErrLockTimeout)
}

func TestService_Withdraw(t *testing.T) {
	g := activeGoal("100", "60")
	h := newHarness(t, g)

	h.tx.EXPECT().CreditBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
			assert.True(t, amount.Equal(d("25")))
			return nil
		})
	h.tx.EXPECT().Commit().Return(nil)

	c, err := h.svc.Withdraw(context.Background(), g.ID, d("25"), "school trip")
	require.NoError(t, err)

	assert.Equal(t, goal.TypeWithdrawal, c.Type)
	assert.True(t, c.Amount.Equal(d("-25")))
	assert.True(t, c.GoalBalanceAfter.Equal(d("35")))
	assert.Equal(t, "school trip", c.Description)
}

func TestService_Withdraw_ExceedsGoalBalance(t *testing.T) {
	g := activeGoal("100", "10")
	h := newHarness(t, g)

	_, err := h.svc.Withdraw(context.Background(), g.ID, d("25"), "")
	assert.ErrorIs(t, err, goal.ErrInsufficientFunds)
	assert.Empty(t, h.inserted)
}

func TestService_Withdraw_TerminalGoal(t *testing.T) {
	g := activeGoal("100", "100")
	g.Status = goal.StatusPurchased
	h := newHarness(t, g)

	_, err := h.svc.Withdraw(context.Background(), g.ID, d("10"), "")
	assert.ErrorIs(t, err, goal.ErrNotActive)
}

func TestService_MarkPurchased(t *testing.T) {
	g := activeGoal("100", "100")
	g.Status = goal.StatusCompleted
	h := newHarness(t, g)

	h.tx.EXPECT().MarkPurchased(gomock.Any(), "bought at the bike shop").Return(nil)
	h.tx.EXPECT().Commit().Return(nil)

	err := h.svc.MarkPurchased(context.Background(), g.ID, "bought at the bike shop")
	require.NoError(t, err)
}

func TestService_MarkPurchased_RequiresCompleted(t *testing.T) {
	g := activeGoal("100", "50")
	h := newHarness(t, g)

	err := h.svc.MarkPurchased(context.Background(), g.ID, "")
	assert.ErrorIs(t, err, goal.ErrInvalidTransition)
}

func TestService_Cancel_ReversesRemainingFunds(t *testing.T) {
	g := activeGoal("100", "40")
	h := newHarness(t, g)

	ch := &challenge.Challenge{ID: uuid.New(), GoalID: g.ID, Status: challenge.StatusActive}

	h.tx.EXPECT().CreditBalance(gomock.Any(), g.OwnerChildID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, amount decimal.Decimal) error {
			assert.True(t, amount.Equal(d("40")))
			return nil
		})
	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(ch, nil)
	h.tx.EXPECT().CancelChallenge(gomock.Any(), ch.ID).Return(nil)
	h.tx.EXPECT().SetStatus(gomock.Any(), goal.StatusCancelled).Return(nil)
	h.tx.EXPECT().Commit().Return(nil)

	err := h.svc.Cancel(context.Background(), g.ID, "changed my mind")
	require.NoError(t, err)

	require.Len(t, h.inserted, 1)
	assert.Equal(t, goal.TypeWithdrawal, h.inserted[0].Type)
	assert.True(t, h.inserted[0].Amount.Equal(d("-40")))
	assert.True(t, h.inserted[0].GoalBalanceAfter.Equal(d("0")))
}

func TestService_Cancel_EmptyGoalMovesNoFunds(t *testing.T) {
	g := activeGoal("100", "0")
	h := newHarness(t, g)

	h.tx.EXPECT().ActiveChallenge(gomock.Any()).Return(nil, nil)
	h.tx.EXPECT().SetStatus(gomock.Any(), goal.StatusCancelled).Return(nil)
	h.tx.EXPECT().Commit().Return(nil)

	err := h.svc.Cancel(context.Background(), g.ID, "")
	require.NoError(t, err)
	assert.Empty(t, h.inserted)
}

func TestService_Cancel_TerminalGoal(t *testing.T) {
	g := activeGoal("100", "0")
	g.Status = goal.StatusCancelled
	h := newHarness(t, g)

	err := h.svc.Cancel(context.Background(), g.ID, "")
	assert.ErrorIs(t, err, goal.ErrInvalidTransition)
}
