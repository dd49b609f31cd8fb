package challenge_test

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
	"github.com/sproutbank/sprout/internal/goal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_Create(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	type testCase struct {
		name      string
		params    challenge.CreateParams
		setupMock func(goals *goal.MockRepository, repo *challenge.MockRepository, goalID uuid.UUID)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Starts",
			params: challenge.CreateParams{
				TargetAmount: d("50"),
				StartDate:    start,
				EndDate:      end,
				BonusAmount:  d("5"),
			},
			setupMock: func(goals *goal.MockRepository, repo *challenge.MockRepository, goalID uuid.UUID) {
				goals.EXPECT().GetGoal(gomock.Any(), goalID).
					Return(&goal.Goal{ID: goalID, Status: goal.StatusActive}, nil)
				repo.EXPECT().CreateChallenge(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, c *challenge.Challenge) error {
						c.ID = uuid.New()
						assert.Equal(t, challenge.StatusActive, c.Status)

						return nil
					})
			},
		},
		{
			name: "GoalPaused",
			params: challenge.CreateParams{
				TargetAmount: d("50"),
				StartDate:    start,
				EndDate:      end,
			},
			setupMock: func(goals *goal.MockRepository, _ *challenge.MockRepository, goalID uuid.UUID) {
				goals.EXPECT().GetGoal(gomock.Any(), goalID).
					Return(&goal.Goal{ID: goalID, Status: goal.StatusPaused}, nil)
			},
			wantErr: goal.ErrNotActive,
		},
		{
			name: "SecondActiveChallenge",
			params: challenge.CreateParams{
				TargetAmount: d("50"),
				StartDate:    start,
				EndDate:      end,
			},
			setupMock: func(goals *goal.MockRepository, repo *challenge.MockRepository, goalID uuid.UUID) {
				goals.EXPECT().GetGoal(gomock.Any(), goalID).
					Return(&goal.Goal{ID: goalID, Status: goal.StatusActive}, nil)
				repo.EXPECT().CreateChallenge(gomock.Any(), gomock.Any()).
					Return(challenge.ErrActiveExists)
			},
			wantErr: challenge.ErrActiveExists,
		},
		{
			name: "NonPositiveTarget",
			params: challenge.CreateParams{
				TargetAmount: d("0"),
				StartDate:    start,
				EndDate:      end,
			},
			wantErr: goal.ErrValidation,
		},
		{
			name: "NegativeBonus",
			params: challenge.CreateParams{
				TargetAmount: d("50"),
				StartDate:    start,
				EndDate:      end,
				BonusAmount:  d("-1"),
			},
			wantErr: goal.ErrValidation,
		},
		{
			name: "EndBeforeStart",
			params: challenge.CreateParams{
				TargetAmount: d("50"),
				StartDate:    end,
				EndDate:      start,
			},
			wantErr: goal.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			goalRepo := goal.NewMockRepository(ctrl)
			repo := challenge.NewMockRepository(ctrl)

			goalID := uuid.New()
			tt.params.GoalID = goalID

			if tt.setupMock != nil {
				tt.setupMock(goalRepo, repo, goalID)
			}

			svc := challenge.NewService(repo, goal.NewService(goalRepo))
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_SweepExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := challenge.NewMockRepository(ctrl)
	svc := challenge.NewService(repo, nil)

	now := time.Date(2026, 8, 23, 6, 0, 0, 0, time.UTC)
	repo.EXPECT().FailExpired(gomock.Any(), now).Return(int64(3), nil)

	failed, err := svc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), failed)
}

func TestChallenge_ResolvableAt(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 14)

	c := &challenge.Challenge{
		TargetAmount: d("50"),
		StartDate:    start,
		EndDate:      end,
		Status:       challenge.StatusActive,
	}

	tests := []struct {
		name   string
		amount decimal.Decimal
		at     time.Time
		want   bool
	}{
		{"TargetReachedInWindow", d("50"), end.Add(-time.Hour), true},
		{"OverTargetInWindow", d("75"), start.Add(time.Hour), true},
		{"BelowTarget", d("49.99"), start.Add(time.Hour), false},
		{"AfterEndDate", d("50"), end.Add(time.Hour), false},
		{"AtEndDate", d("50"), end, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ResolvableAt(tt.amount, tt.at))
		})
	}
}

func TestChallenge_ResolvableAt_NotActive(t *testing.T) {
	c := &challenge.Challenge{
		TargetAmount: d("50"),
		EndDate:      time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:       challenge.StatusFailed,
	}

	assert.False(t, c.ResolvableAt(d("60"), time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)))
}
