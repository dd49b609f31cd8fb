package goal_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sproutbank/sprout/internal/goal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    goal.CreateParams
		setupMock func(m *goal.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "BuildsDefaultLadder",
			params: goal.CreateParams{
				OwnerChildID: uuid.New(),
				Name:         "New Bike",
				TargetAmount: d("200"),
			},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal, ladder []*goal.Milestone) error {
						g.ID = uuid.New()

						require.Len(t, ladder, 4)
						assert.Equal(t, 25, ladder[0].PercentComplete)
						assert.True(t, ladder[0].TargetAmount.Equal(d("50")))
						assert.Equal(t, 100, ladder[3].PercentComplete)
						assert.True(t, ladder[3].TargetAmount.Equal(d("200")))
						assert.True(t, ladder[1].BonusAmount.IsZero())

						return nil
					})
			},
		},
		{
			name: "LadderBonuses",
			params: goal.CreateParams{
				OwnerChildID:     uuid.New(),
				Name:             "Telescope",
				TargetAmount:     d("100"),
				MilestoneBonuses: map[int]decimal.Decimal{50: d("2.5"), 100: d("10")},
			},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().
					CreateGoal(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, g *goal.Goal, ladder []*goal.Milestone) error {
						assert.True(t, ladder[1].BonusAmount.Equal(d("2.5")))
						assert.True(t, ladder[3].BonusAmount.Equal(d("10")))
						return nil
					})
			},
		},
		{
			name: "EmptyName",
			params: goal.CreateParams{
				OwnerChildID: uuid.New(),
				TargetAmount: d("100"),
			},
			wantErr: goal.ErrValidation,
		},
		{
			name: "NonPositiveTarget",
			params: goal.CreateParams{
				OwnerChildID: uuid.New(),
				Name:         "Nope",
				TargetAmount: d("0"),
			},
			wantErr: goal.ErrValidation,
		},
		{
			name: "BonusOutsideLadder",
			params: goal.CreateParams{
				OwnerChildID:     uuid.New(),
				Name:             "Nope",
				TargetAmount:     d("100"),
				MilestoneBonuses: map[int]decimal.Decimal{33: d("1")},
			},
			wantErr: goal.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := goal.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, goal.StatusActive, got.Status)
			assert.True(t, got.CurrentAmount.IsZero())
		})
	}
}

func TestService_PauseResume(t *testing.T) {
	type testCase struct {
		name    string
		from    goal.Status
		action  func(svc *goal.Service, ctx context.Context, id uuid.UUID) error
		to      goal.Status
		wantErr error
	}

	tests := []testCase{
		{
			name:   "PauseActive",
			from:   goal.StatusActive,
			action: func(svc *goal.Service, ctx context.Context, id uuid.UUID) error { return svc.Pause(ctx, id) },
			to:     goal.StatusPaused,
		},
		{
			name:   "ResumePaused",
			from:   goal.StatusPaused,
			action: func(svc *goal.Service, ctx context.Context, id uuid.UUID) error { return svc.Resume(ctx, id) },
			to:     goal.StatusActive,
		},
		{
			name:    "PauseCompleted",
			from:    goal.StatusCompleted,
			action:  func(svc *goal.Service, ctx context.Context, id uuid.UUID) error { return svc.Pause(ctx, id) },
			wantErr: goal.ErrInvalidTransition,
		},
		{
			name:    "ResumeCancelled",
			from:    goal.StatusCancelled,
			action:  func(svc *goal.Service, ctx context.Context, id uuid.UUID) error { return svc.Resume(ctx, id) },
			wantErr: goal.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			id := uuid.New()

			repo.EXPECT().GetGoal(gomock.Any(), id).Return(&goal.Goal{ID: id, Status: tt.from}, nil)

			if tt.wantErr == nil {
				repo.EXPECT().UpdateStatus(gomock.Any(), id, tt.to).Return(nil)
			}

			svc := goal.NewService(repo)
			err := tt.action(svc, context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetGoal(gomock.Any(), id).Return(&goal.Goal{ID: id, Name: "Old", Status: goal.StatusActive}, nil)
	repo.EXPECT().UpdateGoal(gomock.Any(), gomock.Any()).Return(nil)

	name := "New Name"
	priority := 2

	got, err := svc.Update(context.Background(), id, goal.UpdateParams{Name: &name, Priority: &priority})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, 2, got.Priority)
}

func TestService_Update_TerminalGoal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetGoal(gomock.Any(), id).Return(&goal.Goal{ID: id, Status: goal.StatusPurchased}, nil)

	name := "New Name"

	_, err := svc.Update(context.Background(), id, goal.UpdateParams{Name: &name})
	assert.ErrorIs(t, err, goal.ErrInvalidTransition)
}

func TestService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := goal.NewMockRepository(ctrl)
	svc := goal.NewService(repo)

	id := uuid.New()
	repo.EXPECT().GetGoal(gomock.Any(), id).Return(nil, goal.ErrNotFound)

	_, err := svc.Get(context.Background(), id)
	assert.True(t, errors.Is(err, goal.ErrNotFound))
}

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from goal.Status
		to   goal.Status
		want bool
	}{
		{goal.StatusActive, goal.StatusPaused, true},
		{goal.StatusActive, goal.StatusCompleted, true},
		{goal.StatusActive, goal.StatusCancelled, true},
		{goal.StatusPaused, goal.StatusActive, true},
		{goal.StatusPaused, goal.StatusCancelled, true},
		{goal.StatusPaused, goal.StatusCompleted, false},
		{goal.StatusCompleted, goal.StatusPurchased, true},
		{goal.StatusCompleted, goal.StatusCancelled, true},
		{goal.StatusCompleted, goal.StatusActive, false},
		{goal.StatusPurchased, goal.StatusCancelled, false},
		{goal.StatusCancelled, goal.StatusActive, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}
