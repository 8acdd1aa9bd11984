package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	apperrors "dutywire/internal/shared/errors"
)

func validCreateCommand() CreatePostingCommand {
	start := time.Now().UTC().Add(48 * time.Hour)
	return CreatePostingCommand{
		OrgID:     "org-1",
		Title:     "Night market detail",
		Scenario:  vo.ScenarioSpecialEvent.String(),
		StartsAt:  start,
		EndsAt:    start.Add(6 * time.Hour),
		Capacity:  4,
		Policy:    vo.PolicyFirstComeFirstServed.String(),
		CreatedBy: "sup-1",
	}
}

func TestCreatePostingUseCase_Execute_Success(t *testing.T) {
	env := newTestEnv()

	result, err := env.createUC().Execute(context.Background(), validCreateCommand())

	require.NoError(t, err)
	assert.NotEmpty(t, result.Posting.SID())
	assert.True(t, result.Posting.IsOpen())
	assert.Equal(t, 4, result.OpenSlots)

	audits := env.audits.Events()
	require.Len(t, audits, 1)
	assert.Equal(t, overtime.AuditPostingCreated, audits[0].Kind())

	assert.Equal(t, []string{overtime.EventPostingCreated}, env.pub.PublishedTypes())
}

func TestCreatePostingUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreatePostingCommand)
	}{
		{"unknown scenario", func(c *CreatePostingCommand) { c.Scenario = "DOUBLE_SHIFT" }},
		{"unknown policy", func(c *CreatePostingCommand) { c.Policy = "LOTTERY" }},
		{"zero capacity", func(c *CreatePostingCommand) { c.Capacity = 0 }},
		{"inverted window", func(c *CreatePostingCommand) { c.EndsAt = c.StartsAt.Add(-time.Hour) }},
		{"empty title", func(c *CreatePostingCommand) { c.Title = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			cmd := validCreateCommand()
			tt.mutate(&cmd)

			_, err := env.createUC().Execute(context.Background(), cmd)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidationError(err))
			assert.Empty(t, env.audits.Events())
			assert.Empty(t, env.pub.PublishedTypes())
		})
	}
}

func TestCreatePostingUseCase_Execute_PersistenceFailure(t *testing.T) {
	env := newTestEnv()
	env.postings.SetSaveError(assert.AnError)

	_, err := env.createUC().Execute(context.Background(), validCreateCommand())

	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypePersistenceFailure, appErr.Type)
}
