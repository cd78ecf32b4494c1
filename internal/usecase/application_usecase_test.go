package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobfinder/internal/database"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplications(repo *memoryRepo, idem IdempotencyStore, pub EventPublisher) *Applications {
	uc := NewApplicationUsecase(repo, idem, pub, time.Hour, logger.Nop())
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	uc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return uc
}

func validInput(user string) ApplyInput {
	return ApplyInput{
		ClerkUserID: user,
		UserEmail:   user + "@example.com",
		JobTitle:    "Backend Engineer",
		Company:     "Acme",
		Location:    "Remote",
		JobURL:      "https://x.test/1",
	}
}

func TestApply_ThenHistoryContainsEntryOnce(t *testing.T) {
	ctx := context.Background()
	uc := newApplications(newMemoryRepo(), nil, nil)

	created, err := uc.Apply(ctx, validInput("u1"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.AppliedAt.IsZero())
	assert.Equal(t, time.UTC, created.AppliedAt.Location())

	items, err := uc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	got := items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Backend Engineer", got.JobTitle)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Remote", got.Location)
	assert.Equal(t, "https://x.test/1", got.JobURL)
	assert.Equal(t, "u1@example.com", got.UserEmail)
}

func TestApply_Validation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ApplyInput)
		field string
	}{
		{name: "missing user", edit: func(in *ApplyInput) { in.ClerkUserID = "  " }, field: "clerkUserId"},
		{name: "missing title", edit: func(in *ApplyInput) { in.JobTitle = "" }, field: "jobTitle"},
		{name: "missing url", edit: func(in *ApplyInput) { in.JobURL = "" }, field: "jobUrl"},
		{name: "relative url", edit: func(in *ApplyInput) { in.JobURL = "/jobs/1" }, field: "jobUrl"},
		{name: "ftp url", edit: func(in *ApplyInput) { in.JobURL = "ftp://x.test/1" }, field: "jobUrl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryRepo()
			uc := newApplications(repo, nil, nil)

			in := validInput("u1")
			tt.edit(&in)
			_, err := uc.Apply(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, repo.Len())
		})
	}
}

func TestApply_StoreFailureCreatesNothing(t *testing.T) {
	repo := newMemoryRepo()
	repo.err = database.ErrNilDB
	pub := &recordingPublisher{}
	uc := newApplications(repo, nil, pub)

	_, err := uc.Apply(context.Background(), validInput("u1"))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, pub.Events())

	repo.err = errors.New("syntax error")
	_, err = uc.Apply(context.Background(), validInput("u1"))
	require.ErrorIs(t, err, ErrInternal)
}

func TestApply_IdempotencyKeyReplays(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	uc := newApplications(repo, newMemoryIdempotency(), nil)

	in := validInput("u1")
	in.IdempotencyKey = "key-1"

	first, err := uc.Apply(ctx, in)
	require.NoError(t, err)
	second, err := uc.Apply(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.AppliedAt.Equal(second.AppliedAt))
	assert.Equal(t, 1, repo.Len())

	other := validInput("u2")
	other.IdempotencyKey = "key-1"
	_, err = uc.Apply(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.Len())
}

func TestApply_IdempotencyKeyReusedForDifferentJob(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	uc := newApplications(repo, newMemoryIdempotency(), nil)

	in := validInput("u1")
	in.IdempotencyKey = "key-1"
	_, err := uc.Apply(ctx, in)
	require.NoError(t, err)

	changed := in
	changed.JobURL = "https://x.test/2"
	_, err = uc.Apply(ctx, changed)
	require.ErrorIs(t, err, ErrKeyReused)
	assert.Equal(t, 1, repo.Len())

	// surrounding whitespace does not change the request
	padded := in
	padded.JobTitle = "  " + in.JobTitle + " "
	_, err = uc.Apply(ctx, padded)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.Len())
}

func TestApply_IdempotencyKeyInFlightConflicts(t *testing.T) {
	ctx := context.Background()
	idem := newMemoryIdempotency()
	_, err := idem.SetIfNotExists(ctx, "apply:u1:key-1:lock", "1", time.Minute)
	require.NoError(t, err)

	repo := newMemoryRepo()
	uc := newApplications(repo, idem, nil)

	in := validInput("u1")
	in.IdempotencyKey = "key-1"
	_, err = uc.Apply(ctx, in)
	require.ErrorIs(t, err, ErrConflict)
	assert.Zero(t, repo.Len())
}

func TestHistory_EmptyAndStableOrder(t *testing.T) {
	ctx := context.Background()
	uc := newApplications(newMemoryRepo(), nil, nil)

	none, err := uc.History(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	for i := 0; i < 3; i++ {
		_, err := uc.Apply(ctx, validInput("u1"))
		require.NoError(t, err)
	}

	first, err := uc.History(ctx, "u1")
	require.NoError(t, err)
	second, err := uc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, first[0].AppliedAt.After(first[2].AppliedAt))

	_, err = uc.History(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_RemovesOnlyOwnEntries(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	uc := newApplications(newMemoryRepo(), nil, pub)

	owned, err := uc.Apply(ctx, validInput("owner"))
	require.NoError(t, err)

	err = uc.Delete(ctx, "intruder", owned.ID.String())
	require.ErrorIs(t, err, ErrForbidden)

	items, err := uc.History(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, uc.Delete(ctx, "owner", owned.ID.String()))
	items, err = uc.History(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, items)

	require.ErrorIs(t, uc.Delete(ctx, "owner", owned.ID.String()), ErrNotFound)

	events := pub.Events()
	require.Len(t, events, 2)
	assert.Equal(t, application.EventCreated, events[0].Type)
	assert.Equal(t, application.EventDeleted, events[1].Type)
	assert.Equal(t, owned.ID, events[1].ApplicationID)
	assert.Equal(t, "owner", events[1].UserID)
}

func TestDelete_MalformedIDIsNotFound(t *testing.T) {
	uc := newApplications(newMemoryRepo(), nil, nil)
	require.ErrorIs(t, uc.Delete(context.Background(), "u1", "not-a-uuid"), ErrNotFound)
	require.ErrorIs(t, uc.Delete(context.Background(), "", uuid.NewString()), ErrInvalidInput)
}
