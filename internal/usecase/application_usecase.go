package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobfinder/internal/database"
	"jobfinder/internal/domain/application"
	"jobfinder/internal/domain/job"
	"jobfinder/internal/pkg/logger"
	"jobfinder/internal/repository"

	"github.com/google/uuid"
)

const idempotencyLockTTL = 30 * time.Second

type ApplyInput struct {
	ClerkUserID    string
	UserEmail      string
	JobTitle       string
	Company        string
	Location       string
	JobURL         string
	IdempotencyKey string
}

// IdempotencyStore remembers completed applies keyed by client-supplied idempotency keys.
type IdempotencyStore interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
}

// replayRecord is what a completed apply leaves behind for its idempotency key.
type replayRecord struct {
	Fingerprint string                  `json:"fingerprint"`
	Application application.Application `json:"application"`
}

type EventPublisher interface {
	Publish(evt application.Event)
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplyInput) (application.Application, error)
	History(ctx context.Context, userID string) ([]application.Application, error)
	Delete(ctx context.Context, userID, applicationID string) error
}

type Applications struct {
	repo      repository.ApplicationRepository
	idem      IdempotencyStore
	events    EventPublisher
	replayTTL time.Duration
	logger    *logger.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

func NewApplicationUsecase(
	repo repository.ApplicationRepository,
	idem IdempotencyStore,
	events EventPublisher,
	replayTTL time.Duration,
	log *logger.Logger,
) *Applications {
	return &Applications{
		repo:      repo,
		idem:      idem,
		events:    events,
		replayTTL: replayTTL,
		logger:    log,
		now:       time.Now,
		newID:     uuid.New,
	}
}

func (u *Applications) Apply(ctx context.Context, in ApplyInput) (application.Application, error) {
	a, err := u.buildApplication(in)
	if err != nil {
		return application.Application{}, err
	}

	idemKey := strings.TrimSpace(in.IdempotencyKey)
	var replayKey string
	if idemKey != "" && u.idem != nil {
		replayKey = "apply:" + a.ClerkUserID + ":" + idemKey

		var prev replayRecord
		found, err := u.idem.GetJSON(ctx, replayKey, &prev)
		switch {
		case err != nil:
			u.logger.Warn("idempotency lookup failed", "err", err)
		case found && prev.Fingerprint != fingerprint(a):
			return application.Application{}, ErrKeyReused
		case found:
			return prev.Application, nil
		}

		lockKey := replayKey + ":lock"
		claimed, err := u.idem.SetIfNotExists(ctx, lockKey, "1", idempotencyLockTTL)
		switch {
		case err != nil:
			u.logger.Warn("idempotency lock failed", "err", err)
		case !claimed:
			return application.Application{}, fmt.Errorf("%w: apply already in progress", ErrConflict)
		default:
			defer func() {
				if err := u.idem.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
					u.logger.Warn("idempotency unlock failed", "err", err)
				}
			}()
		}
	}

	created, err := u.repo.Create(ctx, a)
	if err != nil {
		return application.Application{}, mapStoreError(err)
	}

	if replayKey != "" {
		rec := replayRecord{Fingerprint: fingerprint(a), Application: created}
		if err := u.idem.SetJSON(ctx, replayKey, rec, u.replayTTL); err != nil {
			u.logger.Warn("idempotency store failed", "err", err)
		}
	}

	u.publish(application.EventCreated, created.ClerkUserID, created.ID)
	return created, nil
}

func (u *Applications) History(ctx context.Context, userID string) ([]application.Application, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid("userId", "userId is required")
	}

	items, err := u.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if items == nil {
		items = []application.Application{}
	}
	return items, nil
}

func (u *Applications) Delete(ctx context.Context, userID, applicationID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return invalid("userId", "userId is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(applicationID))
	if err != nil {
		return ErrNotFound
	}

	if err := u.repo.DeleteOwned(ctx, id, userID); err != nil {
		return mapStoreError(err)
	}

	u.publish(application.EventDeleted, userID, id)
	return nil
}

func (u *Applications) buildApplication(in ApplyInput) (application.Application, error) {
	a := application.Application{
		ClerkUserID: strings.TrimSpace(in.ClerkUserID),
		UserEmail:   strings.TrimSpace(in.UserEmail),
		JobTitle:    strings.TrimSpace(in.JobTitle),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		JobURL:      strings.TrimSpace(in.JobURL),
	}
	if a.ClerkUserID == "" {
		return application.Application{}, invalid("clerkUserId", "clerkUserId is required")
	}
	if a.JobTitle == "" {
		return application.Application{}, invalid("jobTitle", "jobTitle is required")
	}
	if a.JobURL == "" {
		return application.Application{}, invalid("jobUrl", "jobUrl is required")
	}
	if !job.IsAbsoluteHTTPURL(a.JobURL) {
		return application.Application{}, invalid("jobUrl", "jobUrl must be an absolute http or https URL")
	}

	a.ID = u.newID()
	a.AppliedAt = u.now().UTC()
	return a, nil
}

// fingerprint identifies the job an apply request names, ignoring the generated id and time.
func fingerprint(a application.Application) string {
	h := sha256.New()
	for _, f := range []string{a.ClerkUserID, a.UserEmail, a.JobTitle, a.Company, a.Location, a.JobURL} {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (u *Applications) publish(t application.EventType, userID string, id uuid.UUID) {
	if u.events == nil {
		return
	}
	u.events.Publish(application.Event{
		Type:          t,
		UserID:        userID,
		ApplicationID: id,
		At:            u.now().UTC(),
	})
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrApplicationNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrApplicationForbidden):
		return ErrForbidden
	case errors.Is(err, repository.ErrApplicationConflict):
		return ErrConflict
	case database.IsUnavailable(err):
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	default:
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

var _ ApplicationUsecase = (*Applications)(nil)
