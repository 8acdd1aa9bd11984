package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type UpdatePostingCommand struct {
	PostingSID    string
	OrgID         string
	ActorID       string
	Title         *string
	Location      *string
	Scenario      *string
	StartsAt      *time.Time
	EndsAt        *time.Time
	Capacity      *int
	Policy        *string
	Notes         *string
	Deadline      *time.Time
	ClearDeadline bool
}

type UpdatePostingResult struct {
	Posting   *overtime.Posting
	OpenSlots int
}

// UpdatePostingUseCase edits a posting under its per-posting lock so a
// capacity change and a concurrent claim cannot interleave.
type UpdatePostingUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	locker      PostingLocker
	lockWait    time.Duration
	logger      logger.Interface
}

func NewUpdatePostingUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	logger logger.Interface,
) *UpdatePostingUseCase {
	return &UpdatePostingUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		locker:      locker,
		lockWait:    lockWait,
		logger:      logger,
	}
}

func (uc *UpdatePostingUseCase) Execute(ctx context.Context, cmd UpdatePostingCommand) (*UpdatePostingResult, error) {
	update, err := buildPostingUpdate(cmd)
	if err != nil {
		return nil, err
	}

	release, err := uc.locker.Acquire(ctx, cmd.PostingSID, uc.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	var posting *overtime.Posting
	var openSlots int

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err = uc.postingRepo.GetBySIDForUpdate(txCtx, cmd.PostingSID)
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil || posting.OrgID() != cmd.OrgID {
			return apperrors.NewNotFoundError("posting not found")
		}

		active, err := uc.signupRepo.ListActiveByPosting(txCtx, posting.ID())
		if err != nil {
			return fmt.Errorf("failed to load signups: %w", err)
		}

		if err := posting.ApplyUpdate(update, len(active) > 0); err != nil {
			if !posting.IsOpen() {
				return apperrors.NewPostingClosedError(err.Error())
			}
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.postingRepo.Update(txCtx, posting); err != nil {
			return fmt.Errorf("failed to update posting: %w", err)
		}

		openSlots = overtime.NewSlotLedger(posting.Capacity(), active).OpenSlots()

		audit, err := overtime.NewAuditEvent(
			posting.ID(),
			overtime.AuditPostingUpdated,
			cmd.ActorID,
			fmt.Sprintf("posting %q updated", posting.Title()),
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to update posting", "error", err, "posting_id", cmd.PostingSID)
		}
		return nil, asPersistence(err, "failed to update posting")
	}

	uc.logger.Infow("posting updated", "posting_id", posting.SID(), "open_slots", openSlots)

	return &UpdatePostingResult{Posting: posting, OpenSlots: openSlots}, nil
}

func buildPostingUpdate(cmd UpdatePostingCommand) (overtime.PostingUpdate, error) {
	update := overtime.PostingUpdate{
		Title:         cmd.Title,
		Location:      cmd.Location,
		StartsAt:      cmd.StartsAt,
		EndsAt:        cmd.EndsAt,
		Capacity:      cmd.Capacity,
		Notes:         cmd.Notes,
		Deadline:      cmd.Deadline,
		ClearDeadline: cmd.ClearDeadline,
	}
	if cmd.Scenario != nil {
		scenario, err := vo.NewScenario(*cmd.Scenario)
		if err != nil {
			return overtime.PostingUpdate{}, apperrors.NewValidationError(err.Error())
		}
		update.Scenario = &scenario
	}
	if cmd.Policy != nil {
		policy, err := vo.NewOrderingPolicy(*cmd.Policy)
		if err != nil {
			return overtime.PostingUpdate{}, apperrors.NewValidationError(err.Error())
		}
		update.Policy = &policy
	}
	return update, nil
}
