package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/domain/shared/events"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type ClosePostingCommand struct {
	PostingSID string
	OrgID      string
	ClosedBy   string
}

type ClosePostingResult struct {
	Posting *overtime.Posting
	// Closed reports whether this call performed the transition. A repeat
	// close succeeds without it.
	Closed bool
}

type ClosePostingUseCase struct {
	postingRepo overtime.PostingRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	locker      PostingLocker
	lockWait    time.Duration
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewClosePostingUseCase(
	postingRepo overtime.PostingRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ClosePostingUseCase {
	return &ClosePostingUseCase{
		postingRepo: postingRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		locker:      locker,
		lockWait:    lockWait,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *ClosePostingUseCase) Execute(ctx context.Context, cmd ClosePostingCommand) (*ClosePostingResult, error) {
	release, err := uc.locker.Acquire(ctx, cmd.PostingSID, uc.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	var posting *overtime.Posting
	var closed bool

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err = uc.postingRepo.GetBySIDForUpdate(txCtx, cmd.PostingSID)
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil || posting.OrgID() != cmd.OrgID {
			return apperrors.NewNotFoundError("posting not found")
		}

		closed = posting.Close()
		if !closed {
			return nil
		}

		if err := uc.postingRepo.Update(txCtx, posting); err != nil {
			return fmt.Errorf("failed to update posting: %w", err)
		}

		audit, err := overtime.NewAuditEvent(
			posting.ID(),
			overtime.AuditPostingClosed,
			cmd.ClosedBy,
			fmt.Sprintf("posting %q closed", posting.Title()),
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to close posting", "error", err, "posting_id", cmd.PostingSID)
		}
		return nil, asPersistence(err, "failed to close posting")
	}

	if closed {
		uc.logger.Infow("posting closed", "posting_id", posting.SID(), "closed_by", cmd.ClosedBy)
		if uc.publisher != nil {
			event := overtime.NewPostingClosedEvent(posting, cmd.ClosedBy)
			if err := uc.publisher.Publish(event); err != nil {
				uc.logger.Warnw("failed to publish posting closed event", "error", err, "posting_id", posting.SID())
			}
		}
	}

	return &ClosePostingResult{Posting: posting, Closed: closed}, nil
}
