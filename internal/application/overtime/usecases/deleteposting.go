package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type DeletePostingCommand struct {
	PostingSID string
	OrgID      string
	ActorID    string
}

// DeletePostingUseCase removes a posting with its signups and audit trail in
// one transaction so no orphaned rows survive.
type DeletePostingUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	locker      PostingLocker
	lockWait    time.Duration
	logger      logger.Interface
}

func NewDeletePostingUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	logger logger.Interface,
) *DeletePostingUseCase {
	return &DeletePostingUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		locker:      locker,
		lockWait:    lockWait,
		logger:      logger,
	}
}

func (uc *DeletePostingUseCase) Execute(ctx context.Context, cmd DeletePostingCommand) error {
	release, err := uc.locker.Acquire(ctx, cmd.PostingSID, uc.lockWait)
	if err != nil {
		return err
	}
	defer release()

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err := uc.postingRepo.GetBySIDForUpdate(txCtx, cmd.PostingSID)
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil || posting.OrgID() != cmd.OrgID {
			return apperrors.NewNotFoundError("posting not found")
		}

		if err := uc.signupRepo.DeleteByPosting(txCtx, posting.ID()); err != nil {
			return fmt.Errorf("failed to delete signups: %w", err)
		}
		if err := uc.auditRepo.DeleteByPosting(txCtx, posting.ID()); err != nil {
			return fmt.Errorf("failed to delete audit trail: %w", err)
		}
		if err := uc.postingRepo.Delete(txCtx, posting.ID()); err != nil {
			return fmt.Errorf("failed to delete posting: %w", err)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to delete posting", "error", err, "posting_id", cmd.PostingSID)
		}
		return asPersistence(err, "failed to delete posting")
	}

	uc.logger.Infow("posting deleted", "posting_id", cmd.PostingSID, "actor_id", cmd.ActorID)
	return nil
}
