package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/domain/shared/events"
	"dutywire/internal/shared/authorization"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type WithdrawSlotCommand struct {
	SignupSID string
	CallerID  string
	Role      authorization.UserRole
}

type WithdrawSlotResult struct {
	Signup *overtime.Signup
	// Released reports whether this call freed the slot. A repeat
	// withdrawal succeeds without releasing again.
	Released  bool
	OpenSlots int
}

// WithdrawSlotUseCase releases a claimed slot. Officers may withdraw only
// their own signup; supervisors may withdraw anyone's. Withdrawal is not
// gated on posting state: a slot can still be relinquished after close.
type WithdrawSlotUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	locker      PostingLocker
	lockWait    time.Duration
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewWithdrawSlotUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	publisher events.EventPublisher,
	logger logger.Interface,
) *WithdrawSlotUseCase {
	return &WithdrawSlotUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		locker:      locker,
		lockWait:    lockWait,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *WithdrawSlotUseCase) Execute(ctx context.Context, cmd WithdrawSlotCommand) (*WithdrawSlotResult, error) {
	// Unlocked pre-read to find the owning posting; everything decisive is
	// re-read under the lock.
	signup, err := uc.signupRepo.GetBySID(ctx, cmd.SignupSID)
	if err != nil {
		uc.logger.Errorw("failed to load signup", "error", err, "signup_id", cmd.SignupSID)
		return nil, asPersistence(fmt.Errorf("load signup: %w", err), "failed to load signup")
	}
	if signup == nil {
		return nil, apperrors.NewNotFoundError("signup not found")
	}
	if !authorization.CanWithdrawSignup(cmd.CallerID, cmd.Role, signup.OfficerID()) {
		return nil, apperrors.NewForbiddenError("cannot withdraw another officer's signup")
	}

	posting, err := uc.postingRepo.GetByID(ctx, signup.PostingID())
	if err != nil {
		uc.logger.Errorw("failed to load posting", "error", err, "signup_id", cmd.SignupSID)
		return nil, asPersistence(fmt.Errorf("load posting: %w", err), "failed to load posting")
	}
	if posting == nil {
		return nil, apperrors.NewNotFoundError("posting not found")
	}

	release, err := uc.locker.Acquire(ctx, posting.SID(), uc.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	var released bool
	var openSlots int

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err = uc.postingRepo.GetBySIDForUpdate(txCtx, posting.SID())
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil {
			return apperrors.NewNotFoundError("posting not found")
		}

		signup, err = uc.signupRepo.GetBySID(txCtx, cmd.SignupSID)
		if err != nil {
			return fmt.Errorf("failed to load signup: %w", err)
		}
		if signup == nil {
			return apperrors.NewNotFoundError("signup not found")
		}

		released = signup.Withdraw()
		if !released {
			active, err := uc.signupRepo.ListActiveByPosting(txCtx, posting.ID())
			if err != nil {
				return fmt.Errorf("failed to load signups: %w", err)
			}
			openSlots = overtime.NewSlotLedger(posting.Capacity(), active).OpenSlots()
			return nil
		}

		if err := uc.signupRepo.Update(txCtx, signup); err != nil {
			return fmt.Errorf("failed to update signup: %w", err)
		}

		active, err := uc.signupRepo.ListActiveByPosting(txCtx, posting.ID())
		if err != nil {
			return fmt.Errorf("failed to load signups: %w", err)
		}
		openSlots = overtime.NewSlotLedger(posting.Capacity(), active).OpenSlots()

		audit, err := overtime.NewAuditEvent(
			posting.ID(),
			overtime.AuditSignupWithdrawn,
			cmd.CallerID,
			fmt.Sprintf("officer %s withdrew, %d open", signup.OfficerID(), openSlots),
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		audit.AttachSignup(signup.OfficerID(), signup.SID())
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to withdraw signup", "error", err, "signup_id", cmd.SignupSID)
		}
		return nil, asPersistence(err, "failed to withdraw signup")
	}

	if released {
		uc.logger.Infow("signup withdrawn",
			"posting_id", posting.SID(),
			"signup_id", signup.SID(),
			"officer_id", signup.OfficerID(),
			"open_slots", openSlots,
		)
		if uc.publisher != nil {
			event := overtime.NewSignupWithdrawnEvent(posting, signup)
			if err := uc.publisher.Publish(event); err != nil {
				uc.logger.Warnw("failed to publish withdrawal event", "error", err, "signup_id", signup.SID())
			}
		}
	}

	return &WithdrawSlotResult{Signup: signup, Released: released, OpenSlots: openSlots}, nil
}
