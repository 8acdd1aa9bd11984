package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/domain/shared/events"
	"dutywire/internal/shared/biztime"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/id"
	"dutywire/internal/shared/logger"
)

type ClaimSlotCommand struct {
	PostingSID  string
	OrgID       string
	OfficerID   string
	Rank        *string
	BadgeNumber *string
}

type ClaimSlotResult struct {
	Signup    *overtime.Signup
	OpenSlots int
}

// ClaimSlotUseCase admits a member claim against a posting's capacity. The
// admission checks and the signup write run under the posting's lock and a
// row-locked transaction, so two claims for the last slot serialize and the
// loser sees the taken slot.
type ClaimSlotUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	locker      PostingLocker
	lockWait    time.Duration
	ranks       overtime.RankTable
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewClaimSlotUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	ranks overtime.RankTable,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ClaimSlotUseCase {
	return &ClaimSlotUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		locker:      locker,
		lockWait:    lockWait,
		ranks:       ranks,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *ClaimSlotUseCase) Execute(ctx context.Context, cmd ClaimSlotCommand) (*ClaimSlotResult, error) {
	if cmd.OfficerID == "" {
		return nil, apperrors.NewValidationError("officer identity is required")
	}

	release, err := uc.locker.Acquire(ctx, cmd.PostingSID, uc.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	var signup *overtime.Signup
	var openSlots int
	var filled bool
	var posting *overtime.Posting

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err = uc.postingRepo.GetBySIDForUpdate(txCtx, cmd.PostingSID)
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil || posting.OrgID() != cmd.OrgID {
			return apperrors.NewNotFoundError("posting not found")
		}

		now := biztime.NowUTC()
		if !posting.IsOpen() {
			return apperrors.NewPostingClosedError("posting is closed")
		}
		if posting.DeadlineExpired(now) {
			return apperrors.NewDeadlinePassedError("signup deadline has passed")
		}

		active, err := uc.signupRepo.ListActiveByPosting(txCtx, posting.ID())
		if err != nil {
			return fmt.Errorf("failed to load signups: %w", err)
		}
		for _, s := range active {
			if s.OfficerID() == cmd.OfficerID {
				return apperrors.NewAlreadySignedUpError("officer already holds a slot on this posting")
			}
		}

		ledger := overtime.NewSlotLedger(posting.Capacity(), active)
		if !ledger.TryReserve() {
			return apperrors.NewNoSlotsAvailableError("no open slots remain")
		}

		signup, err = overtime.NewSignup(
			posting.ID(), posting.OrgID(), cmd.OfficerID,
			cmd.Rank, cmd.BadgeNumber, uc.ranks, now,
		)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		sid, err := id.NewSignupID()
		if err != nil {
			return fmt.Errorf("failed to generate signup ID: %w", err)
		}
		if err := signup.SetSID(sid); err != nil {
			return fmt.Errorf("failed to assign signup ID: %w", err)
		}
		if err := uc.signupRepo.Save(txCtx, signup); err != nil {
			return fmt.Errorf("failed to save signup: %w", err)
		}

		openSlots = ledger.OpenSlots()
		filled = openSlots == 0

		audit, err := overtime.NewAuditEvent(
			posting.ID(),
			overtime.AuditSignupClaimed,
			cmd.OfficerID,
			fmt.Sprintf("officer %s claimed a slot, %d remaining", cmd.OfficerID, openSlots),
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		audit.AttachSignup(cmd.OfficerID, signup.SID())
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to claim slot", "error", err, "posting_id", cmd.PostingSID, "officer_id", cmd.OfficerID)
		}
		return nil, asPersistence(err, "failed to claim slot")
	}

	uc.logger.Infow("slot claimed",
		"posting_id", posting.SID(),
		"signup_id", signup.SID(),
		"officer_id", cmd.OfficerID,
		"open_slots", openSlots,
	)

	if filled && uc.publisher != nil {
		event := overtime.NewSlotFilledEvent(posting, cmd.OfficerID)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish slot filled event", "error", err, "posting_id", posting.SID())
		}
	}

	return &ClaimSlotResult{Signup: signup, OpenSlots: openSlots}, nil
}
