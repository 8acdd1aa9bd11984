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

type ForceAssignCommand struct {
	PostingSID   string
	OrgID        string
	SupervisorID string
	OfficerID    string
	Rank         *string
	BadgeNumber  *string
	Reason       string
}

type ForceAssignResult struct {
	Signup *overtime.Signup
	// OpenSlots may be negative: a forced assignment over capacity drives
	// the posting over-subscribed and the figure reports it as-is.
	OpenSlots int
}

// ForceAssignUseCase places an officer onto a posting by supervisor override.
// Capacity and deadline do not gate it; a closed posting does. The forced
// signup and its audit entry commit in one transaction, so there is no
// forced assignment without an audit record.
type ForceAssignUseCase struct {
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

func NewForceAssignUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	locker PostingLocker,
	lockWait time.Duration,
	ranks overtime.RankTable,
	publisher events.EventPublisher,
	logger logger.Interface,
) *ForceAssignUseCase {
	return &ForceAssignUseCase{
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

func (uc *ForceAssignUseCase) Execute(ctx context.Context, cmd ForceAssignCommand) (*ForceAssignResult, error) {
	if cmd.OfficerID == "" {
		return nil, apperrors.NewValidationError("officer identity is required")
	}
	if cmd.Reason == "" {
		return nil, apperrors.NewValidationError("reason is required for forced assignment")
	}

	release, err := uc.locker.Acquire(ctx, cmd.PostingSID, uc.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	var signup *overtime.Signup
	var openSlots int
	var posting *overtime.Posting

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		posting, err = uc.postingRepo.GetBySIDForUpdate(txCtx, cmd.PostingSID)
		if err != nil {
			return fmt.Errorf("failed to load posting: %w", err)
		}
		if posting == nil || posting.OrgID() != cmd.OrgID {
			return apperrors.NewNotFoundError("posting not found")
		}
		if !posting.IsOpen() {
			return apperrors.NewPostingClosedError("posting is closed")
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

		signup, err = overtime.NewForcedSignup(
			posting.ID(), posting.OrgID(), cmd.OfficerID,
			cmd.Rank, cmd.BadgeNumber,
			cmd.SupervisorID, cmd.Reason,
			uc.ranks, biztime.NowUTC(),
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

		ledger := overtime.NewSlotLedger(posting.Capacity(), active)
		openSlots = ledger.ReserveForced()

		audit, err := overtime.NewForcedAssignmentAudit(
			posting.ID(), cmd.SupervisorID, cmd.OfficerID, signup.SID(), cmd.Reason,
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			uc.logger.Errorw("failed to force assign",
				"error", err, "posting_id", cmd.PostingSID, "officer_id", cmd.OfficerID)
		}
		return nil, asPersistence(err, "failed to force assign")
	}

	uc.logger.Infow("forced assignment recorded",
		"posting_id", posting.SID(),
		"signup_id", signup.SID(),
		"officer_id", cmd.OfficerID,
		"supervisor_id", cmd.SupervisorID,
		"open_slots", openSlots,
	)

	if uc.publisher != nil {
		event := overtime.NewForcedAssignmentEvent(posting, signup, openSlots)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish forced assignment event", "error", err, "posting_id", posting.SID())
		}
	}

	return &ForceAssignResult{Signup: signup, OpenSlots: openSlots}, nil
}
