package usecases

import (
	"context"
	"fmt"
	"time"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/domain/shared/events"
	"dutywire/internal/shared/db"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/id"
	"dutywire/internal/shared/logger"
)

type CreatePostingCommand struct {
	OrgID     string
	Title     string
	Location  *string
	Scenario  string
	StartsAt  time.Time
	EndsAt    time.Time
	Capacity  int
	Policy    string
	Notes     *string
	Deadline  *time.Time
	CreatedBy string
}

type CreatePostingResult struct {
	Posting   *overtime.Posting
	OpenSlots int
}

type CreatePostingUseCase struct {
	postingRepo overtime.PostingRepository
	auditRepo   overtime.AuditEventRepository
	transactor  db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreatePostingUseCase(
	postingRepo overtime.PostingRepository,
	auditRepo overtime.AuditEventRepository,
	transactor db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreatePostingUseCase {
	return &CreatePostingUseCase{
		postingRepo: postingRepo,
		auditRepo:   auditRepo,
		transactor:  transactor,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreatePostingUseCase) Execute(ctx context.Context, cmd CreatePostingCommand) (*CreatePostingResult, error) {
	scenario, err := vo.NewScenario(cmd.Scenario)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	policy, err := vo.NewOrderingPolicy(cmd.Policy)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	posting, err := overtime.NewPosting(
		cmd.OrgID, cmd.Title, cmd.Location, scenario,
		cmd.StartsAt, cmd.EndsAt, cmd.Capacity, policy,
		cmd.Notes, cmd.Deadline, cmd.CreatedBy,
	)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	sid, err := id.NewPostingID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate posting ID: %w", err)
	}
	if err := posting.SetSID(sid); err != nil {
		return nil, fmt.Errorf("failed to assign posting ID: %w", err)
	}

	err = uc.transactor.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.postingRepo.Save(txCtx, posting); err != nil {
			return fmt.Errorf("failed to save posting: %w", err)
		}
		audit, err := overtime.NewAuditEvent(
			posting.ID(),
			overtime.AuditPostingCreated,
			cmd.CreatedBy,
			fmt.Sprintf("posting %q created with %d slots", posting.Title(), posting.Capacity()),
		)
		if err != nil {
			return fmt.Errorf("failed to build audit event: %w", err)
		}
		return saveAudit(txCtx, uc.auditRepo, audit)
	})
	if err != nil {
		uc.logger.Errorw("failed to create posting", "error", err, "org_id", cmd.OrgID)
		return nil, asPersistence(err, "failed to create posting")
	}

	uc.logger.Infow("posting created",
		"posting_id", posting.SID(),
		"org_id", posting.OrgID(),
		"capacity", posting.Capacity(),
		"policy", posting.Policy().String(),
	)

	if uc.publisher != nil {
		event := overtime.NewPostingCreatedEvent(posting)
		if err := uc.publisher.Publish(event); err != nil {
			uc.logger.Warnw("failed to publish posting created event", "error", err, "posting_id", posting.SID())
		}
	}

	return &CreatePostingResult{Posting: posting, OpenSlots: posting.Capacity()}, nil
}
