package usecases

import (
	"context"
	"fmt"

	"dutywire/internal/domain/overtime"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type GetPostingCommand struct {
	PostingSID string
	OrgID      string
}

type GetPostingResult struct {
	Posting *overtime.Posting
	// Signups holds the posting's signups in policy order, including
	// withdrawn ones.
	Signups   []*overtime.Signup
	OpenSlots int
}

type GetPostingUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	logger      logger.Interface
}

func NewGetPostingUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	logger logger.Interface,
) *GetPostingUseCase {
	return &GetPostingUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		logger:      logger,
	}
}

func (uc *GetPostingUseCase) Execute(ctx context.Context, cmd GetPostingCommand) (*GetPostingResult, error) {
	posting, err := uc.postingRepo.GetBySID(ctx, cmd.PostingSID)
	if err != nil {
		uc.logger.Errorw("failed to load posting", "error", err, "posting_id", cmd.PostingSID)
		return nil, asPersistence(fmt.Errorf("load posting: %w", err), "failed to load posting")
	}
	if posting == nil || posting.OrgID() != cmd.OrgID {
		return nil, apperrors.NewNotFoundError("posting not found")
	}

	signups, err := uc.signupRepo.ListByPosting(ctx, posting.ID())
	if err != nil {
		uc.logger.Errorw("failed to load signups", "error", err, "posting_id", cmd.PostingSID)
		return nil, asPersistence(fmt.Errorf("load signups: %w", err), "failed to load signups")
	}

	ledger := overtime.NewSlotLedger(posting.Capacity(), signups)

	return &GetPostingResult{
		Posting:   posting,
		Signups:   overtime.RankSignups(posting.Policy(), signups),
		OpenSlots: ledger.OpenSlots(),
	}, nil
}
