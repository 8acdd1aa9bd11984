package usecases

import (
	"context"
	"fmt"

	"dutywire/internal/domain/overtime"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type ListPostingsCommand struct {
	OrgID string
	// Filter is "open", "closed", or "all". Empty defaults to "open".
	Filter string
}

type PostingWithSlots struct {
	Posting   *overtime.Posting
	OpenSlots int
}

type ListPostingsResult struct {
	Postings []PostingWithSlots
	Total    int64
}

type ListPostingsUseCase struct {
	postingRepo overtime.PostingRepository
	signupRepo  overtime.SignupRepository
	logger      logger.Interface
}

func NewListPostingsUseCase(
	postingRepo overtime.PostingRepository,
	signupRepo overtime.SignupRepository,
	logger logger.Interface,
) *ListPostingsUseCase {
	return &ListPostingsUseCase{
		postingRepo: postingRepo,
		signupRepo:  signupRepo,
		logger:      logger,
	}
}

func (uc *ListPostingsUseCase) Execute(ctx context.Context, cmd ListPostingsCommand) (*ListPostingsResult, error) {
	filter := overtime.StateFilter(cmd.Filter)
	if cmd.Filter == "" {
		filter = overtime.FilterOpen
	}
	if !filter.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid state filter: %s", cmd.Filter))
	}

	postings, total, err := uc.postingRepo.List(ctx, cmd.OrgID, filter)
	if err != nil {
		uc.logger.Errorw("failed to list postings", "error", err, "org_id", cmd.OrgID)
		return nil, asPersistence(fmt.Errorf("list postings: %w", err), "failed to list postings")
	}

	postingIDs := make([]uint, len(postings))
	for i, p := range postings {
		postingIDs[i] = p.ID()
	}

	counts, err := uc.signupRepo.CountActiveByPostings(ctx, postingIDs)
	if err != nil {
		uc.logger.Errorw("failed to count signups", "error", err, "org_id", cmd.OrgID)
		return nil, asPersistence(fmt.Errorf("count signups: %w", err), "failed to count signups")
	}

	items := make([]PostingWithSlots, len(postings))
	for i, p := range postings {
		items[i] = PostingWithSlots{
			Posting:   p,
			OpenSlots: p.Capacity() - counts[p.ID()],
		}
	}

	return &ListPostingsResult{Postings: items, Total: total}, nil
}
