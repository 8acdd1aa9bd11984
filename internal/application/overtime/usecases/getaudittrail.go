package usecases

import (
	"context"
	"fmt"

	"dutywire/internal/domain/overtime"
	apperrors "dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

type GetAuditTrailCommand struct {
	PostingSID string
	OrgID      string
}

type GetAuditTrailResult struct {
	Events []*overtime.AuditEvent
}

type GetAuditTrailUseCase struct {
	postingRepo overtime.PostingRepository
	auditRepo   overtime.AuditEventRepository
	logger      logger.Interface
}

func NewGetAuditTrailUseCase(
	postingRepo overtime.PostingRepository,
	auditRepo overtime.AuditEventRepository,
	logger logger.Interface,
) *GetAuditTrailUseCase {
	return &GetAuditTrailUseCase{
		postingRepo: postingRepo,
		auditRepo:   auditRepo,
		logger:      logger,
	}
}

func (uc *GetAuditTrailUseCase) Execute(ctx context.Context, cmd GetAuditTrailCommand) (*GetAuditTrailResult, error) {
	posting, err := uc.postingRepo.GetBySID(ctx, cmd.PostingSID)
	if err != nil {
		uc.logger.Errorw("failed to load posting", "error", err, "posting_id", cmd.PostingSID)
		return nil, asPersistence(fmt.Errorf("load posting: %w", err), "failed to load posting")
	}
	if posting == nil || posting.OrgID() != cmd.OrgID {
		return nil, apperrors.NewNotFoundError("posting not found")
	}

	auditEvents, err := uc.auditRepo.ListByPosting(ctx, posting.ID())
	if err != nil {
		uc.logger.Errorw("failed to load audit trail", "error", err, "posting_id", cmd.PostingSID)
		return nil, asPersistence(fmt.Errorf("load audit trail: %w", err), "failed to load audit trail")
	}

	return &GetAuditTrailResult{Events: auditEvents}, nil
}
