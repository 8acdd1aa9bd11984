package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/infrastructure/persistence/mappers"
	"dutywire/internal/infrastructure/persistence/models"
	"dutywire/internal/shared/db"
	"dutywire/internal/shared/logger"
)

// OvertimeAuditRepositoryImpl implements overtime.AuditEventRepository.
type OvertimeAuditRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OvertimeAuditEventMapper
	logger logger.Interface
}

// NewOvertimeAuditRepository creates a new audit event repository instance.
func NewOvertimeAuditRepository(db *gorm.DB, logger logger.Interface) overtime.AuditEventRepository {
	return &OvertimeAuditRepositoryImpl{
		db:     db,
		mapper: mappers.NewOvertimeAuditEventMapper(),
		logger: logger,
	}
}

// Save appends an audit event.
func (r *OvertimeAuditRepositoryImpl) Save(ctx context.Context, event *overtime.AuditEvent) error {
	model, err := r.mapper.ToModel(event)
	if err != nil {
		r.logger.Errorw("failed to map audit event entity to model", "error", err)
		return fmt.Errorf("failed to map audit event entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create audit event in database", "error", err)
		return fmt.Errorf("failed to create audit event: %w", err)
	}

	if err := event.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set audit event ID: %w", err)
	}

	return nil
}

// ListByPosting returns a posting's audit trail oldest first.
func (r *OvertimeAuditRepositoryImpl) ListByPosting(ctx context.Context, postingID uint) ([]*overtime.AuditEvent, error) {
	var auditModels []*models.OvertimeAuditEventModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("posting_id = ?", postingID).
		Order("created_at ASC, id ASC").
		Find(&auditModels).Error; err != nil {
		r.logger.Errorw("failed to list audit events", "posting_id", postingID, "error", err)
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}

	return r.mapper.ToEntities(auditModels)
}

// DeleteByPosting removes a posting's audit trail when the posting itself is
// deleted.
func (r *OvertimeAuditRepositoryImpl) DeleteByPosting(ctx context.Context, postingID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("posting_id = ?", postingID).
		Delete(&models.OvertimeAuditEventModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete audit events", "posting_id", postingID, "error", err)
		return fmt.Errorf("failed to delete audit events: %w", err)
	}
	return nil
}
