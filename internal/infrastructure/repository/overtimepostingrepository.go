package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/infrastructure/persistence/mappers"
	"dutywire/internal/infrastructure/persistence/models"
	"dutywire/internal/shared/db"
	"dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

// OvertimePostingRepositoryImpl implements overtime.PostingRepository.
type OvertimePostingRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OvertimePostingMapper
	logger logger.Interface
}

// NewOvertimePostingRepository creates a new posting repository instance.
func NewOvertimePostingRepository(db *gorm.DB, logger logger.Interface) overtime.PostingRepository {
	return &OvertimePostingRepositoryImpl{
		db:     db,
		mapper: mappers.NewOvertimePostingMapper(),
		logger: logger,
	}
}

// Save creates a new posting in the database.
func (r *OvertimePostingRepositoryImpl) Save(ctx context.Context, posting *overtime.Posting) error {
	model, err := r.mapper.ToModel(posting)
	if err != nil {
		r.logger.Errorw("failed to map posting entity to model", "error", err)
		return fmt.Errorf("failed to map posting entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "duplicate key") {
			return errors.NewConflictError("posting already exists")
		}
		r.logger.Errorw("failed to create posting in database", "error", err)
		return fmt.Errorf("failed to create posting: %w", err)
	}

	if err := posting.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set posting ID: %w", err)
	}

	return nil
}

// Update persists a posting's mutable state.
func (r *OvertimePostingRepositoryImpl) Update(ctx context.Context, posting *overtime.Posting) error {
	model, err := r.mapper.ToModel(posting)
	if err != nil {
		r.logger.Errorw("failed to map posting entity to model", "error", err)
		return fmt.Errorf("failed to map posting entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.OvertimePostingModel{}).
		Where("id = ?", model.ID).
		Select("Title", "Location", "Scenario", "StartsAt", "EndsAt",
			"Capacity", "Policy", "Notes", "Deadline", "State", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update posting", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update posting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("posting not found")
	}

	return nil
}

// Delete removes a posting row.
func (r *OvertimePostingRepositoryImpl) Delete(ctx context.Context, postingID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Delete(&models.OvertimePostingModel{}, postingID).Error; err != nil {
		r.logger.Errorw("failed to delete posting", "id", postingID, "error", err)
		return fmt.Errorf("failed to delete posting: %w", err)
	}
	return nil
}

// GetByID retrieves a posting by its internal ID.
func (r *OvertimePostingRepositoryImpl) GetByID(ctx context.Context, id uint) (*overtime.Posting, error) {
	var model models.OvertimePostingModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get posting by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a posting by its public identifier.
func (r *OvertimePostingRepositoryImpl) GetBySID(ctx context.Context, sid string) (*overtime.Posting, error) {
	var model models.OvertimePostingModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get posting by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySIDForUpdate retrieves a posting with a row lock. Inside a
// transaction this serializes concurrent writers on the same posting; the
// lock is held until the transaction ends.
func (r *OvertimePostingRepositoryImpl) GetBySIDForUpdate(ctx context.Context, sid string) (*overtime.Posting, error) {
	var model models.OvertimePostingModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get posting for update", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get posting: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// List returns an org's postings filtered by lifecycle state, newest first.
func (r *OvertimePostingRepositoryImpl) List(ctx context.Context, orgID string, filter overtime.StateFilter) ([]*overtime.Posting, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.OvertimePostingModel{}).Where("org_id = ?", orgID)

	switch filter {
	case overtime.FilterOpen:
		query = query.Where("state = ?", "OPEN")
	case overtime.FilterClosed:
		query = query.Where("state = ?", "CLOSED")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count postings", "org_id", orgID, "error", err)
		return nil, 0, fmt.Errorf("failed to count postings: %w", err)
	}

	var postingModels []*models.OvertimePostingModel
	if err := query.Order("starts_at ASC, id ASC").Find(&postingModels).Error; err != nil {
		r.logger.Errorw("failed to list postings", "org_id", orgID, "error", err)
		return nil, 0, fmt.Errorf("failed to list postings: %w", err)
	}

	entities, err := r.mapper.ToEntities(postingModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}
