package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/infrastructure/persistence/mappers"
	"dutywire/internal/infrastructure/persistence/models"
	"dutywire/internal/shared/db"
	"dutywire/internal/shared/errors"
	"dutywire/internal/shared/logger"
)

// activeStatuses are the signup statuses that hold a slot.
var activeStatuses = []string{"PENDING", "CONFIRMED", "FORCED"}

// OvertimeSignupRepositoryImpl implements overtime.SignupRepository.
type OvertimeSignupRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OvertimeSignupMapper
	logger logger.Interface
}

// NewOvertimeSignupRepository creates a new signup repository instance.
func NewOvertimeSignupRepository(db *gorm.DB, logger logger.Interface) overtime.SignupRepository {
	return &OvertimeSignupRepositoryImpl{
		db:     db,
		mapper: mappers.NewOvertimeSignupMapper(),
		logger: logger,
	}
}

// Save creates a new signup in the database.
func (r *OvertimeSignupRepositoryImpl) Save(ctx context.Context, signup *overtime.Signup) error {
	model, err := r.mapper.ToModel(signup)
	if err != nil {
		r.logger.Errorw("failed to map signup entity to model", "error", err)
		return fmt.Errorf("failed to map signup entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if strings.Contains(err.Error(), "Duplicate entry") || strings.Contains(err.Error(), "duplicate key") {
			return errors.NewConflictError("signup already exists")
		}
		r.logger.Errorw("failed to create signup in database", "error", err)
		return fmt.Errorf("failed to create signup: %w", err)
	}

	if err := signup.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set signup ID: %w", err)
	}

	return nil
}

// Update persists a signup's status transition.
func (r *OvertimeSignupRepositoryImpl) Update(ctx context.Context, signup *overtime.Signup) error {
	model, err := r.mapper.ToModel(signup)
	if err != nil {
		r.logger.Errorw("failed to map signup entity to model", "error", err)
		return fmt.Errorf("failed to map signup entity: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.OvertimeSignupModel{}).
		Where("id = ?", model.ID).
		Select("Status", "UpdatedAt").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update signup", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update signup: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("signup not found")
	}

	return nil
}

// GetBySID retrieves a signup by its public identifier.
func (r *OvertimeSignupRepositoryImpl) GetBySID(ctx context.Context, sid string) (*overtime.Signup, error) {
	var model models.OvertimeSignupModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get signup by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get signup: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// ListByPosting returns every signup on a posting, withdrawn included, in
// submission order.
func (r *OvertimeSignupRepositoryImpl) ListByPosting(ctx context.Context, postingID uint) ([]*overtime.Signup, error) {
	var signupModels []*models.OvertimeSignupModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("posting_id = ?", postingID).
		Order("submitted_at ASC, id ASC").
		Find(&signupModels).Error; err != nil {
		r.logger.Errorw("failed to list signups", "posting_id", postingID, "error", err)
		return nil, fmt.Errorf("failed to list signups: %w", err)
	}

	return r.mapper.ToEntities(signupModels)
}

// ListActiveByPosting returns the signups currently holding a slot.
func (r *OvertimeSignupRepositoryImpl) ListActiveByPosting(ctx context.Context, postingID uint) ([]*overtime.Signup, error) {
	var signupModels []*models.OvertimeSignupModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("posting_id = ? AND status IN ?", postingID, activeStatuses).
		Order("submitted_at ASC, id ASC").
		Find(&signupModels).Error; err != nil {
		r.logger.Errorw("failed to list active signups", "posting_id", postingID, "error", err)
		return nil, fmt.Errorf("failed to list active signups: %w", err)
	}

	return r.mapper.ToEntities(signupModels)
}

// CountActiveByPostings returns the active signup count per posting in one
// query, for listing views.
func (r *OvertimeSignupRepositoryImpl) CountActiveByPostings(ctx context.Context, postingIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(postingIDs))
	if len(postingIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostingID uint
		Total     int
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OvertimeSignupModel{}).
		Select("posting_id, COUNT(*) AS total").
		Where("posting_id IN ? AND status IN ?", postingIDs, activeStatuses).
		Group("posting_id").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count active signups", "error", err)
		return nil, fmt.Errorf("failed to count active signups: %w", err)
	}

	for _, row := range rows {
		counts[row.PostingID] = row.Total
	}
	return counts, nil
}

// DeleteByPosting removes every signup owned by a posting.
func (r *OvertimeSignupRepositoryImpl) DeleteByPosting(ctx context.Context, postingID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("posting_id = ?", postingID).
		Delete(&models.OvertimeSignupModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete signups", "posting_id", postingID, "error", err)
		return fmt.Errorf("failed to delete signups: %w", err)
	}
	return nil
}
