package mappers

import (
	"fmt"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/infrastructure/persistence/models"
)

// OvertimeSignupMapper handles the conversion between domain entities and
// persistence models.
type OvertimeSignupMapper interface {
	ToEntity(model *models.OvertimeSignupModel) (*overtime.Signup, error)
	ToModel(entity *overtime.Signup) (*models.OvertimeSignupModel, error)
	ToEntities(models []*models.OvertimeSignupModel) ([]*overtime.Signup, error)
}

type overtimeSignupMapper struct{}

// NewOvertimeSignupMapper creates a new signup mapper.
func NewOvertimeSignupMapper() OvertimeSignupMapper {
	return &overtimeSignupMapper{}
}

func (m *overtimeSignupMapper) ToEntity(model *models.OvertimeSignupModel) (*overtime.Signup, error) {
	if model == nil {
		return nil, nil
	}

	status := vo.SignupStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid signup status: %s", model.Status)
	}

	return overtime.ReconstructSignup(
		model.ID,
		model.SID,
		model.PostingID,
		model.OrgID,
		model.OfficerID,
		status,
		model.Rank,
		model.RankPriority,
		model.BadgeNumber,
		model.TieBreakerKey,
		model.SubmittedAt.UTC(),
		model.ForcedBy,
		model.ForcedReason,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *overtimeSignupMapper) ToModel(entity *overtime.Signup) (*models.OvertimeSignupModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OvertimeSignupModel{
		ID:            entity.ID(),
		SID:           entity.SID(),
		PostingID:     entity.PostingID(),
		OrgID:         entity.OrgID(),
		OfficerID:     entity.OfficerID(),
		Status:        entity.Status().String(),
		Rank:          entity.Rank(),
		RankPriority:  entity.RankPriority(),
		BadgeNumber:   entity.BadgeNumber(),
		TieBreakerKey: entity.TieBreakerKey(),
		SubmittedAt:   entity.SubmittedAt(),
		ForcedBy:      entity.ForcedBy(),
		ForcedReason:  entity.ForcedReason(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}, nil
}

func (m *overtimeSignupMapper) ToEntities(signupModels []*models.OvertimeSignupModel) ([]*overtime.Signup, error) {
	entities := make([]*overtime.Signup, 0, len(signupModels))
	for _, model := range signupModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map signup %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
