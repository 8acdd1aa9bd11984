package mappers

import (
	"fmt"

	"dutywire/internal/domain/overtime"
	vo "dutywire/internal/domain/overtime/valueobjects"
	"dutywire/internal/infrastructure/persistence/models"
)

// OvertimePostingMapper handles the conversion between domain entities and
// persistence models.
type OvertimePostingMapper interface {
	ToEntity(model *models.OvertimePostingModel) (*overtime.Posting, error)
	ToModel(entity *overtime.Posting) (*models.OvertimePostingModel, error)
	ToEntities(models []*models.OvertimePostingModel) ([]*overtime.Posting, error)
}

type overtimePostingMapper struct{}

// NewOvertimePostingMapper creates a new posting mapper.
func NewOvertimePostingMapper() OvertimePostingMapper {
	return &overtimePostingMapper{}
}

func (m *overtimePostingMapper) ToEntity(model *models.OvertimePostingModel) (*overtime.Posting, error) {
	if model == nil {
		return nil, nil
	}

	scenario := vo.Scenario(model.Scenario)
	if !scenario.IsValid() {
		return nil, fmt.Errorf("invalid scenario: %s", model.Scenario)
	}
	policy := vo.OrderingPolicy(model.Policy)
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid ordering policy: %s", model.Policy)
	}
	state := vo.PostingState(model.State)
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid posting state: %s", model.State)
	}

	return overtime.ReconstructPosting(
		model.ID,
		model.SID,
		model.OrgID,
		model.Title,
		model.Location,
		scenario,
		model.StartsAt.UTC(),
		model.EndsAt.UTC(),
		model.Capacity,
		policy,
		model.Notes,
		utcTimePtr(model.Deadline),
		state,
		model.CreatedBy,
		model.CreatedAt.UTC(),
		model.UpdatedAt.UTC(),
	)
}

func (m *overtimePostingMapper) ToModel(entity *overtime.Posting) (*models.OvertimePostingModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OvertimePostingModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		OrgID:     entity.OrgID(),
		Title:     entity.Title(),
		Location:  entity.Location(),
		Scenario:  entity.Scenario().String(),
		StartsAt:  entity.StartsAt(),
		EndsAt:    entity.EndsAt(),
		Capacity:  entity.Capacity(),
		Policy:    entity.Policy().String(),
		Notes:     entity.Notes(),
		Deadline:  entity.Deadline(),
		State:     entity.State().String(),
		CreatedBy: entity.CreatedBy(),
		CreatedAt: entity.CreatedAt(),
		UpdatedAt: entity.UpdatedAt(),
	}, nil
}

func (m *overtimePostingMapper) ToEntities(postingModels []*models.OvertimePostingModel) ([]*overtime.Posting, error) {
	entities := make([]*overtime.Posting, 0, len(postingModels))
	for _, model := range postingModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map posting %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
