package mappers

import (
	"fmt"

	"dutywire/internal/domain/overtime"
	"dutywire/internal/infrastructure/persistence/models"
)

// OvertimeAuditEventMapper handles the conversion between domain entities and
// persistence models.
type OvertimeAuditEventMapper interface {
	ToEntity(model *models.OvertimeAuditEventModel) (*overtime.AuditEvent, error)
	ToModel(entity *overtime.AuditEvent) (*models.OvertimeAuditEventModel, error)
	ToEntities(models []*models.OvertimeAuditEventModel) ([]*overtime.AuditEvent, error)
}

type overtimeAuditEventMapper struct{}

// NewOvertimeAuditEventMapper creates a new audit event mapper.
func NewOvertimeAuditEventMapper() OvertimeAuditEventMapper {
	return &overtimeAuditEventMapper{}
}

func (m *overtimeAuditEventMapper) ToEntity(model *models.OvertimeAuditEventModel) (*overtime.AuditEvent, error) {
	if model == nil {
		return nil, nil
	}

	kind := overtime.AuditKind(model.Kind)
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid audit kind: %s", model.Kind)
	}

	return overtime.ReconstructAuditEvent(
		model.ID,
		model.SID,
		model.PostingID,
		kind,
		model.ActorID,
		model.OfficerID,
		model.SignupSID,
		model.Reason,
		model.Summary,
		model.CreatedAt.UTC(),
	)
}

func (m *overtimeAuditEventMapper) ToModel(entity *overtime.AuditEvent) (*models.OvertimeAuditEventModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.OvertimeAuditEventModel{
		ID:        entity.ID(),
		SID:       entity.SID(),
		PostingID: entity.PostingID(),
		Kind:      entity.Kind().String(),
		ActorID:   entity.ActorID(),
		OfficerID: entity.OfficerID(),
		SignupSID: entity.SignupSID(),
		Reason:    entity.Reason(),
		Summary:   entity.Summary(),
		CreatedAt: entity.CreatedAt(),
	}, nil
}

func (m *overtimeAuditEventMapper) ToEntities(auditModels []*models.OvertimeAuditEventModel) ([]*overtime.AuditEvent, error) {
	entities := make([]*overtime.AuditEvent, 0, len(auditModels))
	for _, model := range auditModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map audit event %d: %w", model.ID, err)
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
