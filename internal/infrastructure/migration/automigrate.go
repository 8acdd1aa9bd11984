package migration

import (
	"dutywire/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OvertimePostingModel{},
		&models.OvertimeSignupModel{},
		&models.OvertimeAuditEventModel{},
	}
}
