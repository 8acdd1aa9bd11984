package models

import (
	"time"

	"dutywire/internal/shared/constants"
)

// OvertimeAuditEventModel represents the database persistence model for the
// per-posting audit trail. Rows are append-only.
type OvertimeAuditEventModel struct {
	ID        uint    `gorm:"primarykey"`
	SID       string  `gorm:"column:sid;not null;size:32;uniqueIndex:idx_overtime_audit_sid"`
	PostingID uint    `gorm:"not null;index:idx_overtime_audit_posting"`
	Kind      string  `gorm:"not null;size:32"`
	ActorID   string  `gorm:"not null;size:64"`
	OfficerID *string `gorm:"size:64"`
	SignupSID *string `gorm:"column:signup_sid;size:32"`
	Reason    *string `gorm:"size:500"`
	Summary   string  `gorm:"not null;size:500"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM.
func (OvertimeAuditEventModel) TableName() string {
	return constants.TableOvertimeAuditEvents
}
