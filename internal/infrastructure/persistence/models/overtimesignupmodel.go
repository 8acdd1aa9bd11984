package models

import (
	"time"

	"dutywire/internal/shared/constants"
)

// OvertimeSignupModel represents the database persistence model for signups.
// The rank priority and tie-break key are frozen at submission so ordering
// survives later rank table changes.
type OvertimeSignupModel struct {
	ID            uint    `gorm:"primarykey"`
	SID           string  `gorm:"column:sid;not null;size:32;uniqueIndex:idx_overtime_signup_sid"`
	PostingID     uint    `gorm:"not null;index:idx_overtime_signup_posting"`
	OrgID         string  `gorm:"not null;size:64"`
	OfficerID     string  `gorm:"not null;size:64;index:idx_overtime_signup_officer"`
	Status        string  `gorm:"not null;size:16;default:PENDING;index:idx_overtime_signup_status"`
	Rank          *string `gorm:"size:100"`
	RankPriority  int     `gorm:"not null;default:999"`
	BadgeNumber   *string `gorm:"size:32"`
	TieBreakerKey string  `gorm:"not null;size:64"`
	SubmittedAt   time.Time
	ForcedBy      *string `gorm:"size:64"`
	ForcedReason  *string `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM.
func (OvertimeSignupModel) TableName() string {
	return constants.TableOvertimeSignups
}
