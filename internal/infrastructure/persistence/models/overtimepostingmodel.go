package models

import (
	"time"

	"dutywire/internal/shared/constants"
)

// OvertimePostingModel represents the database persistence model for overtime
// postings. Open slot counts are never stored; they are derived from the
// signup rows at read time.
type OvertimePostingModel struct {
	ID        uint    `gorm:"primarykey"`
	SID       string  `gorm:"column:sid;not null;size:32;uniqueIndex:idx_overtime_posting_sid"` // external API identifier
	OrgID     string  `gorm:"not null;size:64;index:idx_overtime_posting_org"`
	Title     string  `gorm:"not null;size:200"`
	Location  *string `gorm:"size:255"`
	Scenario  string  `gorm:"not null;size:32"`
	StartsAt  time.Time
	EndsAt    time.Time
	Capacity  int        `gorm:"not null;default:1"`
	Policy    string     `gorm:"not null;size:32;default:FIRST_COME_FIRST_SERVED"`
	Notes     *string    `gorm:"size:2000"`
	Deadline  *time.Time `gorm:"default:null"`
	State     string     `gorm:"not null;size:16;default:OPEN;index:idx_overtime_posting_state"`
	CreatedBy string     `gorm:"not null;size:64"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM.
func (OvertimePostingModel) TableName() string {
	return constants.TableOvertimePostings
}
