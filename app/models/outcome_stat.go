package models

import "time"

// OutcomeStat is the daily number of checkouts per payment branch and final status.
type OutcomeStat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Day       string    `gorm:"type:char(10);uniqueIndex:idx_outcome_day_branch_status,priority:1" json:"day"`
	Branch    string    `gorm:"type:varchar(64);uniqueIndex:idx_outcome_day_branch_status,priority:2" json:"branch"`
	Status    string    `gorm:"type:varchar(64);uniqueIndex:idx_outcome_day_branch_status,priority:3" json:"status"`
	Total     int64     `gorm:"not null;default:0" json:"total"`
	UpdatedAt time.Time `json:"updated_at"`
}
