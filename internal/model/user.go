package model

import "time"

// User is an eco-points account keyed by email. Points always equals the
// sum of the point values of this user's accepted scan events.
type User struct {
	Email        string     `gorm:"column:email;primaryKey;size:254"`
	PasswordHash *string    `gorm:"column:password_hash;size:60"` // nil for provider-provisioned accounts
	Points       int64      `gorm:"column:points;not null;default:0"`
	LastScanAt   *time.Time `gorm:"column:last_scan_at"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
