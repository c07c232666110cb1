package model

import "time"

// ScanEvent is one accepted waste scan. Rows are append-only and never
// updated; the unique index on content_hash is what makes resubmitting
// the same photo impossible.
type ScanEvent struct {
	ID          string    `gorm:"primaryKey;size:36"`
	UserEmail   string    `gorm:"column:user_email;size:254;not null;index"`
	Category    string    `gorm:"size:32;not null"`
	RawLabel    string    `gorm:"column:raw_label;size:120;not null"`
	Confidence  float64   `gorm:"not null"`
	ContentHash string    `gorm:"column:content_hash;size:64;not null;uniqueIndex"`
	Points      int       `gorm:"not null"`
	Lat         *float64  `gorm:"column:lat"`
	Lon         *float64  `gorm:"column:lon"`
	PhotoURL    *string   `gorm:"column:photo_url;size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (ScanEvent) TableName() string {
	return "scan_events"
}
