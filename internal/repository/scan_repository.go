package repository

import (
	"context"
	"errors"
	"time"

	"github.com/terralens/terralens-backend/internal/model"
	"gorm.io/gorm"
)

type ScanRepository interface {
	// Claim records an accepted scan as one atomic unit: the balance
	// increment, the last-scan timestamp advance and the event insert all
	// commit together or not at all. Returns the balance after the award.
	Claim(ctx context.Context, event *model.ScanEvent, cooldown time.Duration) (int64, error)
	ExistsByHash(ctx context.Context, hash string) (bool, error)
	ListByUser(ctx context.Context, email string, limit int) ([]model.ScanEvent, error)
}

type scanRepository struct {
	db *gorm.DB
}

func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) Claim(ctx context.Context, event *model.ScanEvent, cooldown time.Duration) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := event.CreatedAt
		cutoff := now.Add(-cooldown)

		// Conditional update doubles as the cooldown compare-and-swap: two
		// concurrent claims cannot both advance last_scan_at past the cutoff.
		res := tx.Model(&model.User{}).
			Where("email = ? AND (last_scan_at IS NULL OR last_scan_at <= ?)", event.UserEmail, cutoff).
			Updates(map[string]interface{}{
				"points":       gorm.Expr("points + ?", event.Points),
				"last_scan_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var u model.User
			if err := tx.Where("email = ?", event.UserEmail).First(&u).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrUnknownUser
				}
				return err
			}
			return &CooldownError{RemainingSeconds: remainingSeconds(now, u.LastScanAt, cooldown)}
		}

		// The unique index on content_hash makes resubmitted images fail
		// here and roll the balance increment back.
		if err := tx.Create(event).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateContent
			}
			return err
		}

		var u model.User
		if err := tx.Select("points").Where("email = ?", event.UserEmail).First(&u).Error; err != nil {
			return err
		}
		balance = u.Points
		return nil
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// remainingSeconds reports how long until the cooldown clears, rounded
// up so an active window never reads as zero.
func remainingSeconds(now time.Time, lastScan *time.Time, cooldown time.Duration) int {
	if lastScan == nil {
		return 0
	}
	rem := cooldown - now.Sub(*lastScan)
	if rem <= 0 {
		return 0
	}
	return int((rem + time.Second - 1) / time.Second)
}

func (r *scanRepository) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.ScanEvent{}).
		Where("content_hash = ?", hash).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *scanRepository) ListByUser(ctx context.Context, email string, limit int) ([]model.ScanEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var events []model.ScanEvent
	if err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
