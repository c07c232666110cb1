package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terralens/terralens-backend/internal/ai"
	"github.com/terralens/terralens-backend/internal/classify"
	"github.com/terralens/terralens-backend/internal/model"
	"github.com/terralens/terralens-backend/internal/repository"
	"github.com/terralens/terralens-backend/internal/storage"
)

// AwardSchedule maps a waste category to its point value. Some
// deployments award a flat value per scan, others weight categories, so
// the schedule is configuration rather than a constant.
type AwardSchedule struct {
	Default     int
	PerCategory map[string]int
}

func (a AwardSchedule) PointsFor(category string) int {
	if pts, ok := a.PerCategory[strings.ToUpper(category)]; ok {
		return pts
	}
	return a.Default
}

type VerifyInput struct {
	Image    []byte
	MimeType string
	Lat      *float64
	Lon      *float64
}

type VerifyResult struct {
	Event   *model.ScanEvent
	Balance int64
}

type ScanService interface {
	// Verify runs one claim attempt end to end: hash, classify, resolve,
	// then atomically gate and record. A failed or ineligible attempt
	// leaves every piece of state untouched.
	Verify(ctx context.Context, email string, in VerifyInput) (*VerifyResult, error)
	History(ctx context.Context, email string, limit int) ([]model.ScanEvent, error)
}

type scanService struct {
	scans      repository.ScanRepository
	classifier ai.Classifier
	resolver   *classify.Resolver
	photos     *storage.PhotoStore
	awards     AwardSchedule
	cooldown   time.Duration
	now        func() time.Time
}

func NewScanService(
	scans repository.ScanRepository,
	classifier ai.Classifier,
	resolver *classify.Resolver,
	photos *storage.PhotoStore,
	awards AwardSchedule,
	cooldown time.Duration,
) ScanService {
	return &scanService{
		scans:      scans,
		classifier: classifier,
		resolver:   resolver,
		photos:     photos,
		awards:     awards,
		cooldown:   cooldown,
		now:        time.Now,
	}
}

func (s *scanService) Verify(ctx context.Context, email string, in VerifyInput) (*VerifyResult, error) {
	if email == "" {
		return nil, repository.ErrUnknownUser
	}
	if len(in.Image) == 0 {
		return nil, errors.New("image is required")
	}

	sum := sha256.Sum256(in.Image)
	hash := hex.EncodeToString(sum[:])

	// Fast-path read; the unique index inside Claim is what actually
	// enforces the invariant under concurrency.
	if seen, err := s.scans.ExistsByHash(ctx, hash); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	} else if seen {
		return nil, repository.ErrDuplicateContent
	}

	preds, err := s.classifier.Classify(ctx, in.Image, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(preds) == 0 {
		return nil, fmt.Errorf("%w: classifier returned no predictions", ErrUnavailable)
	}

	// Try the ranked predictions in order until one maps to an eligible
	// category. An ineligible attempt never consumes the content hash.
	eligible, category, picked := false, "", preds[0]
	for i, p := range preds {
		if ok, cat := s.resolver.Resolve(p.Label, p.Confidence); ok {
			eligible, category, picked = true, cat, p
			break
		} else if i == 0 {
			category = cat
		}
	}
	if !eligible {
		reason := "no_recyclable_category"
		if category == classify.CategoryUnverified {
			reason = "low_confidence"
		}
		return nil, &IneligibleError{Reason: reason, Category: category, RawLabel: preds[0].Label}
	}

	now := s.now().UTC()
	event := &model.ScanEvent{
		ID:          uuid.NewString(),
		UserEmail:   email,
		Category:    category,
		RawLabel:    picked.Label,
		Confidence:  picked.Confidence,
		ContentHash: hash,
		Points:      s.awards.PointsFor(category),
		CreatedAt:   now,
	}
	if in.Lat != nil && in.Lon != nil {
		event.Lat, event.Lon = in.Lat, in.Lon
	}

	// Archive before claiming so the event row carries the URL. An object
	// orphaned by a rejected claim is harmless.
	if s.photos != nil {
		if url, err := s.photos.Save(ctx, event.ID, in.Image, in.MimeType); err != nil {
			log.Printf("[scan] stage=photo_save_fail event=%s err=%v", event.ID, err)
		} else {
			event.PhotoURL = &url
		}
	}

	balance, err := s.scans.Claim(ctx, event, s.cooldown)
	if err != nil {
		var cd *repository.CooldownError
		if errors.Is(err, repository.ErrDuplicateContent) ||
			errors.Is(err, repository.ErrUnknownUser) || errors.As(err, &cd) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Printf("[scan] stage=accepted event=%s user=%s category=%s points=%d balance=%d",
		event.ID, email, category, event.Points, balance)
	return &VerifyResult{Event: event, Balance: balance}, nil
}

func (s *scanService) History(ctx context.Context, email string, limit int) ([]model.ScanEvent, error) {
	return s.scans.ListByUser(ctx, email, limit)
}
