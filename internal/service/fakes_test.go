package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/terralens/terralens-backend/internal/ai"
	"github.com/terralens/terralens-backend/internal/model"
	"github.com/terralens/terralens-backend/internal/repository"
)

// fakeStore is an in-memory stand-in for both repositories. Claim holds
// the lock across the whole check-and-update so it honors the same
// atomicity contract as the transactional implementation.
type fakeStore struct {
	mu     sync.Mutex
	users  map[string]*model.User
	events []model.ScanEvent
	hashes map[string]bool
	err    error // when set, every call fails with it
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]*model.User{},
		hashes: map[string]bool{},
	}
}

func (f *fakeStore) addUser(email string, points int64, createdAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[email] = &model.User{Email: email, Points: points, CreatedAt: createdAt}
}

// UserRepository

func (f *fakeStore) Create(ctx context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	cp := *u
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUnknownUser
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) EnsureAccount(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[email]; !ok {
		f.users[email] = &model.User{Email: email, CreatedAt: time.Now().UTC()}
	}
	return nil
}

func (f *fakeStore) Top(ctx context.Context, n int) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	all := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Points != all[j].Points {
			return all[i].Points > all[j].Points
		}
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].Email < all[j].Email
	})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// ScanRepository

func (f *fakeStore) Claim(ctx context.Context, event *model.ScanEvent, cooldown time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	u, ok := f.users[event.UserEmail]
	if !ok {
		return 0, repository.ErrUnknownUser
	}
	if f.hashes[event.ContentHash] {
		return 0, repository.ErrDuplicateContent
	}
	if u.LastScanAt != nil {
		if rem := cooldown - event.CreatedAt.Sub(*u.LastScanAt); rem > 0 {
			secs := int((rem + time.Second - 1) / time.Second)
			return 0, &repository.CooldownError{RemainingSeconds: secs}
		}
	}
	u.Points += int64(event.Points)
	ts := event.CreatedAt
	u.LastScanAt = &ts
	f.hashes[event.ContentHash] = true
	f.events = append(f.events, *event)
	return u.Points, nil
}

func (f *fakeStore) ExistsByHash(ctx context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.hashes[hash], nil
}

func (f *fakeStore) ListByUser(ctx context.Context, email string, limit int) ([]model.ScanEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []model.ScanEvent
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].UserEmail == email {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

func (f *fakeStore) eventsFor(email string) []model.ScanEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ScanEvent
	for _, ev := range f.events {
		if ev.UserEmail == email {
			out = append(out, ev)
		}
	}
	return out
}

// fakeClassifier returns canned predictions or a fixed error.
type fakeClassifier struct {
	preds []ai.Prediction
	err   error
}

func (f *fakeClassifier) Classify(ctx context.Context, image []byte, mimeType string) ([]ai.Prediction, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.preds, nil
}
