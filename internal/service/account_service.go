package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/terralens/terralens-backend/internal/auth"
	"github.com/terralens/terralens-backend/internal/model"
	"github.com/terralens/terralens-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// GreenWarriorPoints is the balance at which an account reaches the
// Green Warrior rank and unlocks its certificate.
const GreenWarriorPoints = 100

type Profile struct {
	Email        string
	Points       int64
	Level        string
	PointsToNext int64
	LastScanAt   *time.Time
	CreatedAt    time.Time
}

type AccountService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, email string) (*Profile, error)
}

type accountService struct {
	repo      repository.UserRepository
	jwtSecret []byte
}

func NewAccountService(repo repository.UserRepository, jwtSecret []byte) AccountService {
	return &accountService{repo: repo, jwtSecret: jwtSecret}
}

func (s *accountService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(email) > 254 {
		return nil, errors.New("invalid email")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)
	u := &model.User{Email: email, PasswordHash: &hash}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *accountService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownUser) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if u.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateToken(u.Email, s.jwtSecret, auth.TokenValidity)
}

func (s *accountService) Profile(ctx context.Context, email string) (*Profile, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		Email:      u.Email,
		Points:     u.Points,
		LastScanAt: u.LastScanAt,
		CreatedAt:  u.CreatedAt,
	}
	if u.Points >= GreenWarriorPoints {
		p.Level = "GREEN_WARRIOR"
	} else {
		p.Level = "SEEDLING"
		p.PointsToNext = GreenWarriorPoints - u.Points
	}
	return p, nil
}
