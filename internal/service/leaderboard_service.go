package service

import (
	"context"

	"github.com/terralens/terralens-backend/internal/repository"
)

const (
	defaultLeaderboardSize = 5
	maxLeaderboardSize     = 100
)

type LeaderboardRow struct {
	Rank   int
	Email  string
	Points int64
}

// LeaderboardService is a read-only ranked projection over account
// balances. Ordering is points descending; ties rank the account
// created earlier higher, then email ascending, so the result is
// deterministic.
type LeaderboardService interface {
	Top(ctx context.Context, n int) ([]LeaderboardRow, error)
}

type leaderboardService struct {
	users repository.UserRepository
}

func NewLeaderboardService(users repository.UserRepository) LeaderboardService {
	return &leaderboardService{users: users}
}

func (s *leaderboardService) Top(ctx context.Context, n int) ([]LeaderboardRow, error) {
	if n <= 0 {
		n = defaultLeaderboardSize
	} else if n > maxLeaderboardSize {
		n = maxLeaderboardSize
	}
	users, err := s.users.Top(ctx, n)
	if err != nil {
		return nil, err
	}
	rows := make([]LeaderboardRow, 0, len(users))
	for i, u := range users {
		rows = append(rows, LeaderboardRow{Rank: i + 1, Email: u.Email, Points: u.Points})
	}
	return rows, nil
}
