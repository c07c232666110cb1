package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/terralens/terralens-backend/internal/service"
)

type LeaderboardHandler struct {
	svc service.LeaderboardService
}

func NewLeaderboardHandler(svc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{svc: svc}
}

type LeaderboardRowResponse struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"displayName"`
	Points      int64  `json:"points"`
}

func (h *LeaderboardHandler) Top(c echo.Context) error {
	n := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := parsePositiveInt(raw); err == nil {
			n = v
		}
	}
	rows, err := h.svc.Top(c.Request().Context(), n)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]LeaderboardRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, LeaderboardRowResponse{
			Rank:        r.Rank,
			DisplayName: maskEmail(r.Email),
			Points:      r.Points,
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"leaderboard": out})
}

// maskEmail truncates long addresses the way the scanner UI shows ranks.
func maskEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		local = email[:i]
	}
	if len(local) > 10 {
		return local[:10] + "..."
	}
	return local
}

func parsePositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return v, nil
}
