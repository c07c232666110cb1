package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/terralens/terralens-backend/internal/service"
)

type UserHandler struct {
	accounts service.AccountService
	scans    service.ScanService
}

func NewUserHandler(accounts service.AccountService, scans service.ScanService) *UserHandler {
	return &UserHandler{accounts: accounts, scans: scans}
}

type ProfileResponse struct {
	Email        string `json:"email"`
	Points       int64  `json:"points"`
	Level        string `json:"level"`
	PointsToNext int64  `json:"pointsToNext"`
	LastScanAt   string `json:"lastScanAt,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

type ScanEventResponse struct {
	ScanID     string   `json:"scanId"`
	Category   string   `json:"category"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Points     int      `json:"points"`
	PhotoURL   *string  `json:"photoUrl,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	CreatedAt  string   `json:"createdAt"`
}

func (h *UserHandler) Me(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing account"))
	}
	p, err := h.accounts.Profile(c.Request().Context(), email)
	if err != nil {
		return writeDomainError(c, err)
	}
	resp := ProfileResponse{
		Email:        p.Email,
		Points:       p.Points,
		Level:        p.Level,
		PointsToNext: p.PointsToNext,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.LastScanAt != nil {
		resp.LastScanAt = p.LastScanAt.Format(time.RFC3339)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) ListScans(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing account"))
	}
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		if v, err := parsePositiveInt(raw); err == nil {
			limit = v
		}
	}
	events, err := h.scans.History(c.Request().Context(), email, limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]ScanEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, ScanEventResponse{
			ScanID:     ev.ID,
			Category:   ev.Category,
			Label:      ev.RawLabel,
			Confidence: ev.Confidence,
			Points:     ev.Points,
			PhotoURL:   ev.PhotoURL,
			Lat:        ev.Lat,
			Lon:        ev.Lon,
			CreatedAt:  ev.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"scans": out})
}
