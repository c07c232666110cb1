package handler

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/terralens/terralens-backend/internal/service"
)

// maxImageBytes caps uploads at 8 MiB; camera captures stay well under.
const maxImageBytes = 8 << 20

type ScanHandler struct {
	svc service.ScanService
}

func NewScanHandler(svc service.ScanService) *ScanHandler {
	return &ScanHandler{svc: svc}
}

type verifyJSONRequest struct {
	ImageData string   `json:"imageData"` // base64
	MimeType  string   `json:"mimeType"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

type VerifyResponse struct {
	ScanID        string   `json:"scanId"`
	Category      string   `json:"category"`
	Label         string   `json:"label"`
	Confidence    float64  `json:"confidence"`
	PointsAwarded int      `json:"pointsAwarded"`
	Balance       int64    `json:"balance"`
	PhotoURL      *string  `json:"photoUrl,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lon           *float64 `json:"lon,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// Verify accepts either a multipart "image" part or a JSON body with a
// base64 imageData field, mirroring what the camera widget sends.
func (h *ScanHandler) Verify(c echo.Context) error {
	email, _ := c.Get("email").(string)
	if email == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing account"))
	}

	in, err := readVerifyInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}

	result, err := h.svc.Verify(c.Request().Context(), email, *in)
	if err != nil {
		return writeDomainError(c, err)
	}

	ev := result.Event
	return c.JSON(http.StatusOK, VerifyResponse{
		ScanID:        ev.ID,
		Category:      ev.Category,
		Label:         ev.RawLabel,
		Confidence:    ev.Confidence,
		PointsAwarded: ev.Points,
		Balance:       result.Balance,
		PhotoURL:      ev.PhotoURL,
		Lat:           ev.Lat,
		Lon:           ev.Lon,
		CreatedAt:     ev.CreatedAt.Format(time.RFC3339),
	})
}

func readVerifyInput(c echo.Context) (*service.VerifyInput, error) {
	if file, err := c.FormFile("image"); err == nil {
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
		if err != nil {
			return nil, err
		}
		if len(data) > maxImageBytes {
			return nil, errors.New("image too large")
		}
		in := &service.VerifyInput{
			Image:    data,
			MimeType: file.Header.Get("Content-Type"),
		}
		if lat := c.FormValue("lat"); lat != "" {
			if v, err := strconv.ParseFloat(lat, 64); err == nil {
				in.Lat = &v
			}
		}
		if lon := c.FormValue("lon"); lon != "" {
			if v, err := strconv.ParseFloat(lon, 64); err == nil {
				in.Lon = &v
			}
		}
		return in, nil
	}

	var req verifyJSONRequest
	if err := c.Bind(&req); err != nil {
		return nil, err
	}
	data, err := base64.StdEncoding.DecodeString(req.ImageData)
	if err != nil || len(data) == 0 {
		return nil, errors.New("imageData must be non-empty base64")
	}
	if len(data) > maxImageBytes {
		return nil, errors.New("image too large")
	}
	return &service.VerifyInput{
		Image:    data,
		MimeType: req.MimeType,
		Lat:      req.Lat,
		Lon:      req.Lon,
	}, nil
}
