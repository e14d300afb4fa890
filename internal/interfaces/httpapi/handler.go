package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

type Handler struct {
	rosterService    *usecase.RosterService
	tradeService     *usecase.TradeService
	importService    *usecase.ImportService
	standingsService *usecase.StandingsService
	windowService    *usecase.WindowService
	recomputeService *usecase.RecomputeService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	tradeService *usecase.TradeService,
	importService *usecase.ImportService,
	standingsService *usecase.StandingsService,
	windowService *usecase.WindowService,
	recomputeService *usecase.RecomputeService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		rosterService:    rosterService,
		tradeService:     tradeService,
		importService:    importService,
		standingsService: standingsService,
		windowService:    windowService,
		recomputeService: recomputeService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSONBody(r *http.Request, target any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// parseEventDate accepts a calendar date or a full RFC 3339 timestamp, since
// result sheets usually carry only the show date.
func parseEventDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid event date %q, expected RFC 3339 or YYYY-MM-DD", usecase.ErrInvalidInput, value)
	}
	return t, nil
}

type wrestlerDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand,omitempty"`
	Points    int     `json:"points"`
	TeamID    *string `json:"teamId"`
	IsStarter bool    `json:"isStarter"`
}

type rosterDTO struct {
	TeamID    string        `json:"teamId"`
	TeamName  string        `json:"teamName"`
	Wrestlers []wrestlerDTO `json:"wrestlers"`
}

type transactionDTO struct {
	ID           string `json:"id"`
	WrestlerName string `json:"wrestlerName"`
	TeamName     string `json:"teamName"`
	Action       string `json:"action"`
	Timestamp    string `json:"timestamp"`
}

type tradeDTO struct {
	ID            string   `json:"id"`
	OfferingTeam  string   `json:"offeringTeam"`
	ReceivingTeam string   `json:"receivingTeam"`
	Offered       []string `json:"offered"`
	Requested     []string `json:"requested"`
	Status        string   `json:"status"`
	CreatedAt     string   `json:"createdAt"`
	RespondedAt   *string  `json:"respondedAt,omitempty"`
}

type windowDTO struct {
	ID        string `json:"id"`
	Day       int    `json:"day"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

func wrestlerToDTO(v wrestler.Wrestler) wrestlerDTO {
	return wrestlerDTO{
		ID:        v.ID,
		Name:      v.Name,
		Brand:     v.Brand,
		Points:    v.Points,
		TeamID:    v.TeamID,
		IsStarter: v.IsStarter,
	}
}

func transactionToDTO(v ledger.Transaction) transactionDTO {
	return transactionDTO{
		ID:           v.ID,
		WrestlerName: v.WrestlerName,
		TeamName:     v.TeamName,
		Action:       string(v.Action),
		Timestamp:    v.Timestamp.UTC().Format(time.RFC3339),
	}
}

func tradeToDTO(v trade.Proposal) tradeDTO {
	out := tradeDTO{
		ID:            v.ID,
		OfferingTeam:  v.OfferingTeam,
		ReceivingTeam: v.ReceivingTeam,
		Offered:       append([]string(nil), v.Offered...),
		Requested:     append([]string(nil), v.Requested...),
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt.UTC().Format(time.RFC3339),
	}
	if v.RespondedAt != nil {
		respondedAt := v.RespondedAt.UTC().Format(time.RFC3339)
		out.RespondedAt = &respondedAt
	}
	return out
}

func windowToDTO(v window.Window) windowDTO {
	return windowDTO{
		ID:        v.ID,
		Day:       v.Day,
		StartHour: v.StartHour,
		EndHour:   v.EndHour,
	}
}
