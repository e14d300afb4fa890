package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

type proposeTradeRequest struct {
	OfferingTeam  string   `json:"offeringTeam" validate:"required"`
	ReceivingTeam string   `json:"receivingTeam" validate:"required"`
	Offered       []string `json:"offered" validate:"required,min=1,dive,required"`
	Requested     []string `json:"requested" validate:"required,min=1,dive,required"`
}

type respondTradeRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

func (h *Handler) ProposeTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ProposeTrade")
	defer span.End()

	var req proposeTradeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	proposal, err := h.tradeService.Propose(ctx, usecase.ProposeTradeInput{
		OfferingTeam:  req.OfferingTeam,
		ReceivingTeam: req.ReceivingTeam,
		Offered:       req.Offered,
		Requested:     req.Requested,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "propose trade failed",
			"offering_team", req.OfferingTeam,
			"receiving_team", req.ReceivingTeam,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, tradeToDTO(proposal))
}

// ListTrades returns every proposal, or only the pending inbox of one team
// when the team query parameter is present.
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTrades")
	defer span.End()

	teamName := strings.TrimSpace(r.URL.Query().Get("team"))

	var err error
	var items []tradeDTO
	if teamName != "" {
		proposals, listErr := h.tradeService.PendingForTeam(ctx, teamName)
		err = listErr
		for _, proposal := range proposals {
			items = append(items, tradeToDTO(proposal))
		}
	} else {
		proposals, listErr := h.tradeService.List(ctx)
		err = listErr
		for _, proposal := range proposals {
			items = append(items, tradeToDTO(proposal))
		}
	}
	if err != nil {
		h.logger.WarnContext(ctx, "list trades failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}
	if items == nil {
		items = []tradeDTO{}
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) RespondTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RespondTrade")
	defer span.End()

	tradeID := strings.TrimSpace(r.PathValue("tradeID"))

	var req respondTradeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	proposal, err := h.tradeService.Respond(ctx, tradeID, req.Action)
	if err != nil {
		h.logger.WarnContext(ctx, "respond trade failed", "trade_id", tradeID, "action", req.Action, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tradeToDTO(proposal))
}
