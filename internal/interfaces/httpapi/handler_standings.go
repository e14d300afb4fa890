package httpapi

import (
	"net/http"
	"time"
)

type recordWeeklyWinsRequest struct {
	Week string `json:"week" validate:"required"`
}

type weeklyWinDTO struct {
	WeekStart string `json:"weekStart"`
	TeamID    string `json:"teamId"`
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	standings, err := h.standingsService.Standings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standings)
}

func (h *Handler) GetWeeklyScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyScores")
	defer span.End()

	scores, err := h.standingsService.WeeklyScores(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly scores failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scores)
}

func (h *Handler) GetWeeklyWinTally(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyWinTally")
	defer span.End()

	tally, err := h.standingsService.WeeklyWinTally(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly win tally failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tally)
}

func (h *Handler) RecordWeeklyWins(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordWeeklyWins")
	defer span.End()

	var req recordWeeklyWinsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := parseEventDate(req.Week)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	wins, err := h.standingsService.CalculateWeeklyWins(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "record weekly wins failed", "week", req.Week, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]weeklyWinDTO, 0, len(wins))
	for _, win := range wins {
		out = append(out, weeklyWinDTO{
			WeekStart: win.WeekStart.UTC().Format(time.RFC3339),
			TeamID:    win.TeamID,
		})
	}

	writeSuccess(ctx, w, http.StatusCreated, out)
}
