package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetWrestlerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWrestlerProfile")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("wrestlerName"))
	profile, err := h.standingsService.WrestlerProfile(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get wrestler profile failed", "wrestler", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) GetEventSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEventSummary")
	defer span.End()

	summaries, err := h.standingsService.EventSummaries(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get event summary failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summaries)
}
