package httpapi

import (
	"net/http"
	"strings"
)

// createWindowRequest carries no validate tags on purpose: day 0 is Sunday
// and hour 0 is midnight, so the domain validation owns the range checks.
type createWindowRequest struct {
	Day       int `json:"day"`
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

func (h *Handler) ListWindows(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWindows")
	defer span.End()

	items, err := h.windowService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list windows failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]windowDTO, 0, len(items))
	for _, item := range items {
		out = append(out, windowToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateWindow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWindow")
	defer span.End()

	var req createWindowRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.windowService.Create(ctx, req.Day, req.StartHour, req.EndHour)
	if err != nil {
		h.logger.WarnContext(ctx, "create window failed", "day", req.Day, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, windowToDTO(created))
}

func (h *Handler) DeleteWindow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteWindow")
	defer span.End()

	windowID := strings.TrimSpace(r.PathValue("windowID"))
	if err := h.windowService.Delete(ctx, windowID); err != nil {
		h.logger.WarnContext(ctx, "delete window failed", "window_id", windowID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}
