package httpapi

import (
	"net/http"
	"strings"
)

type rosterMoveRequest struct {
	TeamName     string `json:"teamName" validate:"required"`
	WrestlerName string `json:"wrestlerName" validate:"required"`
}

type setStarterRequest struct {
	WrestlerName string `json:"wrestlerName" validate:"required"`
	IsStarter    *bool  `json:"isStarter" validate:"required"`
}

func (h *Handler) ListAvailableWrestlers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailableWrestlers")
	defer span.End()

	items, err := h.rosterService.GetAvailableWrestlers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list available wrestlers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]wrestlerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, wrestlerToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoster")
	defer span.End()

	teamName := strings.TrimSpace(r.PathValue("teamName"))
	owner, items, err := h.rosterService.GetRoster(ctx, teamName)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team", teamName, "error", err)
		writeError(ctx, w, err)
		return
	}

	wrestlers := make([]wrestlerDTO, 0, len(items))
	for _, item := range items {
		wrestlers = append(wrestlers, wrestlerToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, rosterDTO{
		TeamID:    owner.ID,
		TeamName:  owner.Name,
		Wrestlers: wrestlers,
	})
}

func (h *Handler) AddWrestler(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddWrestler")
	defer span.End()

	var req rosterMoveRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.Add(ctx, req.TeamName, req.WrestlerName); err != nil {
		h.logger.WarnContext(ctx, "add wrestler failed", "team", req.TeamName, "wrestler", req.WrestlerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "added"})
}

func (h *Handler) DropWrestler(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DropWrestler")
	defer span.End()

	var req rosterMoveRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.Drop(ctx, req.TeamName, req.WrestlerName); err != nil {
		h.logger.WarnContext(ctx, "drop wrestler failed", "team", req.TeamName, "wrestler", req.WrestlerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "dropped"})
}

func (h *Handler) SetStarter(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetStarter")
	defer span.End()

	var req setStarterRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.SetStarter(ctx, req.WrestlerName, *req.IsStarter); err != nil {
		h.logger.WarnContext(ctx, "set starter failed", "wrestler", req.WrestlerName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTransactions")
	defer span.End()

	items, err := h.rosterService.ListTransactions(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list transactions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]transactionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, transactionToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}
