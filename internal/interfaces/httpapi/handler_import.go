package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-wrestling/internal/ingest"
	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

type importEventRequest struct {
	EventName   string `json:"eventName" validate:"required,max=200"`
	EventDate   string `json:"eventDate" validate:"required"`
	Content     string `json:"content" validate:"required"`
	ContentType string `json:"contentType" validate:"omitempty,oneof=text html"`
}

type importEventFromURLRequest struct {
	EventName   string `json:"eventName" validate:"required,max=200"`
	EventDate   string `json:"eventDate" validate:"required"`
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"contentType" validate:"omitempty,oneof=text html"`
}

func (h *Handler) ImportEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportEvent")
	defer span.End()

	var req importEventRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportEvent(ctx, usecase.ImportEventInput{
		EventName:   req.EventName,
		EventDate:   eventDate,
		Content:     req.Content,
		ContentType: resolveContentType(req.ContentType),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import event failed", "event", req.EventName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ImportEventFromURL(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportEventFromURL")
	defer span.End()

	var req importEventFromURLRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportEventFromURL(ctx, usecase.ImportEventFromURLInput{
		EventName:   req.EventName,
		EventDate:   eventDate,
		URL:         req.URL,
		ContentType: resolveContentType(req.ContentType),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "import event from url failed", "event", req.EventName, "url", req.URL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func resolveContentType(value string) ingest.ContentType {
	if value == "" {
		return ingest.ContentTypeText
	}
	return ingest.ContentType(value)
}
