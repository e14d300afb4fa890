package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fantasy-wrestling/internal/usecase"
)

type recomputePointsJobRequest struct {
	MaxWorkers int `json:"maxWorkers"`
}

// RunRecomputePointsJob rebuilds every wrestler's cumulative total from the
// event ledger. An empty body runs with the default worker count.
func (h *Handler) RunRecomputePointsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputePointsJob")
	defer span.End()

	req, err := decodeRecomputePointsJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputePoints(ctx, req.MaxWorkers)
	if err != nil {
		h.logger.WarnContext(ctx, "run recompute points job failed", "max_workers", req.MaxWorkers, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeRecomputePointsJobRequest(r *http.Request) (recomputePointsJobRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req recomputePointsJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return recomputePointsJobRequest{}, nil
		}
		return recomputePointsJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}
