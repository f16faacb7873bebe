package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
)

func (h *Handler) BuildADP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuildADP")
	defer span.End()

	var req groupRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	group, err := h.adpService.BuildGroup(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "build adp failed", "selections", len(req.Selections), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, group)
}

func (h *Handler) CompareADP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompareADP")
	defer span.End()

	var req compareADPRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.adpService.Compare(ctx, usecase.CompareInput{
		A:        req.A.toInput(),
		B:        req.B.toInput(),
		Position: req.Position,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "compare adp failed", "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
