package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
)

func (h *Handler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLatestSnapshot")
	defer span.End()

	if h.snapshotService == nil {
		writeError(ctx, w, fmt.Errorf("%w: snapshot storage is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	name := r.PathValue("name")
	published, err := h.snapshotService.Latest(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get latest snapshot failed", "name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=60")
	writeSuccess(ctx, w, http.StatusOK, publishedSnapshotToDTO(published))
}

func (h *Handler) PublishSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishSnapshot")
	defer span.End()

	if h.snapshotService == nil {
		writeError(ctx, w, fmt.Errorf("%w: snapshot storage is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req publishSnapshotRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.snapshotService.Publish(ctx, req.Name, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "publish snapshot failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, snapshotToDTO(item))
}

func (h *Handler) RunRebuildSnapshotsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRebuildSnapshotsJob")
	defer span.End()

	if h.snapshotService == nil {
		writeError(ctx, w, fmt.Errorf("%w: snapshot storage is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.snapshotService.RebuildAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "rebuild snapshots job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if result.FailedCount > 0 {
		h.logger.WarnContext(ctx, "rebuild snapshots job finished with failures",
			"group_count", result.GroupCount,
			"failed_count", result.FailedCount,
		)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
