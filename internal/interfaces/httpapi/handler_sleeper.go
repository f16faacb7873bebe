package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
)

func (h *Handler) ListUserLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUserLeagues")
	defer span.End()

	username := r.PathValue("username")
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	leagues, err := h.directoryService.ListUserLeagues(ctx, username, season)
	if err != nil {
		h.logger.WarnContext(ctx, "list user leagues failed", "username", username, "season", season, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, l := range leagues {
		items = append(items, leagueToDTO(l))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeagueDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueDraft")
	defer span.End()

	sel := draft.Selection{
		LeagueID: r.PathValue("leagueID"),
		DraftID:  r.URL.Query().Get("draft_id"),
	}
	resolved, found, err := h.resolver.ResolveMeta(ctx, sel)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve draft failed", "league_id", sel.LeagueID, "draft_id", sel.DraftID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeError(ctx, w, fmt.Errorf("%w: no draft for league=%s", usecase.ErrNotFound, sel.LeagueID))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolved)
}
