package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
)

// ResolvedDraft is a league/draft pair as seen upstream. Picks is only filled by Resolve.
type ResolvedDraft struct {
	DraftID     string         `json:"draft_id"`
	LeagueID    string         `json:"league_id"`
	DraftName   string         `json:"draft_name,omitempty"`
	LeagueName  string         `json:"league_name,omitempty"`
	Settings    draft.Settings `json:"settings"`
	Status      string         `json:"status"`
	DataVersion string         `json:"data_version"`
	Picks       []draft.Pick   `json:"-"`
}

func (d ResolvedDraft) Key() string {
	return draft.Key(d.LeagueID, d.DraftID)
}

func (d ResolvedDraft) Meta() adp.LeagueMeta {
	name := d.LeagueName
	if name == "" {
		name = d.DraftName
	}
	return adp.LeagueMeta{LeagueID: d.LeagueID, DraftID: d.DraftID, Name: name}
}

// DraftResolver turns a league selection into a concrete draft.
type DraftResolver struct {
	source draft.Source
	logger *logging.Logger
}

func NewDraftResolver(source draft.Source, logger *logging.Logger) *DraftResolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftResolver{source: source, logger: logger}
}

// ResolveMeta finds the selected draft without loading picks. An empty DraftID picks the
// league's primary draft, falling back to the first listed draft. found is false when the
// league or draft does not exist or the league has no drafts.
func (r *DraftResolver) ResolveMeta(ctx context.Context, sel draft.Selection) (ResolvedDraft, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftResolver.ResolveMeta")
	defer span.End()

	sel = sel.Normalize()
	if err := sel.Validate(); err != nil {
		return ResolvedDraft{}, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	league, found, err := r.source.GetLeague(ctx, sel.LeagueID)
	if err != nil {
		return ResolvedDraft{}, false, fmt.Errorf("get league %s: %w", sel.LeagueID, err)
	}
	if !found {
		r.logger.InfoContext(ctx, "league not found upstream", "league_id", sel.LeagueID)
		return ResolvedDraft{}, false, nil
	}

	draftID := sel.DraftID
	if draftID == "" {
		draftID = league.DraftID
	}
	if draftID == "" {
		drafts, err := r.source.ListDraftsByLeague(ctx, sel.LeagueID)
		if err != nil {
			return ResolvedDraft{}, false, fmt.Errorf("list drafts for league %s: %w", sel.LeagueID, err)
		}
		if len(drafts) == 0 {
			r.logger.InfoContext(ctx, "league has no drafts", "league_id", sel.LeagueID)
			return ResolvedDraft{}, false, nil
		}
		draftID = drafts[0].ID
	}

	d, found, err := r.source.GetDraft(ctx, draftID)
	if err != nil {
		return ResolvedDraft{}, false, fmt.Errorf("get draft %s: %w", draftID, err)
	}
	if !found {
		r.logger.InfoContext(ctx, "draft not found upstream", "league_id", sel.LeagueID, "draft_id", draftID)
		return ResolvedDraft{}, false, nil
	}
	if d.LeagueID != "" && d.LeagueID != league.ID {
		return ResolvedDraft{}, false, fmt.Errorf("%w: draft %s does not belong to league %s", ErrInvalidInput, d.ID, league.ID)
	}
	if err := d.Settings.Validate(); err != nil {
		return ResolvedDraft{}, false, adp.SourceUnavailable(err, "draft %s has unusable settings", d.ID)
	}

	return ResolvedDraft{
		DraftID:     d.ID,
		LeagueID:    league.ID,
		DraftName:   d.Name,
		LeagueName:  league.Name,
		Settings:    d.Settings,
		Status:      d.Status,
		DataVersion: d.DataVersion(),
	}, true, nil
}

// Resolve is ResolveMeta plus the draft's picks.
func (r *DraftResolver) Resolve(ctx context.Context, sel draft.Selection) (ResolvedDraft, bool, error) {
	resolved, found, err := r.ResolveMeta(ctx, sel)
	if err != nil || !found {
		return ResolvedDraft{}, found, err
	}

	picks, err := r.LoadPicks(ctx, resolved.DraftID)
	if err != nil {
		return ResolvedDraft{}, false, err
	}
	resolved.Picks = picks
	return resolved, true, nil
}

func (r *DraftResolver) LoadPicks(ctx context.Context, draftID string) ([]draft.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftResolver.LoadPicks")
	defer span.End()

	picks, err := r.source.ListPicks(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("list picks for draft %s: %w", draftID, err)
	}
	return picks, nil
}
