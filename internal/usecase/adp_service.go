package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/cache"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const defaultFetchConcurrency = 4

type ADPConfig struct {
	FetchConcurrency int
}

// GroupSelection names the drafts that make up one aggregate. Include narrows the resolved
// drafts by "league:draft" key or league id.
type GroupSelection struct {
	Selections []draft.Selection `json:"selections" validate:"required,min=1,dive"`
	Include    []string          `json:"include,omitempty"`
}

type CompareInput struct {
	A        GroupSelection
	B        GroupSelection
	Position string
}

type ComparisonResult struct {
	A          adp.GroupResult `json:"a"`
	B          adp.GroupResult `json:"b"`
	Comparison adp.Comparison  `json:"comparison"`
}

type ADPService struct {
	resolver    *DraftResolver
	results     *cache.Store[adp.LeagueResult]
	concurrency int
	logger      *logging.Logger
}

// NewADPService wires the aggregation service. results may be nil to disable caching.
func NewADPService(resolver *DraftResolver, results *cache.Store[adp.LeagueResult], cfg ADPConfig, logger *logging.Logger) *ADPService {
	if logger == nil {
		logger = logging.Default()
	}
	concurrency := cfg.FetchConcurrency
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}

	return &ADPService{
		resolver:    resolver,
		results:     results,
		concurrency: concurrency,
		logger:      logger,
	}
}

type leagueOutcome struct {
	index  int
	result adp.LeagueResult
	found  bool
}

// BuildLeagues resolves every selection concurrently and aggregates each draft. Results keep
// selection order; selections that resolve to nothing are dropped. The first upstream failure
// cancels the remaining fetches and fails the call.
func (s *ADPService) BuildLeagues(ctx context.Context, selections []draft.Selection) ([]adp.LeagueResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ADPService.BuildLeagues")
	defer span.End()

	selections, err := normalizeSelections(selections)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[leagueOutcome]().
		WithContext(ctx).
		WithMaxGoroutines(s.concurrency).
		WithCancelOnError().
		WithFirstError()
	for i, sel := range selections {
		p.Go(func(ctx context.Context) (leagueOutcome, error) {
			result, found, err := s.buildLeague(ctx, sel)
			if err != nil {
				return leagueOutcome{}, err
			}
			return leagueOutcome{index: i, result: result, found: found}, nil
		})
	}

	outcomes, err := p.Wait()
	if err != nil {
		return nil, err
	}

	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].index < outcomes[j].index })
	out := make([]adp.LeagueResult, 0, len(outcomes))
	seen := make(map[string]struct{}, len(outcomes))
	for _, o := range outcomes {
		if !o.found {
			continue
		}
		// two selections can land on one draft, e.g. "L1" and "L1:<primary>".
		if _, dup := seen[o.result.Key()]; dup {
			continue
		}
		seen[o.result.Key()] = struct{}{}
		out = append(out, o.result)
	}

	return out, nil
}

func (s *ADPService) buildLeague(ctx context.Context, sel draft.Selection) (adp.LeagueResult, bool, error) {
	resolved, found, err := s.resolver.ResolveMeta(ctx, sel)
	if err != nil || !found {
		return adp.LeagueResult{}, found, err
	}

	load := func(ctx context.Context) (adp.LeagueResult, error) {
		picks, err := s.resolver.LoadPicks(ctx, resolved.DraftID)
		if err != nil {
			return adp.LeagueResult{}, err
		}

		result := adp.BuildLeague(resolved.Meta(), resolved.Settings, picks)
		if result.SkippedPicks > 0 {
			s.logger.WarnContext(ctx, "skipped malformed picks",
				"league_id", resolved.LeagueID,
				"draft_id", resolved.DraftID,
				"skipped", result.SkippedPicks,
				"error", adp.ErrMalformedPick,
			)
		}
		return result, nil
	}

	if s.results == nil {
		result, err := load(ctx)
		return result, err == nil, err
	}

	result, err := s.results.GetOrLoad(ctx, resolved.Key(), resolved.DataVersion, load)
	if err != nil {
		return adp.LeagueResult{}, false, err
	}
	return result, true, nil
}

// BuildGroup aggregates the selected drafts into one group.
func (s *ADPService) BuildGroup(ctx context.Context, input GroupSelection) (adp.GroupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ADPService.BuildGroup")
	defer span.End()

	leagues, err := s.BuildLeagues(ctx, input.Selections)
	if err != nil {
		return adp.GroupResult{}, err
	}

	group, err := adp.BuildGroup(leagues, input.Include)
	if err != nil {
		return adp.GroupResult{}, fmt.Errorf("build group: %w", err)
	}

	s.logger.InfoContext(ctx, "built adp group",
		"league_count", group.LeagueCount,
		"players", len(group.Players),
		"partial", group.Partial,
	)
	return group, nil
}

// Compare builds both sides concurrently and lines them up.
func (s *ADPService) Compare(ctx context.Context, input CompareInput) (ComparisonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ADPService.Compare")
	defer span.End()

	var out ComparisonResult
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		group, err := s.BuildGroup(ctx, input.A)
		if err != nil {
			return fmt.Errorf("group a: %w", err)
		}
		out.A = group
		return nil
	})
	p.Go(func(ctx context.Context) error {
		group, err := s.BuildGroup(ctx, input.B)
		if err != nil {
			return fmt.Errorf("group b: %w", err)
		}
		out.B = group
		return nil
	})
	if err := p.Wait(); err != nil {
		return ComparisonResult{}, err
	}

	out.Comparison = adp.Compare(out.A, out.B, adp.CompareOptions{Position: input.Position})
	return out, nil
}

func normalizeSelections(selections []draft.Selection) ([]draft.Selection, error) {
	if len(selections) == 0 {
		return nil, fmt.Errorf("%w: at least one league selection is required", ErrInvalidInput)
	}

	out := make([]draft.Selection, 0, len(selections))
	seen := make(map[draft.Selection]struct{}, len(selections))
	for _, sel := range selections {
		sel = sel.Normalize()
		if err := sel.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, dup := seen[sel]; dup {
			continue
		}
		seen[sel] = struct{}{}
		out = append(out, sel)
	}
	return out, nil
}

// ParseSelections reads "league" or "league:draft" tokens, e.g. from CLI flags.
func ParseSelections(raw []string) ([]draft.Selection, error) {
	out := make([]draft.Selection, 0, len(raw))
	for _, item := range raw {
		for _, token := range strings.Split(item, ",") {
			if strings.TrimSpace(token) == "" {
				continue
			}
			sel, err := draft.ParseSelection(token)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			out = append(out, sel)
		}
	}
	return out, nil
}
