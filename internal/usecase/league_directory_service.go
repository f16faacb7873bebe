package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
)

var seasonPattern = regexp.MustCompile(`^\d{4}$`)

// LeagueDirectoryService lists a Sleeper user's leagues so operators can pick selections.
type LeagueDirectoryService struct {
	source draft.Source
}

func NewLeagueDirectoryService(source draft.Source) *LeagueDirectoryService {
	return &LeagueDirectoryService{source: source}
}

func (s *LeagueDirectoryService) ListUserLeagues(ctx context.Context, username, season string) ([]draft.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueDirectoryService.ListUserLeagues")
	defer span.End()

	username = strings.TrimSpace(username)
	season = strings.TrimSpace(season)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if !seasonPattern.MatchString(season) {
		return nil, fmt.Errorf("%w: season must be a four digit year", ErrInvalidInput)
	}

	user, found, err := s.source.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", username, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: user=%s", ErrNotFound, username)
	}

	leagues, err := s.source.ListLeaguesByUser(ctx, user.ID, season)
	if err != nil {
		return nil, fmt.Errorf("list leagues for user %s: %w", username, err)
	}

	sort.SliceStable(leagues, func(i, j int) bool {
		a, b := strings.ToLower(leagues[i].Name), strings.ToLower(leagues[j].Name)
		if a != b {
			return a < b
		}
		return leagues[i].ID < leagues[j].ID
	})
	return leagues, nil
}
