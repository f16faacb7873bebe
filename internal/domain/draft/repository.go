package draft

import "context"

// Source describes the read-only upstream fantasy provider.
type Source interface {
	GetUserByUsername(ctx context.Context, username string) (User, bool, error)
	ListLeaguesByUser(ctx context.Context, userID, season string) ([]League, error)
	GetLeague(ctx context.Context, leagueID string) (League, bool, error)
	ListDraftsByLeague(ctx context.Context, leagueID string) ([]Draft, error)
	GetDraft(ctx context.Context, draftID string) (Draft, bool, error)
	ListPicks(ctx context.Context, draftID string) ([]Pick, error)
}
