package usecase

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	draftmock "github.com/riskibarqy/fantasy-league-hub/internal/mocks/domain/draft"
)

func TestLeagueDirectoryService_ListUserLeagues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := draftmock.NewSource(t)
	service := NewLeagueDirectoryService(source)

	source.On("GetUserByUsername", ctx, "coach").Return(draft.User{ID: "u1", Username: "coach"}, true, nil).Once()
	source.On("ListLeaguesByUser", ctx, "u1", "2025").Return([]draft.League{
		{ID: "2", Name: "zeta"},
		{ID: "1", Name: "Alpha"},
	}, nil).Once()

	got, err := service.ListUserLeagues(ctx, " coach ", "2025")
	if err != nil {
		t.Fatalf("list user leagues: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" {
		t.Fatalf("unexpected leagues order: %+v", got)
	}
}

func TestLeagueDirectoryService_UnknownUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	source := draftmock.NewSource(t)
	service := NewLeagueDirectoryService(source)

	source.On("GetUserByUsername", ctx, "ghost").Return(draft.User{}, false, nil).Once()

	if _, err := service.ListUserLeagues(ctx, "ghost", "2025"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLeagueDirectoryService_ValidatesInput(t *testing.T) {
	t.Parallel()

	service := NewLeagueDirectoryService(draftmock.NewSource(t))
	if _, err := service.ListUserLeagues(context.Background(), "", "2025"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty username, got %v", err)
	}
	if _, err := service.ListUserLeagues(context.Background(), "coach", "25"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for bad season, got %v", err)
	}
}
