package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/cache"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	draftmock "github.com/riskibarqy/fantasy-league-hub/internal/mocks/domain/draft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func expectDraftMeta(source *draftmock.Source, leagueID, draftID string, settings draft.Settings) {
	source.On("GetLeague", mock.Anything, leagueID).
		Return(draft.League{ID: leagueID, Name: "League " + leagueID, DraftID: draftID}, true, nil)
	source.On("GetDraft", mock.Anything, draftID).
		Return(draft.Draft{ID: draftID, LeagueID: leagueID, Status: "complete", Settings: settings, LastPicked: 7}, true, nil)
}

func newTestADPService(source *draftmock.Source, results *cache.Store[adp.LeagueResult]) *ADPService {
	logger := logging.NewNop()
	return NewADPService(NewDraftResolver(source, logger), results, ADPConfig{FetchConcurrency: 2}, logger)
}

func TestADPService_BuildGroupMergesLeagues(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	settings := draft.Settings{Teams: 12, Rounds: 1}
	expectDraftMeta(source, "A", "DA", settings)
	expectDraftMeta(source, "B", "DB", settings)
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice", PlayerPosition: "RB"}}, nil).Once()
	source.On("ListPicks", mock.Anything, "DB").Return([]draft.Pick{
		{PickNo: 3, Round: 1, DraftSlot: 3, PlayerName: "Alice", PlayerPosition: "RB"},
		{PickNo: 4, Round: 1, DraftSlot: 4},
	}, nil).Once()

	service := newTestADPService(source, nil)
	group, err := service.BuildGroup(context.Background(), GroupSelection{
		Selections: []draft.Selection{{LeagueID: "A"}, {LeagueID: "B"}, {LeagueID: "A"}},
	})
	require.NoError(t, err)

	alice := group.Players[adp.PlayerKey("Alice", "RB")]
	assert.Equal(t, 2, group.LeagueCount)
	assert.Equal(t, 2, alice.Count)
	assert.Equal(t, 2.0, alice.AvgOverallPick)
	assert.Equal(t, "1.02", alice.AvgRoundPick)
	require.Len(t, group.Leagues, 2)
	assert.Equal(t, "A:DA", group.Leagues[0].Key())
	assert.Equal(t, 1, group.Leagues[1].SkippedPicks)
}

func TestADPService_CachesLeagueResultsByDataVersion(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	expectDraftMeta(source, "A", "DA", draft.Settings{Teams: 10, Rounds: 2})
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice"}}, nil).Once()

	service := newTestADPService(source, cache.NewStore[adp.LeagueResult](time.Minute))
	input := GroupSelection{Selections: []draft.Selection{{LeagueID: "A"}}}

	first, err := service.BuildGroup(context.Background(), input)
	require.NoError(t, err)
	second, err := service.BuildGroup(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first.Players, second.Players)
}

func TestADPService_SettingsMismatchFailsGroup(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	expectDraftMeta(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15})
	expectDraftMeta(source, "B", "DB", draft.Settings{Teams: 10, Rounds: 15})
	source.On("ListPicks", mock.Anything, mock.Anything).Return([]draft.Pick{}, nil)

	service := newTestADPService(source, nil)
	group, err := service.BuildGroup(context.Background(), GroupSelection{
		Selections: []draft.Selection{{LeagueID: "A"}, {LeagueID: "B"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, adp.ErrSettingsMismatch))
	assert.Equal(t, 0, group.LeagueCount)
	assert.Nil(t, group.Players)
}

func TestADPService_IncludeWithNoMatchIsNoDrafts(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	expectDraftMeta(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15})
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{}, nil)

	service := newTestADPService(source, nil)
	_, err := service.BuildGroup(context.Background(), GroupSelection{
		Selections: []draft.Selection{{LeagueID: "A"}},
		Include:    []string{"Z:DZ"},
	})
	assert.Equal(t, adp.KindNoDraftsFound, adp.KindOf(err))
}

func TestADPService_UpstreamFailureCancelsFanOut(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	source := draftmock.NewSource(t)
	for _, id := range []string{"A", "B", "C", "D"} {
		source.On("GetLeague", mock.Anything, id).
			Return(draft.League{ID: id, DraftID: "D" + id}, true, nil).Maybe()
		source.On("GetDraft", mock.Anything, "D"+id).
			Return(draft.Draft{ID: "D" + id, LeagueID: id, Settings: draft.Settings{Teams: 12, Rounds: 15}}, true, nil).Maybe()
		source.On("ListPicks", mock.Anything, "D"+id).Return([]draft.Pick{}, nil).Maybe()
	}
	source.On("GetLeague", mock.Anything, "broken").
		Return(draft.League{}, false, adp.SourceUnavailable(nil, "sleeper status=503"))

	service := newTestADPService(source, nil)
	_, err := service.BuildGroup(context.Background(), GroupSelection{
		Selections: []draft.Selection{{LeagueID: "broken"}, {LeagueID: "A"}, {LeagueID: "B"}, {LeagueID: "C"}, {LeagueID: "D"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, adp.ErrSourceUnavailable))
	assert.Contains(t, err.Error(), "status=503")
}

func TestADPService_CompareBuildsBothSides(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	settings := draft.Settings{Teams: 12, Rounds: 2}
	expectDraftMeta(source, "A", "DA", settings)
	expectDraftMeta(source, "B", "DB", settings)
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{
		{PickNo: 5, Round: 1, DraftSlot: 5, PlayerName: "Xavier", PlayerPosition: "RB"},
	}, nil)
	source.On("ListPicks", mock.Anything, "DB").Return([]draft.Pick{
		{PickNo: 20, Round: 2, DraftSlot: 8, PlayerName: "Xavier", PlayerPosition: "RB"},
	}, nil)

	service := newTestADPService(source, nil)
	got, err := service.Compare(context.Background(), CompareInput{
		A: GroupSelection{Selections: []draft.Selection{{LeagueID: "A"}}},
		B: GroupSelection{Selections: []draft.Selection{{LeagueID: "B"}}},
	})
	require.NoError(t, err)
	require.Len(t, got.Comparison.Rows, 1)
	require.NotNil(t, got.Comparison.Rows[0].Delta)
	assert.Equal(t, -15.0, *got.Comparison.Rows[0].Delta)
	assert.Equal(t, 1, got.A.LeagueCount)
}

func TestADPService_RequiresSelections(t *testing.T) {
	t.Parallel()

	service := newTestADPService(draftmock.NewSource(t), nil)
	_, err := service.BuildGroup(context.Background(), GroupSelection{})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestParseSelections(t *testing.T) {
	t.Parallel()

	got, err := ParseSelections([]string{"L1", "L2:D2,L3", " "})
	require.NoError(t, err)
	assert.Equal(t, []draft.Selection{{LeagueID: "L1"}, {LeagueID: "L2", DraftID: "D2"}, {LeagueID: "L3"}}, got)

	_, err = ParseSelections([]string{":D1"})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
