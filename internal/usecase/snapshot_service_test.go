package usecase

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/snapshot"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	draftmock "github.com/riskibarqy/fantasy-league-hub/internal/mocks/domain/draft"
	snapshotmock "github.com/riskibarqy/fantasy-league-hub/internal/mocks/domain/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sequenceIDs struct {
	n atomic.Int32
}

func (g *sequenceIDs) NewID() (string, error) {
	return "snap-" + string(rune('0'+g.n.Add(1))), nil
}

func newTestSnapshotService(t *testing.T, source *draftmock.Source, groups []snapshot.Group) (*SnapshotService, *snapshotmock.Repository, *snapshotmock.BlobStore) {
	t.Helper()

	repo := snapshotmock.NewRepository(t)
	blobs := snapshotmock.NewBlobStore(t)
	service := NewSnapshotService(
		newTestADPService(source, nil),
		repo,
		blobs,
		&sequenceIDs{},
		SnapshotConfig{Groups: groups, RebuildWorkers: 2},
		logging.NewNop(),
	)
	service.now = func() time.Time { return time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC) }
	return service, repo, blobs
}

func TestSnapshotService_PublishUploadsThenRecords(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	expectDraftMeta(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15})
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice", PlayerPosition: "RB"}}, nil).Once()

	service, repo, blobs := newTestSnapshotService(t, source, nil)

	var uploaded []byte
	blobs.On("Put", mock.Anything, "adp/home/snap-1.json", mock.Anything, "application/json").
		Run(func(args mock.Arguments) { uploaded = args.Get(2).([]byte) }).
		Return(nil).
		Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(s snapshot.Snapshot) bool {
		return s.ID == "snap-1" && s.Name == "home" && s.LeagueCount == 1 && s.Teams == 12 && s.Rounds == 15 && !s.Partial
	})).Return(nil).Once()

	got, err := service.Publish(context.Background(), "home", GroupSelection{Selections: []draft.Selection{{LeagueID: "A"}}})
	require.NoError(t, err)
	assert.Equal(t, "adp/home/snap-1.json", got.ObjectKey)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), got.CreatedAt)

	var decoded adp.GroupResult
	require.NoError(t, sonic.Unmarshal(uploaded, &decoded))
	assert.Equal(t, 1, decoded.Players[adp.PlayerKey("Alice", "RB")].Count)
}

func TestSnapshotService_PublishRejectsBadName(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestSnapshotService(t, draftmock.NewSource(t), nil)
	_, err := service.Publish(context.Background(), "Not Valid", GroupSelection{Selections: []draft.Selection{{LeagueID: "A"}}})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSnapshotService_LatestDecodesBlob(t *testing.T) {
	t.Parallel()

	service, repo, blobs := newTestSnapshotService(t, draftmock.NewSource(t), nil)
	header := snapshot.Snapshot{ID: "snap-9", Name: "home", ObjectKey: "adp/home/snap-9.json", LeagueCount: 2, Teams: 12, Rounds: 15}
	body := `{"meta":{"teams":12,"rounds":15},"leagueCount":2,"partial":false,"leagues":[],
		"players":{"Alice|||RB":{"name":"Alice","position":"RB","count":2,"avgOverallPick":2,"avgRoundPick":"1.02","modeOverallPick":1,"modeRoundPick":"1.01"}},
		"draftboard":{"cells":{}}}`

	repo.On("GetLatest", mock.Anything, "home").Return(header, true, nil).Once()
	blobs.On("Get", mock.Anything, "adp/home/snap-9.json").Return([]byte(body), true, nil).Once()

	got, err := service.Latest(context.Background(), "home")
	require.NoError(t, err)
	assert.Equal(t, header, got.Snapshot)
	assert.Equal(t, "1.02", got.Group.Players["Alice|||RB"].AvgRoundPick)
}

func TestSnapshotService_LatestMissing(t *testing.T) {
	t.Parallel()

	service, repo, _ := newTestSnapshotService(t, draftmock.NewSource(t), nil)
	repo.On("GetLatest", mock.Anything, "home").Return(snapshot.Snapshot{}, false, nil).Once()

	_, err := service.Latest(context.Background(), "home")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSnapshotService_RebuildAllReportsPerGroup(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	expectDraftMeta(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15})
	source.On("ListPicks", mock.Anything, "DA").Return([]draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice"}}, nil)
	source.On("GetLeague", mock.Anything, "broken").Return(draft.League{}, false, adp.SourceUnavailable(nil, "sleeper status=500"))

	groups := []snapshot.Group{
		{Name: "home", Selections: []draft.Selection{{LeagueID: "A"}}},
		{Name: "away", Selections: []draft.Selection{{LeagueID: "broken"}}},
	}
	service, repo, blobs := newTestSnapshotService(t, source, groups)
	blobs.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "adp/home/") }), mock.Anything, "application/json").Return(nil).Once()
	repo.On("Insert", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := service.RebuildAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.GroupCount)
	assert.Equal(t, 1, got.SuccessCount)
	assert.Equal(t, 1, got.FailedCount)
	require.Len(t, got.Groups, 2)

	assert.Equal(t, "away", got.Groups[0].Name)
	assert.Equal(t, rebuildStatusFailed, got.Groups[0].Status)
	assert.Contains(t, got.Groups[0].Message, "status=500")
	assert.Equal(t, "home", got.Groups[1].Name)
	assert.Equal(t, rebuildStatusSuccess, got.Groups[1].Status)
	assert.Equal(t, 1, got.Groups[1].LeagueCount)
}

func TestSnapshotService_RebuildAllWithoutGroups(t *testing.T) {
	t.Parallel()

	service, _, _ := newTestSnapshotService(t, draftmock.NewSource(t), nil)
	got, err := service.RebuildAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.GroupCount)
	assert.Empty(t, got.Groups)
}
