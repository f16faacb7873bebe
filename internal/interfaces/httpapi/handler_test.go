package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/adp"
	"github.com/riskibarqy/fantasy-league-hub/internal/domain/draft"
	memoryblob "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/objectstore/memory"
	memoryrepo "github.com/riskibarqy/fantasy-league-hub/internal/infrastructure/repository/memory"
	draftmock "github.com/riskibarqy/fantasy-league-hub/internal/mocks/domain/draft"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/id"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-hub/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testJobToken = "job-secret"

func newTestRouter(t *testing.T, source *draftmock.Source, withSnapshots bool) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	resolver := usecase.NewDraftResolver(source, logger)
	adpService := usecase.NewADPService(resolver, nil, usecase.ADPConfig{FetchConcurrency: 2}, logger)

	var snapshots *usecase.SnapshotService
	if withSnapshots {
		snapshots = usecase.NewSnapshotService(
			adpService,
			memoryrepo.NewSnapshotRepository(),
			memoryblob.NewStore(),
			id.NewUUIDGenerator(),
			usecase.SnapshotConfig{},
			logger,
		)
	}

	handler := NewHandler(usecase.NewLeagueDirectoryService(source), resolver, adpService, snapshots, logger)
	return NewRouter(handler, logger, false, nil, testJobToken)
}

func stubLeague(source *draftmock.Source, leagueID, draftID string, settings draft.Settings, picks []draft.Pick) {
	source.On("GetLeague", mock.Anything, leagueID).
		Return(draft.League{ID: leagueID, Name: "League " + leagueID, DraftID: draftID}, true, nil).Maybe()
	source.On("GetDraft", mock.Anything, draftID).
		Return(draft.Draft{ID: draftID, LeagueID: leagueID, Status: "complete", Settings: settings, LastPicked: 1}, true, nil).Maybe()
	source.On("ListPicks", mock.Anything, draftID).Return(picks, nil).Maybe()
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope), "body=%s", rec.Body.String())
	return rec, envelope
}

func errorStatus(envelope map[string]any) string {
	errObj, _ := envelope["error"].(map[string]any)
	status, _ := errObj["status"].(string)
	return status
}

func TestHandler_Healthz(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, draftmock.NewSource(t), false)
	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"status": "ok"}, body["data"])
}

func TestHandler_BuildADP(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	settings := draft.Settings{Teams: 12, Rounds: 1}
	stubLeague(source, "A", "DA", settings, []draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice", PlayerPosition: "RB"}})
	stubLeague(source, "B", "DB", settings, []draft.Pick{{PickNo: 3, Round: 1, DraftSlot: 3, PlayerName: "Alice", PlayerPosition: "RB"}})
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/adp/build",
		`{"selections":[{"league_id":"A"},{"league_id":"B"}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := body["data"].(map[string]any)
	assert.EqualValues(t, 2, data["leagueCount"])
	players := data["players"].(map[string]any)
	alice := players[adp.PlayerKey("Alice", "RB")].(map[string]any)
	assert.Equal(t, "1.02", alice["avgRoundPick"])
}

func TestHandler_BuildADPSettingsMismatch(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	stubLeague(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15}, nil)
	stubLeague(source, "B", "DB", draft.Settings{Teams: 10, Rounds: 15}, nil)
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/adp/build",
		`{"selections":[{"league_id":"A"},{"league_id":"B"}]}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "FAILED_PRECONDITION", errorStatus(body))
	items := body["error"].(map[string]any)["errors"].([]any)
	require.Len(t, items, 1)
	assert.Contains(t, items[0].(map[string]any)["message"], "League B (draft DB) has 10 teams / 15 rounds")
}

func TestHandler_BuildADPRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, draftmock.NewSource(t), false)
	payloads := []string{
		`{"selections":[]}`,
		`{"selections":[{"draft_id":"D"}]}`,
		`{"selections":[{"league_id":"A"}],"extra":true}`,
		`not json`,
	}
	for _, payload := range payloads {
		rec, body := doRequest(t, router, http.MethodPost, "/v1/adp/build", payload, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, "INVALID_ARGUMENT", errorStatus(body), payload)
	}
}

func TestHandler_BuildADPSourceUnavailable(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	source.On("GetLeague", mock.Anything, "A").
		Return(draft.League{}, false, adp.SourceUnavailable(nil, "sleeper status=502")).Maybe()
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/adp/build", `{"selections":[{"league_id":"A"}]}`, nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UNAVAILABLE", errorStatus(body))
}

func TestHandler_CompareADP(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	settings := draft.Settings{Teams: 10, Rounds: 1}
	stubLeague(source, "A", "DA", settings, []draft.Pick{{PickNo: 5, Round: 1, DraftSlot: 5, PlayerName: "Alice", PlayerPosition: "RB"}})
	stubLeague(source, "B", "DB", settings, []draft.Pick{{PickNo: 2, Round: 1, DraftSlot: 2, PlayerName: "Alice", PlayerPosition: "RB"}})
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/adp/compare",
		`{"a":{"selections":[{"league_id":"A"}]},"b":{"selections":[{"league_id":"B"}]}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	comparison := body["data"].(map[string]any)["comparison"].(map[string]any)
	rows := comparison["rows"].([]any)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 3, rows[0].(map[string]any)["delta"])
}

func TestHandler_ListUserLeagues(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	source.On("GetUserByUsername", mock.Anything, "coach").Return(draft.User{ID: "u1", Username: "coach"}, true, nil).Once()
	source.On("ListLeaguesByUser", mock.Anything, "u1", "2025").Return([]draft.League{
		{ID: "2", Name: "zebra"},
		{ID: "1", Name: "Alpha", DraftID: "d1"},
	}, nil).Once()
	source.On("GetUserByUsername", mock.Anything, "ghost").Return(draft.User{}, false, nil).Once()
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/sleeper/users/coach/leagues?season=2025", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := body["data"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].(map[string]any)["league_id"])
	assert.Equal(t, "d1", items[0].(map[string]any)["draft_id"])

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/sleeper/users/ghost/leagues?season=2025", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/sleeper/users/coach/leagues?season=25", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_GetLeagueDraft(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	stubLeague(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 15}, nil)
	source.On("GetLeague", mock.Anything, "missing").Return(draft.League{}, false, nil).Once()
	router := newTestRouter(t, source, false)

	rec, body := doRequest(t, router, http.MethodGet, "/v1/sleeper/leagues/A/draft", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "DA", data["draft_id"])
	assert.Equal(t, "complete:1", data["data_version"])

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/sleeper/leagues/missing/draft", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_PublishThenReadSnapshot(t *testing.T) {
	t.Parallel()

	source := draftmock.NewSource(t)
	stubLeague(source, "A", "DA", draft.Settings{Teams: 12, Rounds: 1}, []draft.Pick{{PickNo: 1, Round: 1, DraftSlot: 1, PlayerName: "Alice", PlayerPosition: "RB"}})
	router := newTestRouter(t, source, true)
	payload := `{"name":"home","selections":[{"league_id":"A"}]}`

	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/adp/snapshots", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorStatus(body))

	rec, body = doRequest(t, router, http.MethodPost, "/v1/internal/adp/snapshots", payload,
		map[string]string{internalJobTokenHeader: testJobToken})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	published := body["data"].(map[string]any)
	assert.Equal(t, "home", published["name"])
	assert.EqualValues(t, 1, published["league_count"])

	rec, body = doRequest(t, router, http.MethodGet, "/v1/adp/snapshots/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := body["data"].(map[string]any)
	assert.Equal(t, published["id"], data["snapshot"].(map[string]any)["id"])
	assert.EqualValues(t, 1, data["group"].(map[string]any)["leagueCount"])

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/adp/snapshots/away", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_RebuildSnapshotsReportsEmptyConfig(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, draftmock.NewSource(t), true)
	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/jobs/rebuild-snapshots", "",
		map[string]string{internalJobTokenHeader: testJobToken})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["data"].(map[string]any)["group_count"])
}

func TestHandler_SnapshotRoutesWithoutStorage(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, draftmock.NewSource(t), false)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/adp/snapshots/home", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "UNAVAILABLE", errorStatus(body))
}

func TestRecoverPanic(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/adp/build", nil).WithContext(context.Background()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_ServesAPIDocsWhenEnabled(t *testing.T) {
	source := draftmock.NewSource(t)
	logger := logging.NewNop()
	resolver := usecase.NewDraftResolver(source, logger)
	handler := NewHandler(usecase.NewLeagueDirectoryService(source), resolver,
		usecase.NewADPService(resolver, nil, usecase.ADPConfig{}, logger), nil, logger)
	router := NewRouter(handler, logger, true, nil, testJobToken)

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/adp/build")

	req = httptest.NewRequest(http.MethodGet, "/docs", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
