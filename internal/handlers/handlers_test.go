package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/draftspin/draftspin/internal/handlers"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
	"github.com/draftspin/draftspin/internal/services"
	"github.com/draftspin/draftspin/internal/session"
	"github.com/draftspin/draftspin/pkg/sportsfeed"
)

var testTemplates = fstest.MapFS{
	"index.html": &fstest.MapFile{
		Data: []byte(`<html><body>{{range .Leagues}}<option value="{{.Key}}">{{.Name}}</option>{{end}}</body></html>`),
	},
}

var testStatic = fstest.MapFS{
	"app.js": &fstest.MapFile{Data: []byte(`// test asset`)},
}

// fullNBARoster covers every NBA slot's eligibility codes
func fullNBARoster() []models.RosterEntry {
	return []models.RosterEntry{
		{Player: "Point Man", Position: "G"},
		{Player: "Wing Threat", Position: "G-F"},
		{Player: "Stretch Four", Position: "F"},
		{Player: "Twin Tower", Position: "F-C"},
		{Player: "Anchor", Position: "C"},
	}
}

type testSetup struct {
	handlers *handlers.Handlers
	router   http.Handler
	feed     *sportsfeed.MockClient
	cookies  []*http.Cookie
}

func newTestSetup(t *testing.T, opts ...sportsfeed.MockOption) *testSetup {
	t.Helper()

	if opts == nil {
		opts = []sportsfeed.MockOption{
			sportsfeed.WithTeams("nba", []models.Team{{ID: "t1", City: "Test", Nickname: "Ones"}}),
			sportsfeed.WithRoster("t1", fullNBARoster()),
		}
	}
	feed := sportsfeed.NewMockClient(opts...)

	log := logger.NewWithWriter(io.Discard, slog.LevelError)
	engine := services.NewEngine(log, feed, rand.New(rand.NewSource(1)))
	draft := services.NewDraftService(log, feed, engine, rand.New(rand.NewSource(2)))
	sessions := session.NewManager(log, 0)

	h, err := handlers.New(draft, sessions, nil, testTemplates, handlers.NewStaticServer(testStatic), handlers.NoopHTTPLogger{})
	if err != nil {
		t.Fatalf("handlers.New failed: %v", err)
	}

	return &testSetup{
		handlers: h,
		router:   h.Router(),
		feed:     feed,
	}
}

// do issues a request carrying the session cookie captured from earlier
// responses, so a test drives one draft session across calls
func (s *testSetup) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range s.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// TestGetLeagues verifies the league list endpoint
func TestGetLeagues(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/api/leagues", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var leagues []handlers.LeagueResponse
	decodeBody(t, rec, &leagues)
	if len(leagues) != 4 {
		t.Fatalf("expected 4 leagues, got %d", len(leagues))
	}
	if leagues[0].Key != "nba" || !leagues[0].Live {
		t.Errorf("unexpected first league: %+v", leagues[0])
	}
	if leagues[2].Key != "nfl" || leagues[2].Live {
		t.Errorf("nfl should be synthetic: %+v", leagues[2])
	}
}

// TestGetState_NewSession verifies a first visit creates a session and
// starts in league selection
func TestGetState_NewSession(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/api/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var state handlers.StateResponse
	decodeBody(t, rec, &state)
	if state.State != models.StateSelectingLeague {
		t.Errorf("expected selecting_league, got %s", state.State)
	}

	if len(setup.cookies) == 0 || setup.cookies[0].Name != handlers.SessionCookie {
		t.Error("first visit did not set the session cookie")
	}
}

// TestGetState_ConcurrentWithPicks polls the state endpoint from several
// goroutines while spin/pick/reset cycles mutate the same session, the way
// a second tab does after every state_changed push. Run with -race.
func TestGetState_ConcurrentWithPicks(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})
	if rec.Code != http.StatusOK {
		t.Fatalf("select league failed: %d: %s", rec.Code, rec.Body.String())
	}

	cookies := setup.cookies
	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
				for _, cookie := range cookies {
					req.AddCookie(cookie)
				}
				rec := httptest.NewRecorder()
				setup.router.ServeHTTP(rec, req)
				if rec.Code != http.StatusOK {
					t.Errorf("state poll failed: %d: %s", rec.Code, rec.Body.String())
					return
				}
			}
		}()
	}

	for i := 0; i < 25; i++ {
		setup.do(t, http.MethodPost, "/api/spin", nil)
		setup.do(t, http.MethodPost, "/api/pick", handlers.PickRequest{Slot: "C", Player: "Anchor"})
		setup.do(t, http.MethodPost, "/api/reset", nil)
	}
	close(done)
	wg.Wait()
}

// TestSelectLeague verifies league activation and its error cases
func TestSelectLeague(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var league handlers.LeagueResponse
	decodeBody(t, rec, &league)
	if league.Key != "nba" || len(league.Slots) != 5 {
		t.Errorf("unexpected league response: %+v", league)
	}

	rec = setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "curling"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown league: expected 404, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing league: expected 400, got %d", rec.Code)
	}
}

// TestSpin_RequiresLeague verifies spinning without a league is a client
// error
func TestSpin_RequiresLeague(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodPost, "/api/spin", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestSpin_ReturnsReel verifies the spin payload and the double-spin
// conflict
func TestSpin_ReturnsReel(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})

	rec := setup.do(t, http.MethodPost, "/api/spin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result services.SpinResult
	decodeBody(t, rec, &result)
	if len(result.Reel) != 15 {
		t.Errorf("expected 15-entry reel, got %d", len(result.Reel))
	}
	if result.Team.ID != "t1" {
		t.Errorf("unexpected spun team: %+v", result.Team)
	}

	rec = setup.do(t, http.MethodPost, "/api/spin", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("double spin: expected 409, got %d", rec.Code)
	}
}

// TestEligible verifies the eligibility endpoint and its slot validation
func TestEligible(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})
	setup.do(t, http.MethodPost, "/api/spin", nil)

	rec := setup.do(t, http.MethodGet, "/api/eligible/C", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var eligible handlers.EligibleResponse
	decodeBody(t, rec, &eligible)
	if eligible.Slot != "C" || len(eligible.Players) != 2 {
		t.Errorf("unexpected eligible response: %+v", eligible)
	}

	rec = setup.do(t, http.MethodGet, "/api/eligible/QB", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown slot: expected 400, got %d", rec.Code)
	}
}

// TestConfirmPick verifies pick validation over HTTP
func TestConfirmPick(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})
	setup.do(t, http.MethodPost, "/api/spin", nil)

	rec := setup.do(t, http.MethodPost, "/api/pick", handlers.PickRequest{Slot: "C"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing player: expected 400, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodPost, "/api/pick", handlers.PickRequest{Slot: "C", Player: "Point Man"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("ineligible player: expected 400, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodPost, "/api/pick", handlers.PickRequest{Slot: "C", Player: "Anchor"})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid pick: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result services.PickResult
	decodeBody(t, rec, &result)
	if result.Slot != "C" || result.Player != "Anchor" || result.RosterComplete {
		t.Errorf("unexpected pick result: %+v", result)
	}

	var state handlers.StateResponse
	decodeBody(t, setup.do(t, http.MethodGet, "/api/state", nil), &state)
	if state.HumanRoster["C"] != "Anchor" {
		t.Errorf("pick not reflected in state: %v", state.HumanRoster)
	}
	if state.SpunTeam != nil {
		t.Error("spun team should clear after a pick")
	}
}

// TestFullDraftOverHTTP drives a complete draft through the API and
// checks the matchup unlocks
func TestFullDraftOverHTTP(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})

	rec := setup.do(t, http.MethodGet, "/api/matchup", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("early matchup: expected 409, got %d", rec.Code)
	}

	for _, slot := range []string{"PG", "SG", "SF", "PF", "C"} {
		if rec := setup.do(t, http.MethodPost, "/api/spin", nil); rec.Code != http.StatusOK {
			t.Fatalf("spin for %s: got %d: %s", slot, rec.Code, rec.Body.String())
		}

		var eligible handlers.EligibleResponse
		rec := setup.do(t, http.MethodGet, "/api/eligible/"+slot, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("eligible for %s: got %d", slot, rec.Code)
		}
		decodeBody(t, rec, &eligible)
		if len(eligible.Players) == 0 {
			t.Fatalf("no eligible players for %s", slot)
		}

		rec = setup.do(t, http.MethodPost, "/api/pick", handlers.PickRequest{Slot: slot, Player: eligible.Players[0].Player})
		if rec.Code != http.StatusOK {
			t.Fatalf("pick for %s: got %d: %s", slot, rec.Code, rec.Body.String())
		}
	}

	rec = setup.do(t, http.MethodGet, "/api/state", nil)
	var state handlers.StateResponse
	decodeBody(t, rec, &state)
	if state.State != models.StateMatchupReady {
		t.Fatalf("expected matchup_ready, got %s", state.State)
	}
	if len(state.OpenSlots) != 0 {
		t.Errorf("expected no open slots, got %v", state.OpenSlots)
	}

	rec = setup.do(t, http.MethodGet, "/api/matchup", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("matchup: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var matchup handlers.MatchupResponse
	decodeBody(t, rec, &matchup)
	if matchup.League != "nba" || len(matchup.Slots) != 5 {
		t.Errorf("unexpected matchup: %+v", matchup)
	}
	for _, slot := range matchup.Slots {
		if matchup.AIRoster[slot] == models.EmptyPick || matchup.AIRoster[slot] == "" {
			t.Errorf("AI slot %s unfilled in matchup", slot)
		}
	}
}

// TestReSpinAndReset verifies the recovery endpoints
func TestReSpinAndReset(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})

	rec := setup.do(t, http.MethodPost, "/api/respin", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("respin without spin: expected 409, got %d", rec.Code)
	}

	setup.do(t, http.MethodPost, "/api/spin", nil)
	rec = setup.do(t, http.MethodPost, "/api/respin", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("respin: expected 200, got %d", rec.Code)
	}

	rec = setup.do(t, http.MethodPost, "/api/reset", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("reset: expected 200, got %d", rec.Code)
	}

	var state handlers.StateResponse
	decodeBody(t, setup.do(t, http.MethodGet, "/api/state", nil), &state)
	if state.State != models.StateDrafting || state.League != "nba" {
		t.Errorf("unexpected state after reset: %+v", state)
	}
}

// TestFeedUnavailable verifies a dead feed maps to 503 with the retry
// error code
func TestFeedUnavailable(t *testing.T) {
	setup := newTestSetup(t, sportsfeed.WithTeamsError(sportsfeed.ErrUnavailable))
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})

	rec := setup.do(t, http.MethodPost, "/api/spin", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}

	var apiErr handlers.APIError
	decodeBody(t, rec, &apiErr)
	if apiErr.Code != handlers.ErrCodeFeedUnavailable {
		t.Errorf("expected %s, got %s", handlers.ErrCodeFeedUnavailable, apiErr.Code)
	}
}

// TestSessionIsolation verifies two browsers draft independently
func TestSessionIsolation(t *testing.T) {
	setup := newTestSetup(t)
	setup.do(t, http.MethodPost, "/api/league", handlers.LeagueSelectRequest{League: "nba"})

	// A second client with no cookie gets a fresh session
	other := &testSetup{handlers: setup.handlers, router: setup.router, feed: setup.feed}
	var state handlers.StateResponse
	decodeBody(t, other.do(t, http.MethodGet, "/api/state", nil), &state)
	if state.State != models.StateSelectingLeague {
		t.Errorf("fresh client inherited state %s", state.State)
	}

	// The first client's league selection is untouched
	decodeBody(t, setup.do(t, http.MethodGet, "/api/state", nil), &state)
	if state.League != "nba" {
		t.Errorf("first client's league lost, got %q", state.League)
	}
}

// TestIndexPage verifies the game page renders the league options
func TestIndexPage(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"NBA", "Premier League", "NFL", "NHL"} {
		if !strings.Contains(body, name) {
			t.Errorf("index missing league %q", name)
		}
	}
}

// TestStaticAssets verifies embedded assets are served under /static/
func TestStaticAssets(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/static/app.js", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestQR verifies the join code depends on the configured base URL
func TestQR(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/qr", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unconfigured QR: expected 404, got %d", rec.Code)
	}

	setup.handlers.SetBaseURL("http://192.168.1.20:8080")
	rec = setup.do(t, http.MethodGet, "/qr", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
}
