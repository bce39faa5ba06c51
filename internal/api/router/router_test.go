package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	adminAPI "prize_wheel/internal/api/admin"
	gameAPI "prize_wheel/internal/api/game"
	"prize_wheel/internal/model"
	"prize_wheel/internal/repository/game_memory_repo"
	"prize_wheel/internal/service/admin"
	"prize_wheel/internal/service/game"
	"prize_wheel/internal/wheel"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type staticWheel struct{}

func (staticWheel) Segments() []model.Segment {
	return []model.Segment{
		{Label: "A", Image: "/a.png", Chance: 0.5},
		{Label: "B", Image: "/b.png", Chance: 0.3},
		{Label: "C", Image: "/c.png", Chance: 0.2},
	}
}

func (staticWheel) PointerAngle() float64 { return 0 }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := zap.NewNop()
	repo := game_memory_repo.NewGameRepository()
	gameServ := game.NewGameService(repo, staticWheel{}, log, game.WithOutcomeRNG(wheel.NewSeededRNG(5)))

	r := New(Deps{
		Game:   gameAPI.NewHandler(gameAPI.HandlerDeps{Serv: gameServ, BaseURL: "https://wheel.example"}),
		Admin:  adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: admin.NewAdminService(repo, log)}),
		Logger: log,
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string, out any) int {
	t.Helper()

	r, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	r.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(r)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode response: %v", method, url, err)
		}
	}
	return res.StatusCode
}

type createResponse struct {
	GameID     string `json:"game_id"`
	URL        string `json:"url"`
	WheelCount int    `json:"wheel_count"`
}

type playResponse struct {
	Game struct {
		ID      string   `json:"id"`
		Played  bool     `json:"played"`
		Results []string `json:"results"`
	} `json:"game"`
	Replayed bool `json:"replayed"`
	Wheels   []struct {
		Label    string   `json:"label"`
		Index    int      `json:"index"`
		Rotation *float64 `json:"rotation"`
	} `json:"wheels"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	var body map[string]string
	if status := do(t, http.MethodGet, srv.URL+"/health", "", &body); status != http.StatusOK || body["status"] != "ok" {
		t.Fatalf("GET /health = %d %v", status, body)
	}
}

func TestWheelConfig(t *testing.T) {
	srv := newTestServer(t)

	var body struct {
		PointerAngle float64 `json:"pointer_angle"`
		Segments     []struct {
			Label  string  `json:"label"`
			Chance float64 `json:"chance"`
		} `json:"segments"`
	}
	if status := do(t, http.MethodGet, srv.URL+"/api/wheel-config", "", &body); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if len(body.Segments) != 3 || body.Segments[1].Label != "B" {
		t.Errorf("segments = %+v", body.Segments)
	}
}

func TestGameLifecycle(t *testing.T) {
	srv := newTestServer(t)

	var created createResponse
	if status := do(t, http.MethodPost, srv.URL+"/api/games", `{"wheel_count": 3}`, &created); status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.WheelCount != 3 || !strings.HasPrefix(created.GameID, "03-") {
		t.Errorf("created = %+v", created)
	}
	if created.URL != "https://wheel.example/game/"+created.GameID {
		t.Errorf("url = %q", created.URL)
	}

	var first playResponse
	if status := do(t, http.MethodPost, srv.URL+"/api/games/"+created.GameID+"/play", `{"current_rotation": 90}`, &first); status != http.StatusOK {
		t.Fatalf("play status = %d", status)
	}
	if first.Replayed || !first.Game.Played || len(first.Wheels) != 3 {
		t.Fatalf("first play = %+v", first)
	}
	for _, w := range first.Wheels {
		if w.Index < 0 || w.Rotation == nil || *w.Rotation <= 90 {
			t.Errorf("wheel = %+v", w)
		}
	}

	var second playResponse
	if status := do(t, http.MethodPost, srv.URL+"/api/games/"+created.GameID+"/play", "", &second); status != http.StatusOK {
		t.Fatalf("replay status = %d", status)
	}
	if !second.Replayed {
		t.Error("second play must be a replay")
	}
	for i := range first.Game.Results {
		if first.Game.Results[i] != second.Game.Results[i] {
			t.Fatalf("results changed: %v vs %v", first.Game.Results, second.Game.Results)
		}
	}

	var g struct {
		Played  bool     `json:"played"`
		Results []string `json:"results"`
	}
	if status := do(t, http.MethodGet, srv.URL+"/api/games/"+created.GameID, "", &g); status != http.StatusOK {
		t.Fatalf("get status = %d", status)
	}
	if !g.Played || len(g.Results) != 3 {
		t.Errorf("game = %+v", g)
	}
}

func TestCreateAliasAndDuplicate(t *testing.T) {
	srv := newTestServer(t)

	var created createResponse
	if status := do(t, http.MethodPost, srv.URL+"/api/games/create", `{"id": "07-custom"}`, &created); status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.GameID != "07-custom" || created.WheelCount != 7 {
		t.Errorf("created = %+v", created)
	}

	var e errorResponse
	if status := do(t, http.MethodPost, srv.URL+"/api/games", `{"id": "07-custom"}`, &e); status != http.StatusConflict {
		t.Fatalf("duplicate status = %d", status)
	}
	if e.Error == "" {
		t.Error("error body must not be empty")
	}
}

func TestCreateWheelCountVariants(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		body string
		want int
	}{
		{`{}`, 1},
		{`{"wheel_count": 0}`, 1},
		{`{"wheel_count": 101}`, 100},
		{`{"wheel_count": "abc"}`, 1},
		{`{"wheel_count": "4"}`, 4},
		{`{"wheel_count": 3.0}`, 3},
		{`{"wheel_count": 1e1}`, 10},
		{`{"wheel_count": "\u0035"}`, 5},
	}
	for _, tt := range tests {
		var created createResponse
		if status := do(t, http.MethodPost, srv.URL+"/api/games", tt.body, &created); status != http.StatusCreated {
			t.Fatalf("%s: status = %d", tt.body, status)
		}
		if created.WheelCount != tt.want {
			t.Errorf("%s: wheel count = %d, want %d", tt.body, created.WheelCount, tt.want)
		}
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/games/missing", "", http.StatusNotFound},
		{http.MethodPost, "/api/games/missing/play", "", http.StatusNotFound},
		{http.MethodPost, "/api/games", `{"id":`, http.StatusBadRequest},
		{http.MethodGet, "/api/db-admin?action=nope", "", http.StatusBadRequest},
		{http.MethodGet, "/api/db-admin?action=list&limit=x", "", http.StatusBadRequest},
		{http.MethodDelete, "/api/db-admin?action=drop", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		var e errorResponse
		if status := do(t, tt.method, srv.URL+tt.path, tt.body, &e); status != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, status, tt.want)
		}
		if e.Error == "" {
			t.Errorf("%s %s: empty error body", tt.method, tt.path)
		}
	}
}

func TestAdmin(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{`{"wheel_count": 1}`, `{"wheel_count": 2}`} {
		if status := do(t, http.MethodPost, srv.URL+"/api/games", body, nil); status != http.StatusCreated {
			t.Fatalf("create status = %d", status)
		}
	}

	var status struct {
		Total    int `json:"total"`
		Unplayed int `json:"unplayed"`
	}
	if code := do(t, http.MethodGet, srv.URL+"/api/db-admin?action=status", "", &status); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if status.Total != 2 || status.Unplayed != 2 {
		t.Errorf("status = %+v", status)
	}

	var stats struct {
		AvgWheels float64 `json:"avg_wheels"`
	}
	if code := do(t, http.MethodGet, srv.URL+"/api/db-admin?action=stats", "", &stats); code != http.StatusOK {
		t.Fatalf("stats code = %d", code)
	}
	if stats.AvgWheels != 1.5 {
		t.Errorf("avg_wheels = %v, want 1.5", stats.AvgWheels)
	}

	var list struct {
		Games []struct {
			ID string `json:"id"`
		} `json:"games"`
		Total int `json:"total"`
	}
	if code := do(t, http.MethodGet, srv.URL+"/api/db-admin?action=list&limit=1", "", &list); code != http.StatusOK {
		t.Fatalf("list code = %d", code)
	}
	if len(list.Games) != 1 || list.Total != 2 {
		t.Errorf("list = %+v", list)
	}

	var cleaned struct {
		Deleted int64 `json:"deleted"`
	}
	if code := do(t, http.MethodDelete, srv.URL+"/api/db-admin?action=clean-unplayed", "", &cleaned); code != http.StatusOK {
		t.Fatalf("clean code = %d", code)
	}
	if cleaned.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", cleaned.Deleted)
	}
}

func TestCleanDBAlias(t *testing.T) {
	srv := newTestServer(t)

	for i := 0; i < 3; i++ {
		if status := do(t, http.MethodPost, srv.URL+"/api/games", "", nil); status != http.StatusCreated {
			t.Fatalf("create status = %d", status)
		}
	}

	var status struct {
		Total int `json:"total"`
	}
	if code := do(t, http.MethodGet, srv.URL+"/api/clean-db", "", &status); code != http.StatusOK {
		t.Fatalf("GET /api/clean-db = %d", code)
	}
	if status.Total != 3 {
		t.Errorf("total = %d, want 3", status.Total)
	}

	var cleaned struct {
		Deleted int64 `json:"deleted"`
	}
	if code := do(t, http.MethodDelete, srv.URL+"/api/clean-db", "", &cleaned); code != http.StatusOK {
		t.Fatalf("DELETE /api/clean-db = %d", code)
	}
	if cleaned.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", cleaned.Deleted)
	}

	if code := do(t, http.MethodGet, srv.URL+"/api/clean-db", "", &status); code != http.StatusOK || status.Total != 0 {
		t.Errorf("after clean: code = %d, total = %d", code, status.Total)
	}
}
