package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/spectrumparty/backend/internal/game"
	"github.com/spectrumparty/backend/internal/hub"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := hub.NewHub(ctx, hub.Opts{})
	srv := httptest.NewServer(SetupRoutes(h, "http://example.test/rooms", zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateRoomThenFetchDocument(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/rooms", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: status %d", resp.StatusCode)
	}
	var created struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if len(created.Code) != 6 {
		t.Fatalf("code %q: want 6 chars", created.Code)
	}

	resp2, err := http.Get(srv.URL + "/rooms/" + created.Code)
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("fetch: status %d", resp2.StatusCode)
	}
	var doc struct {
		Version int            `json:"version"`
		State   game.GameState `json:"state"`
	}
	if err := json.NewDecoder(resp2.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if doc.State.RoundPhase != game.PhaseSetupGame {
		t.Fatalf("fresh room phase: %s", doc.State.RoundPhase)
	}
	if doc.Version != 0 {
		t.Fatalf("fresh room version: %d", doc.Version)
	}
}

func TestFetchUnknownRoomIs404(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/rooms/ZZZZZZ")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", resp.StatusCode)
	}
}

func TestRoomQRServesPNG(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/rooms/AB12CD/qr")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type %q", ct)
	}
}
