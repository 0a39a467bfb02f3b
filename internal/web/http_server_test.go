package web

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rook-computer/clockface/internal/state"
)

func TestHTTPServerLifecycle(t *testing.T) {
	store := state.NewStore()
	store.SetPhase(state.ATTACHED)

	srv := NewHTTPServer("127.0.0.1:0", APIV1Deps{Status: store})
	if err := srv.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	addr := srv.ListenAddr()
	if addr == "" {
		t.Fatal("no listen address after Start")
	}

	resp, err := http.Get("http://" + addr + "/api/v1/status")
	if err != nil {
		t.Fatal(err)
	}
	var body statusResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if body.Phase != "attached" {
		t.Errorf("phase = %q", body.Phase)
	}

	if err := srv.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	if err := srv.Start(context.Background()); err == nil {
		t.Error("Start after Stop succeeded")
	}
	if srv.ListenAddr() != "" {
		t.Error("listen address kept after Stop")
	}
}
