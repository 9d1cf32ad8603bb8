package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-topout/internal/sessions"
	"backend-topout/internal/tracking"
	"backend-topout/internal/users"
)

func TestClientSaveSession(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/sessions" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var s sessions.Session
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			t.Errorf("decode: %v", err)
		}
		s.ID = "remote-1"
		_ = json.NewEncoder(w).Encode(s)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key-123")
	saved, err := client.SaveSession(context.Background(), sessions.Session{ID: "local-1", Title: "Climb"})
	if err != nil {
		t.Fatalf("save session: %v", err)
	}
	if saved.ID != "remote-1" || saved.Title != "Climb" {
		t.Fatalf("unexpected canonical session: %+v", saved)
	}
	if gotAuth != "Bearer key-123" {
		t.Fatalf("api key not sent, got %q", gotAuth)
	}
}

func TestClientSessionPaths(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	ctx := context.Background()

	if err := client.UpdateSession(ctx, sessions.Session{ID: "s1"}); err != nil {
		t.Fatalf("update session: %v", err)
	}
	if err := client.DeleteSession(ctx, "s1"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if err := client.PushTrackPoints(ctx, "s1", []tracking.TrackPoint{{SessionID: "s1"}}); err != nil {
		t.Fatalf("push points: %v", err)
	}
	if err := client.UpdateUser(ctx, users.User{ID: "u1"}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	want := []string{
		"PUT /v1/sessions/s1",
		"DELETE /v1/sessions/s1",
		"POST /v1/sessions/s1/points",
		"PUT /v1/user",
	}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v", calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/user" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(users.User{ID: "u1", Name: "Climber"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	user, err := client.GetUser(context.Background())
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.ID != "u1" || user.Name != "Climber" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestClientNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.DeleteSession(context.Background(), "s1"); err == nil {
		t.Fatalf("expected an error on 500")
	}
}

func TestClientServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, "")
	if err := client.UpdateUser(context.Background(), users.User{ID: "u1"}); err == nil {
		t.Fatalf("expected a transport error")
	}
}
