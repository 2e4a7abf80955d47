package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postActivity(t *testing.T, srv *httptest.Server, access, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/users/activities/", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+access)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("POST activity: %v", err)
	}
	return resp
}

func TestActivityCreate(t *testing.T) {
	router, auth := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	access, userID := registerTestUser(t, auth, "acts@example.com")

	resp := postActivity(t, srv, access, `{"body":{"k":1}}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out struct {
		ID   int64           `json:"id"`
		User int64           `json:"user"`
		Body json.RawMessage `json:"body"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.ID == 0 {
		t.Fatal("expected a non-zero activity id")
	}
	if out.User != userID {
		t.Fatalf("expected user %d, got %d", userID, out.User)
	}
	if string(out.Body) != `{"k":1}` {
		t.Fatalf("expected body to round-trip, got %s", out.Body)
	}
}

func TestActivityCreate_MissingBody(t *testing.T) {
	router, auth := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	access, _ := registerTestUser(t, auth, "nobody@example.com")

	for _, body := range []string{`{}`, `{"body":null}`} {
		resp := postActivity(t, srv, access, body)
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", body, resp.StatusCode)
		}

		var out errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if out.Data.Params != "body" {
			t.Fatalf("expected params \"body\", got %q", out.Data.Params)
		}
	}
}

func TestActivityCreate_RequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/api/users/activities/", "application/json",
		bytes.NewBufferString(`{"body":{"k":1}}`))
	if err != nil {
		t.Fatalf("POST activity: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestActivityList_ScopedToCaller(t *testing.T) {
	router, auth := newTestRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	aliceToken, _ := registerTestUser(t, auth, "alice@example.com")
	bobToken, _ := registerTestUser(t, auth, "bob@example.com")

	resp := postActivity(t, srv, aliceToken, `{"body":{"owner":"alice"}}`)
	resp.Body.Close()
	resp = postActivity(t, srv, bobToken, `{"body":{"owner":"bob"}}`)
	resp.Body.Close()

	page := listActivities(t, srv, aliceToken, "")
	if page.Count != 1 {
		t.Fatalf("expected alice to see 1 activity, got %d", page.Count)
	}
	page = listActivities(t, srv, bobToken, "")
	if page.Count != 1 {
		t.Fatalf("expected bob to see 1 activity, got %d", page.Count)
	}
}
