package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// completionRequest mirrors the part of the OpenAI chat payload the fake
// server needs to inspect.
type completionRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newFakeCompletionServer returns a server that answers per-model: the
// replies map names the content each model should produce, and any model
// not in the map fails with HTTP 500.
func newFakeCompletionServer(t *testing.T, replies map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode completion request: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		content, ok := replies[req.Model]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func newTestAdvisor(t *testing.T, url string, models []string) *Advisor {
	t.Helper()
	a, err := New(Config{Endpoint: url + "/v1", Models: models, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("new advisor: %v", err)
	}
	return a
}

func TestPredictAuthority_CanonicalReply(t *testing.T) {
	srv := newFakeCompletionServer(t, map[string]string{"model-a": "DJB"})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a"})
	got, err := a.PredictAuthority(context.Background(), "sewage overflow near pipeline", "28.6,77.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DJB" {
		t.Errorf("expected DJB, got %q", got)
	}
}

func TestPredictAuthority_MatchesInsideLongerReply(t *testing.T) {
	srv := newFakeCompletionServer(t, map[string]string{
		"model-a": "Based on the jurisdiction rules, pwd should handle this one.",
	})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a"})
	got, err := a.PredictAuthority(context.Background(), "flooding on the flyover", "28.6,77.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "PWD" {
		t.Errorf("expected PWD, got %q", got)
	}
}

func TestPredictAuthority_UnmatchedReplyUsesKeywords(t *testing.T) {
	// The model names no known agency; the deterministic classifier must
	// decide from the description instead of trusting the raw text.
	srv := newFakeCompletionServer(t, map[string]string{
		"model-a": "The Delhi Jal Board seems responsible here.",
	})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a"})
	got, err := a.PredictAuthority(context.Background(), "sewage overflow near pipeline", "28.6,77.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "DJB" {
		t.Errorf("expected keyword fallback DJB, got %q", got)
	}
}

func TestPredictAuthority_FallsThroughFailingModels(t *testing.T) {
	srv := newFakeCompletionServer(t, map[string]string{"model-c": "NDMC"})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a", "model-b", "model-c"})
	got, err := a.PredictAuthority(context.Background(), "waterlogging in Lutyens Delhi", "28.6,77.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "NDMC" {
		t.Errorf("expected NDMC from the last model, got %q", got)
	}
}

func TestPredictAuthority_AllModelsFail(t *testing.T) {
	srv := newFakeCompletionServer(t, map[string]string{})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a", "model-b"})
	_, err := a.PredictAuthority(context.Background(), "flooded colony road", "28.6,77.2")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestChat_ReturnsReply(t *testing.T) {
	srv := newFakeCompletionServer(t, map[string]string{"model-a": "Stay away from underpasses."})
	defer srv.Close()

	a := newTestAdvisor(t, srv.URL, []string{"model-a"})
	reply, err := a.Chat(context.Background(), "Is it safe to drive today?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Stay away from underpasses." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestMatchAuthority(t *testing.T) {
	cases := []struct {
		text string
		want string
		ok   bool
	}{
		{"MCD", "MCD", true},
		{"it falls under the cantonment board", "Cantonment Board", true},
		{"either MCD or PWD", "MCD", true}, // first in taxonomy order wins
		{"no agency named here", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchAuthority(tc.text)
		if got != tc.want || ok != tc.ok {
			t.Errorf("MatchAuthority(%q) = %q,%v; want %q,%v", tc.text, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyByKeywords(t *testing.T) {
	cases := []struct {
		desc string
		want string
	}{
		{"sewage overflow near pipeline", "DJB"},
		{"storm water drain blocked on the highway", "PWD"},
		{"flooding inside the cantonment area", "Cantonment Board"},
		{"waterlogging near Connaught Place", "NDMC"},
		{"knee-deep water in our colony street", "MCD"}, // default jurisdiction
	}
	for _, tc := range cases {
		if got := ClassifyByKeywords(tc.desc); got != tc.want {
			t.Errorf("ClassifyByKeywords(%q) = %q; want %q", tc.desc, got, tc.want)
		}
	}
}
