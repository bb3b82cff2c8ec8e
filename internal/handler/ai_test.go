package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeAdvisor scripts the RoutingAdvisor responses.
type fakeAdvisor struct {
	prediction string
	reply      string
	err        error
}

func (f *fakeAdvisor) PredictAuthority(ctx context.Context, description, location string) (string, error) {
	return f.prediction, f.err
}

func (f *fakeAdvisor) Chat(ctx context.Context, message string) (string, error) {
	return f.reply, f.err
}

func TestPredictAuthority(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{prediction: "PWD"})

	rec, out := postJSON(t, h.PredictAuthority, `{"description":"flyover underpass flooded","location":"ITO"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "PWD", out["prediction"])
	_, degraded := out["source"]
	require.False(t, degraded)
}

func TestPredictAuthority_DegradesToKeywords(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{err: errors.New("all models failed")})

	// "sewage" routes to DJB without any model call
	rec, out := postJSON(t, h.PredictAuthority, `{"description":"sewage overflowing onto the street"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "DJB", out["prediction"])
	require.Equal(t, "heuristic", out["source"])
}

func TestPredictAuthority_EmptyDescription(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{prediction: "MCD"})

	rec, out := postJSON(t, h.PredictAuthority, `{"description":"   "}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, out["error"], "description")
}

func TestChat(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{reply: "Please report it through the app and avoid the underpass."})

	rec, out := postJSON(t, h.Chat, `{"message":"my street is flooded, what do I do"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, out["reply"])
}

func TestChat_AdvisorDown(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{err: errors.New("all models failed")})

	rec, out := postJSON(t, h.Chat, `{"message":"help"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "assistant unavailable", out["error"])
}

func TestChat_EmptyMessage(t *testing.T) {
	h := NewAIHandler(&fakeAdvisor{reply: "hi"})

	rec, _ := postJSON(t, h.Chat, `{"message":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
