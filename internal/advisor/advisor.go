// Package advisor routes incident reports to the responsible civic agency
// and powers the citizen assistant chat. It talks to an OpenAI-compatible
// completion endpoint through an ordered list of models, falling through
// to the next model on any failure. Model output is never trusted as an
// authority name directly: replies are matched against the closed five-
// agency taxonomy, and unmatched replies fall back to a deterministic
// keyword classifier.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when every configured model failed. Callers
// can degrade to ClassifyByKeywords in that case.
var ErrUnavailable = errors.New("advisor unavailable: all models failed")

// Authorities is the closed taxonomy of responsible agencies, in the
// fixed order used for reply matching (first match wins).
var Authorities = []string{"MCD", "PWD", "DJB", "NDMC", "Cantonment Board"}

// Advisor holds the completion client and its model fallback list.
type Advisor struct {
	client  *openai.Client
	models  []string
	timeout time.Duration
}

// Config configures the completion capability.
type Config struct {
	Endpoint string        // base URL, e.g. "https://api.openai.com/v1"
	APIKey   string        // optional for local endpoints
	Models   []string      // ordered fallback list, tried first to last
	Timeout  time.Duration // per-call bound; zero means 20s
}

// New builds an Advisor. At least one model is required.
func New(cfg Config) (*Advisor, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("advisor: endpoint is required")
	}
	if len(cfg.Models) == 0 {
		return nil, errors.New("advisor: at least one model is required")
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	cc.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Advisor{
		client:  openai.NewClientWithConfig(cc),
		models:  cfg.Models,
		timeout: timeout,
	}, nil
}

const dispatcherPromptFmt = `You are a Delhi Government dispatcher. Based on this report: "%s" at location "%s", identify which authority should handle it:
- MCD (Municipal Corporation of Delhi): For local colony roads, internal drains, and garbage related flooding.
- PWD (Public Works Department): For major arterial roads, flyovers, and large storm water drains.
- DJB (Delhi Jal Board): For sewage overflow, water pipeline bursts.
- NDMC (New Delhi Municipal Council): For Lutyens Delhi and Central Delhi areas.
- Cantonment Board: For military/cantonment areas.

Provide ONLY the Name of the authority (one of: MCD, PWD, DJB, NDMC, Cantonment Board).`

const assistantSystemPrompt = `You are the Delhi Waterlogging Monitoring & Response System Assistant.
Provide helpful, calm, and authoritative guidance to citizens.
Capabilities:
- Guide users through creating a report (provide info about title, severity, location).
- Provide emergency contacts (Fire: 101, Police: 100/112, Ambulance: 102).
- Give safety tips (Electrical safety, health, traffic).
- Explain authority roles (MCD: Local drains, PWD: Major roads, DJB: Water supply/sewerage).
Strict Guardrails:
- Informational only.
- No medical or legal diagnosis.
- If someone is in immediate danger, tell them to call 112 or 101.
Current context: Waterlogging in Delhi.`

// complete runs one chat completion against the model list, returning the
// first successful reply. Every call is bounded by the configured timeout.
func (a *Advisor) complete(ctx context.Context, system, user string) (string, error) {
	messages := []openai.ChatCompletionMessage{}
	if system != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: openai.ChatMessageRoleSystem, Content: system,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: user,
	})

	for _, m := range a.models {
		callCtx, cancel := context.WithTimeout(ctx, a.timeout)
		resp, err := a.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
			Model:     m,
			Messages:  messages,
			MaxTokens: 500,
		})
		cancel()
		if err != nil {
			log.Printf("advisor: model %s failed, trying next: %v", m, err)
			continue
		}
		if len(resp.Choices) == 0 {
			log.Printf("advisor: model %s returned no choices, trying next", m)
			continue
		}
		return resp.Choices[0].Message.Content, nil
	}
	return "", ErrUnavailable
}

// PredictAuthority names the agency responsible for a described incident.
// The reply is scanned case-insensitively for a canonical authority name;
// if the model says something unrecognizable the deterministic keyword
// classifier decides instead. An ErrUnavailable is returned only when
// every model failed.
func (a *Advisor) PredictAuthority(ctx context.Context, description, location string) (string, error) {
	prompt := fmt.Sprintf(dispatcherPromptFmt, description, location)
	reply, err := a.complete(ctx, "", prompt)
	if err != nil {
		return "", err
	}
	if name, ok := MatchAuthority(reply); ok {
		return name, nil
	}
	// best-effort heuristic, not a contract: the model free-text named no
	// known agency, so classify from the description itself
	return ClassifyByKeywords(description), nil
}

// Chat returns a guided assistant reply for a citizen message.
func (a *Advisor) Chat(ctx context.Context, message string) (string, error) {
	return a.complete(ctx, assistantSystemPrompt, "User: "+message)
}

// MatchAuthority scans free text for a canonical authority name,
// case-insensitively, in the fixed taxonomy order. First match wins.
func MatchAuthority(text string) (string, bool) {
	upper := strings.ToUpper(text)
	for _, name := range Authorities {
		if strings.Contains(upper, strings.ToUpper(name)) {
			return name, true
		}
	}
	return "", false
}

// keywordRules maps description keywords to agencies, checked in order.
// MCD is the catch-all: local drains and colony flooding are its default
// jurisdiction.
var keywordRules = []struct {
	keywords  []string
	authority string
}{
	{[]string{"sewage", "sewer", "pipeline", "water supply"}, "DJB"},
	{[]string{"flyover", "arterial", "highway", "storm water"}, "PWD"},
	{[]string{"cantonment", "military"}, "Cantonment Board"},
	{[]string{"lutyens", "central delhi", "connaught"}, "NDMC"},
}

// ClassifyByKeywords is the deterministic fallback used when the
// completion capability is degraded or its reply named no known agency.
func ClassifyByKeywords(description string) string {
	lower := strings.ToLower(description)
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.authority
			}
		}
	}
	return "MCD"
}
