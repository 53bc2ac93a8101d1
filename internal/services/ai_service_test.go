package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"inboxagent/internal/config"
)

const testAPIKey = "AIzaSyTEST-0123456789abcdefghijklmno"

// fakeProvider answers every call through respond and records the prompts.
type fakeProvider struct {
	mu      sync.Mutex
	prompts []string
	respond func(prompt string) (string, error)
}

func (f *fakeProvider) CallAI(ctx context.Context, messages []Message, maxTokens int, temperature float64) (*Completion, error) {
	prompt := messages[len(messages)-1].Content
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, err := f.respond(prompt)
	if err != nil {
		return nil, err
	}
	return &Completion{Content: text}, nil
}

func (f *fakeProvider) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestParseActionItems(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"plain list", `[{"task":"Send report","deadline":"Friday"}]`, 1},
		{"fenced with tag", "```json\n[{\"task\":\"a\",\"deadline\":\"b\"},{\"task\":\"c\",\"deadline\":\"None\"}]\n```", 2},
		{"fenced without tag", "```\n[{\"task\":\"a\",\"deadline\":\"b\"}]\n```", 1},
		{"empty list", "[]", 0},
		{"prose", "There are no action items.", 0},
		{"object not list", `{"task":"a","deadline":"b"}`, 0},
		{"null", "null", 0},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseActionItems(tt.in)
			if got == nil {
				t.Fatalf("got nil slice")
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d (%+v)", len(got), tt.want, got)
			}
		})
	}

	items := ParseActionItems("```json\n[{\"task\":\"Send report\",\"deadline\":\"Friday\"}]\n```")
	if items[0].Task != "Send report" || items[0].Deadline != "Friday" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
}

func TestCleanAPIKey(t *testing.T) {
	tests := map[string]string{
		"  abc  ":       "abc",
		`"abc"`:         "abc",
		`'abc'`:         "abc",
		` "'abc'" `:     "abc",
		"":              "",
		"no-quotes-key": "no-quotes-key",
	}
	for in, want := range tests {
		if got := CleanAPIKey(in); got != want {
			t.Errorf("CleanAPIKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewAIServiceRejectsBadKeys(t *testing.T) {
	cases := []struct {
		key  string
		want error
	}{
		{"", ErrAPIKeyMissing},
		{`  ""  `, ErrAPIKeyMissing},
		{"short-key", ErrAPIKeyTooShort},
	}
	for _, c := range cases {
		_, err := NewAIService(context.Background(), config.AIConfig{Channel: "gemini", APIKey: c.key}, nil)
		if !errors.Is(err, c.want) {
			t.Errorf("key %q: err = %v, want %v", c.key, err, c.want)
		}
	}
}

func TestNewAIServiceGeminiRoundTrip(t *testing.T) {
	var gotPaths []string
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		gotKey = r.URL.Query().Get("key")

		var req GeminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		text := req.Contents[0].Parts[0].Text
		reply := "ok"
		if strings.Contains(text, "Categorize this email") {
			reply = "  Meeting \n"
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": reply}}}},
			},
		})
	}))
	defer server.Close()

	svc, err := NewAIService(context.Background(), config.AIConfig{
		Channel: "gemini",
		BaseURL: server.URL,
		APIKey:  ` "` + testAPIKey + `" `,
		Model:   "gemini-flash-latest",
		Timeout: 5 * time.Second,
	}, nil)
	if err != nil {
		t.Fatalf("NewAIService: %v", err)
	}
	if !svc.Enabled() {
		t.Fatalf("expected enabled service")
	}
	if gotKey != testAPIKey {
		t.Fatalf("key = %q, want cleaned key", gotKey)
	}
	if gotPaths[0] != "/models/gemini-flash-latest:generateContent" {
		t.Fatalf("path = %q", gotPaths[0])
	}

	category, err := svc.Categorize(context.Background(), "From: a\nSubject: b\n\nc")
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if category != "Meeting" {
		t.Fatalf("category = %q, want trimmed Meeting", category)
	}
}

func TestNewAIServiceFailsWhenTestCallFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer server.Close()

	_, err := NewAIService(context.Background(), config.AIConfig{
		Channel: "gemini",
		BaseURL: server.URL,
		APIKey:  testAPIKey,
		Model:   "gemini-flash-latest",
	}, nil)
	if err == nil || !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("err = %v, want provider message", err)
	}
}

func TestOpenAIAndClaudeProviders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/chat/completions":
			if r.Header.Get("Authorization") != "Bearer "+testAPIKey {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(`{"model":"gpt","choices":[{"message":{"role":"assistant","content":"from openai"}}]}`))
		case "/messages":
			if r.Header.Get("x-api-key") != testAPIKey || r.Header.Get("anthropic-version") == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var req ClaudeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.MaxTokens == 0 {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"model":"claude","content":[{"type":"text","text":"from claude"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	for channel, want := range map[string]string{"openai": "from openai", "claude": "from claude"} {
		provider, err := NewAIProvider(config.AIConfig{Channel: channel, BaseURL: server.URL + "/", APIKey: testAPIKey, Model: "m"})
		if err != nil {
			t.Fatalf("%s: %v", channel, err)
		}
		completion, err := provider.CallAI(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0, 0)
		if err != nil {
			t.Fatalf("%s call: %v", channel, err)
		}
		if completion.Content != want {
			t.Fatalf("%s content = %q", channel, completion.Content)
		}
	}
}

func TestNewAIProviderRejectsUnknownChannel(t *testing.T) {
	if _, err := NewAIProvider(config.AIConfig{Channel: "palm"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewHTTPClientProxy(t *testing.T) {
	if _, err := newHTTPClient(time.Second, "socks5://127.0.0.1:1080"); err != nil {
		t.Fatalf("socks5 proxy: %v", err)
	}
	if _, err := newHTTPClient(time.Second, "http://127.0.0.1:3128"); err != nil {
		t.Fatalf("http proxy: %v", err)
	}
	if _, err := newHTTPClient(time.Second, "gopher://127.0.0.1:70"); err == nil {
		t.Fatalf("expected unsupported scheme to fail")
	}
}

func TestDisabledAIServiceReturnsErrorStrings(t *testing.T) {
	svc := DisabledAIService(ErrAPIKeyMissing)
	if svc.Enabled() {
		t.Fatalf("disabled service reports enabled")
	}
	if !errors.Is(svc.DisabledReason(), ErrAPIKeyMissing) {
		t.Fatalf("reason = %v", svc.DisabledReason())
	}
	if got := svc.GenerateResponse(context.Background(), "ctx", "q"); !strings.HasPrefix(got, "Error: ") {
		t.Fatalf("response = %q", got)
	}
	if got := svc.GenerateDraft(context.Background(), "ctx", "q"); !strings.HasPrefix(got, "Error generating draft: ") {
		t.Fatalf("draft = %q", got)
	}
	if _, err := svc.Categorize(context.Background(), "x"); !errors.Is(err, ErrAIDisabled) {
		t.Fatalf("categorize err = %v", err)
	}
}

func TestGenerateResponseEmbedsContextAndQuery(t *testing.T) {
	fake := &fakeProvider{respond: func(string) (string, error) { return "answer", nil }}
	svc := NewAIServiceWithProvider(fake, nil)

	if got := svc.GenerateResponse(context.Background(), "From: boss", "what is due?"); got != "answer" {
		t.Fatalf("response = %q", got)
	}
	prompt := fake.prompts[0]
	if !strings.Contains(prompt, "From: boss") || !strings.Contains(prompt, "what is due?") {
		t.Fatalf("prompt missing inputs: %q", prompt)
	}

	fake.respond = func(string) (string, error) { return "", errors.New("quota exceeded") }
	if got := svc.GenerateDraft(context.Background(), "e", "i"); got != "Error generating draft: quota exceeded" {
		t.Fatalf("draft = %q", got)
	}
}
