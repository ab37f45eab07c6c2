package translation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewTranslator(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{"default is deepl", Config{URL: "https://x.example.com"}, "deepl", false},
		{"deepl needs url", Config{Provider: "deepl"}, "", true},
		{"openai", Config{Provider: "OpenAI", APIKey: "k"}, "openai", false},
		{"gemini needs key", Config{Provider: "gemini"}, "", true},
		{"unknown", Config{Provider: "babelfish"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTranslator(context.Background(), tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTranslator() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tr.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", tr.Name(), tt.wantName)
			}
		})
	}
}

func TestNewTranslator_Breaker(t *testing.T) {
	tr, err := NewTranslator(context.Background(), Config{URL: "https://x.example.com", Breaker: true})
	if err != nil {
		t.Fatalf("NewTranslator failed: %v", err)
	}
	if _, ok := tr.(*BreakerTranslator); !ok {
		t.Errorf("expected *BreakerTranslator, got %T", tr)
	}
}

func TestBuildPrompt(t *testing.T) {
	auto := buildPrompt(Request{Text: "hola", Source: "AUTO", Target: "DE"})
	if !strings.Contains(auto, "Detect the language") || !strings.Contains(auto, "German") || !strings.HasSuffix(auto, "hola") {
		t.Errorf("unexpected auto prompt %q", auto)
	}

	explicit := buildPrompt(Request{Text: "hola", Source: "ES", Target: "EN"})
	if !strings.Contains(explicit, "Spanish") || !strings.Contains(explicit, "English") {
		t.Errorf("unexpected prompt %q", explicit)
	}
}

func TestOpenAITranslator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") == "Bearer bad" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "x",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "  Hallo Welt \n"}},
			},
		})
	}))
	defer srv.Close()

	good := NewOpenAITranslator("good", srv.URL+"/v1", "")
	out, err := good.Translate(context.Background(), Request{Text: "hello world", Source: "AUTO", Target: "DE"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "Hallo Welt" {
		t.Errorf("Translate() = %q, want trimmed output", out)
	}

	bad := NewOpenAITranslator("bad", srv.URL+"/v1", "")
	if _, err := bad.Translate(context.Background(), Request{Text: "hello", Target: "DE"}); !IsApplicationError(err) {
		t.Errorf("expected application error, got %v", err)
	}

	noKey := NewOpenAITranslator("", srv.URL+"/v1", "")
	if _, err := noKey.Translate(context.Background(), Request{Text: "hello", Target: "DE"}); err == nil || err.Error() != "OpenAI API key not found" {
		t.Errorf("expected missing key error, got %v", err)
	}
}
