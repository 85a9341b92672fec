package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/kbukum/hydrokit/errors"
)

func TestExpandURL(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    any
		want     string
	}{
		{
			name:     "no placeholders",
			template: "https://api.example.com/movies",
			input:    nil,
			want:     "https://api.example.com/movies",
		},
		{
			name:     "whole input",
			template: "https://api.example.com/movies/{input}",
			input:    603,
			want:     "https://api.example.com/movies/603",
		},
		{
			name:     "map field",
			template: "https://api.example.com/movies/{input.id}/cast",
			input:    map[string]any{"id": 603},
			want:     "https://api.example.com/movies/603/cast",
		},
		{
			name:     "two placeholders",
			template: "https://api.example.com/{input.kind}/{input.id}",
			input:    map[string]any{"kind": "movies", "id": "tt0113277"},
			want:     "https://api.example.com/movies/tt0113277",
		},
		{
			name:     "value is path escaped",
			template: "https://api.example.com/search/{input}",
			input:    "the matrix",
			want:     "https://api.example.com/search/the%20matrix",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandURL(tt.template, tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExpandURL_Errors(t *testing.T) {
	tests := []struct {
		name     string
		template string
		input    any
		wantMsg  string
	}{
		{
			name:     "nil input",
			template: "https://api.example.com/movies/{input}",
			input:    nil,
			wantMsg:  "input is nil",
		},
		{
			name:     "unsupported placeholder",
			template: "https://api.example.com/{tree}",
			input:    map[string]any{},
			wantMsg:  "unsupported url placeholder",
		},
		{
			name:     "field of non-map input",
			template: "https://api.example.com/movies/{input.id}",
			input:    603,
			wantMsg:  "needs a map input",
		},
		{
			name:     "missing field",
			template: "https://api.example.com/movies/{input.id}",
			input:    map[string]any{"title": "Heat"},
			wantMsg:  "not in input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandURL(tt.template, tt.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("expected message containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestHTTPSource_Operation(t *testing.T) {
	var gotPath, gotAccept, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title":"Heat","year":1995}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(SourceDef{
		URL:     srv.URL + "/movies/{input.id}",
		Headers: map[string]string{"X-Api-Key": "secret"},
	})

	out, err := src.Operation()(context.Background(), map[string]any{"id": 603})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded JSON object, got %T", out)
	}
	if doc["title"] != "Heat" || doc["year"] != float64(1995) {
		t.Fatalf("unexpected document: %v", doc)
	}
	if gotPath != "/movies/603" {
		t.Fatalf("expected expanded path /movies/603, got %s", gotPath)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected JSON accept header, got %q", gotAccept)
	}
	if gotKey != "secret" {
		t.Fatalf("expected configured header, got %q", gotKey)
	}
}

func TestHTTPSource_Operation_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewHTTPSource(SourceDef{URL: srv.URL + "/movies/603"})
	_, err := src.Operation()(context.Background(), nil)
	if !apperrors.HasCode(err, apperrors.ErrCodeUpstream) {
		t.Fatalf("expected UPSTREAM_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected status in message, got %v", err)
	}
}

func TestHTTPSource_Operation_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	src := NewHTTPSource(SourceDef{URL: srv.URL})
	_, err := src.Operation()(context.Background(), nil)
	if !apperrors.HasCode(err, apperrors.ErrCodeUpstream) {
		t.Fatalf("expected UPSTREAM_ERROR, got %v", err)
	}
}

func TestHTTPSource_Operation_ExpandError(t *testing.T) {
	src := NewHTTPSource(SourceDef{URL: "https://api.example.com/movies/{input.id}"})
	_, err := src.Operation()(context.Background(), "scalar")
	if err == nil {
		t.Fatal("expected error for unexpandable url")
	}
}

func TestNewHTTPSource_HeaderEnvExpansion(t *testing.T) {
	t.Setenv("MOVIES_API_KEY", "from-env")

	src := NewHTTPSource(SourceDef{
		URL: "https://api.example.com",
		Headers: map[string]string{
			"X-Api-Key":    "${MOVIES_API_KEY}",
			"X-Static-Val": "plain",
		},
	})

	if got := src.def.Headers["X-Api-Key"]; got != "from-env" {
		t.Fatalf("expected env-expanded header, got %q", got)
	}
	if got := src.def.Headers["X-Static-Val"]; got != "plain" {
		t.Fatalf("expected untouched header, got %q", got)
	}
}

func TestNewHTTPSource_DefaultTimeout(t *testing.T) {
	src := NewHTTPSource(SourceDef{URL: "https://api.example.com"})
	if src.client.Timeout != defaultSourceTimeout {
		t.Fatalf("expected default timeout, got %v", src.client.Timeout)
	}

	src = NewHTTPSource(SourceDef{URL: "https://api.example.com", Timeout: Duration(2 * time.Second)})
	if src.client.Timeout != 2*time.Second {
		t.Fatalf("expected configured timeout, got %v", src.client.Timeout)
	}
}
