package essays_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/JaimeStill/laurel/internal/essays"
	"github.com/JaimeStill/laurel/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestFingerprint(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := essays.Fingerprint("the essay text")
		b := essays.Fingerprint("the essay text")
		if a != b {
			t.Errorf("same text produced different fingerprints: %s vs %s", a, b)
		}
	})

	t.Run("hex sha256 length", func(t *testing.T) {
		fp := essays.Fingerprint("anything")
		if len(fp) != 64 {
			t.Errorf("fingerprint length = %d, want 64", len(fp))
		}
	})

	t.Run("no normalization", func(t *testing.T) {
		tests := []struct {
			name string
			a    string
			b    string
		}{
			{"trailing whitespace", "essay", "essay "},
			{"casing", "Essay", "essay"},
			{"line endings", "line one\nline two", "line one\r\nline two"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if essays.Fingerprint(tt.a) == essays.Fingerprint(tt.b) {
					t.Error("distinct texts should produce distinct fingerprints")
				}
			})
		}
	})

	t.Run("known digest", func(t *testing.T) {
		// sha256 of the empty string
		want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
		if got := essays.Fingerprint(""); got != want {
			t.Errorf("Fingerprint(\"\") = %s, want %s", got, want)
		}
	})
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", essays.ErrNotFound, http.StatusNotFound},
		{"no source", essays.ErrNoSource, http.StatusNotFound},
		{"duplicate", essays.ErrDuplicate, http.StatusConflict},
		{"invalid input", essays.ErrInvalidInput, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", essays.ErrNotFound), http.StatusNotFound},
		{"wrapped no source", fmt.Errorf("source failed: %w", essays.ErrNoSource), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := essays.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"fingerprint":   {"abc123"},
			"filename":      {"essay.pdf"},
			"model_name":    {"llama3.1:8b"},
			"provider_name": {"ollama"},
		}

		f := essays.FiltersFromQuery(values)

		if f.Fingerprint == nil || *f.Fingerprint != "abc123" {
			t.Errorf("Fingerprint = %v, want abc123", f.Fingerprint)
		}
		if f.Filename == nil || *f.Filename != "essay.pdf" {
			t.Errorf("Filename = %v, want essay.pdf", f.Filename)
		}
		if f.ModelName == nil || *f.ModelName != "llama3.1:8b" {
			t.Errorf("ModelName = %v, want llama3.1:8b", f.ModelName)
		}
		if f.ProviderName == nil || *f.ProviderName != "ollama" {
			t.Errorf("ProviderName = %v, want ollama", f.ProviderName)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := essays.FiltersFromQuery(url.Values{})

		if f.Fingerprint != nil {
			t.Errorf("Fingerprint = %v, want nil", f.Fingerprint)
		}
		if f.Filename != nil {
			t.Errorf("Filename = %v, want nil", f.Filename)
		}
		if f.ModelName != nil {
			t.Errorf("ModelName = %v, want nil", f.ModelName)
		}
		if f.ProviderName != nil {
			t.Errorf("ProviderName = %v, want nil", f.ProviderName)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	projection := query.
		NewProjectionMap("public", "essays", "e").
		Project("fingerprint", "Fingerprint").
		Project("filename", "Filename").
		Project("model_name", "ModelName").
		Project("provider_name", "ProviderName")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := essays.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT e.fingerprint, e.filename, e.model_name, e.provider_name FROM public.essays e"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("fingerprint equals filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := essays.Filters{Fingerprint: ptr("abc123")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
	})

	t.Run("filename contains filter", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := essays.Filters{Filename: ptr("essay")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 || args[0] != "%essay%" {
			t.Errorf("args = %v, want [%%essay%%]", args)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(projection)
		f := essays.Filters{
			Fingerprint:  ptr("abc123"),
			ModelName:    ptr("llama3.1:8b"),
			ProviderName: ptr("ollama"),
		}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 3 {
			t.Errorf("args length = %d, want 3", len(args))
		}
	})
}
