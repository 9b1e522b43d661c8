package hxtitle

import (
	"strings"
	"testing"
)

func TestRegistry_Add(t *testing.T) {
	reg, g := registered(t)

	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
	if g.Encoder() != reg.Encoder() {
		t.Error("registration should hand the registry encoder to the component")
	}
}

func TestRegistry_WithBase(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"/app/components", "/app/components/"},
		{"app/components/", "/app/components/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			reg := NewRegistry([]byte("test-key"), WithBase(tt.base))
			g := newGreeter()
			reg.Add(g)

			if reg.Base() != tt.want {
				t.Errorf("Base() = %q, want %q", reg.Base(), tt.want)
			}
			if !strings.HasPrefix(g.Prefix(), tt.want+"greeter-") {
				t.Errorf("Prefix() = %q, want under %q", g.Prefix(), tt.want)
			}

			url, _ := g.URL(greetProps{Name: "based"})
			if result := TestGet(reg.Handler(), url); !result.HTMLContains("Hello, based!") {
				t.Errorf("status %d, HTML = %q", result.StatusCode, result.HTML)
			}
		})
	}
}

func TestRegistry_RejectsNonComponent(t *testing.T) {
	reg := NewRegistry([]byte("test-key"))

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for non-component")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "does not embed") {
			t.Errorf("panic = %v", r)
		}
	}()
	reg.Add(struct{}{})
}

func TestRegistry_PrefixCollision(t *testing.T) {
	reg, g := registered(t)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for prefix collision")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "prefix collision") {
			t.Errorf("panic = %v", r)
		}
	}()
	reg.Add(g)
}

func TestNewRegistry_EmptyKeyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty key")
		}
	}()
	NewRegistry(nil)
}
