package hxtitle

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
)

func echoRender(p greetProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<em>"+templ.EscapeString(p.Name)+"</em>")
		return err
	})
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestMemo_SkipsEqualProps(t *testing.T) {
	m := NewMemo(echoRender)

	first := renderString(t, m.Render(greetProps{Name: "a"}))
	second := renderString(t, m.Render(greetProps{Name: "a"}))

	if first != second {
		t.Errorf("outputs differ: %q vs %q", first, second)
	}
	if m.Renders() != 1 {
		t.Errorf("Renders() = %d, want 1", m.Renders())
	}
}

func TestMemo_RerendersOnChange(t *testing.T) {
	m := NewMemo(echoRender)

	tests := []struct {
		name    string
		renders int
		want    string
	}{
		{"a", 1, "<em>a</em>"},
		{"b", 2, "<em>b</em>"},
		{"b", 2, "<em>b</em>"},
		{"a", 3, "<em>a</em>"},
	}

	for _, tt := range tests {
		got := renderString(t, m.Render(greetProps{Name: tt.name}))
		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.name, got, tt.want)
		}
		if m.Renders() != tt.renders {
			t.Errorf("after %q Renders() = %d, want %d", tt.name, m.Renders(), tt.renders)
		}
	}
}

func TestMemo_ErrorIsNotCached(t *testing.T) {
	fail := true
	m := NewMemo(func(p greetProps) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if fail {
				return errors.New("boom")
			}
			_, err := io.WriteString(w, "ok")
			return err
		})
	})

	if err := m.Render(greetProps{}).Render(context.Background(), io.Discard); err == nil {
		t.Fatal("expected error")
	}

	fail = false
	if got := renderString(t, m.Render(greetProps{})); got != "ok" {
		t.Errorf("Render() = %q, want ok", got)
	}
}
