package cli

import (
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
color: never
prompt: ">> "
max_steps: 500000
history: /tmp/blisp_history.db
`)
	cfg, err := ParseConfig(data, "blisp.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != "never" {
		t.Errorf("expected color never, got %q", cfg.Color)
	}
	if cfg.Prompt != ">> " {
		t.Errorf("expected prompt %q, got %q", ">> ", cfg.Prompt)
	}
	if cfg.MaxSteps != 500000 {
		t.Errorf("expected max_steps 500000, got %d", cfg.MaxSteps)
	}
	if cfg.History != "/tmp/blisp_history.db" {
		t.Errorf("expected history path, got %q", cfg.History)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{}`), "blisp.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Color != "auto" {
		t.Errorf("expected default color auto, got %q", cfg.Color)
	}
	if cfg.Prompt != "blisp> " {
		t.Errorf("expected default prompt, got %q", cfg.Prompt)
	}
	if cfg.MaxSteps != 0 {
		t.Errorf("expected unbounded steps by default, got %d", cfg.MaxSteps)
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad color", "color: sometimes", "color must be"},
		{"negative steps", "max_steps: -1", "must not be negative"},
		{"bad yaml", "color: [", "parsing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), "blisp.yaml")
			if err == nil {
				t.Fatal("expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, err)
			}
		})
	}
}
