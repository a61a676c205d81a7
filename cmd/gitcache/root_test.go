package main

import (
	"errors"
	"testing"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/giturl"
)

func TestRecognized(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"clone", true},
		{"fetch", true},
		{"pull", true},
		{"cache", true},
		{"cache-attach", true},
		{"cache_attach", true},
		{"cache-detach", true},
		{"cache_repair", true},
		{"cache-dir", true},
		{"cache_list", true},
		{"help", true},
		{"status", false},
		{"push", false},
		{"rebase", false},
		{"log", false},
		{"clonex", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recognized(tt.name); got != tt.want {
				t.Errorf("recognized(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	if err := exitCode(0, nil); err != nil {
		t.Errorf("expected nil error for success, got %v", err)
	}

	err := exitCode(3, nil)
	var exitErr exitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected exitCodeError, got %v", err)
	}
	if exitErr.code != 3 {
		t.Errorf("expected code 3, got %d", exitErr.code)
	}

	wrapped := errors.New("spawn failed")
	if err := exitCode(1, wrapped); !errors.Is(err, wrapped) {
		t.Errorf("expected spawn error to win over exit code, got %v", err)
	}
}

func TestCloneDestination(t *testing.T) {
	h := &cache.Handle{
		URL: giturl.URL{
			Address: "https://example.org/group/proj.git",
			Project: "proj",
		},
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "url only",
			args: []string{"https://example.org/group/proj.git"},
			want: "proj",
		},
		{
			name: "explicit destination",
			args: []string{"https://example.org/group/proj.git", "my-checkout"},
			want: "my-checkout",
		},
		{
			name: "trailing flag",
			args: []string{"https://example.org/group/proj.git", "--no-checkout"},
			want: "proj",
		},
		{
			name: "flags before url",
			args: []string{"--depth", "50", "https://example.org/group/proj.git"},
			want: "proj",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cloneDestination(tt.args, h); got != tt.want {
				t.Errorf("cloneDestination(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
