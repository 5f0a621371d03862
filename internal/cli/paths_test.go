package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/custom-cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestTracksPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cells.geff.json", "cells.tracks.json"},
		{"cells.json", "cells.tracks.json"},
		{"data/run1.geff.json", "data/run1.tracks.json"},
	}
	for _, tt := range tests {
		if got := tracksPath(tt.input); got != tt.want {
			t.Errorf("tracksPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLineagePath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cells.tracks.json", "cells.geff.json"},
		{"cells.json", "cells.geff.json"},
	}
	for _, tt := range tests {
		if got := lineagePath(tt.input); got != tt.want {
			t.Errorf("lineagePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderPath(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"cells.geff.json", "svg", "cells.svg"},
		{"cells.geff.json", "png", "cells.png"},
		{"cells.json", "dot", "cells.dot"},
	}
	for _, tt := range tests {
		if got := renderPath(tt.input, tt.format); got != tt.want {
			t.Errorf("renderPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestRoundTripPaths(t *testing.T) {
	// decompose output feeds reconstruct back to the original name
	if got := lineagePath(tracksPath("cells.geff.json")); got != "cells.geff.json" {
		t.Errorf("path round trip = %q, want cells.geff.json", got)
	}
}

func TestJoinInts(t *testing.T) {
	if got := joinInts([]int{1, 2, 3}); got != "1, 2, 3" {
		t.Errorf("joinInts = %q", got)
	}
	if got := joinInts(nil); got != "none" {
		t.Errorf("joinInts(nil) = %q, want none", got)
	}
	if !strings.Contains(joinInts([]int{7}), "7") {
		t.Error("joinInts single element should contain the ID")
	}
}
