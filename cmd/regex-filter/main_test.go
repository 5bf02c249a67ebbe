package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunFiltersDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "logs")
	writeFile(t, filepath.Join(dir, "server.log"), "Server IP: 192.168.1.1 connected.")
	filter := filepath.Join(root, "filter.json")
	writeFile(t, filter, `{"(\\d{1,3}\\.){3}\\d{1,3}": "x.x.x.x"}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--log-level", "error", dir, filter}, &stdout, &stderr); code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	got, err := os.ReadFile(filepath.Join(dir, "cleaned_files", "server.log"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != "Server IP: x.x.x.x connected." {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunMissingArgumentsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{}, &stdout, &stderr); code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr.String(), "usage: regex-filter") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}
}

func TestRunInvalidPatternFails(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "logs")
	writeFile(t, filepath.Join(dir, "a.txt"), "data")
	filter := filepath.Join(root, "filter.json")
	writeFile(t, filter, `{"(": "x"}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--log-level", "error", dir, filter}, &stdout, &stderr); code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}
	if _, err := os.Stat(filepath.Join(dir, "cleaned_files")); !os.IsNotExist(err) {
		t.Fatalf("output directory must not exist, stat err=%v", err)
	}
}

func TestRunInvalidSettingsFails(t *testing.T) {
	root := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{"--encoding", "klingon-8", root, filepath.Join(root, "f.json")}, &stdout, &stderr)
	if code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}
	if !strings.Contains(stderr.String(), "failed to load configuration") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunHelpExitsZero(t *testing.T) {
	original := terminate
	terminate = func(int) {}
	t.Cleanup(func() { terminate = original })

	for _, flag := range []string{"--help", "-h"} {
		var stdout, stderr bytes.Buffer
		if code := run([]string{flag}, &stdout, &stderr); code != exitOK {
			t.Fatalf("%s: expected exit 0, got %d (stderr: %s)", flag, code, stderr.String())
		}
		if !strings.Contains(stdout.String(), "usage: regex-filter") {
			t.Fatalf("%s: expected usage on stdout, got %q", flag, stdout.String())
		}
	}
}

func TestRunInterruptedExitsNonZero(t *testing.T) {
	original := notifyContext
	notifyContext = func(parent context.Context, _ ...os.Signal) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(parent)
		cancel()
		return ctx, cancel
	}
	t.Cleanup(func() { notifyContext = original })

	root := t.TempDir()
	dir := filepath.Join(root, "logs")
	writeFile(t, filepath.Join(dir, "server.log"), "10.0.0.1")
	filter := filepath.Join(root, "filter.json")
	writeFile(t, filter, `{"(\\d{1,3}\\.){3}\\d{1,3}": "x.x.x.x"}`)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"--log-level", "error", dir, filter}, &stdout, &stderr); code != exitFailure {
		t.Fatalf("expected exit %d, got %d", exitFailure, code)
	}
	if _, err := os.Stat(filepath.Join(dir, "cleaned_files", "server.log")); !os.IsNotExist(err) {
		t.Fatalf("interrupted run must not write files, stat err=%v", err)
	}
}
