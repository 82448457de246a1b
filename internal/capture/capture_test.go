package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func recvLine(t *testing.T, f *Follower) string {
	t.Helper()
	select {
	case line, ok := <-f.Lines():
		if !ok {
			t.Fatal("Lines closed unexpectedly")
		}
		return line
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for line")
	}
	return ""
}

func TestFollower_FromStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	if err := os.WriteFile(path, []byte("begin\nend\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := New(context.Background(), path, DefaultConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer f.Stop()

	if got := recvLine(t, f); got != "begin" {
		t.Errorf("line = %q, want begin", got)
	}
	if got := recvLine(t, f); got != "end" {
		t.Errorf("line = %q, want end", got)
	}
}

func TestFollower_PicksUpAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	cfg := DefaultConfig()
	cfg.Poll = true // inotify can be unavailable in test sandboxes
	f, err := New(context.Background(), path, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer f.Stop()

	if _, err := file.WriteString("begin\n"); err != nil {
		t.Fatal(err)
	}
	if err := file.Sync(); err != nil {
		t.Fatal(err)
	}

	if got := recvLine(t, f); got != "begin" {
		t.Errorf("line = %q, want begin", got)
	}
}

func TestFollower_MissingFile(t *testing.T) {
	_, err := New(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), DefaultConfig())
	if err == nil {
		t.Error("New() expected error for missing file")
	}
}

func TestFollower_StopTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.txt")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := New(context.Background(), path, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Stop(); err != nil {
		t.Fatalf("first Stop() error = %v", err)
	}
	if err := f.Stop(); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
}
