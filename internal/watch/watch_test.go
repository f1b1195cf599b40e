package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string, patterns []string) (*Watcher, chan []string) {
	t.Helper()
	changes := make(chan []string, 8)
	w, err := New(100*time.Millisecond, patterns, func(paths []string) {
		changes <- paths
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { w.Close() })

	if err := w.Watch([]string{dir}); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	return w, changes
}

// waitFor collects callbacks until every wanted path was seen.
func waitFor(t *testing.T, changes chan []string, want ...string) {
	t.Helper()
	missing := make(map[string]bool, len(want))
	for _, p := range want {
		missing[p] = true
	}
	timeout := time.After(2 * time.Second)
	for len(missing) > 0 {
		select {
		case paths := <-changes:
			for _, p := range paths {
				delete(missing, p)
			}
		case <-timeout:
			t.Fatalf("Timed out waiting for changes, still missing %v", missing)
		}
	}
}

func TestWatcherReportsSchematicChange(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir, nil)

	file := filepath.Join(dir, "rc.asc")
	if err := os.WriteFile(file, []byte("Version 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, file)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir, nil)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case paths := <-changes:
		t.Errorf("Expected no callback for non-matching file, got %v", paths)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherCustomPattern(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir, []string{"*.net"})

	file := filepath.Join(dir, "out.net")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, file)
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir, nil)

	a := filepath.Join(dir, "a.asc")
	b := filepath.Join(dir, "b.asc")
	if err := os.WriteFile(a, []byte("Version 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("Version 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	// Both writes land inside one debounce window, or at worst two
	// callbacks; waitFor tolerates either.
	waitFor(t, changes, a, b)
}

func TestWatcherPicksUpNewDirectories(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir, nil)

	sub := filepath.Join(dir, "boards")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "amp.asc")
	if err := os.WriteFile(file, []byte("Version 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, changes, file)
}

func TestWatcherRejectsFilePath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rc.asc")
	if err := os.WriteFile(file, []byte("Version 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(100*time.Millisecond, nil, func([]string) {})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch([]string{file}); err == nil {
		t.Error("Expected error when watching a plain file")
	}
}

func TestWatcherRejectsBadPattern(t *testing.T) {
	if _, err := New(100*time.Millisecond, []string{"["}, func([]string) {}); err == nil {
		t.Error("Expected error for malformed glob pattern")
	}
}
