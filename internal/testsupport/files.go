package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cinelist/internal/config"
)

// WriteList writes a list file under the config's list directory, joining
// lines with newlines. The name is the bare source name ("actors",
// "movies"); the configured extension is appended.
func WriteList(t testing.TB, cfg *config.Config, name string, lines ...string) string {
	t.Helper()

	path := cfg.ListPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
