package e2e

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const dateFormat = "2006-01-02"

func TestEndToEndWorkflow(t *testing.T) {
	// 1. Setup Environment
	// Allow overriding bin dir via env var, default to ../../bin (relative to tests/e2e)
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("HABITLIT_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)
	t.Logf("Using bin dir: %s", binDir)

	cliPath := filepath.Join(binDir, "habitlit")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s. Build it with 'go build -o bin/habitlit ./cmd/habitlit'.", cliPath)
	}

	// Create temp home for isolation
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "habitlit", "habitlit.db")

	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "HOME=") && !strings.HasPrefix(e, "HABITLIT_DB_CONNECTION=") {
			env = append(env, e)
		}
	}
	env = append(env,
		fmt.Sprintf("HOME=%s", tempDir),
		fmt.Sprintf("HABITLIT_DB_CONNECTION=%s", dbPath),
	)

	// 2. Initialize storage
	t.Log("Initializing storage...")
	runCmd(t, cliPath, env, "init")

	// 3. Create habits and mark the last three days
	runCmd(t, cliPath, env, "habit", "add", "Meditate")
	runCmd(t, cliPath, env, "habit", "add", "Read")

	today := time.Now()
	for i := 2; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(dateFormat)
		runCmd(t, cliPath, env, "mark", "Meditate", "--date", day)
	}
	runCmd(t, cliPath, env, "mark", "Read")

	// 4. Reports
	out := runCmd(t, cliPath, env, "stats")
	if !strings.Contains(out, "Meditate") || !strings.Contains(out, "Read") {
		t.Errorf("stats output missing habits:\n%s", out)
	}

	out = runCmd(t, cliPath, env, "summary")
	if !strings.Contains(out, "Meditate (3 days)") {
		t.Errorf("summary should name Meditate as best streak:\n%s", out)
	}

	runCmd(t, cliPath, env, "breakdown")

	// 5. Export, wipe via import, and verify the counts survive
	exportPath := filepath.Join(tempDir, "export.json")
	runCmd(t, cliPath, env, "export", "--out", exportPath)

	data, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var doc struct {
		Habits      []json.RawMessage `json:"habits"`
		Completions []json.RawMessage `json:"completions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(doc.Habits) != 2 || len(doc.Completions) != 4 {
		t.Errorf("expected 2 habits and 4 completions, got %d and %d", len(doc.Habits), len(doc.Completions))
	}

	runCmd(t, cliPath, env, "habit", "delete", "Read", "--yes")
	runCmd(t, cliPath, env, "import", exportPath)

	out = runCmd(t, cliPath, env, "habit", "list")
	if !strings.Contains(out, "Read") {
		t.Errorf("import should restore deleted habit:\n%s", out)
	}

	// 6. Snapshots taken before destructive commands
	out = runCmd(t, cliPath, env, "backup", "list")
	if strings.Contains(out, "No backups found") {
		t.Errorf("expected automatic backups:\n%s", out)
	}

	runCmd(t, cliPath, env, "doctor")
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
