package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fitz/taskflow/internal/config"
)

// isolate points HOME at a temp dir and clears every config key from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range config.Keys {
		t.Setenv(key, "")
	}
	return home
}

func writeEnv(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Store != config.StoreMemory {
		t.Errorf("Expected store memory, got %q", cfg.Store)
	}
	if cfg.Prefs != config.PrefsFile {
		t.Errorf("Expected prefs file, got %q", cfg.Prefs)
	}
	if cfg.PrefsPath != filepath.Join(home, ".taskflow", "prefs.env") {
		t.Errorf("Unexpected prefs path %q", cfg.PrefsPath)
	}
	if cfg.TimelineWeeks != 16 {
		t.Errorf("Expected 16 timeline weeks, got %d", cfg.TimelineWeeks)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.ContainerName != "taskflow-neo4j" {
		t.Errorf("Unexpected container name %q", cfg.ContainerName)
	}
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	dir := t.TempDir()

	writeEnv(t, filepath.Join(dir, ".env"), "TASKFLOW_TIMELINE_WEEKS=4\n")
	writeEnv(t, filepath.Join(home, ".taskflow", "config"), "TASKFLOW_TIMELINE_WEEKS=8\nTASKFLOW_HTTP_PORT=9000\n")
	t.Setenv("TASKFLOW_HTTP_PORT", "9100")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TimelineWeeks != 4 {
		t.Errorf("Expected local value 4, got %d", cfg.TimelineWeeks)
	}
	if cfg.HTTPPort != 9000 {
		t.Errorf("Expected global value 9000 over env, got %d", cfg.HTTPPort)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("Expected env log level debug, got %v", cfg.SlogLevel())
	}
}

func TestLoad_SQLitePrefsPath(t *testing.T) {
	home := isolate(t)
	t.Setenv("TASKFLOW_PREFS", "sqlite")

	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.PrefsPath != filepath.Join(home, ".taskflow", "prefs.db") {
		t.Errorf("Unexpected prefs path %q", cfg.PrefsPath)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_TIMELINE_WEEKS", "many")

	if _, err := config.Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "TASKFLOW_TIMELINE_WEEKS") {
		t.Errorf("Expected error naming TASKFLOW_TIMELINE_WEEKS, got %v", err)
	}
}

func TestLoad_Neo4jRequiresPassword(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeEnv(t, filepath.Join(dir, ".env"), "TASKFLOW_STORE=neo4j\n")

	_, err := config.Load(dir)
	if err == nil || !strings.Contains(err.Error(), "NEO4J_PASSWORD") {
		t.Fatalf("Expected missing NEO4J_PASSWORD error, got %v", err)
	}

	t.Setenv("NEO4J_PASSWORD", "secret")
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() failed with password set: %v", err)
	}
	if !cfg.UsesNeo4j() {
		t.Error("Expected UsesNeo4j for neo4j store")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{"memory needs no neo4j", config.Config{Store: "memory", Prefs: "file"}, false},
		{"unknown store", config.Config{Store: "postgres", Prefs: "file"}, true},
		{"unknown prefs", config.Config{Store: "memory", Prefs: "cookie"}, true},
		{"neo4j prefs missing fields", config.Config{Store: "memory", Prefs: "neo4j"}, true},
		{
			"neo4j complete",
			config.Config{Store: "neo4j", Prefs: "neo4j", Neo4jURI: "neo4j://localhost:7687", Neo4jUsername: "neo4j", Neo4jPassword: "pw", Neo4jDatabase: "neo4j"},
			false,
		},
		{
			"neo4j missing uri",
			config.Config{Store: "neo4j", Prefs: "file", Neo4jUsername: "neo4j", Neo4jPassword: "pw", Neo4jDatabase: "neo4j"},
			true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := config.Config{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestValuesCoversKeys(t *testing.T) {
	values := (&config.Config{}).Values()
	for _, key := range config.Keys {
		if _, ok := values[key]; !ok {
			t.Errorf("Values() missing %s", key)
		}
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	expectedPath := filepath.Join(tmpDir, ".env")

	path := config.GetConfigPath(tmpDir)
	if path != expectedPath {
		t.Errorf("Expected config path '%s', got '%s'", expectedPath, path)
	}
}

func TestSet_UpdatesEnvFile(t *testing.T) {
	isolate(t)
	tmpDir := t.TempDir()

	if err := config.Set(tmpDir, "TASKFLOW_TIMELINE_WEEKS", "12"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := config.Set(tmpDir, "TASKFLOW_STORE", "memory"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() failed after Set(): %v", err)
	}
	if cfg.TimelineWeeks != 12 {
		t.Errorf("Expected 12 weeks, got %d", cfg.TimelineWeeks)
	}
}

func TestGet_RetrievesValue(t *testing.T) {
	tmpDir := t.TempDir()
	writeEnv(t, filepath.Join(tmpDir, ".env"), `NEO4J_USERNAME=myuser`)

	value, err := config.Get(tmpDir, "NEO4J_USERNAME")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if value != "myuser" {
		t.Errorf("Expected value 'myuser', got '%s'", value)
	}
}

func TestGet_NonExistentKey(t *testing.T) {
	if _, err := config.Get(t.TempDir(), "DOES_NOT_EXIST"); err == nil {
		t.Error("Get() should return error for non-existent key")
	}
}
