// Package config manages application configuration from environment variables and .env files.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Configuration keys.
const (
	KeyStore         = "TASKFLOW_STORE"
	KeyPrefs         = "TASKFLOW_PREFS"
	KeyPrefsPath     = "TASKFLOW_PREFS_PATH"
	KeyTimelineWeeks = "TASKFLOW_TIMELINE_WEEKS"
	KeyHTTPPort      = "TASKFLOW_HTTP_PORT"
	KeyCategories    = "TASKFLOW_CATEGORIES"
	KeyNeo4jURI      = "NEO4J_URI"
	KeyNeo4jUsername = "NEO4J_USERNAME"
	KeyNeo4jPassword = "NEO4J_PASSWORD"
	KeyNeo4jDatabase = "NEO4J_DATABASE"
	KeyNeo4jImage    = "NEO4J_IMAGE"
	KeyContainerName = "NEO4J_CONTAINER_NAME"
	KeyLogLevel      = "LOG_LEVEL"
)

// Keys lists every configuration key in display order.
var Keys = []string{
	KeyStore, KeyPrefs, KeyPrefsPath, KeyTimelineWeeks, KeyHTTPPort, KeyCategories,
	KeyNeo4jURI, KeyNeo4jUsername, KeyNeo4jPassword, KeyNeo4jDatabase, KeyNeo4jImage, KeyContainerName,
	KeyLogLevel,
}

// Task store backends.
const (
	StoreMemory = "memory"
	StoreNeo4j  = "neo4j"
)

// Preference backends.
const (
	PrefsFile   = "file"
	PrefsSQLite = "sqlite"
	PrefsNeo4j  = "neo4j"
	PrefsMemory = "memory"
)

var (
	validStores = []string{StoreMemory, StoreNeo4j}
	validPrefs  = []string{PrefsFile, PrefsSQLite, PrefsNeo4j, PrefsMemory}
)

// Config holds the application configuration.
type Config struct {
	Store          string
	Prefs          string
	PrefsPath      string
	TimelineWeeks  int
	HTTPPort       int
	CategoriesPath string
	LogLevel       string

	Neo4jURI      string
	Neo4jUsername string
	Neo4jPassword string
	Neo4jDatabase string
	Neo4jImage    string
	ContainerName string
}

// source resolves a key with precedence local > global > env.
type source struct {
	local  map[string]string
	global map[string]string
}

func newSource(dir string) source {
	local, err := godotenv.Read(GetConfigPath(dir))
	if err != nil {
		local = make(map[string]string)
	}
	global, err := godotenv.Read(GetGlobalConfigPath())
	if err != nil {
		global = make(map[string]string)
	}
	return source{local: local, global: global}
}

func (s source) get(key string) string {
	if value, ok := s.local[key]; ok && value != "" {
		return value
	}
	if value, ok := s.global[key]; ok && value != "" {
		return value
	}
	return os.Getenv(key)
}

func (s source) getOrDefault(key, defaultValue string) string {
	if value := s.get(key); value != "" {
		return value
	}
	return defaultValue
}

func (s source) getInt(key string, defaultValue int) (int, error) {
	raw := s.get(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q is not a positive integer", key, raw)
	}
	return n, nil
}

// Load reads configuration from a .env file in the specified directory.
// Values fall back to the global config (~/.taskflow/config), then to
// environment variables and defaults.
func Load(dir string) (*Config, error) {
	cfg, err := read(newSource(dir))
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func read(src source) (*Config, error) {
	cfg := &Config{
		Store:          strings.ToLower(src.getOrDefault(KeyStore, StoreMemory)),
		Prefs:          strings.ToLower(src.getOrDefault(KeyPrefs, PrefsFile)),
		CategoriesPath: src.get(KeyCategories),
		LogLevel:       src.getOrDefault(KeyLogLevel, "info"),
		Neo4jURI:       src.getOrDefault(KeyNeo4jURI, "neo4j://localhost:7687"),
		Neo4jUsername:  src.getOrDefault(KeyNeo4jUsername, "neo4j"),
		Neo4jPassword:  src.get(KeyNeo4jPassword),
		Neo4jDatabase:  src.getOrDefault(KeyNeo4jDatabase, "neo4j"),
		Neo4jImage:     src.getOrDefault(KeyNeo4jImage, "neo4j:5.25-community"),
		ContainerName:  src.getOrDefault(KeyContainerName, "taskflow-neo4j"),
	}
	cfg.PrefsPath = src.getOrDefault(KeyPrefsPath, DefaultPrefsPath(cfg.Prefs))

	var err error
	if cfg.TimelineWeeks, err = src.getInt(KeyTimelineWeeks, 16); err != nil {
		return cfg, err
	}
	if cfg.HTTPPort, err = src.getInt(KeyHTTPPort, 8080); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// DefaultPrefsPath returns the preference file location for backend.
func DefaultPrefsPath(backend string) string {
	if backend == PrefsSQLite {
		return filepath.Join(GetGlobalConfigDir(), "prefs.db")
	}
	return filepath.Join(GetGlobalConfigDir(), "prefs.env")
}

// UsesNeo4j reports whether any backend needs a Neo4j connection.
func (c *Config) UsesNeo4j() bool {
	return c.Store == StoreNeo4j || c.Prefs == PrefsNeo4j
}

// Validate checks backend names and, when Neo4j is in use, the connection fields.
func (c *Config) Validate() error {
	if !slices.Contains(validStores, c.Store) {
		return fmt.Errorf("invalid %s %q: must be one of %s", KeyStore, c.Store, strings.Join(validStores, ", "))
	}
	if !slices.Contains(validPrefs, c.Prefs) {
		return fmt.Errorf("invalid %s %q: must be one of %s", KeyPrefs, c.Prefs, strings.Join(validPrefs, ", "))
	}

	if !c.UsesNeo4j() {
		return nil
	}

	var missing []string
	if c.Neo4jURI == "" {
		missing = append(missing, KeyNeo4jURI)
	}
	if c.Neo4jUsername == "" {
		missing = append(missing, KeyNeo4jUsername)
	}
	if c.Neo4jPassword == "" {
		missing = append(missing, KeyNeo4jPassword)
	}
	if c.Neo4jDatabase == "" {
		missing = append(missing, KeyNeo4jDatabase)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration fields: %s", strings.Join(missing, ", "))
	}

	return nil
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Values returns every key with its resolved value.
func (c *Config) Values() map[string]string {
	return map[string]string{
		KeyStore:         c.Store,
		KeyPrefs:         c.Prefs,
		KeyPrefsPath:     c.PrefsPath,
		KeyTimelineWeeks: strconv.Itoa(c.TimelineWeeks),
		KeyHTTPPort:      strconv.Itoa(c.HTTPPort),
		KeyCategories:    c.CategoriesPath,
		KeyNeo4jURI:      c.Neo4jURI,
		KeyNeo4jUsername: c.Neo4jUsername,
		KeyNeo4jPassword: c.Neo4jPassword,
		KeyNeo4jDatabase: c.Neo4jDatabase,
		KeyNeo4jImage:    c.Neo4jImage,
		KeyContainerName: c.ContainerName,
		KeyLogLevel:      c.LogLevel,
	}
}

// GetConfigPath returns the full path to the .env file in the given directory.
func GetConfigPath(dir string) string {
	return filepath.Join(dir, ".env")
}

// Set updates or creates a configuration value in the .env file.
func Set(dir, key, value string) error {
	return writeKey(GetConfigPath(dir), key, value)
}

// Get retrieves a configuration value from the .env file.
func Get(dir, key string) (string, error) {
	return readKey(GetConfigPath(dir), key, "configuration")
}

func writeKey(path, key, value string) error {
	envMap, err := godotenv.Read(path)
	if err != nil {
		envMap = make(map[string]string)
	}
	envMap[key] = value
	if err := godotenv.Write(envMap, path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func readKey(path, key, scope string) (string, error) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", scope, err)
	}
	value, ok := envMap[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in %s", key, scope)
	}
	return value, nil
}
