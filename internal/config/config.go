// internal/config/config.go
//
// This package handles configuration and the .versaas directory structure.
// Every project that runs a Versaas simulation gets a .versaas/ folder
// created in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// VersaasDir is the name of the directory we create in each project
	VersaasDir = ".versaas"

	defaultTickInterval    = time.Second
	defaultHoursPerTick    = 1.0
	defaultSaveEveryTicks  = 60
	defaultBatchSize       = 10
	defaultQueueLimit      = 256
	defaultDailyBurn       = 2500.0
	defaultBudgetDays      = 180
	defaultGraceDays       = 30
	defaultGenTimeout      = 10 * time.Second
	defaultListenAddr      = ":8080"
	defaultLogLevel        = "info"
	defaultGeneratorKind   = "stub"
	defaultGeminiModel     = "gemini-2.0-flash"
	defaultGeminiAPIKeyEnv = "GEMINI_API_KEY"
)

const defaultProjectConfigYAML = `# versaas project configuration
version: 1

simulation:
  # Wall-clock pause between background ticks.
  tick_interval: 1s
  # Simulated hours added per tick while the run is active.
  hours_per_tick: 1.0
  # Persist company state every N ticks.
  save_every_ticks: 60

finance:
  daily_burn: 2500
  budget_days: 180
  revenue_grace_days: 30

generator:
  # stub or gemini
  kind: stub
  model: gemini-2.0-flash
  api_key_env: GEMINI_API_KEY
  timeout: 10s

http:
  listen_addr: ":8080"

logging:
  level: info
`

// Duration wraps time.Duration so config files can use "250ms" style
// values; yaml.v3 has no native duration support.
type Duration time.Duration

// UnmarshalYAML accepts either a duration string ("1s") or a number of
// seconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err == nil {
		parsed, perr := time.ParseDuration(strings.TrimSpace(raw))
		if perr != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, perr)
		}
		*d = Duration(parsed)
		return nil
	}
	var seconds float64
	if err := value.Decode(&seconds); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalYAML renders the duration in time.Duration string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// AsDuration converts back to the stdlib type.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// SimulationConfig controls the stepping loop cadence.
type SimulationConfig struct {
	TickInterval   Duration `yaml:"tick_interval"`
	HoursPerTick   float64  `yaml:"hours_per_tick"`
	SaveEveryTicks int      `yaml:"save_every_ticks"`
	BatchSize      int      `yaml:"batch_size,omitempty"`
	QueueLimit     int      `yaml:"queue_limit,omitempty"`
}

// FinanceConfig holds the fixed financial model constants.
type FinanceConfig struct {
	DailyBurn        float64 `yaml:"daily_burn"`
	BudgetDays       int     `yaml:"budget_days"`
	RevenueGraceDays int     `yaml:"revenue_grace_days"`
}

// GeneratorConfig selects and bounds the text-generation collaborator.
type GeneratorConfig struct {
	Kind      string   `yaml:"kind"`
	Model     string   `yaml:"model,omitempty"`
	APIKeyEnv string   `yaml:"api_key_env,omitempty"`
	Timeout   Duration `yaml:"timeout"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ProjectConfig models .versaas/config.yaml.
type ProjectConfig struct {
	Version    int              `yaml:"version"`
	Simulation SimulationConfig `yaml:"simulation"`
	Finance    FinanceConfig    `yaml:"finance"`
	Generator  GeneratorConfig  `yaml:"generator"`
	HTTP       HTTPConfig       `yaml:"http"`
	Logging    LoggingConfig    `yaml:"logging"`
	RosterPath string           `yaml:"roster_path,omitempty"`
}

// Config holds the runtime configuration for Versaas.
type Config struct {
	// ProjectDir is the directory where the user ran `versaas` from
	ProjectDir string

	// VersaasProjectDir is ProjectDir/.versaas
	VersaasProjectDir string

	Project ProjectConfig
}

// InitVersaasDir creates the .versaas directory structure in the given
// project directory. Called on every CLI startup.
//
// Structure created:
// .versaas/
// ├── logs/       <- Structured log output
// ├── state/      <- SQLite database with persisted simulations
// ├── audit/      <- Per-project audit trails
// └── output/     <- Generated documents (idea briefs, business plans)
func InitVersaasDir(projectDir string) error {
	versaasDir := filepath.Join(projectDir, VersaasDir)

	dirs := []string{
		filepath.Join(versaasDir, "logs"),
		filepath.Join(versaasDir, "state"),
		filepath.Join(versaasDir, "audit"),
		filepath.Join(versaasDir, "output"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if err := ensureProjectConfig(filepath.Join(versaasDir, "config.yaml")); err != nil {
		return err
	}

	return nil
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:        projectDir,
		VersaasProjectDir: filepath.Join(projectDir, VersaasDir),
		Project:           defaultProjectConfig(),
	}

	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.VersaasProjectDir, "logs")
}

// StateDir returns the path to the state directory
func (c *Config) StateDir() string {
	return filepath.Join(c.VersaasProjectDir, "state")
}

// AuditDir returns the path holding per-project audit trails
func (c *Config) AuditDir() string {
	return filepath.Join(c.VersaasProjectDir, "audit")
}

// OutputDir returns the path for generated documents
func (c *Config) OutputDir() string {
	return filepath.Join(c.VersaasProjectDir, "output")
}

// DBPath returns the on-disk location of the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.StateDir(), "versaas.db")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.VersaasProjectDir, "config.yaml")
}

// GeneratorAPIKey resolves the configured API key from the environment.
func (c *Config) GeneratorAPIKey() string {
	env := strings.TrimSpace(c.Project.Generator.APIKeyEnv)
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	parsed := defaultProjectConfig()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize(c.ProjectDir)
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Simulation: SimulationConfig{
			TickInterval:   Duration(defaultTickInterval),
			HoursPerTick:   defaultHoursPerTick,
			SaveEveryTicks: defaultSaveEveryTicks,
			BatchSize:      defaultBatchSize,
			QueueLimit:     defaultQueueLimit,
		},
		Finance: FinanceConfig{
			DailyBurn:        defaultDailyBurn,
			BudgetDays:       defaultBudgetDays,
			RevenueGraceDays: defaultGraceDays,
		},
		Generator: GeneratorConfig{
			Kind:      defaultGeneratorKind,
			Model:     defaultGeminiModel,
			APIKeyEnv: defaultGeminiAPIKeyEnv,
			Timeout:   Duration(defaultGenTimeout),
		},
		HTTP:    HTTPConfig{ListenAddr: defaultListenAddr},
		Logging: LoggingConfig{Level: defaultLogLevel},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.Simulation.TickInterval <= 0 {
		pc.Simulation.TickInterval = Duration(defaultTickInterval)
	}
	if pc.Simulation.HoursPerTick <= 0 {
		pc.Simulation.HoursPerTick = defaultHoursPerTick
	}
	if pc.Simulation.SaveEveryTicks <= 0 {
		pc.Simulation.SaveEveryTicks = defaultSaveEveryTicks
	}
	if pc.Simulation.BatchSize <= 0 {
		pc.Simulation.BatchSize = defaultBatchSize
	}
	if pc.Simulation.QueueLimit <= 0 {
		pc.Simulation.QueueLimit = defaultQueueLimit
	}
	if pc.Finance.DailyBurn <= 0 {
		pc.Finance.DailyBurn = defaultDailyBurn
	}
	if pc.Finance.BudgetDays <= 0 {
		pc.Finance.BudgetDays = defaultBudgetDays
	}
	if pc.Finance.RevenueGraceDays < 0 {
		pc.Finance.RevenueGraceDays = defaultGraceDays
	}
	if pc.Generator.Timeout <= 0 {
		pc.Generator.Timeout = Duration(defaultGenTimeout)
	}
	if pc.Generator.Kind == "" {
		pc.Generator.Kind = defaultGeneratorKind
	}
	if pc.HTTP.ListenAddr == "" {
		pc.HTTP.ListenAddr = defaultListenAddr
	}
	if pc.Logging.Level == "" {
		pc.Logging.Level = defaultLogLevel
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.Generator.Kind = strings.ToLower(strings.TrimSpace(pc.Generator.Kind))
	pc.Generator.Model = strings.TrimSpace(pc.Generator.Model)
	pc.Generator.APIKeyEnv = strings.TrimSpace(pc.Generator.APIKeyEnv)
	pc.Logging.Level = strings.ToLower(strings.TrimSpace(pc.Logging.Level))
	pc.RosterPath = resolvePath(base, pc.RosterPath)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	switch pc.Generator.Kind {
	case "stub", "gemini":
	default:
		return fmt.Errorf("generator.kind must be 'stub' or 'gemini'")
	}
	switch pc.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}
