// Package cli implements the versaas commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackrab369/Versaas-ai/internal/config"
	"github.com/blackrab369/Versaas-ai/internal/logging"
	"github.com/blackrab369/Versaas-ai/internal/simulation"
	"github.com/blackrab369/Versaas-ai/internal/store"
	"github.com/blackrab369/Versaas-ai/internal/textgen"
)

var projectDirFlag string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "versaas",
	Short: "Run a virtual software company",
	Long:  "Versaas simulates an AI-staffed software company: hand the CEO a product idea and watch the team take it from intake to launch against a fixed runway.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&projectDirFlag, "dir", "C", "", "Project directory (default: current directory)")
	auditCmd.Flags().IntVar(&auditTailLines, "lines", 20, "How many trailing entries to show")
	RootCmd.AddCommand(initCmd, serveCmd, chatCmd, statusCmd, sendCmd, planCmd, auditCmd)
}

func projectDir() (string, error) {
	if projectDirFlag != "" {
		return projectDirFlag, nil
	}
	return os.Getwd()
}

// runtime bundles the wired dependencies a command needs.
type runtime struct {
	cfg     *config.Config
	store   store.Store
	manager *simulation.Manager
	logger  *zap.Logger
}

func newRuntime() (*runtime, error) {
	dir, err := projectDir()
	if err != nil {
		return nil, fmt.Errorf("cli: resolve project dir: %w", err)
	}
	if err := config.InitVersaasDir(dir); err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(dir)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogsDir(), cfg.Project.Logging.Level)
	if err != nil {
		return nil, err
	}
	st, err := store.NewSQLiteStore(cfg.DBPath())
	if err != nil {
		return nil, err
	}

	gen, err := buildGenerator(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &runtime{
		cfg:     cfg,
		store:   st,
		manager: simulation.NewManager(cfg, st, gen, logger),
		logger:  logger,
	}, nil
}

func buildGenerator(cfg *config.Config) (textgen.Generator, error) {
	gc := cfg.Project.Generator
	switch gc.Kind {
	case "stub":
		return textgen.Static{}, nil
	case "gemini":
		key := cfg.GeneratorAPIKey()
		if key == "" {
			return nil, fmt.Errorf("cli: generator kind gemini needs %s set", gc.APIKeyEnv)
		}
		gem, err := textgen.NewGemini(RootCmd.Context(), key, gc.Model)
		if err != nil {
			return nil, err
		}
		return textgen.Timed{Inner: gem, Timeout: gc.Timeout.AsDuration()}, nil
	default:
		return nil, fmt.Errorf("cli: unknown generator kind %q", gc.Kind)
	}
}

func (r *runtime) close() {
	if err := r.store.Close(); err != nil {
		r.logger.Warn("store close failed", zap.Error(err))
	}
	_ = r.logger.Sync()
}
