package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackrab369/Versaas-ai/internal/audit"
	"github.com/blackrab369/Versaas-ai/internal/config"
	"github.com/blackrab369/Versaas-ai/internal/httpapi"
	"github.com/blackrab369/Versaas-ai/internal/tui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the .versaas directory and default config",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		if err := config.InitVersaasDir(dir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "initialized %s/%s\n", dir, config.VersaasDir)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := rt.cfg.Project.HTTP.ListenAddr
		rt.logger.Info("http server starting", zap.String("addr", addr))
		srv := httpapi.NewServer(rt.manager, rt.store, rt.logger)
		err = srv.Serve(ctx, addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if serr := rt.manager.Shutdown(shutdownCtx); serr != nil {
			rt.logger.Error("manager shutdown failed", zap.Error(serr))
		}
		return err
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat <project>",
	Short: "Open the owner chat console for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		app := tui.NewApp(rt.manager, args[0])
		err = app.Run(cmd.Context())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if serr := rt.manager.Shutdown(shutdownCtx); serr != nil {
			rt.logger.Error("manager shutdown failed", zap.Error(serr))
		}
		return err
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <project>",
	Short: "Print a project's company status as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = rt.manager.Shutdown(ctx)
		}()

		orc, err := rt.manager.GetOrStart(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(orc.Status(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return rt.manager.SaveNow(cmd.Context(), args[0])
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <project>",
	Short: "Write the business plan document for a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = rt.manager.Shutdown(ctx)
		}()

		orc, err := rt.manager.GetOrStart(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		path, err := orc.BusinessPlan(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return rt.manager.SaveNow(cmd.Context(), args[0])
	},
}

var auditTailLines int

var auditCmd = &cobra.Command{
	Use:   "audit <project>",
	Short: "Show a project's audit trail and verify its integrity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		cfg, err := config.NewConfig(dir)
		if err != nil {
			return err
		}
		trail, err := audit.New(cfg.AuditDir(), args[0])
		if err != nil {
			return err
		}
		for _, line := range trail.Tail(auditTailLines) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		if err := trail.Verify(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "audit trail verified")
		return nil
	},
}

var sendCmd = &cobra.Command{
	Use:   "send <project> <request>",
	Short: "Send one owner request to a project's CEO",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = rt.manager.Shutdown(ctx)
		}()

		orc, err := rt.manager.GetOrStart(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := orc.ProcessRequest(cmd.Context(), args[1]); err != nil {
			return err
		}
		if err := rt.manager.SaveNow(cmd.Context(), args[0]); err != nil {
			return err
		}
		state := orc.State()
		fmt.Fprintf(cmd.OutOrStdout(), "delivered to CEO-001 (%s, day %.2f)\n", state.Phase, state.DaysElapsed)
		return nil
	},
}
