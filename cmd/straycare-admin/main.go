package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/straycare/straycare/config"
	"github.com/straycare/straycare/internal/bootstrap"
	"github.com/straycare/straycare/internal/data"
	"github.com/straycare/straycare/internal/devseed"
	"github.com/straycare/straycare/internal/security"
	"github.com/straycare/straycare/internal/service"
)

// commandContext is shared by every subcommand; the root's PersistentPreRunE fills it.
type commandContext struct {
	Logger *slog.Logger
	Config config.AppConfig
}

type configLoader func() (config.AppConfig, error)

const defaultMigrationTimeout = 5 * time.Minute

func main() {
	if err := newRootCmd(bootstrap.LoadConfig).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCmd(load configLoader) *cobra.Command {
	app := &commandContext{Logger: slog.Default()}

	rootCmd := &cobra.Command{
		Use:   "straycare-admin",
		Short: "Operational tasks for a StrayCare deployment",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			app.Config = cfg
			app.Logger = bootstrap.InitLogger(cfg.LogLevel)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		migrateCmd(app),
		dbSeedCmd(app),
		dbResetCmd(app),
		listSessionsCmd(app),
		clearSessionsCmd(app),
	)
	return rootCmd
}

func requirePositive(timeout time.Duration) error {
	if timeout <= 0 {
		return errors.New("--timeout must be greater than zero")
	}
	return nil
}

func migrateCmd(app *commandContext) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requirePositive(timeout); err != nil {
				return err
			}
			return withDatabase(cmd.Context(), app, timeout, func(ctx context.Context, db *sql.DB) error {
				app.Logger.Info("running database migrations")
				if err := bootstrap.RunMigrations(ctx, db, app.Logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				app.Logger.Info("migrations completed successfully")
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	return cmd
}

func dbSeedCmd(app *commandContext) *cobra.Command {
	var (
		timeout     time.Duration
		allowRemote bool
	)

	cmd := &cobra.Command{
		Use:   "db-seed",
		Short: "Run database migrations and seed demo accounts and content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requirePositive(timeout); err != nil {
				return err
			}
			if err := guardRemoteHost(cmd, app, allowRemote, "seed development data on the configured database"); err != nil {
				return err
			}

			return withDatabase(cmd.Context(), app, timeout, func(ctx context.Context, db *sql.DB) error {
				app.Logger.Info("ensuring database migrations are current")
				if err := bootstrap.RunMigrations(ctx, db, app.Logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}

				app.Logger.Info("seeding development data", "password", devseed.DemoPassword)
				if err := devseed.Run(ctx, seedServices(app, db), app.Logger); err != nil {
					return fmt.Errorf("seed data: %w", err)
				}

				app.Logger.Info("database seeding completed successfully")
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for seeding to complete")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")
	return cmd
}

func dbResetCmd(app *commandContext) *cobra.Command {
	var (
		timeout     time.Duration
		yes         bool
		seed        bool
		allowRemote bool
	)

	cmd := &cobra.Command{
		Use:   "db-reset",
		Short: "Drop the database schema, run migrations, and optionally seed data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requirePositive(timeout); err != nil {
				return err
			}
			pg := app.Config.Postgres
			target := fmt.Sprintf("database %q on %s:%d", pg.Name, pg.Host, pg.Port)

			if err := guardRemoteHost(cmd, app, allowRemote, "drop and recreate the public schema"); err != nil {
				return err
			}
			if !yes {
				if err := confirmAction(cmd, "reset database schema", target); err != nil {
					return err
				}
			}

			return withDatabase(cmd.Context(), app, timeout, func(ctx context.Context, db *sql.DB) error {
				app.Logger.Info("dropping public schema", "database", pg.Name)
				if err := resetDatabase(ctx, app, db); err != nil {
					return err
				}

				app.Logger.Info("re-running database migrations")
				if err := bootstrap.RunMigrations(ctx, db, app.Logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}

				if seed {
					app.Logger.Info("seeding development data after reset")
					if err := devseed.Run(ctx, seedServices(app, db), app.Logger); err != nil {
						return fmt.Errorf("seed data: %w", err)
					}
				}

				app.Logger.Info("database reset completed successfully")
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for reset operations to complete")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&seed, "seed", false, "Run database seeding after reset completes")
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")
	return cmd
}

func seedServices(app *commandContext, db *sql.DB) devseed.Services {
	return devseed.Services{
		Users:     data.NewUserRepo(db),
		Hasher:    security.NewHasher(app.Config.Auth.BcryptCost),
		Animals:   service.NewAnimalService(data.NewAnimalRepo(db)),
		Ads:       service.NewAdService(data.NewAdRepo(db)),
		Adoptions: service.NewAdoptionService(data.NewAdoptionRepo(db)),
	}
}

func withDatabase(
	parent context.Context,
	app *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: app.Config.Postgres,
		Logger:   app.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			app.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

func guardRemoteHost(cmd *cobra.Command, app *commandContext, allow bool, action string) error {
	host := app.Config.Postgres.Host
	if !isLikelyRemoteHost(host) {
		return nil
	}
	if !allow {
		return fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			host,
		)
	}
	return requireRemoteHostConfirmation(cmd, action, host)
}

func resetDatabase(ctx context.Context, app *commandContext, db *sql.DB) error {
	for _, stmt := range resetStatements(app.Config.Postgres.User) {
		app.Logger.DebugContext(ctx, "executing reset statement", "sql", stmt)
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt, err)
		}
	}
	return nil
}

func resetStatements(owner string) []string {
	statements := []string{
		"DROP SCHEMA public CASCADE",
		"CREATE SCHEMA public",
		"GRANT ALL ON SCHEMA public TO public",
	}
	if user := strings.TrimSpace(owner); user != "" && !strings.EqualFold(user, "public") {
		statements = append(statements, "GRANT ALL ON SCHEMA public TO "+quoteIdentifier(user))
	}
	return statements
}

func quoteIdentifier(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" {
		return false
	}
	if h == "localhost" || h == "127.0.0.1" || h == "::1" {
		return false
	}
	if strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(h); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func requireRemoteHostConfirmation(cmd *cobra.Command, action, host string) error {
	errOut := cmd.ErrOrStderr()
	if err := writef(
		errOut,
		"\nWARNING: database host %q does not look like a local address.\n"+
			"This operation will %s.\n",
		host,
		action,
	); err != nil {
		return fmt.Errorf("print remote host warning: %w", err)
	}
	if err := writef(errOut, "Type %q to continue or press enter to abort: ", host); err != nil {
		return fmt.Errorf("print remote host prompt: %w", err)
	}
	resp, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil || strings.TrimSpace(resp) != host {
		if writeErr := writeln(errOut, "\nRemote safeguard check failed; aborting."); writeErr != nil {
			return fmt.Errorf("print remote safeguard failure: %w", writeErr)
		}
		return errors.New("aborted by user")
	}
	return nil
}

// confirmAction asks for a y/yes answer on the command's input.
func confirmAction(cmd *cobra.Command, actionType, target string) error {
	out := cmd.OutOrStdout()
	if err := writef(out, "About to %s for %s.\n", actionType, target); err != nil {
		return fmt.Errorf("print confirmation message: %w", err)
	}
	if err := writef(out, "Continue? [y/N]: "); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && resp == "" {
		return errors.New("aborted by user")
	}
	resp = strings.ToLower(strings.TrimSpace(resp))
	if resp == "y" || resp == "yes" {
		return nil
	}
	return errors.New("aborted by user")
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
