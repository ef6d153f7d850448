package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/straycare/straycare/internal/bootstrap"
	domainauth "github.com/straycare/straycare/internal/domain/auth"
)

const (
	sessionCommandTimeout = time.Minute
	scanCount             = 1000
)

type clearSessionsOptions struct {
	KeepFlashes bool
	DryRun      bool
	Yes         bool
}

// sessionPatterns returns the SCAN patterns for session keys and, optionally, flash queues.
func sessionPatterns(prefix string, includeFlashes bool) []string {
	patterns := []string{prefix + "sess:*"}
	if includeFlashes {
		patterns = append(patterns, prefix+"flash:*")
	}
	return patterns
}

// maskToken keeps enough of a token to correlate log lines without exposing it.
func maskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "…" + token[len(token)-4:]
}

func withRedis(parent context.Context, app *commandContext, f func(context.Context, redis.UniversalClient) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, sessionCommandTimeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: app.Config.Redis,
		Logger:      app.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			app.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	return f(ctx, client)
}

func listSessionsCmd(app *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list-sessions",
		Short: "Inspect session records in Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return errors.New("--limit must be greater than zero")
			}
			prefix := app.Config.Session.KeyPrefix
			return withRedis(cmd.Context(), app, func(ctx context.Context, client redis.UniversalClient) error {
				rows, total, err := collectSessions(ctx, client, prefix+"sess:", limit)
				if err != nil {
					return err
				}
				return renderSessions(cmd.OutOrStdout(), rows, total)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of sessions to print")
	return cmd
}

type sessionRow struct {
	Token string
	Kind  string
	Name  string
	TTL   time.Duration
}

func collectSessions(ctx context.Context, client redis.UniversalClient, keyPrefix string, limit int) ([]sessionRow, int, error) {
	var rows []sessionRow
	total := 0
	err := scanKeys(ctx, client, keyPrefix+"*", func(key string) error {
		total++
		if len(rows) >= limit {
			return nil
		}
		row, err := loadSessionRow(ctx, client, key)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Expired between SCAN and GET.
				total--
				return nil
			}
			return err
		}
		if row.Token == "" {
			row.Token = strings.TrimPrefix(key, keyPrefix)
		}
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// scanKeys calls fn for every key matching pattern. A cluster client is
// scanned master by master since SCAN only walks the node it reaches; fn
// calls are serialized.
func scanKeys(ctx context.Context, client redis.UniversalClient, pattern string, fn func(key string) error) error {
	cluster, ok := client.(*redis.ClusterClient)
	if !ok {
		return scanNode(ctx, client, pattern, fn)
	}
	var mu sync.Mutex
	return cluster.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
		return scanNode(ctx, node, pattern, func(key string) error {
			mu.Lock()
			defer mu.Unlock()
			return fn(key)
		})
	})
}

func scanNode(ctx context.Context, client redis.Cmdable, pattern string, fn func(key string) error) error {
	iter := client.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	return nil
}

func loadSessionRow(ctx context.Context, client redis.UniversalClient, key string) (sessionRow, error) {
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return sessionRow{}, err
	}
	var sess domainauth.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return sessionRow{Kind: "(unreadable)"}, nil
	}
	ttl, err := client.TTL(ctx, key).Result()
	if err != nil {
		return sessionRow{}, fmt.Errorf("redis ttl: %w", err)
	}
	row := sessionRow{Token: sess.Token, Kind: "anonymous", TTL: ttl}
	if sess.Authenticated() {
		row.Kind = string(sess.UserKind)
		row.Name = sess.UserName
	}
	return row, nil
}

func renderSessions(w io.Writer, rows []sessionRow, total int) error {
	if total == 0 {
		return writeln(w, "No sessions found.")
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "TOKEN\tKIND\tNAME\tTTL\n"); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", maskToken(r.Token), r.Kind, r.Name, r.TTL.Truncate(time.Second)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(rows) < total {
		return writef(w, "\nShowing %d of %d sessions.\n", len(rows), total)
	}
	return writef(w, "\n%d sessions.\n", total)
}

func clearSessionsCmd(app *commandContext) *cobra.Command {
	var opts clearSessionsOptions

	cmd := &cobra.Command{
		Use:   "clear-sessions",
		Short: "Delete sessions and pending flash messages from Redis (signs everyone out)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prefix := app.Config.Session.KeyPrefix
			if !opts.DryRun && !opts.Yes {
				target := fmt.Sprintf("redis keys under %q", prefix)
				if err := confirmAction(cmd, "delete every session", target); err != nil {
					return err
				}
			}

			return withRedis(cmd.Context(), app, func(ctx context.Context, client redis.UniversalClient) error {
				deleted := int64(0)
				for _, pattern := range sessionPatterns(prefix, !opts.KeepFlashes) {
					n, err := deleteKeys(ctx, deleteKeysRequest{
						Client:  client,
						Pattern: pattern,
						DryRun:  opts.DryRun,
						Logger:  app.Logger,
					})
					deleted += n
					if err != nil {
						return err
					}
				}
				verb := "Deleted"
				if opts.DryRun {
					verb = "Would delete"
				}
				return writef(cmd.OutOrStdout(), "%s %d keys.\n", verb, deleted)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.KeepFlashes, "keep-flashes", false, "Leave pending flash messages in place")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Count matching keys without deleting them")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip confirmation prompt")
	return cmd
}

type deleteKeysRequest struct {
	Client   redis.UniversalClient
	Pattern  string
	DryRun   bool
	BatchCap int
	Logger   *slog.Logger
}

func deleteKeys(ctx context.Context, req deleteKeysRequest) (int64, error) {
	batchCap := req.BatchCap
	if batchCap <= 0 {
		batchCap = 500
	}
	req.Logger.Info("scanning redis", "pattern", req.Pattern, "dry_run", req.DryRun)

	var deleted int64
	flush := func(batch []string) error {
		if len(batch) == 0 {
			return nil
		}
		if req.DryRun {
			deleted += int64(len(batch))
			return nil
		}
		// Keys may hash to different cluster slots, so each gets its own DEL.
		pipe := req.Client.Pipeline()
		for _, key := range batch {
			pipe.Del(ctx, key)
		}
		cmds, err := pipe.Exec(ctx)
		if err != nil {
			return fmt.Errorf("redis delete: %w", err)
		}
		for _, c := range cmds {
			if ic, ok := c.(*redis.IntCmd); ok {
				deleted += ic.Val()
			}
		}
		return nil
	}

	batch := make([]string, 0, batchCap)
	err := scanKeys(ctx, req.Client, req.Pattern, func(key string) error {
		batch = append(batch, key)
		if len(batch) < batchCap {
			return nil
		}
		if err := flush(batch); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	})
	if err != nil {
		return deleted, err
	}
	return deleted, flush(batch)
}
