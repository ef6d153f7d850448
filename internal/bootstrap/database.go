package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/redis/go-redis/v9"
	"github.com/straycare/straycare/config"
	"github.com/straycare/straycare/internal/migrate"
)

const (
	redisClientName   = "straycare"
	redisPingTimeout  = 5 * time.Second
	defaultDBTimeout  = 5 * time.Second
	redisModeDirect   = "direct"
	redisModeSentinel = "sentinel"
	redisModeCluster  = "cluster"
)

// DatabaseConfig contains configuration for the Postgres and Redis connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// ConnectDB opens the Postgres pool and verifies it with a ping.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	applyPool(db, cfg.DBConfig)

	timeout := cfg.DBConfig.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultDBTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
			"max_open_conns", cfg.DBConfig.MaxOpenConns,
		)
	}

	return db, nil
}

// postgresDSN builds the URL form so credentials with reserved characters survive.
func postgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func applyPool(db *sql.DB, cfg config.DBConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

// ConnectRedis builds the session and flash store client and verifies it
// with a ping.
//
//nolint:ireturn // the concrete client depends on REDIS_USE_SENTINEL / REDIS_USE_CLUSTER.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	opts, mode, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis (%s): %w", mode, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected",
			"mode", mode,
			"addrs", strings.Join(opts.Addrs, ","),
			"pool_size", opts.PoolSize,
		)
	}

	return client, nil
}

// redisOptions maps RedisConfig onto go-redis universal options and reports
// which topology they select.
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	opts := &redis.UniversalOptions{
		ClientName:   redisClientName,
		Password:     cfg.Password,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.CommandTimeout,
		WriteTimeout: cfg.CommandTimeout,
	}

	switch {
	case cfg.UseCluster:
		opts.IsClusterMode = true
		opts.Addrs = normalizeAddrs(cfg.ClusterNodes)
		if len(opts.Addrs) == 0 {
			seed, err := parseRedisURI(cfg.URI)
			if err != nil {
				return nil, "", fmt.Errorf("redis cluster seed: %w", err)
			}
			if seed.Addr == "" {
				return nil, "", errors.New("redis cluster configuration requires at least one address")
			}
			opts.Addrs = []string{seed.Addr}
			seed.applyCredentials(opts)
		}
		return opts, redisModeCluster, nil

	case cfg.UseSentinel:
		opts.Addrs = normalizeAddrs(cfg.SentinelNodes)
		if len(opts.Addrs) == 0 {
			return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
		}
		opts.MasterName = strings.TrimSpace(cfg.SentinelMasterName)
		if opts.MasterName == "" {
			return nil, "", errors.New("redis sentinel configuration requires a master name")
		}
		opts.SentinelPassword = cfg.SentinelPassword
		opts.DB = cfg.DB
		return opts, redisModeSentinel, nil

	default:
		target, err := parseRedisURI(cfg.URI)
		if err != nil {
			return nil, "", err
		}
		if target.Addr == "" {
			return nil, "", errors.New("redis direct configuration requires a URI")
		}
		opts.Addrs = []string{target.Addr}
		opts.DB = cfg.DB
		if target.URL {
			opts.DB = target.DB
		}
		target.applyCredentials(opts)
		return opts, redisModeDirect, nil
	}
}

// redisTarget is a single address taken from REDIS_URI.
type redisTarget struct {
	Addr     string
	Username string
	Password string
	DB       int
	TLS      *tls.Config
	URL      bool
}

// applyCredentials lets URL userinfo and TLS override the plain settings.
func (t redisTarget) applyCredentials(opts *redis.UniversalOptions) {
	if t.Username != "" {
		opts.Username = t.Username
	}
	if t.Password != "" {
		opts.Password = t.Password
	}
	if t.TLS != nil {
		opts.TLSConfig = t.TLS
	}
}

func parseRedisURI(uri string) (redisTarget, error) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return redisTarget{}, nil
	}
	if !isRedisURL(trimmed) {
		return redisTarget{Addr: trimmed}, nil
	}
	opt, err := redis.ParseURL(trimmed)
	if err != nil {
		return redisTarget{}, fmt.Errorf("parse redis url: %w", err)
	}
	return redisTarget{
		Addr:     opt.Addr,
		Username: opt.Username,
		Password: opt.Password,
		DB:       opt.DB,
		TLS:      opt.TLSConfig,
		URL:      true,
	}, nil
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func isRedisURL(value string) bool {
	return strings.HasPrefix(value, "redis://") || strings.HasPrefix(value, "rediss://")
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}
