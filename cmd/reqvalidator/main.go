// cmd/reqvalidator/main.go
//
// reqvalidator – command-line entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Start a console logger so config errors are visible.
//
//  3. Connect to Vault when VAULT_ADDR is set, then load config,
//     resolving any `vault:` values through it.
//
//  4. Swap in the size-rotated file logger (tees to stderr in a TTY).
//
//  5. Open the requirements catalog for the configured driver and wrap
//     it in a version registry.
//
//  6. Build the validation service and hand it to the subcommand.
//
// Subcommands
// -----------
//
//	validate FILE...        one JSON report per file, exit 1 if any is invalid
//	serve                   HTTP API on http.listen_addr
//	features --version N    natural-sorted feature list for one version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yanizio/reqvalidator/internal/config"
	"github.com/yanizio/reqvalidator/internal/database"
	"github.com/yanizio/reqvalidator/internal/logger"
	"github.com/yanizio/reqvalidator/internal/registry"
	"github.com/yanizio/reqvalidator/internal/requirement"
	"github.com/yanizio/reqvalidator/internal/service"
	"github.com/yanizio/reqvalidator/internal/validation"
	"github.com/yanizio/reqvalidator/internal/vault"
)

const serverEnvPath = "/usr/local/etc/reqvalidator/global.env"

// errInvalid makes `validate` exit 1 without printing a usage banner.
var errInvalid = errors.New("one or more records are invalid")

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stderr is a character device.
func runningInTTY() bool {
	fi, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	loadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "reqvalidator:", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:           "reqvalidator",
		Short:         "Validate extracted medical records against versioned requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if root != "" {
				return os.Setenv("REQV_ROOT", root)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&root, "root", "", "project root holding conf/global.yaml (overrides REQV_ROOT)")

	cmd.AddCommand(validateCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(featuresCmd())
	return cmd
}

//
// ── bootstrap ───────────────────────────────────────────────────────────
//

// app is everything a subcommand needs once boot has finished.
type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	registry *registry.Registry
	svc      *service.Service
	close    func()
}

// bootstrap runs steps 2–6 of the boot sequence.
func bootstrap(ctx context.Context) (*app, error) {
	early := logger.Console(zapcore.InfoLevel)

	var secrets config.SecretResolver
	if os.Getenv("VAULT_ADDR") != "" {
		cli, err := vault.New(ctx, early)
		if err != nil {
			return nil, fmt.Errorf("vault: %w", err)
		}
		secrets = cli
	}

	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Root:  cfg.Paths.Root,
		Dir:   cfg.Log.Dir,
		Level: cfg.Log.Level,
		Tee:   runningInTTY(),
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	src, closeDB, err := openSource(ctx, cfg.Requirements, log)
	if err != nil {
		return nil, err
	}

	rules, err := validation.NewRules(validation.RuleConfig{
		NumericValueTypes:     cfg.Validation.NumericValueTypes,
		BloodPressureFeatures: cfg.Validation.BloodPressureFeatures,
		BloodPressurePattern:  cfg.Validation.BloodPressurePattern,
	})
	if err != nil {
		closeDB()
		return nil, fmt.Errorf("validation rules: %w", err)
	}

	reg := registry.New(
		requirement.WithTimeout(src, cfg.Requirements.FetchTimeout),
		cfg.Requirements.MaxVersions,
		log.Named("registry"),
	)

	return &app{
		cfg:      cfg,
		log:      log,
		registry: reg,
		svc:      service.New(reg, rules, cfg.Validation.Workers, log.Named("service")),
		close: func() {
			closeDB()
			_ = log.Sync()
		},
	}, nil
}

// openSource connects to the catalog named by cfg.Driver.
func openSource(ctx context.Context, cfg config.Requirements, log *zap.SugaredLogger) (requirement.Source, func(), error) {
	opts := database.DefaultOptions()
	if cfg.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		opts.MaxIdleConns = cfg.MaxIdleConns
	}

	log.Infow("connecting to requirements catalog", "driver", cfg.Driver)
	switch cfg.Driver {
	case "postgres":
		pool, err := database.OpenPostgres(ctx, cfg.ResolvedDSN(), opts)
		if err != nil {
			return nil, nil, fmt.Errorf("requirements db: %w", err)
		}
		log.Infow("requirements catalog online", "driver", cfg.Driver)
		return requirement.NewPGSource(pool), pool.Close, nil
	default:
		db, err := database.Open(ctx, cfg.ResolvedDSN(), opts)
		if err != nil {
			return nil, nil, fmt.Errorf("requirements db: %w", err)
		}
		log.Infow("requirements catalog online", "driver", cfg.Driver)
		return requirement.NewSQLSource(db), func() { _ = db.Close() }, nil
	}
}
