package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:               "quizbank",
	Short:             "keep a bank of quiz questions and play with it",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: app.Open,
	RunE:              app.Shell,
}

// Execute runs the command line until it finishes or the process gets an
// interrupt or termination signal.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func execute(ctx context.Context) error {
	defer app.Close()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.cfg.Driver, "driver", app.cfg.Driver, "store backend: sqlite, postgres, pgx or memory")
	flags.StringVar(&app.cfg.DSN, "dsn", app.cfg.DSN, "database connection string (env DATABASE_URL)")
	flags.StringVar(&app.cfg.RedisAddr, "redis", app.cfg.RedisAddr, "redis address used to cache questions (env REDIS_ADDR)")
	flags.DurationVar(&app.cfg.CacheTTL, "cache-ttl", app.cfg.CacheTTL, "how long cached questions live")
	flags.BoolVar(&app.cfg.Seed, "seed", app.cfg.Seed, "fill an empty bank with the default questions")
	flags.BoolVarP(&app.cfg.Verbose, "verbose", "v", app.cfg.Verbose, "debug logging on stderr")
}
