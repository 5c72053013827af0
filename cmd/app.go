package cmd

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/holmes89/quizbank/lib/bank"
	"github.com/holmes89/quizbank/lib/prompt"
	"github.com/holmes89/quizbank/lib/quiz"
	"github.com/holmes89/quizbank/lib/repo"
)

const driverMemory = "memory"

// annotationNoSeed marks commands that must never see the default bank.
const annotationNoSeed = "quizbank/no-seed"

// App holds what every command shares: configuration, the logger and the
// question service over the configured store.
type App struct {
	cfg       Config
	logger    *zap.Logger
	conn      *repo.Conn
	redis     *redis.Client
	questions quiz.QuestionService
}

func NewApp() *App {
	return &App{
		cfg:    FromEnv(),
		logger: zap.NewNop(),
	}
}

var app = NewApp()

// Open builds the store stack: SQL or memory repository, optionally behind
// the redis cache, wrapped by the validating question service.
func (app *App) Open(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(app.cfg.Verbose)
	if err != nil {
		return err
	}
	app.logger = logger

	var questionRepo quiz.QuestionRepository
	fresh := true
	if app.cfg.Driver == driverMemory {
		questionRepo = repo.NewMemoryRepo()
	} else {
		conn, err := repo.NewDatabase(repo.Driver(app.cfg.Driver), app.cfg.DSN, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}
		app.conn = conn
		fresh = conn.Fresh()
		questionRepo = &repo.QuestionRepo{Conn: conn}
	}

	if app.cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: app.cfg.RedisAddr})
		if err := client.Ping(cmd.Context()).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = client
		questionRepo = repo.NewCachedRepo(questionRepo, client, app.cfg.CacheTTL, logger)
	}

	app.questions = quiz.NewQuestionService(questionRepo, logger)

	if fresh && app.cfg.Seed && cmd.Annotations[annotationNoSeed] == "" {
		n, err := bank.Import(cmd.Context(), app.questions, bank.Defaults())
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		logger.Info("seeded new bank", zap.Int("questions", n))
	}
	return nil
}

// Close releases the store and flushes the logger. It runs once the command
// has finished, whether it failed or not.
func (app *App) Close() error {
	if app.redis != nil {
		_ = app.redis.Close()
		app.redis = nil
	}
	if app.conn != nil {
		_ = app.conn.Close()
		app.conn = nil
	}
	_ = app.logger.Sync()
	return nil
}

func (app *App) prompter(cmd *cobra.Command) quiz.Prompter {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return prompt.New(f, cmd.OutOrStdout())
	}
	return prompt.NewLine(cmd.InOrStdin(), cmd.OutOrStdout())
}

func (app *App) shell(cmd *cobra.Command) *Shell {
	return NewShell(app.questions, app.prompter(cmd), cmd.OutOrStdout(), app.logger)
}

// newLogger writes to stderr so log lines never interleave with the quiz on
// stdout.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
