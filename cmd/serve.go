package cmd

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"github.com/holmes89/quizbank/lib/prompt"
	"github.com/holmes89/quizbank/lib/quiz"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve one quiz shell per TCP connection",
	Args:  cobra.NoArgs,
	RunE:  app.Serve,
}

func (app *App) Serve(cmd *cobra.Command, args []string) error {
	l, err := net.Listen("tcp", app.cfg.Addr)
	if err != nil {
		return err
	}
	app.logger.Info("listening", zap.String("addr", l.Addr().String()), zap.Int("max_conns", app.cfg.MaxConns))
	srv := NewServer(app.questions, app.logger)
	return srv.Serve(cmd.Context(), netutil.LimitListener(l, app.cfg.MaxConns))
}

// Server hands every accepted connection its own Shell. Connections share
// the question service and nothing else.
type Server struct {
	questions quiz.QuestionService
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func NewServer(questions quiz.QuestionService, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		questions: questions,
		logger:    logger,
	}
}

const maxAcceptDelay = time.Second

// Serve accepts until ctx is done, then closes the listener and every open
// connection and waits for their shells to return. Other accept errors are
// logged and retried with a growing delay.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = l.Close()
	})
	defer stop()
	defer s.wg.Wait()

	var delay time.Duration
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			delay = min(max(2*delay, 5*time.Millisecond), maxAcceptDelay)
			s.logger.Warn("accept failed, retrying", zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}
		delay = 0
		s.wg.Add(1)
		go s.handle(ctx, conn)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	logger := s.logger.With(zap.String("remote", conn.RemoteAddr().String()))
	logger.Info("session opened")
	shell := NewShell(s.questions, prompt.NewLine(conn, conn), conn, logger)
	if err := shell.Run(ctx); err != nil {
		logger.Warn("session failed", zap.Error(err))
		return
	}
	logger.Info("session closed")
}

func init() {
	serveCmd.Flags().StringVar(&app.cfg.Addr, "addr", app.cfg.Addr, "listen address (env QUIZBANK_ADDR)")
	serveCmd.Flags().IntVar(&app.cfg.MaxConns, "max-conns", app.cfg.MaxConns, "maximum simultaneous connections")
	rootCmd.AddCommand(serveCmd)
}
