package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"survey-bot/internal/app"
	"survey-bot/internal/catalog"
	"survey-bot/internal/config"
	"survey-bot/internal/infra/memory"
	"survey-bot/internal/infra/postgres"
	redisstore "survey-bot/internal/infra/redis"
	"survey-bot/internal/infra/sheets"
	"survey-bot/internal/infra/telegram"
)

// rowSink is the full storage contract: per-session appends plus the
// startup/maintenance header check.
type rowSink interface {
	app.RowSink
	EnsureHeader(ctx context.Context, titles []string, force bool) error
}

// NewServeCmd builds the CLI subcommand that runs the bot.
func NewServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the survey bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	token := cfg.BotToken()
	if token == "" {
		return fmt.Errorf("telegram bot token not configured (set TELEGRAM_BOT_TOKEN)")
	}
	client, err := telegram.NewClient(token)
	if err != nil {
		return fmt.Errorf("init telegram client: %w", err)
	}

	sink, err := newRowSink(cfg)
	if err != nil {
		return err
	}
	if err := sink.EnsureHeader(ctx, cat.Header(), false); err != nil {
		return fmt.Errorf("ensure storage header: %w", err)
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	engine := app.NewEngine(cat, store, client, sink, app.Messages{
		Welcome:      cfg.Messages.Welcome,
		NoActiveQuiz: cfg.Messages.NoActiveQuiz,
		Saved:        cfg.Messages.Saved,
		SaveFailed:   cfg.Messages.SaveFailed,
	})
	dispatcher := telegram.NewDispatcher(client, engine, cfg.Telegram.PollTimeout)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(ctx)
	})

	log.Printf("survey bot polling as @%s with %d questions", client.Username(), cat.Len())

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("shutting down")
	return nil
}

func newRowSink(cfg config.Config) (rowSink, error) {
	switch cfg.Storage.Backend {
	case "sheets":
		return sheets.New(context.Background(),
			cfg.Storage.Sheets.CredentialsFile,
			cfg.Storage.Sheets.SpreadsheetID,
			cfg.Storage.Sheets.SheetName,
		)
	case "postgres":
		return postgres.New(cfg.Storage.Postgres.URL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func newSessionStore(cfg config.Config) (app.SessionStore, error) {
	switch cfg.Sessions.Backend {
	case "memory":
		return memory.NewSessionStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Sessions.Redis.Addr,
			Password: cfg.Sessions.Redis.Password,
			DB:       cfg.Sessions.Redis.DB,
		})
		ttl := config.TTLDuration(cfg.Sessions.Redis.TTL, 24*time.Hour)
		return redisstore.NewSessionStore(client, ttl), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Sessions.Backend)
	}
}
