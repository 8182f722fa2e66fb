// Command lumino-bot runs the Telegram administration console: the command
// router for operators and the login watcher that announces new logins to
// the broadcast channel.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	dbfs "github.com/luminohq/lumino-bot/db"
	"github.com/luminohq/lumino-bot/internal/bot"
	"github.com/luminohq/lumino-bot/internal/config"
	"github.com/luminohq/lumino-bot/internal/db"
	"github.com/luminohq/lumino-bot/internal/logger"
	"github.com/luminohq/lumino-bot/internal/session"
	"github.com/luminohq/lumino-bot/internal/store"
	"github.com/luminohq/lumino-bot/internal/watcher"
)

func provideConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideDBPool(lc fx.Lifecycle, log *slog.Logger, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := db.Open(context.Background(), cfg.Store.URL)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})
	return pool, nil
}

func runMigrations(log *slog.Logger, cfg config.Config) error {
	migrations, err := fs.Sub(dbfs.MigrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	return db.Migrate(log, cfg.Store.URL, migrations)
}

func provideBotAPI(log *slog.Logger, cfg config.Config) (bot.API, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	log.Info("telegram account authorized", slog.String("username", api.Self.UserName))
	return api, nil
}

func provideBot(log *slog.Logger, api bot.API, gateway *store.Gateway, sessions *session.Registry, cfg config.Config) *bot.Bot {
	return bot.New(log, api, gateway, sessions, cfg.Telegram, cfg.PageSize)
}

func provideWatcher(log *slog.Logger, gateway *store.Gateway, b *bot.Bot, cfg config.Config) *watcher.Watcher {
	return watcher.New(log, gateway, b, cfg.Watcher)
}

func startBot(lc fx.Lifecycle, b *bot.Bot) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				b.Run(runCtx)
				close(done)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func startWatcher(lc fx.Lifecycle, w *watcher.Watcher) {
	runCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				w.Run(runCtx)
				close(done)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func main() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideDBPool,
			provideBotAPI,
			session.NewRegistry,
			store.NewGateway,
			provideBot,
			provideWatcher,
		),
		fx.Invoke(
			runMigrations,
			startBot,
			startWatcher,
		),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.With(slog.String("component", "fx"))}
		}),
	).Run()
}
