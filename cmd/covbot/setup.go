package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/pwr22/covbot/internal/config"
	"github.com/pwr22/covbot/internal/core"
	"github.com/pwr22/covbot/internal/metrics"
	"github.com/pwr22/covbot/internal/service/command"
	"github.com/pwr22/covbot/internal/service/data"
	"github.com/pwr22/covbot/internal/source/arcgis"
	"github.com/pwr22/covbot/internal/source/offloop"
	"github.com/pwr22/covbot/internal/storage/sqlite"
	"github.com/pwr22/covbot/internal/transport/cli"
	"github.com/pwr22/covbot/internal/transport/telegram"
	"github.com/pwr22/covbot/pkg/log"
	"github.com/pwr22/covbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	err := initEnv(ctx, config.GetRuntimePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	srcCfg := config.NewSourcesConfig(ctx)
	metricsCfg := config.NewMetricsConfig(ctx)

	// 2. Storage
	db, chatsRepo, snapshotRepo, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Data feeds and the in-memory snapshot they refresh
	offloopClient := offloop.NewClient(srcCfg.CasesURL, srcCfg.GroupsURL, srcCfg.FetchTimeout)
	arcgisClient := arcgis.NewClient(srcCfg.UKNHSRegionsURL, srcCfg.UKRegionsURL, srcCfg.FetchTimeout)

	updater := data.NewUpdater(data.NewStore(), offloopClient, arcgisClient, snapshotRepo, srcCfg.RefreshInterval)
	services = append(services, updater)

	// 4. Metrics endpoint
	if metricsCfg.Enabled {
		services = append(services, metrics.NewServer(metricsCfg.ListenAddr))
	}

	// 5. Transports and the command set they share
	transports, err := initTransports(ctx, appCfg, srcCfg, updater, chatsRepo)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.ChatsRepository, core.SnapshotRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewChatsRepo(db), sqlite.NewSnapshotRepo(db), nil
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	srcCfg *config.SourcesConfig,
	stats core.StatsProvider,
	chats core.ChatsRepository,
) ([]srv.Service, error) {
	var services []srv.Service

	// The announce command broadcasts through the Telegram bot, so admins
	// and the broadcaster depend on whether it is enabled. The local
	// console operator is always trusted.
	isAdmin := func(int64) bool { return true }
	var broadcaster core.Broadcaster

	var bot *telegram.Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)

		var err error
		bot, err = telegram.NewBot(ctx, tgCfg, chats)
		if err != nil {
			return nil, err
		}
		isAdmin = tgCfg.IsAdmin
		broadcaster = bot
	}

	all, visible := command.NewCommands(stats, srcCfg, isAdmin, chats, broadcaster)
	router := command.New(all)
	greeting := command.Greeting(visible)

	if bot != nil {
		bot.SetRouter(router, greeting)
		services = append(services, bot)
	}

	if cfg.IsCLISelected() {
		repl, err := cli.NewReadLine(router, greeting, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, repl)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
