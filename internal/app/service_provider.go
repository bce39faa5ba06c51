package app

import (
	"context"
	"database/sql"
	"errors"

	adminAPI "prize_wheel/internal/api/admin"
	gameAPI "prize_wheel/internal/api/game"
	"prize_wheel/internal/api/router"
	"prize_wheel/internal/config"
	"prize_wheel/internal/config/env"
	"prize_wheel/internal/logger"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/repository/game_memory_repo"
	"prize_wheel/internal/repository/game_redis_repo"
	"prize_wheel/internal/repository/game_repo"
	"prize_wheel/internal/repository/game_sqlite_repo"
	"prize_wheel/internal/service"
	"prize_wheel/internal/service/admin"
	"prize_wheel/internal/service/game"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServiceProvider struct {
	// Logger
	loggerCfg config.LoggerConfig
	logger    *zap.Logger

	//TXManager
	txManager trm.Manager

	// Database
	storageCfg config.StorageConfig
	pgConfig   config.PGConfig
	dbClient   *pgxpool.Pool

	sqliteCfg config.SQLiteConfig
	sqliteDB  *sql.DB

	redisCfg    config.RedisConfig
	redisClient *redis.Client

	store repository.Store

	// Game bits
	wheelCfg config.WheelConfig
	gameServ service.GameService
	gameHand *gameAPI.Handler

	// Admin bits
	adminServ service.AdminService
	adminHand *adminAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LoggerCfg() config.LoggerConfig {
	if sp.loggerCfg == nil {
		cfg, err := env.NewLoggerConfig()
		if err != nil {
			panic("failed to get logger config: " + err.Error())
		}
		sp.loggerCfg = cfg
	}
	return sp.loggerCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.logger == nil {
		l, err := logger.New(sp.LoggerCfg().Level())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.logger = l
	}
	return sp.logger
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) SQLiteCfg() config.SQLiteConfig {
	if sp.sqliteCfg == nil {
		cfg, err := env.NewSQLiteConfig()
		if err != nil {
			panic("failed to get sqlite config: " + err.Error())
		}
		sp.sqliteCfg = cfg
	}
	return sp.sqliteCfg
}

func (sp *ServiceProvider) SQLiteDB(ctx context.Context) *sql.DB {
	if sp.sqliteDB == nil {
		db, err := game_sqlite_repo.Open(ctx, sp.SQLiteCfg().Path())
		if err != nil {
			panic("failed to open sqlite: " + err.Error())
		}
		sp.sqliteDB = db
	}
	return sp.sqliteDB
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

func (sp *ServiceProvider) RedisClient(ctx context.Context) *redis.Client {
	if sp.redisClient == nil {
		cfg := sp.RedisCfg()
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = rdb
	}
	return sp.redisClient
}

// Store хранилище игр по STORAGE_DRIVER, миграции выполняются при первом обращении
func (sp *ServiceProvider) Store(ctx context.Context) repository.Store {
	if sp.store == nil {
		driver := sp.StorageCfg().Driver()

		switch driver {
		case config.DriverSQLite:
			db := sp.SQLiteDB(ctx)
			if err := game_sqlite_repo.Migrate(ctx, db); err != nil {
				panic("failed to migrate sqlite: " + err.Error())
			}
			sp.store = game_sqlite_repo.NewGameRepository(db)
		case config.DriverPostgres:
			dbc := sp.DBClient(ctx)
			if err := game_repo.Migrate(ctx, dbc); err != nil {
				panic("failed to migrate postgres: " + err.Error())
			}
			sp.store = game_repo.NewGameRepository(dbc, sp.TXManager(ctx))
		case config.DriverRedis:
			sp.store = game_redis_repo.NewGameRepository(sp.RedisClient(ctx), game_redis_repo.DefaultPrefix)
		default:
			sp.store = game_memory_repo.NewGameRepository()
		}

		sp.Logger().Info("storage ready", zap.String("driver", driver))
	}
	return sp.store
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(env.WheelConfigPath())
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(sp.Store(ctx), sp.WheelCfg(), sp.Logger())
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv:    sp.GameService(ctx),
			BaseURL: sp.HTTPCfg().PublicBaseURL(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewAdminService(sp.Store(ctx), sp.Logger())
	}
	return sp.adminServ
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: sp.AdminService(ctx)})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		sp.router = router.New(router.Deps{
			Game:   sp.GameHandler(ctx),
			Admin:  sp.AdminHandler(ctx),
			Logger: sp.Logger(),
		})
	}

	return sp.router
}

// Close закрывает то, что успели открыть. Повторно ресурсы не открываются
func (sp *ServiceProvider) Close() error {
	var errs []error

	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.sqliteDB != nil {
		errs = append(errs, sp.sqliteDB.Close())
	}
	if sp.redisClient != nil {
		errs = append(errs, sp.redisClient.Close())
	}
	if sp.logger != nil {
		// Sync на stderr возвращает ошибку на части платформ
		_ = sp.logger.Sync()
	}

	return errors.Join(errs...)
}
