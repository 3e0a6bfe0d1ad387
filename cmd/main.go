package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/commands"
	"hrms/backend/internal/pkg/config"
	"hrms/backend/internal/pkg/logger"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/router"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		logger.Logger.WithError(err).Fatal("startup failed")
	}
}

func run() error {
	// Process settings come from flags/env, secrets and endpoints from
	// config.yaml.
	var settings struct {
		Web struct {
			Port string `conf:"default::8080"`
		}
		Migrate bool `conf:"default:true"`
	}

	if err := conf.Parse(os.Args[1:], "HRMS", &settings); err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			usage, err := conf.Usage("HRMS", &settings)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing settings")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	postgresDB := postgresql.NewDB(postgresql.Config{
		Username:   cfg.DBUsername,
		Password:   cfg.DBPassword,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		Name:       cfg.DBName,
		DisableTLS: cfg.DisableTLS,
	})
	defer postgresDB.Close()

	if settings.Migrate {
		commands.MigrateUP(postgresDB)
	}

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisDB.Close()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	app := web.NewApp(shutdown)

	r := router.NewRouter(app, postgresDB, redisDB, settings.Web.Port, auth.New(cfg.JWTKey), cfg.BaseUrl)

	logger.Logger.WithField("port", settings.Web.Port).Info("starting api")

	return r.Init()
}
