package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	"luckywheel/internal/pkg/caching"
	"luckywheel/internal/pkg/logging"
	"luckywheel/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Action: func(c *cli.Context) error {
			logging.Init("cron", os.Getenv("API_MODE") == "debug")

			container, err := newContainer()
			if err != nil {
				return err
			}

			dbPostgres, err := do.Invoke[*bun.DB](container)
			if err != nil {
				return err
			}

			serviceDraw, err := do.Invoke[*services.ServiceDraw](container)
			if err != nil {
				return err
			}

			loc, err := do.InvokeNamed[*time.Location](container, "draw-location")
			if err != nil {
				return err
			}

			cronRunner := cron.New(cron.WithLocation(loc))

			drawJob := NewDrawJob(dbPostgres, serviceDraw)
			drawJob.Start(cronRunner)
			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func newContainer() (*do.Injector, error) {
	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		return getDb()
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := getRedis()
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
	})

	do.ProvideNamed(injector, "draw-location", func(i *do.Injector) (*time.Location, error) {
		tz := os.Getenv("DRAW_TIMEZONE")
		if tz == "" {
			return time.Local, nil
		}
		return time.LoadLocation(tz)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceDraw, error) {
		return services.NewServiceDraw(injector)
	})

	return injector, nil
}

func getDb() (*bun.DB, error) {
	godotenv.Load()
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(os.Getenv("DB_DSN")),
		pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
	))

	db := bun.NewDB(sqldb, pgdialect.New())
	return db, nil
}

func getRedis() (redis.UniversalClient, error) {
	url := os.Getenv("REDIS_CACHE")
	if url == "" {
		url = os.Getenv("REDIS_URL")
	}
	return db.InitRedis(&db.RedisConfig{
		URL: url,
	})
}
