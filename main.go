package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/cache"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/database"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/env"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/ipn"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/jobqueue"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/router"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/statistics"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	service := ipn.NewService(
		repos.IPNLog,
		repos.IPNConfig,
		repos.Payment,
		repos.Audit,
		statistics.NewRecorder(),
	)
	runner := ipn.NewScenarioRunner(service, repos.IPNConfig, repos.IPNTestLog)

	jobqueue.GetManager(repos).Start()

	app := fiber.New(fiber.Config{
		AppName: "rentpulse",
	})
	app.Use(recover.New(), logger.New())
	app.Get("/metrics", monitor.New())

	router.InstallRouter(app, router.Deps{
		Repos:   repos,
		Service: service,
		Runner:  runner,
	})

	return app
}
