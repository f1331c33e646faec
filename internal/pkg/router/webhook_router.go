package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/nyumbani-labs/rentpulse/app/controllers"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/cache"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/env"
)

type WebhookRouter struct {
	deps Deps
}

func NewWebhookRouter(deps Deps) *WebhookRouter {
	return &WebhookRouter{deps: deps}
}

// InstallRouter registers the gateway-facing endpoint. The limiter shares its
// counters through Redis so every replica sees the same budget.
func (h *WebhookRouter) InstallRouter(app *fiber.App) {
	ipnController := controllers.NewIPNController(h.deps.Service)

	jenga := app.Group("/api/jenga", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage:    newLimiterStorage(),
	}))
	jenga.Post("/ipn", ipnController.HandleIPN)

	app.Get("/up", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

// newLimiterStorage builds Redis-backed limiter storage from the cache client
// configuration, on database 1 so cache keys stay in DB 0.
func newLimiterStorage() *redisstorage.Storage {
	cacheClient := cache.GetClient()
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if cacheClient != nil {
		addr := cacheClient.Options().Addr
		if h, p, err := net.SplitHostPort(addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
		if p := cacheClient.Options().Password; p != "" {
			password = p
		}
	}

	return redisstorage.New(redisstorage.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: 1,
		Reset:    false,
	})
}
