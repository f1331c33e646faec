package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nyumbani-labs/rentpulse/app/repository"
	"github.com/nyumbani-labs/rentpulse/internal/pkg/ipn"
)

// Router installs a related group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps carries the shared instances the routers hand to their controllers.
type Deps struct {
	Repos   *repository.Repositories
	Service *ipn.Service
	Runner  *ipn.ScenarioRunner
}

// InstallRouter wires all route groups. The webhook router goes first so the
// gateway endpoint never sits behind admin middleware.
func InstallRouter(app *fiber.App, deps Deps) {
	setup(app, NewWebhookRouter(deps), NewApiRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
