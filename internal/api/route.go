package api

import (
	v1 "github.com/Behyna/airtime-topup/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const topUpPath = "/airtime/top-up/"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/health", handler.Health)
	app.Get(topUpPath, handler.GetSession)
	app.Post(topUpPath, handler.TopUp)
}

func SetupMetricsRoute(app *fiber.App, gatherer prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
