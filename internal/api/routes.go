package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	v1 := app.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)

	users := v1.Group("/users", handler.AuthRequired)
	users.Get("/me", handler.Me)
	users.Patch("/me/cycle-settings", handler.UpdateCycleSettings)

	cycles := v1.Group("/cycle", handler.AuthRequired)
	cycles.Get("/current", handler.CurrentCycle)
	cycles.Post("/log-period", handler.LogPeriod)
	cycles.Post("/initialize", handler.InitializeCycle)
	cycles.Get("/history", handler.CycleHistory)
	cycles.Patch("/history/:id", handler.UpdateCycleEntry)
	cycles.Delete("/history/:id", handler.DeleteCycleEntry)
	cycles.Get("/predictions", handler.CyclePredictions)
	cycles.Get("/export/csv", handler.ExportCSV)
	cycles.Get("/export/xlsx", handler.ExportXLSX)
}
