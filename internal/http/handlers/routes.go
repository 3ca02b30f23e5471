package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "lostfound/internal/log"
)

// Register mounts the API route table. Middleware that is environment
// dependent (logging, CORS, global rate caps) stays in main.
func Register(app *fiber.App, d *Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Lost & Found API is running",
			"endpoints": fiber.Map{
				"auth":   "/api/auth",
				"items":  "/api/items",
				"health": "/api/health",
			},
		})
	})

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "timestamp": time.Now().UTC().Format(time.RFC3339)})
	})

	// Auth (login throttled)
	authGrp := api.Group("/auth")
	authGrp.Post("/register", d.AuthHandler.Register)
	authGrp.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return respondErr(c, fiber.StatusTooManyRequests, "too many attempts, please try again later")
		},
	}), d.AuthHandler.Login)
	authGrp.Get("/me", RequireUser(d.Auth), d.AuthHandler.Me)

	// Items; /mine must be mounted before /:id
	items := api.Group("/items")
	items.Post("/", RequireUser(d.Auth), d.ItemHandler.Create)
	items.Get("/", d.ItemHandler.List)
	items.Get("/mine", RequireUser(d.Auth), d.ItemHandler.Mine)
	items.Get("/:id", OptionalUser(d.Auth), d.ItemHandler.Get)
	items.Put("/:id", RequireUser(d.Auth), d.ItemHandler.Update)
	items.Delete("/:id", RequireUser(d.Auth), d.ItemHandler.Delete)
	items.Post("/:id/claim", RequireUser(d.Auth), d.ItemHandler.Claim)

	app.Use(func(c *fiber.Ctx) error {
		return respondErr(c, fiber.StatusNotFound, "route not found")
	})
}
