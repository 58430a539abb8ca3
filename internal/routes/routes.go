package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *services.TokenService,
	userHandler *handlers.UserHandler,
	recipeHandler *handlers.RecipeHandler,
	attrHandler *handlers.AttrHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Uploaded recipe images
	app.Static("/uploads", cfg.UploadDir)

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no auth required)
	api.Get("/health", healthHandler.Check)

	// Accounts — signup and token issuance are public but rate limited
	// harder than the rest of the API: 10 req/min per IP
	users := api.Group("/users")
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	users.Post("/", authLimiter, userHandler.Register)
	users.Post("/token", authLimiter, userHandler.Token)

	me := users.Group("/me", middleware.Protected(cfg, tokens))
	me.Get("/", userHandler.Me)
	me.Put("/", userHandler.UpdateMe)
	me.Patch("/", userHandler.UpdateMe)

	// Recipes (bearer required)
	recipes := api.Group("/recipes", middleware.Protected(cfg, tokens))
	recipes.Get("/", recipeHandler.List)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Patch("/:id", recipeHandler.Update)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Post("/:id/upload-image", recipeHandler.UploadImage)

	// Tags and ingredients (bearer required)
	tags := api.Group("/tags", middleware.Protected(cfg, tokens))
	tags.Get("/", attrHandler.ListTags)
	tags.Get("/:id", attrHandler.GetTag)
	tags.Patch("/:id", attrHandler.UpdateTag)
	tags.Delete("/:id", attrHandler.DeleteTag)

	ingredients := api.Group("/ingredients", middleware.Protected(cfg, tokens))
	ingredients.Get("/", attrHandler.ListIngredients)
	ingredients.Get("/:id", attrHandler.GetIngredient)
	ingredients.Patch("/:id", attrHandler.UpdateIngredient)
	ingredients.Delete("/:id", attrHandler.DeleteIngredient)
}
