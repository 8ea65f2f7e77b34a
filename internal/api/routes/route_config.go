package routes

import (
	"github.com/BenHowl/ReceiptChef/internal/api/handlers"
	"github.com/BenHowl/ReceiptChef/internal/middleware"
	"github.com/BenHowl/ReceiptChef/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                *fiber.App
	MealPlanHandler    handlers.MealPlanHandler
	ReceiptHandler     handlers.ReceiptHandler
	SavedRecipeHandler handlers.SavedRecipeHandler
	AffiliateHandler   handlers.AffiliateHandler
	ObjectHandler      handlers.ObjectHandler
	Middleware         middleware.Middleware
	JWTService         jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.MealPlans()
	c.Receipts()
	c.SavedRecipes()
	c.Affiliate()
	c.Objects()
	c.GuestRoute()
}

func (c *Config) MealPlans() {
	api := c.App.Group("/api")
	{
		api.Post("/fridge/scan", c.MealPlanHandler.ScanFridge)
		api.Post("/meal-plans/generate", c.MealPlanHandler.GenerateMealPlans)
		api.Post("/meal-plans/share", c.MealPlanHandler.ShareMealPlans)
		api.Post("/process-base64", c.ReceiptHandler.ProcessBase64)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/receipts")
	{
		receipts.Post("/upload", c.ReceiptHandler.UploadReceipt)
		receipts.Post("", c.ReceiptHandler.CreateReceipt)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
		receipts.Get("/:id", c.ReceiptHandler.GetReceipt)
		receipts.Post("/:id/process", c.ReceiptHandler.ProcessReceipt)
		receipts.Get("/:id/meal-plan", c.ReceiptHandler.GetReceiptMealPlan)
	}
}

func (c *Config) SavedRecipes() {
	saved := c.App.Group("/api/saved-recipes", c.Middleware.UserMiddleware(c.JWTService))
	{
		saved.Get("", c.SavedRecipeHandler.GetSavedRecipes)
		saved.Post("", c.SavedRecipeHandler.SaveRecipe)
		saved.Delete("/:recipeId", c.SavedRecipeHandler.DeleteSavedRecipe)
		saved.Get("/:recipeId/status", c.SavedRecipeHandler.GetRecipeStatus)
	}
}

func (c *Config) Affiliate() {
	affiliate := c.App.Group("/api/affiliate")
	{
		affiliate.Get("/products", c.AffiliateHandler.GetProducts)
		affiliate.Post("/products", c.AffiliateHandler.GetProducts)
		affiliate.Post("/track", c.AffiliateHandler.TrackClick)
	}
}

func (c *Config) Objects() {
	c.App.Get("/objects/+", c.ObjectHandler.GetObject)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
