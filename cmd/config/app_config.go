package config

import (
	"os"
	"strings"
	"time"

	"github.com/BenHowl/ReceiptChef/internal/api/handlers"
	"github.com/BenHowl/ReceiptChef/internal/api/routes"
	"github.com/BenHowl/ReceiptChef/internal/middleware"
	"github.com/BenHowl/ReceiptChef/internal/utils"
	"github.com/BenHowl/ReceiptChef/internal/utils/mailing"
	"github.com/BenHowl/ReceiptChef/internal/utils/storage"
	"github.com/BenHowl/ReceiptChef/pkg/affiliate"
	"github.com/BenHowl/ReceiptChef/pkg/jwt"
	"github.com/BenHowl/ReceiptChef/pkg/mealplan"
	"github.com/BenHowl/ReceiptChef/pkg/openai"
	"github.com/BenHowl/ReceiptChef/pkg/receipt"
	"github.com/BenHowl/ReceiptChef/pkg/savedrecipe"
	"github.com/BenHowl/ReceiptChef/pkg/vision"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// NewApp wires the whole service. db may be nil, in which case records live
// in memory for the process lifetime.
func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils; both the model client and object storage may be absent, the
	// services answer "not configured" instead of calling out.
	openaiClient, err := openai.NewClient(openai.Config{
		APIKey:  utils.GetConfig("OPENAI_API_KEY"),
		BaseURL: utils.GetConfig("OPENAI_BASE_URL"),
		Models:  splitModels(utils.GetConfig("OPENAI_MODELS")),
	})
	if err != nil {
		log.Warnf("openai client unavailable: %v", err)
	}

	s3, err := storage.NewAwsS3()
	if err != nil {
		log.Warnf("object storage unavailable: %v", err)
		s3 = nil
	}

	// Repository
	var receiptRepository receipt.ReceiptRepository
	var savedRecipeRepository savedrecipe.SavedRecipeRepository
	if db != nil {
		receiptRepository = receipt.NewReceiptRepository(db)
		savedRecipeRepository = savedrecipe.NewSavedRecipeRepository(db)
	} else {
		receiptRepository = receipt.NewMemoryReceiptRepository()
		savedRecipeRepository = savedrecipe.NewMemorySavedRecipeRepository()
	}

	// Service
	jwtService := jwt.NewJWTService()
	visionService := vision.NewVisionService(openaiClient)
	mealPlanService := mealplan.NewMealPlanService(openaiClient, mailing.SendMail)
	receiptService := receipt.NewReceiptService(receiptRepository, visionService, mealPlanService, s3)
	savedRecipeService := savedrecipe.NewSavedRecipeService(savedRecipeRepository)
	affiliateService := affiliate.NewAffiliateService()

	// Handler
	mealPlanHandler := handlers.NewMealPlanHandler(visionService, mealPlanService, receiptService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	savedRecipeHandler := handlers.NewSavedRecipeHandler(savedRecipeService, validator)
	affiliateHandler := handlers.NewAffiliateHandler(affiliateService, validator)
	objectHandler := handlers.NewObjectHandler(s3)

	// routes
	routesConfig := routes.Config{
		App:                app,
		MealPlanHandler:    mealPlanHandler,
		ReceiptHandler:     receiptHandler,
		SavedRecipeHandler: savedRecipeHandler,
		AffiliateHandler:   affiliateHandler,
		ObjectHandler:      objectHandler,
		Middleware:         middlewares,
		JWTService:         jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

func splitModels(raw string) []string {
	if raw == "" {
		return nil
	}
	var models []string
	for _, model := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(model); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}
