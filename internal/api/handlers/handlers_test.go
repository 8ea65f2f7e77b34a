package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/BenHowl/ReceiptChef/internal/api/handlers"
	"github.com/BenHowl/ReceiptChef/internal/api/routes"
	"github.com/BenHowl/ReceiptChef/internal/middleware"
	"github.com/BenHowl/ReceiptChef/internal/utils"
	"github.com/BenHowl/ReceiptChef/pkg/affiliate"
	"github.com/BenHowl/ReceiptChef/pkg/jwt"
	"github.com/BenHowl/ReceiptChef/pkg/mealplan"
	"github.com/BenHowl/ReceiptChef/pkg/openai"
	"github.com/BenHowl/ReceiptChef/pkg/receipt"
	"github.com/BenHowl/ReceiptChef/pkg/savedrecipe"
	"github.com/BenHowl/ReceiptChef/pkg/vision"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeModelAPI stands in for the completions endpoint. It answers extraction
// requests with an ingredient list and generation requests with one full
// three-recipe plan, and counts every call.
func fakeModelAPI(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		content := `{"ingredients":["egg","rice","onion"]}`
		if bytes.Contains(body, []byte("meal plan")) {
			content = `{"mealPlans":[{"id":"plan-1","day":"Day 1","generatedAt":"2025-09-12T19:00:00.000Z","recipes":[` +
				`{"id":"r1","title":"Omelette","mealType":"breakfast","cookingTime":10,"servings":2,"difficulty":"easy"},` +
				`{"id":"r2","title":"Fried Rice","mealType":"lunch","cookingTime":20,"servings":2,"difficulty":"easy"},` +
				`{"id":"r3","title":"Onion Soup","mealType":"dinner","cookingTime":40,"servings":4,"difficulty":"medium"}]}]}`
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

// newTestApp wires the full route table against in-memory repositories. An
// empty baseURL leaves the model client unconfigured.
func newTestApp(t *testing.T, baseURL string) *fiber.App {
	t.Helper()
	utils.InitValidator()

	var client *openai.Client
	if baseURL != "" {
		var err error
		client, err = openai.NewClient(openai.Config{APIKey: "sk-test", BaseURL: baseURL})
		require.NoError(t, err)
	}

	visionService := vision.NewVisionService(client)
	mealPlanService := mealplan.NewMealPlanService(client, nil)
	receiptService := receipt.NewReceiptService(
		receipt.NewMemoryReceiptRepository(), visionService, mealPlanService, nil)
	savedRecipeService := savedrecipe.NewSavedRecipeService(savedrecipe.NewMemorySavedRecipeRepository())
	affiliateService := affiliate.NewAffiliateService()

	app := fiber.New()
	routesConfig := routes.Config{
		App:                app,
		MealPlanHandler:    handlers.NewMealPlanHandler(visionService, mealPlanService, receiptService, utils.Validate),
		ReceiptHandler:     handlers.NewReceiptHandler(receiptService, utils.Validate),
		SavedRecipeHandler: handlers.NewSavedRecipeHandler(savedRecipeService, utils.Validate),
		AffiliateHandler:   handlers.NewAffiliateHandler(affiliateService, utils.Validate),
		ObjectHandler:      handlers.NewObjectHandler(nil),
		Middleware:         middleware.NewMiddleware(),
		JWTService:         jwt.NewJWTService(),
	}
	routesConfig.Setup()
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (*http.Response, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestScanAndGenerateEndToEnd(t *testing.T) {
	var calls atomic.Int32
	server := fakeModelAPI(t, &calls)
	defer server.Close()

	app := newTestApp(t, server.URL)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/fridge/scan",
		map[string]string{"base64Image": "aGVsbG8="})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rawIngredients, ok := body["ingredients"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, rawIngredients)

	ingredients := make([]string, 0, len(rawIngredients))
	for _, ingredient := range rawIngredients {
		ingredients = append(ingredients, ingredient.(string))
	}

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/meal-plans/generate",
		map[string]any{"ingredients": ingredients})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mealPlans, ok := body["mealPlans"].([]any)
	require.True(t, ok)
	require.Len(t, mealPlans, 1)

	plan := mealPlans[0].(map[string]any)
	recipes := plan["recipes"].([]any)
	assert.Len(t, recipes, 3)
}

func TestScanWithoutCredential(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/fridge/scan",
		map[string]string{"base64Image": "aGVsbG8="})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "OpenAI API key not configured", body["error"])
}

func TestScanWithoutCredentialMakesNoCalls(t *testing.T) {
	var calls atomic.Int32
	server := fakeModelAPI(t, &calls)
	defer server.Close()

	// the server is running but the app has no credential configured
	app := newTestApp(t, "")

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/fridge/scan",
		map[string]string{"base64Image": "aGVsbG8="})

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(0), calls.Load())
}

func TestScanMissingImage(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/fridge/scan", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestGenerateRejectsEmptyIngredients(t *testing.T) {
	var calls atomic.Int32
	server := fakeModelAPI(t, &calls)
	defer server.Close()

	app := newTestApp(t, server.URL)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/meal-plans/generate",
		map[string]any{"ingredients": []string{}})

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
	assert.Equal(t, int32(0), calls.Load())
}

func TestReceiptLifecycle(t *testing.T) {
	var calls atomic.Int32
	server := fakeModelAPI(t, &calls)
	defer server.Close()

	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	}))
	defer imageServer.Close()

	app := newTestApp(t, server.URL)

	resp, created := doJSON(t, app, fiber.MethodPost, "/api/receipts",
		map[string]string{"imageUrl": imageServer.URL + "/receipt.jpg"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["id"].(string)
	require.NotEmpty(t, id)

	resp, fetched := doJSON(t, app, fiber.MethodGet, "/api/receipts/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, id, fetched["id"])

	resp, processed := doJSON(t, app, fiber.MethodPost, "/api/receipts/"+id+"/process", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, processed["ingredients"])
	assert.NotEmpty(t, processed["mealPlans"])

	listReq := httptest.NewRequest(fiber.MethodGet, "/api/receipts", nil)
	listResp, err := app.Test(listReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var receipts []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&receipts))
	require.Len(t, receipts, 1)
	assert.Equal(t, id, receipts[0]["id"])
}

func TestReceiptNotFound(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/receipts/no-such-id", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Receipt not found", body["error"])
}

func TestReceiptMealPlanWithoutIngredients(t *testing.T) {
	app := newTestApp(t, "")

	resp, created := doJSON(t, app, fiber.MethodPost, "/api/receipts",
		map[string]string{"imageUrl": "https://example.com/a.jpg"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := created["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/receipts/"+id+"/meal-plan", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestCreateReceiptValidation(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/receipts", map[string]string{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["error"])
}

func TestProcessBase64EndToEnd(t *testing.T) {
	var calls atomic.Int32
	server := fakeModelAPI(t, &calls)
	defer server.Close()

	app := newTestApp(t, server.URL)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/process-base64",
		map[string]string{"base64Image": "aGVsbG8="})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["id"])
	assert.NotEmpty(t, body["ingredients"])
	assert.NotEmpty(t, body["mealPlans"])
}

func TestUploadWithoutStorage(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/receipts/upload", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "object storage not configured", body["error"])
}

func TestObjectsWithoutStorage(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodGet, "/objects/receipts/abc.jpg", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "object storage not configured", body["error"])
}

func TestSavedRecipesFlow(t *testing.T) {
	app := newTestApp(t, "")
	recipe := map[string]any{"id": "r1", "title": "Omelette", "mealType": "breakfast"}

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/saved-recipes", recipe)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/saved-recipes", recipe)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Recipe already saved", body["error"])

	resp, status := doJSON(t, app, fiber.MethodGet, "/api/saved-recipes/r1/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, status["saved"])

	req := httptest.NewRequest(fiber.MethodGet, "/api/saved-recipes", nil)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var recipes []map[string]any
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Omelette", recipes[0]["title"])

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/saved-recipes/r1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, status = doJSON(t, app, fiber.MethodGet, "/api/saved-recipes/r1/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, status["saved"])
}

func TestSaveRecipeWithoutID(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/saved-recipes",
		map[string]any{"title": "No ID"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Valid recipe required", body["error"])
}

func TestAffiliateProducts(t *testing.T) {
	app := newTestApp(t, "")

	req := httptest.NewRequest(fiber.MethodGet, "/api/affiliate/products?context=general&maxItems=3", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var products []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&products))
	require.NotEmpty(t, products)
	assert.LessOrEqual(t, len(products), 3)
}

func TestAffiliateTrackRequiresProductID(t *testing.T) {
	app := newTestApp(t, "")

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/affiliate/track",
		map[string]string{"context": "recipe"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product ID required", body["error"])

	resp, ok := doJSON(t, app, fiber.MethodPost, "/api/affiliate/track",
		map[string]string{"productId": "amz-knife-set", "context": "recipe"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, ok["success"])
}
