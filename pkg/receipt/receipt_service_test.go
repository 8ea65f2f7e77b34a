package receipt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/pkg/vision"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisionService struct {
	ingredients []string
	err         error
	calls       int
	lastVariant vision.PromptVariant
}

func (f *fakeVisionService) ExtractIngredients(_ context.Context, _ string, variant vision.PromptVariant) ([]string, error) {
	f.calls++
	f.lastVariant = variant
	return f.ingredients, f.err
}

type fakeMealPlanService struct {
	mealPlans []domain.MealPlan
	err       error
	calls     int
}

func (f *fakeMealPlanService) GenerateMealPlans(_ context.Context, _ []string) ([]domain.MealPlan, error) {
	f.calls++
	return f.mealPlans, f.err
}

func (f *fakeMealPlanService) ShareMealPlans(_ context.Context, _ string, _ domain.Receipt) error {
	return nil
}

func imageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xFF, 0xD8, 0xFF, 0xE0})
	}))
}

func TestProcessReceipt(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{ingredients: []string{"egg", "rice"}}
	mealPlanSvc := &fakeMealPlanService{mealPlans: []domain.MealPlan{{ID: "plan-1", Day: "Day 1"}}}
	service := NewReceiptService(repo, visionSvc, mealPlanSvc, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: server.URL + "/receipt.jpg"})
	require.NoError(t, err)

	processed, err := service.ProcessReceipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"egg", "rice"}, processed.Ingredients)
	assert.Equal(t, "plan-1", processed.MealPlans[0].ID)
	assert.Equal(t, vision.VariantReceipt, visionSvc.lastVariant)

	stored, err := service.GetReceipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, processed, stored)
}

func TestProcessReceiptNotFound(t *testing.T) {
	service := NewReceiptService(NewMemoryReceiptRepository(), &fakeVisionService{}, &fakeMealPlanService{}, nil)

	_, err := service.ProcessReceipt(context.Background(), "no-such-id")
	require.ErrorIs(t, err, domain.ErrReceiptNotFound)
}

func TestProcessReceiptImageFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{ingredients: []string{"egg"}}
	service := NewReceiptService(repo, visionSvc, &fakeMealPlanService{}, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: server.URL + "/gone.jpg"})
	require.NoError(t, err)

	_, err = service.ProcessReceipt(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrReceiptImageFetch)
	assert.Equal(t, 0, visionSvc.calls)
}

func TestProcessReceiptNoPartialWrite(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{ingredients: []string{"egg", "rice"}}
	mealPlanSvc := &fakeMealPlanService{err: domain.ErrGenerationFailed}
	service := NewReceiptService(repo, visionSvc, mealPlanSvc, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: server.URL + "/receipt.jpg"})
	require.NoError(t, err)

	_, err = service.ProcessReceipt(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrGenerationFailed)

	// the extracted ingredients must not have been persisted
	stored, err := service.GetReceipt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Ingredients)
	assert.Empty(t, stored.MealPlans)
}

func TestRegenerateMealPlansRequiresIngredients(t *testing.T) {
	repo := NewMemoryReceiptRepository()
	mealPlanSvc := &fakeMealPlanService{mealPlans: []domain.MealPlan{{ID: "plan-1"}}}
	service := NewReceiptService(repo, &fakeVisionService{}, mealPlanSvc, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: "https://example.com/a.jpg"})
	require.NoError(t, err)

	_, err = service.RegenerateMealPlans(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrReceiptNoIngredient)
	assert.Equal(t, 0, mealPlanSvc.calls)
}

func TestRegenerateMealPlans(t *testing.T) {
	repo := NewMemoryReceiptRepository()
	mealPlanSvc := &fakeMealPlanService{mealPlans: []domain.MealPlan{{ID: "plan-2", Day: "Day 1"}}}
	service := NewReceiptService(repo, &fakeVisionService{}, mealPlanSvc, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: "https://example.com/a.jpg"})
	require.NoError(t, err)

	ingredients := []string{"egg"}
	_, err = repo.UpdateReceipt(context.Background(), created.ID, domain.ReceiptUpdate{Ingredients: &ingredients})
	require.NoError(t, err)

	updated, err := service.RegenerateMealPlans(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "plan-2", updated.MealPlans[0].ID)
	assert.Equal(t, []string{"egg"}, updated.Ingredients)
}

func TestProcessBase64(t *testing.T) {
	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{ingredients: []string{"milk"}}
	mealPlanSvc := &fakeMealPlanService{mealPlans: []domain.MealPlan{{ID: "plan-1"}}}
	service := NewReceiptService(repo, visionSvc, mealPlanSvc, nil)

	res, err := service.ProcessBase64(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, []string{"milk"}, res.Ingredients)
	require.Len(t, res.MealPlans, 1)

	stored, err := service.GetReceipt(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"milk"}, stored.Ingredients)
}

func TestProcessBase64ExtractionFailure(t *testing.T) {
	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{err: domain.ErrExtractionFailed}
	service := NewReceiptService(repo, visionSvc, &fakeMealPlanService{}, nil)

	_, err := service.ProcessBase64(context.Background(), "aGVsbG8=")
	require.ErrorIs(t, err, domain.ErrExtractionFailed)

	// no record is created when the pipeline fails
	receipts, err := service.ListReceipts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, receipts)
}

func TestUploadWithoutStorage(t *testing.T) {
	service := NewReceiptService(NewMemoryReceiptRepository(), &fakeVisionService{}, &fakeMealPlanService{}, nil)

	_, err := service.PresignUpload(context.Background(), "image/jpeg")
	require.ErrorIs(t, err, domain.ErrStorageNotConfigured)

	_, err = service.DirectUpload(context.Background(), domain.DirectUploadRequest{File: "aGVsbG8="})
	require.ErrorIs(t, err, domain.ErrStorageNotConfigured)
}

func TestFetchImageObjectPathWithoutStorage(t *testing.T) {
	repo := NewMemoryReceiptRepository()
	service := NewReceiptService(repo, &fakeVisionService{ingredients: []string{"egg"}}, &fakeMealPlanService{}, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: "/objects/receipts/abc.jpg"})
	require.NoError(t, err)

	_, err = service.ProcessReceipt(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrStorageNotConfigured)
}

func TestProcessReceiptEmptyIngredientsStillFails(t *testing.T) {
	server := imageServer(t)
	defer server.Close()

	repo := NewMemoryReceiptRepository()
	visionSvc := &fakeVisionService{ingredients: []string{}}
	mealPlanSvc := &fakeMealPlanService{err: domain.ErrEmptyIngredientList}
	service := NewReceiptService(repo, visionSvc, mealPlanSvc, nil)

	created, err := service.CreateReceipt(context.Background(), domain.CreateReceiptRequest{ImageURL: server.URL + "/blank.jpg"})
	require.NoError(t, err)

	_, err = service.ProcessReceipt(context.Background(), created.ID)
	require.Error(t, err)
	require.True(t, errors.Is(err, domain.ErrEmptyIngredientList))
}
