package receipt

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/utils/storage"
	"github.com/BenHowl/ReceiptChef/pkg/mealplan"
	"github.com/BenHowl/ReceiptChef/pkg/vision"
)

type (
	ReceiptService interface {
		CreateReceipt(ctx context.Context, req domain.CreateReceiptRequest) (domain.Receipt, error)
		GetReceipt(ctx context.Context, id string) (domain.Receipt, error)
		ListReceipts(ctx context.Context) ([]domain.Receipt, error)
		ProcessReceipt(ctx context.Context, id string) (domain.Receipt, error)
		RegenerateMealPlans(ctx context.Context, id string) (domain.Receipt, error)
		ProcessBase64(ctx context.Context, base64Image string) (domain.ProcessBase64Response, error)
		PresignUpload(ctx context.Context, contentType string) (domain.UploadURLResponse, error)
		DirectUpload(ctx context.Context, req domain.DirectUploadRequest) (domain.DirectUploadResponse, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		visionService     vision.VisionService
		mealPlanService   mealplan.MealPlanService
		s3                storage.AwsS3 // nil when storage is not configured
		httpClient        *http.Client
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	visionService vision.VisionService,
	mealPlanService mealplan.MealPlanService,
	s3 storage.AwsS3,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		visionService:     visionService,
		mealPlanService:   mealPlanService,
		s3:                s3,
		httpClient:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *receiptService) CreateReceipt(ctx context.Context, req domain.CreateReceiptRequest) (domain.Receipt, error) {
	return s.receiptRepository.CreateReceipt(ctx, req.ImageURL)
}

func (s *receiptService) GetReceipt(ctx context.Context, id string) (domain.Receipt, error) {
	return s.receiptRepository.GetReceiptByID(ctx, id)
}

func (s *receiptService) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	return s.receiptRepository.GetAllReceipts(ctx)
}

// ProcessReceipt runs the full pipeline for a stored receipt: fetch the
// image, extract ingredients, generate meal plans, then persist both in one
// update. Nothing is written when any step fails.
func (s *receiptService) ProcessReceipt(ctx context.Context, id string) (domain.Receipt, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}

	base64Image, err := s.fetchImageBase64(ctx, receipt.ImageURL)
	if err != nil {
		return domain.Receipt{}, err
	}

	ingredients, err := s.visionService.ExtractIngredients(ctx, base64Image, vision.VariantReceipt)
	if err != nil {
		return domain.Receipt{}, err
	}

	mealPlans, err := s.mealPlanService.GenerateMealPlans(ctx, ingredients)
	if err != nil {
		return domain.Receipt{}, err
	}

	return s.receiptRepository.UpdateReceipt(ctx, id, domain.ReceiptUpdate{
		Ingredients: &ingredients,
		MealPlans:   &mealPlans,
	})
}

func (s *receiptService) RegenerateMealPlans(ctx context.Context, id string) (domain.Receipt, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}

	if len(receipt.Ingredients) == 0 {
		return domain.Receipt{}, domain.ErrReceiptNoIngredient
	}

	mealPlans, err := s.mealPlanService.GenerateMealPlans(ctx, receipt.Ingredients)
	if err != nil {
		return domain.Receipt{}, err
	}

	return s.receiptRepository.UpdateReceipt(ctx, id, domain.ReceiptUpdate{
		MealPlans: &mealPlans,
	})
}

// ProcessBase64 is the one-shot variant: no prior upload, the image arrives
// inline and the combined record is created on the spot.
func (s *receiptService) ProcessBase64(ctx context.Context, base64Image string) (domain.ProcessBase64Response, error) {
	ingredients, err := s.visionService.ExtractIngredients(ctx, base64Image, vision.VariantReceipt)
	if err != nil {
		return domain.ProcessBase64Response{}, err
	}

	mealPlans, err := s.mealPlanService.GenerateMealPlans(ctx, ingredients)
	if err != nil {
		return domain.ProcessBase64Response{}, err
	}

	receipt, err := s.receiptRepository.CreateReceipt(ctx, "inline-base64")
	if err != nil {
		return domain.ProcessBase64Response{}, err
	}

	updated, err := s.receiptRepository.UpdateReceipt(ctx, receipt.ID, domain.ReceiptUpdate{
		Ingredients: &ingredients,
		MealPlans:   &mealPlans,
	})
	if err != nil {
		return domain.ProcessBase64Response{}, err
	}

	return domain.ProcessBase64Response{
		ID:          updated.ID,
		Ingredients: updated.Ingredients,
		MealPlans:   updated.MealPlans,
		CreatedAt:   updated.CreatedAt,
	}, nil
}

func (s *receiptService) PresignUpload(ctx context.Context, contentType string) (domain.UploadURLResponse, error) {
	if s.s3 == nil {
		return domain.UploadURLResponse{}, domain.ErrStorageNotConfigured
	}

	uploadURL, objectKey, err := s.s3.PresignUploadURL(ctx, contentType)
	if err != nil {
		return domain.UploadURLResponse{}, err
	}

	return domain.UploadURLResponse{
		UploadURL:    uploadURL,
		ReadablePath: "/objects/" + objectKey,
	}, nil
}

func (s *receiptService) DirectUpload(ctx context.Context, req domain.DirectUploadRequest) (domain.DirectUploadResponse, error) {
	if s.s3 == nil {
		return domain.DirectUploadResponse{}, domain.ErrStorageNotConfigured
	}

	objectKey, err := s.s3.UploadBase64(ctx, req.File, req.ContentType, "receipts")
	if err != nil {
		return domain.DirectUploadResponse{}, err
	}

	publicURL := s.s3.GetPublicLinkKey(objectKey)
	return domain.DirectUploadResponse{
		URL:         publicURL,
		DownloadURL: publicURL,
	}, nil
}

// fetchImageBase64 resolves either an object-store readable path or a
// direct URL into base64 image bytes.
func (s *receiptService) fetchImageBase64(ctx context.Context, imageURL string) (string, error) {
	if strings.HasPrefix(imageURL, "/objects/") {
		if s.s3 == nil {
			return "", domain.ErrStorageNotConfigured
		}
		data, err := s.s3.GetObjectBase64(ctx, strings.TrimPrefix(imageURL, "/objects/"))
		if err != nil {
			if err == storage.ErrObjectNotFound {
				return "", domain.ErrReceiptImageFetch
			}
			return "", err
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", domain.ErrReceiptImageFetch
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrReceiptImageFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.ErrReceiptImageFetch
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
