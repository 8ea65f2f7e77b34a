package receipt

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	// ReceiptRepository stores receipt records. The gorm and in-memory
	// implementations are interchangeable; business logic never knows which
	// one it holds.
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, imageURL string) (domain.Receipt, error)
		GetReceiptByID(ctx context.Context, id string) (domain.Receipt, error)
		UpdateReceipt(ctx context.Context, id string, update domain.ReceiptUpdate) (domain.Receipt, error)
		GetAllReceipts(ctx context.Context) ([]domain.Receipt, error)
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, imageURL string) (domain.Receipt, error) {
	entity := &entities.Receipt{
		ID:          uuid.New(),
		ImageURL:    imageURL,
		Ingredients: "[]",
		MealPlans:   "[]",
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return domain.Receipt{}, err
	}
	return toDomainReceipt(entity), nil
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id string) (domain.Receipt, error) {
	var entity entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Receipt{}, domain.ErrReceiptNotFound
		}
		return domain.Receipt{}, err
	}
	return toDomainReceipt(&entity), nil
}

func (r *receiptRepository) UpdateReceipt(ctx context.Context, id string, update domain.ReceiptUpdate) (domain.Receipt, error) {
	var entity entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Receipt{}, domain.ErrReceiptNotFound
		}
		return domain.Receipt{}, err
	}

	if update.Ingredients != nil {
		raw, err := json.Marshal(*update.Ingredients)
		if err != nil {
			return domain.Receipt{}, err
		}
		entity.Ingredients = string(raw)
	}
	if update.MealPlans != nil {
		raw, err := json.Marshal(*update.MealPlans)
		if err != nil {
			return domain.Receipt{}, err
		}
		entity.MealPlans = string(raw)
	}
	entity.UpdatedAt = time.Now()

	if err := r.db.WithContext(ctx).Save(&entity).Error; err != nil {
		return domain.Receipt{}, err
	}
	return toDomainReceipt(&entity), nil
}

func (r *receiptRepository) GetAllReceipts(ctx context.Context) ([]domain.Receipt, error) {
	var rows []*entities.Receipt
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	receipts := make([]domain.Receipt, 0, len(rows))
	for _, row := range rows {
		receipts = append(receipts, toDomainReceipt(row))
	}
	return receipts, nil
}

func toDomainReceipt(entity *entities.Receipt) domain.Receipt {
	receipt := domain.Receipt{
		ID:          entity.ID.String(),
		ImageURL:    entity.ImageURL,
		Ingredients: []string{},
		MealPlans:   []domain.MealPlan{},
		CreatedAt:   entity.CreatedAt,
	}
	// Columns are written by us, but tolerate hand-edited rows.
	_ = json.Unmarshal([]byte(entity.Ingredients), &receipt.Ingredients)
	_ = json.Unmarshal([]byte(entity.MealPlans), &receipt.MealPlans)
	return receipt
}
