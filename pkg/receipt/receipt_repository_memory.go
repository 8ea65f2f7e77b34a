package receipt

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/google/uuid"
)

// memoryReceiptRepository keeps records in a mutex-guarded map. Updates are
// whole-record replaces, last write wins.
type memoryReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string]domain.Receipt
}

func NewMemoryReceiptRepository() ReceiptRepository {
	return &memoryReceiptRepository{receipts: make(map[string]domain.Receipt)}
}

func (r *memoryReceiptRepository) CreateReceipt(_ context.Context, imageURL string) (domain.Receipt, error) {
	receipt := domain.Receipt{
		ID:          uuid.New().String(),
		ImageURL:    imageURL,
		Ingredients: []string{},
		MealPlans:   []domain.MealPlan{},
		CreatedAt:   time.Now(),
	}

	r.mu.Lock()
	r.receipts[receipt.ID] = receipt
	r.mu.Unlock()

	return copyReceipt(receipt), nil
}

func (r *memoryReceiptRepository) GetReceiptByID(_ context.Context, id string) (domain.Receipt, error) {
	r.mu.RLock()
	receipt, ok := r.receipts[id]
	r.mu.RUnlock()

	if !ok {
		return domain.Receipt{}, domain.ErrReceiptNotFound
	}
	return copyReceipt(receipt), nil
}

func (r *memoryReceiptRepository) UpdateReceipt(_ context.Context, id string, update domain.ReceiptUpdate) (domain.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return domain.Receipt{}, domain.ErrReceiptNotFound
	}

	if update.Ingredients != nil {
		receipt.Ingredients = append([]string(nil), *update.Ingredients...)
	}
	if update.MealPlans != nil {
		receipt.MealPlans = append([]domain.MealPlan(nil), *update.MealPlans...)
	}
	r.receipts[id] = receipt

	return copyReceipt(receipt), nil
}

func (r *memoryReceiptRepository) GetAllReceipts(_ context.Context) ([]domain.Receipt, error) {
	r.mu.RLock()
	receipts := make([]domain.Receipt, 0, len(r.receipts))
	for _, receipt := range r.receipts {
		receipts = append(receipts, copyReceipt(receipt))
	}
	r.mu.RUnlock()

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})
	return receipts, nil
}

// copyReceipt detaches the slices so a caller mutating its copy cannot reach
// into the stored record.
func copyReceipt(receipt domain.Receipt) domain.Receipt {
	receipt.Ingredients = append(make([]string, 0, len(receipt.Ingredients)), receipt.Ingredients...)
	receipt.MealPlans = append(make([]domain.MealPlan, 0, len(receipt.MealPlans)), receipt.MealPlans...)
	return receipt
}
