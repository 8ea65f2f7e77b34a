package domain

var (
	MessageFailedGetProducts = "Failed to get product recommendations"
	MessageFailedTrackClick  = "Failed to track click"
	MessageProductIDRequired = "Product ID required"
)

const (
	AffiliateContextRecipe      = "recipe"
	AffiliateContextIngredients = "ingredients"
	AffiliateContextMealPlan    = "meal-plan"
	AffiliateContextGeneral     = "general"
)

type (
	AffiliateProduct struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		Description   string `json:"description"`
		Price         string `json:"price"`
		OriginalPrice string `json:"originalPrice,omitempty"`
		Discount      string `json:"discount,omitempty"`
		ImageURL      string `json:"imageUrl"`
		AffiliateLink string `json:"affiliateLink"`
		Category      string `json:"category"`  // kitchen-tool | appliance | ingredient | cookbook
		Relevance     string `json:"relevance"` // high | medium | low
	}

	AffiliateQuery struct {
		Context     string
		RecipeType  string
		Ingredients []string
		Recipes     []Recipe
		MaxItems    int
	}

	TrackClickRequest struct {
		ProductID string `json:"productId" validate:"required"`
		Context   string `json:"context"`
	}
)
