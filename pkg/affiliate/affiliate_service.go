package affiliate

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/BenHowl/ReceiptChef/domain"
	"github.com/BenHowl/ReceiptChef/internal/utils"
	"github.com/gofiber/fiber/v2/log"
)

type (
	AffiliateService interface {
		GetProducts(ctx context.Context, query domain.AffiliateQuery) ([]domain.AffiliateProduct, error)
		TrackClick(ctx context.Context, productID string, clickContext string) error
	}

	affiliateConfig struct {
		AmazonPartnerTag      string
		WalmartAffiliateID    string
		ShareASaleAffiliateID string
	}

	affiliateService struct {
		config affiliateConfig

		mu     sync.Mutex
		clicks map[string]int
	}
)

const defaultMaxItems = 5

func NewAffiliateService() AffiliateService {
	tag := utils.GetConfig("AMAZON_PARTNER_TAG")
	if tag == "" {
		tag = "receiptchef-20"
	}
	return &affiliateService{
		config: affiliateConfig{
			AmazonPartnerTag:      tag,
			WalmartAffiliateID:    utils.GetConfig("WALMART_AFFILIATE_ID"),
			ShareASaleAffiliateID: utils.GetConfig("SHAREASALE_AFFILIATE_ID"),
		},
		clicks: make(map[string]int),
	}
}

func (s *affiliateService) GetProducts(_ context.Context, query domain.AffiliateQuery) ([]domain.AffiliateProduct, error) {
	var products []domain.AffiliateProduct

	switch query.Context {
	case domain.AffiliateContextRecipe:
		if len(query.Recipes) > 0 {
			products = s.productsByNeeds(analyzeRecipeNeeds(query.Recipes))
		}
		if len(products) == 0 {
			products = append(s.kitchenTools(), s.cookbooks()...)
		}

	case domain.AffiliateContextIngredients:
		products = append(s.ingredientProducts(), firstN(s.kitchenTools(), 2)...)

	case domain.AffiliateContextMealPlan:
		products = append(s.appliances(), s.cookbooks()...)

	default:
		products = append(firstN(s.kitchenTools(), 3), firstN(s.cookbooks(), 2)...)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return relevanceRank(products[i].Relevance) > relevanceRank(products[j].Relevance)
	})

	maxItems := query.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	return firstN(products, maxItems), nil
}

func (s *affiliateService) TrackClick(_ context.Context, productID string, clickContext string) error {
	s.mu.Lock()
	s.clicks[productID]++
	s.mu.Unlock()

	log.Infof("affiliate click: %s in %s context", productID, clickContext)
	return nil
}

// analyzeRecipeNeeds scans recipe text for cooking methods and maps them to
// product categories.
func analyzeRecipeNeeds(recipes []domain.Recipe) []string {
	seen := make(map[string]bool)
	var needs []string

	add := func(need string) {
		if !seen[need] {
			seen[need] = true
			needs = append(needs, need)
		}
	}

	for _, recipe := range recipes {
		allText := strings.ToLower(strings.Join(append(
			[]string{recipe.Title, recipe.Description},
			recipe.Instructions...,
		), " "))

		if strings.Contains(allText, "bake") || strings.Contains(allText, "oven") {
			add("baking-tools")
		}
		if strings.Contains(allText, "blend") || strings.Contains(allText, "smoothie") {
			add("blender")
		}
		if strings.Contains(allText, "mix") || strings.Contains(allText, "whisk") {
			add("mixing-tools")
		}
		if strings.Contains(allText, "cut") || strings.Contains(allText, "chop") || strings.Contains(allText, "slice") {
			add("knives")
		}
		if strings.Contains(allText, "pressure cook") || strings.Contains(allText, "instant pot") {
			add("pressure-cooker")
		}
		if strings.Contains(allText, "air fry") || strings.Contains(allText, "crispy") {
			add("air-fryer")
		}
		if strings.Contains(allText, "spice") || strings.Contains(allText, "season") {
			add("spices")
		}
		if strings.Contains(allText, "oil") || strings.Contains(allText, "olive") {
			add("cooking-oil")
		}

		if recipe.Difficulty == "hard" || recipe.CookingTime > 60 {
			add("advanced-tools")
		}
	}

	return needs
}

func (s *affiliateService) productsByNeeds(needs []string) []domain.AffiliateProduct {
	catalog := map[string][]domain.AffiliateProduct{
		"knives": {{
			ID:            "amz-knife-set",
			Title:         "Cuisinart 15-Piece Knife Set",
			Description:   "Professional-grade stainless steel knives with block",
			Price:         "$79.99",
			OriginalPrice: "$159.99",
			Discount:      "50% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/81cV-pZPTCL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B00GIBKC3K"),
			Category:      "kitchen-tool",
			Relevance:     "high",
		}},
		"pressure-cooker": {{
			ID:            "amz-instant-pot",
			Title:         "Instant Pot Duo 7-in-1",
			Description:   "Perfect for the pressure cooking mentioned in your recipes",
			Price:         "$89.95",
			OriginalPrice: "$119.99",
			Discount:      "25% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/71V1LrY1MSL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B06Y1YD5W7"),
			Category:      "appliance",
			Relevance:     "high",
		}},
		"air-fryer": {{
			ID:            "amz-air-fryer",
			Title:         "COSORI Air Fryer",
			Description:   "Perfect for crispy recipes without excess oil",
			Price:         "$99.99",
			OriginalPrice: "$129.99",
			Discount:      "23% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/71qBMnFrdTL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B07FDJMC9Q"),
			Category:      "appliance",
			Relevance:     "high",
		}},
		"mixing-tools": {{
			ID:            "amz-mixing-bowls",
			Title:         "Stainless Steel Mixing Bowl Set",
			Description:   "Essential for the mixing and whisking in your recipes",
			Price:         "$29.99",
			OriginalPrice: "$49.99",
			Discount:      "40% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/71Uu52vLXSL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B01HTYH8YA"),
			Category:      "kitchen-tool",
			Relevance:     "high",
		}},
		"baking-tools": {{
			ID:            "amz-baking-set",
			Title:         "Complete Baking Set",
			Description:   "Everything needed for the baking recipes you're making",
			Price:         "$45.99",
			OriginalPrice: "$65.99",
			Discount:      "30% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/81dBwXNGgUL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B08XYZ123"),
			Category:      "kitchen-tool",
			Relevance:     "high",
		}},
		"spices": {{
			ID:            "amz-spice-set",
			Title:         "McCormick Gourmet Spice Set",
			Description:   "Complete your spice collection for these recipes",
			Price:         "$39.99",
			ImageURL:      "https://m.media-amazon.com/images/I/91gO5PwGYJL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B07BNQSFB7"),
			Category:      "ingredient",
			Relevance:     "medium",
		}},
		"cooking-oil": {{
			ID:            "amz-olive-oil",
			Title:         "Premium Extra Virgin Olive Oil",
			Description:   "High-quality oil for your cooking",
			Price:         "$24.99",
			ImageURL:      "https://m.media-amazon.com/images/I/71tFmSvCOtL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B07T8R5XYZ"),
			Category:      "ingredient",
			Relevance:     "medium",
		}},
	}

	var products []domain.AffiliateProduct
	for _, need := range needs {
		products = append(products, catalog[need]...)
	}
	return products
}

func (s *affiliateService) kitchenTools() []domain.AffiliateProduct {
	products := []domain.AffiliateProduct{
		{
			ID:            "amz-knife-set",
			Title:         "Cuisinart 15-Piece Knife Set",
			Description:   "Professional-grade stainless steel knives with block",
			Price:         "$79.99",
			OriginalPrice: "$159.99",
			Discount:      "50% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/81cV-pZPTCL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B00GIBKC3K"),
			Category:      "kitchen-tool",
			Relevance:     "high",
		},
		{
			ID:            "amz-instant-pot",
			Title:         "Instant Pot Duo 7-in-1",
			Description:   "Electric pressure cooker, slow cooker, rice cooker & more",
			Price:         "$89.95",
			OriginalPrice: "$119.99",
			Discount:      "25% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/71V1LrY1MSL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B06Y1YD5W7"),
			Category:      "appliance",
			Relevance:     "high",
		},
		{
			ID:            "amz-mixing-bowls",
			Title:         "Stainless Steel Mixing Bowl Set",
			Description:   "Set of 6 nesting bowls with lids",
			Price:         "$29.99",
			ImageURL:      "https://m.media-amazon.com/images/I/71Uu52vLXSL._AC_SL160_.jpg",
			AffiliateLink: s.amazonLink("B01HTYH8YA"),
			Category:      "kitchen-tool",
			Relevance:     "medium",
		},
	}

	if s.config.ShareASaleAffiliateID != "" {
		products = append(products, domain.AffiliateProduct{
			ID:            "ws-mixer",
			Title:         "KitchenAid Artisan Stand Mixer",
			Description:   "Professional 5-qt mixer in various colors",
			Price:         "$449.95",
			OriginalPrice: "$549.95",
			Discount:      "Save $100",
			ImageURL:      "https://assets.wsimgs.com/wsimgs/ab/images/dp/wcm/202349/0061/img38c.jpg",
			AffiliateLink: s.shareASaleLink("31717", "https://www.williams-sonoma.com/products/kitchenaid-artisan-stand-mixer"),
			Category:      "appliance",
			Relevance:     "high",
		})
	}

	return products
}

func (s *affiliateService) appliances() []domain.AffiliateProduct {
	var appliances []domain.AffiliateProduct
	for _, product := range s.kitchenTools() {
		if product.Category == "appliance" {
			appliances = append(appliances, product)
		}
	}
	return appliances
}

func (s *affiliateService) ingredientProducts() []domain.AffiliateProduct {
	products := []domain.AffiliateProduct{
		{
			ID:            "amz-spice-set",
			Title:         "McCormick Gourmet Spice Set",
			Description:   "12 essential spices for cooking",
			Price:         "$39.99",
			ImageURL:      "https://m.media-amazon.com/images/I/91gO5PwGYJL._AC_SY200_.jpg",
			AffiliateLink: s.amazonLink("B07BNQSFB7"),
			Category:      "ingredient",
			Relevance:     "medium",
		},
	}

	if s.config.WalmartAffiliateID != "" {
		products = append(products, domain.AffiliateProduct{
			ID:            "wm-olive-oil",
			Title:         "Extra Virgin Olive Oil",
			Description:   "Premium cold-pressed olive oil, 1 liter",
			Price:         "$12.98",
			ImageURL:      "https://i5.walmartimages.com/asr/placeholder.jpg",
			AffiliateLink: s.walmartLink("123456789"),
			Category:      "ingredient",
			Relevance:     "high",
		})
	}

	return products
}

func (s *affiliateService) cookbooks() []domain.AffiliateProduct {
	return []domain.AffiliateProduct{
		{
			ID:            "amz-cookbook-1",
			Title:         "Salt, Fat, Acid, Heat",
			Description:   "Master the elements of good cooking",
			Price:         "$19.99",
			OriginalPrice: "$35.00",
			Discount:      "43% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/91wY-IcZPgL._AC_SY200_.jpg",
			AffiliateLink: s.amazonLink("B01HMXV0UQ"),
			Category:      "cookbook",
			Relevance:     "high",
		},
		{
			ID:            "amz-cookbook-2",
			Title:         "The Complete America's Test Kitchen",
			Description:   "20 years of foolproof recipes",
			Price:         "$24.99",
			OriginalPrice: "$40.00",
			Discount:      "38% OFF",
			ImageURL:      "https://m.media-amazon.com/images/I/91kM+6NnXeL._AC_SY200_.jpg",
			AffiliateLink: s.amazonLink("B07BFPNLP7"),
			Category:      "cookbook",
			Relevance:     "high",
		},
	}
}

func (s *affiliateService) amazonLink(asin string) string {
	return fmt.Sprintf("https://www.amazon.com/dp/%s?tag=%s", asin, s.config.AmazonPartnerTag)
}

func (s *affiliateService) walmartLink(productID string) string {
	if s.config.WalmartAffiliateID == "" {
		return ""
	}
	return fmt.Sprintf("https://goto.walmart.com/c/%s/product/%s", s.config.WalmartAffiliateID, productID)
}

func (s *affiliateService) shareASaleLink(merchantID string, productURL string) string {
	if s.config.ShareASaleAffiliateID == "" {
		return productURL
	}
	return fmt.Sprintf("https://shareasale.com/r.cfm?b=%s&u=%s&m=%s&urllink=%s",
		merchantID, s.config.ShareASaleAffiliateID, merchantID, url.QueryEscape(productURL))
}

func relevanceRank(relevance string) int {
	switch relevance {
	case "high":
		return 3
	case "medium":
		return 2
	default:
		return 1
	}
}

func firstN(products []domain.AffiliateProduct, n int) []domain.AffiliateProduct {
	if len(products) <= n {
		return products
	}
	return products[:n]
}
