package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/internal/repositories"
)

type ProductHandler struct {
	products *repositories.ProductRepository
}

func NewProductHandler(products *repositories.ProductRepository) *ProductHandler {
	return &ProductHandler{products: products}
}

type productResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Rarity      string `json:"rarity,omitempty"`
	SalesCount  int64  `json:"sales_count"`
}

func toProductResponse(p *models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rarity:      p.Rarity,
		SalesCount:  p.SalesCount,
	}
}

// List serves the purchasable catalog. Lootbox reward items are excluded;
// they only enter inventories through draws.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.ListCatalog()
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for i := range products {
		out = append(out, toProductResponse(&products[i]))
	}

	c.JSON(http.StatusOK, gin.H{"products": out})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(product)})
}
