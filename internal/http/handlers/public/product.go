package public

import (
	"strings"

	"github.com/marketplace-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetProduct 获取公开商品（ID 或 slug）
func (h *Handler) GetProduct(c *gin.Context) {
	idOrSlug := strings.TrimSpace(c.Param("id"))
	if idOrSlug == "" {
		respondError(c, response.CodeBadRequest, "error.product_id_required", nil)
		return
	}
	product, err := h.ProductService.GetPublic(c.Request.Context(), idOrSlug)
	if err != nil {
		respondWithMappedError(c, err, productErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, product)
}
