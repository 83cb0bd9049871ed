// internal/interfaces/http/handlers/admin_inventory.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// AdminInventoryHandler exposes the stock movement audit trail
type AdminInventoryHandler struct {
	inventoryService *inventory.Service
	config           *config.Config
}

// NewAdminInventoryHandler creates a new admin inventory handler
func NewAdminInventoryHandler(db *gorm.DB, cfg *config.Config) *AdminInventoryHandler {
	return &AdminInventoryHandler{
		inventoryService: inventory.NewService(db, cfg),
		config:           cfg,
	}
}

// GetMovements handles GET /admin/inventory/:product_id/movements
func (h *AdminInventoryHandler) GetMovements(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	movements, err := h.inventoryService.GetMovements(productID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stock movements",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stock movements retrieved successfully",
		"data":    movements,
	})
}
