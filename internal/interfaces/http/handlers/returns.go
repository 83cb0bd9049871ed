// internal/interfaces/http/handlers/returns.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/returns"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ReturnsHandler handles return and exchange endpoints
type ReturnsHandler struct {
	returnsService *returns.Service
	config         *config.Config
}

// NewReturnsHandler creates a new returns handler
func NewReturnsHandler(db *gorm.DB, cfg *config.Config) *ReturnsHandler {
	return &ReturnsHandler{
		returnsService: returns.NewService(db, cfg),
		config:         cfg,
	}
}

// CreateReturn handles POST /returns
func (h *ReturnsHandler) CreateReturn(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req returns.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	returnRequest, err := h.returnsService.CreateReturn(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Return request created successfully",
		"data":    returnRequest,
	})
}

// CreateExchange handles POST /exchanges
func (h *ReturnsHandler) CreateExchange(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req returns.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	exchangeRequest, err := h.returnsService.CreateExchange(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Exchange request created successfully",
		"data":    exchangeRequest,
	})
}

// GetMyRequests handles GET /returns
func (h *ReturnsHandler) GetMyRequests(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	returnRequests, exchangeRequests, err := h.returnsService.GetUserRequests(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Requests retrieved successfully",
		"data": gin.H{
			"returns":   returnRequests,
			"exchanges": exchangeRequests,
		},
	})
}

// GetAllRequests handles GET /admin/returns
func (h *ReturnsHandler) GetAllRequests(c *gin.Context) {
	returnRequests, exchangeRequests, err := h.returnsService.GetAllRequests()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve requests",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Requests retrieved successfully",
		"data": gin.H{
			"returns":   returnRequests,
			"exchanges": exchangeRequests,
		},
	})
}

// UpdateExchangeStatus handles PUT /admin/exchanges/:id/status
func (h *ReturnsHandler) UpdateExchangeStatus(c *gin.Context) {
	requestID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID",
		})
		return
	}

	var req returns.UpdateExchangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	exchangeRequest, err := h.returnsService.UpdateExchangeStatus(requestID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Exchange request updated successfully",
		"data":    exchangeRequest,
	})
}
