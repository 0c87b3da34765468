package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"queijos-backend/apperr"
	"queijos-backend/catalog"
	"queijos-backend/orders"
)

func SetupRouter(db *gorm.DB, cfg Config, verifier CredentialVerifier) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	catalogSvc := catalog.NewService(db)
	orderSvc := orders.NewService(db, cfg.WhatsappNumber)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// List categories, ordered by name
	r.GET("/categories", func(c *gin.Context) {
		categories, err := catalogSvc.ListCategories()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, categories)
	})

	// List active products with their category
	r.GET("/products", func(c *gin.Context) {
		products, err := catalogSvc.ListProducts()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	})

	// Fetch one product by id, active or not, for historical order display
	r.GET("/products/:id", func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}
		product, err := catalogSvc.GetProduct(uint(id))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	})

	// Create an order from a cart snapshot
	r.POST("/orders", func(c *gin.Context) {
		var input orders.CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := orderSvc.CreateOrder(input)
		if err != nil {
			respondError(c, err)
			return
		}
		var whatsappURL any
		if result.WhatsappURL != "" {
			whatsappURL = result.WhatsappURL
		}
		c.JSON(http.StatusCreated, gin.H{
			"order":       result.Order,
			"whatsappUrl": whatsappURL,
		})
	})

	admin := r.Group("", AuthMiddleware(verifier))

	// Create category
	admin.POST("/categories", func(c *gin.Context) {
		var req struct {
			Name string `json:"name"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category, err := catalogSvc.CreateCategory(req.Name)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	})

	// Create product
	admin.POST("/products", func(c *gin.Context) {
		var input catalog.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product, err := catalogSvc.CreateProduct(input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	})

	// Update product, full replace of mutable fields
	admin.PUT("/products", func(c *gin.Context) {
		var input catalog.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		product, err := catalogSvc.UpdateProduct(input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	})

	// Soft-delete product
	admin.DELETE("/products", func(c *gin.Context) {
		var req struct {
			ID uint `json:"id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := catalogSvc.DeleteProduct(req.ID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	// List orders, newest first
	admin.GET("/orders", func(c *gin.Context) {
		list, err := orderSvc.List()
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	// Update order status
	admin.PUT("/orders", func(c *gin.Context) {
		var req struct {
			ID     uint   `json:"id"`
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := orderSvc.UpdateStatus(req.ID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	})

	return r
}

// respondError translates service errors to the API's status codes.
// Anything outside the taxonomy is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Println("internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
