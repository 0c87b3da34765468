package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"queijos-backend/models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// Create DB connection for tests
func getTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}))
	return db
}

// Helper: run a test inside a transaction and roll it back
func withTestTransaction(t *testing.T, testFunc func(tx *gorm.DB)) {
	db := getTestDB(t)

	tx := db.Begin()
	require.NoError(t, tx.Error)
	defer tx.Rollback()

	testFunc(tx)
}

func testRouter(tx *gorm.DB) *gin.Engine {
	cfg := Config{WhatsappNumber: "5531988887777"}
	return SetupRouter(tx, cfg, nil)
}

func doJSON(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// ----------------------- TESTS ----------------------- //

func TestHealth(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		w := doJSON(testRouter(tx), "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCreateAndListCategories(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		w := doJSON(router, "POST", "/categories", map[string]any{"name": "Queijos"})
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "POST", "/categories", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, "GET", "/categories", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp []models.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Queijos", resp[0].Name)
	})
}

func TestCreateProduct(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		w := doJSON(router, "POST", "/products", map[string]any{
			"name":  "Queijo Canastra",
			"price": "45.90",
		})
		assert.Equal(t, http.StatusCreated, w.Code)
		var resp models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Queijo Canastra", resp.Name)
		assert.True(t, resp.IsActive)

		// Price also accepted as a JSON number
		w = doJSON(router, "POST", "/products", map[string]any{"name": "Doce de Leite", "price": 18.5})
		assert.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(router, "POST", "/products", map[string]any{"name": "Sem preço"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductUpdateAndSoftDelete(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		w := doJSON(router, "POST", "/products", map[string]any{"name": "Queijo Minas", "price": "30.00"})
		require.Equal(t, http.StatusCreated, w.Code)
		var product models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))

		w = doJSON(router, "PUT", "/products", map[string]any{
			"id":    product.ID,
			"name":  "Queijo Minas Curado",
			"price": "35.00",
		})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(router, "PUT", "/products", map[string]any{"id": product.ID, "price": "35.00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, "PUT", "/products", map[string]any{"id": 9999, "name": "X", "price": "1.00"})
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(router, "DELETE", "/products", map[string]any{"id": product.ID})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true}`, w.Body.String())

		// Gone from the active listing
		w = doJSON(router, "GET", "/products", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var listed []models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
		assert.Empty(t, listed)

		// Still retrievable by id for historical orders
		w = doJSON(router, "GET", fmt.Sprintf("/products/%d", product.ID), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var got models.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.IsActive)

		w = doJSON(router, "DELETE", "/products", map[string]any{"id": 9999})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetProductBadID(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)
		w := doJSON(router, "GET", "/products/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, "GET", "/products/424242", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func orderPayload() map[string]any {
	return map[string]any{
		"customerName":   "Maria Silva",
		"customerPhone":  "31999990000",
		"deliveryMethod": "pickup",
		"items": []map[string]any{
			{"id": 1, "name": "Queijo Canastra", "price": "45.90", "quantity": 2},
		},
		"totalAmount": "91.80",
	}
}

func TestCreateOrder(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		w := doJSON(router, "POST", "/orders", orderPayload())
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Order       models.Order `json:"order"`
			WhatsappURL *string      `json:"whatsappUrl"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "pending", resp.Order.Status)
		assert.NotZero(t, resp.Order.ID)
		require.NotNil(t, resp.WhatsappURL)
		assert.Contains(t, *resp.WhatsappURL, "https://api.whatsapp.com/send?")
	})
}

func TestCreateOrderMissingFields(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		payload := orderPayload()
		delete(payload, "customerPhone")
		w := doJSON(router, "POST", "/orders", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateOrderWithoutWhatsappNumber(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := SetupRouter(tx, Config{}, nil)

		w := doJSON(router, "POST", "/orders", orderPayload())
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Nil(t, resp["whatsappUrl"])
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		w := doJSON(router, "POST", "/orders", orderPayload())
		require.Equal(t, http.StatusCreated, w.Code)
		var created struct {
			Order models.Order `json:"order"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

		w = doJSON(router, "PUT", "/orders", map[string]any{"id": created.Order.ID, "status": "preparing"})
		assert.Equal(t, http.StatusOK, w.Code)
		var updated models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "preparing", updated.Status)

		w = doJSON(router, "PUT", "/orders", map[string]any{"id": created.Order.ID, "status": "shipped"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = doJSON(router, "PUT", "/orders", map[string]any{"id": 9999, "status": "ready"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListOrders(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)

		require.Equal(t, http.StatusCreated, doJSON(router, "POST", "/orders", orderPayload()).Code)

		w := doJSON(router, "GET", "/orders", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var list []models.Order
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		assert.Len(t, list, 1)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	withTestTransaction(t, func(tx *gorm.DB) {
		router := testRouter(tx)
		w := doJSON(router, "PATCH", "/products", map[string]any{})
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
