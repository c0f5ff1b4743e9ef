package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

const baseURL = "http://localhost:8080"

type registerResponse struct {
	User struct {
		ID int64 `json:"id"`
	} `json:"user"`
}

type categoryResponse struct {
	ID int64 `json:"id"`
}

type productResponse struct {
	ID int64 `json:"id"`
}

type orderResponse struct {
	ID    int64           `json:"id"`
	Total decimal.Decimal `json:"total"`
}

type categorySalesEntry struct {
	Categoria string  `json:"categoria"`
	Total     float64 `json:"total"`
}

func postJSON(t *testing.T, path string, body any, out any) *http.Response {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	assert.NoError(t, err)

	resp, err := http.Post(baseURL+path, "application/json", bytes.NewBuffer(jsonBody))
	assert.NoError(t, err, "POST %s should not error", path)
	defer resp.Body.Close()

	if out != nil {
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func registerUser(t *testing.T) int64 {
	t.Helper()
	var resp registerResponse
	email := fmt.Sprintf("cliente-%d@test.com", time.Now().UnixNano())
	postJSON(t, "/api/register/", map[string]string{
		"email":    email,
		"name":     "Cliente Prueba",
		"password": "testpass",
	}, &resp)
	assert.NotZero(t, resp.User.ID)
	return resp.User.ID
}

func createCategory(t *testing.T, name string) int64 {
	t.Helper()
	var resp categoryResponse
	postJSON(t, "/categorias/", map[string]string{"nombre": name}, &resp)
	assert.NotZero(t, resp.ID)
	return resp.ID
}

func createProduct(t *testing.T, name string, categoryID *int64, price string, stock int) int64 {
	t.Helper()
	var resp productResponse
	postJSON(t, "/productos/", map[string]any{
		"nombre":    name,
		"categoria": categoryID,
		"precio":    json.RawMessage(price),
		"stock":     stock,
		"activo":    true,
	}, &resp)
	assert.NotZero(t, resp.ID)
	return resp.ID
}

func categorySalesSum(t *testing.T) float64 {
	t.Helper()
	resp, err := http.Get(baseURL + "/ventas-por-categoria/")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []categorySalesEntry
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))

	var sum float64
	for _, entry := range entries {
		sum += entry.Total
	}
	return sum
}

func TestPing(t *testing.T) {
	resp, err := http.Get(baseURL + "/ping/")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestCategoryTotalsPreserveOrderTotals places an order spanning a categorized
// and an uncategorized product and checks that the per-category report totals
// grow by exactly the order's grand total.
func TestCategoryTotalsPreserveOrderTotals(t *testing.T) {
	before := categorySalesSum(t)

	userID := registerUser(t)
	suffix := time.Now().UnixNano()
	categoryID := createCategory(t, fmt.Sprintf("Ropa %d", suffix))
	shirtID := createProduct(t, "Polo sumas", &categoryID, "49.90", 100)
	mugID := createProduct(t, "Taza sumas", nil, "15.50", 100)

	var order orderResponse
	resp := postJSON(t, "/pedidos/", map[string]any{
		"usuario":     userID,
		"metodo_pago": "tarjeta",
		"detalles": []map[string]any{
			{"producto": shirtID, "cantidad": 2},
			{"producto": mugID, "cantidad": 3},
		},
	}, &order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// 2*49.90 + 3*15.50
	expectedTotal := decimal.RequireFromString("146.30")
	assert.True(t, order.Total.Equal(expectedTotal), "order total should be %s, got %s", expectedTotal, order.Total)

	after := categorySalesSum(t)
	assert.InDelta(t, expectedTotal.InexactFloat64(), after-before, 0.01,
		"category totals should grow by the order grand total")
}

// TestOrderRejectedWhenStockTooLow verifies the stock guard.
func TestOrderRejectedWhenStockTooLow(t *testing.T) {
	userID := registerUser(t)
	productID := createProduct(t, "Gorra escasa", nil, "19.90", 1)

	resp := postJSON(t, "/pedidos/", map[string]any{
		"usuario":     userID,
		"metodo_pago": "yape",
		"detalles": []map[string]any{
			{"producto": productID, "cantidad": 5},
		},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestOrderLineCreateSnapshotsPrice adds a standalone line via POST /detalles/
// and checks the unit price comes from the product, not the request.
func TestOrderLineCreateSnapshotsPrice(t *testing.T) {
	userID := registerUser(t)
	productID := createProduct(t, "Polo detalle", nil, "29.90", 50)

	var order orderResponse
	resp := postJSON(t, "/pedidos/", map[string]any{
		"usuario":     userID,
		"metodo_pago": "transferencia",
		"detalles": []map[string]any{
			{"producto": productID, "cantidad": 1},
		},
	}, &order)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var line struct {
		ID        int64           `json:"id"`
		UnitPrice decimal.Decimal `json:"precio_unitario"`
	}
	resp = postJSON(t, "/detalles/", map[string]any{
		"pedido":   order.ID,
		"producto": productID,
		"cantidad": 2,
	}, &line)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotZero(t, line.ID)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("29.90")))
}
