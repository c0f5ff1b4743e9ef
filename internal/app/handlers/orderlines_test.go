package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mowistore/backend/internal/app/handlers"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeProductRepo struct {
	product *models.Product
	err     error
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func (f *fakeProductRepo) ListProducts(ctx context.Context) ([]*models.Product, error) {
	return nil, f.err
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	if f.product == nil || f.product.ID != id {
		return nil, storage.ErrProductNotFound
	}
	return f.product, f.err
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	return product, f.err
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *models.Product) error {
	return f.err
}

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id int64) error {
	return f.err
}

func (f *fakeProductRepo) LockProductByIDTx(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	return f.product, f.err
}

func (f *fakeProductRepo) UpdateProductCountersTx(ctx context.Context, tx *sql.Tx, id int64, stock, sold int) error {
	return f.err
}

type fakeOrderLineRepo struct {
	created *models.OrderLine
	err     error
}

var _ storage.OrderLineStorage = (*fakeOrderLineRepo)(nil)

func (f *fakeOrderLineRepo) CreateOrderLineTx(ctx context.Context, tx *sql.Tx, line *models.OrderLine) error {
	return f.err
}

func (f *fakeOrderLineRepo) CreateOrderLine(ctx context.Context, line *models.OrderLine) error {
	if f.err != nil {
		return f.err
	}
	line.ID = 33
	f.created = line
	return nil
}

func (f *fakeOrderLineRepo) GetOrderLineByID(ctx context.Context, id int64) (*models.OrderLine, error) {
	return nil, storage.ErrOrderLineNotFound
}

func (f *fakeOrderLineRepo) ListOrderLines(ctx context.Context) ([]*models.OrderLine, error) {
	return nil, f.err
}

func (f *fakeOrderLineRepo) ListOrderLinesByOrderID(ctx context.Context, orderID int64) ([]*models.OrderLine, error) {
	return nil, f.err
}

func (f *fakeOrderLineRepo) UpdateOrderLineQuantity(ctx context.Context, id int64, quantity int) error {
	return f.err
}

func (f *fakeOrderLineRepo) DeleteOrderLine(ctx context.Context, id int64) error {
	return f.err
}

func TestCreateOrderLineHandler_SnapshotsPrice(t *testing.T) {
	productRepo := &fakeProductRepo{
		product: &models.Product{ID: 7, Name: "Polo", Price: decimal.RequireFromString("49.90")},
	}
	lineRepo := &fakeOrderLineRepo{}
	handler := handlers.CreateOrderLineHandler(discardLogger(), lineRepo, productRepo)

	// No price in the request body; the current product price must be used.
	body := `{"pedido":15,"producto":7,"cantidad":2}`
	req := httptest.NewRequest(http.MethodPost, "/detalles/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotNil(t, lineRepo.created)
	assert.True(t, lineRepo.created.UnitPrice.Equal(decimal.RequireFromString("49.90")))

	var resp models.OrderLine
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(33), resp.ID)
	assert.Equal(t, int64(15), resp.OrderID)
	assert.True(t, resp.UnitPrice.Equal(decimal.RequireFromString("49.90")))
}

func TestCreateOrderLineHandler_UnknownProduct(t *testing.T) {
	handler := handlers.CreateOrderLineHandler(discardLogger(), &fakeOrderLineRepo{}, &fakeProductRepo{})

	body := `{"pedido":15,"producto":99,"cantidad":1}`
	req := httptest.NewRequest(http.MethodPost, "/detalles/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderLineHandler_InvalidQuantity(t *testing.T) {
	handler := handlers.CreateOrderLineHandler(discardLogger(), &fakeOrderLineRepo{}, &fakeProductRepo{})

	body := `{"pedido":15,"producto":7,"cantidad":0}`
	req := httptest.NewRequest(http.MethodPost, "/detalles/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
