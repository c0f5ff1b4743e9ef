package storage_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreateOrderLine_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderLineRepository(db)
	ctx := context.Background()

	createdAt := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta("INSERT INTO order_lines (order_id, product_id, quantity, unit_price, created_at)")
	mock.ExpectQuery(query).
		WithArgs(int64(15), int64(7), 2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(33, createdAt))

	line := &models.OrderLine{
		OrderID:   15,
		ProductID: 7,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("49.90"),
	}
	err = repo.CreateOrderLine(ctx, line)
	assert.NoError(t, err)
	assert.Equal(t, int64(33), line.ID)
	assert.Equal(t, createdAt, line.CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOrderLine_UnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := storage.NewOrderLineRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta("INSERT INTO order_lines (order_id, product_id, quantity, unit_price, created_at)")
	mock.ExpectQuery(query).WillReturnError(errors.New("violates foreign key constraint"))

	line := &models.OrderLine{
		OrderID:   99,
		ProductID: 7,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("49.90"),
	}
	err = repo.CreateOrderLine(ctx, line)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
