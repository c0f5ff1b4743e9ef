package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mowistore/backend/internal/domain/models"
)

var ErrAddressNotFound = errors.New("address not found")

// AddressStorage describes access to the addresses table. All lookups are
// scoped by the owning user.
type AddressStorage interface {
	ListAddressesByUserID(ctx context.Context, userID int64) ([]*models.Address, error)
	GetAddressByID(ctx context.Context, id, userID int64) (*models.Address, error)
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	UpdateAddress(ctx context.Context, address *models.Address) error
	DeleteAddress(ctx context.Context, id, userID int64) error
}

type addressRepository struct {
	db *sql.DB
}

func NewAddressRepository(db *sql.DB) AddressStorage {
	return &addressRepository{db: db}
}

const addressColumns = "id, user_id, label, street, city, province, zip_code, phone, is_default, created_at, updated_at"

func scanAddress(row interface{ Scan(...any) error }) (*models.Address, error) {
	address := &models.Address{}
	err := row.Scan(
		&address.ID, &address.UserID, &address.Label, &address.Street, &address.City,
		&address.Province, &address.ZipCode, &address.Phone, &address.IsDefault,
		&address.CreatedAt, &address.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) ListAddressesByUserID(ctx context.Context, userID int64) ([]*models.Address, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []*models.Address
	for rows.Next() {
		address, err := scanAddress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, address)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *addressRepository) GetAddressByID(ctx context.Context, id, userID int64) (*models.Address, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
	address, err := scanAddress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAddressNotFound
		}
		return nil, err
	}
	return address, nil
}

func (r *addressRepository) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	query := `INSERT INTO addresses (user_id, label, street, city, province, zip_code, phone, is_default, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		address.UserID, address.Label, address.Street, address.City,
		address.Province, address.ZipCode, address.Phone, address.IsDefault,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	address.ID = id
	return address, nil
}

func (r *addressRepository) UpdateAddress(ctx context.Context, address *models.Address) error {
	query := `UPDATE addresses
	          SET label = $1, street = $2, city = $3, province = $4, zip_code = $5, phone = $6, is_default = $7, updated_at = NOW()
	          WHERE id = $8 AND user_id = $9`
	res, err := r.db.ExecContext(ctx, query,
		address.Label, address.Street, address.City, address.Province,
		address.ZipCode, address.Phone, address.IsDefault, address.ID, address.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}

func (r *addressRepository) DeleteAddress(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM addresses WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAddressNotFound
	}
	return nil
}
