package models

import "time"

// Address is a shipping address owned by a user.
type Address struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Label     string    `json:"etiqueta"`
	Street    string    `json:"calle"`
	City      string    `json:"ciudad"`
	Province  string    `json:"provincia"`
	ZipCode   string    `json:"codigo_postal"`
	Phone     string    `json:"telefono"`
	IsDefault bool      `json:"predeterminada"`
	CreatedAt time.Time `json:"fecha_creacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}
