package models

// Category groups products; deleting one detaches its products (SET NULL).
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion,omitempty"`
}
