package entity

import "time"

// Client es un cliente de una empresa.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
