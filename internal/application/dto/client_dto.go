package dto

import "time"

// CreateClientRequest entrada para crear un cliente de una empresa.
type CreateClientRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CompanyID string `json:"companyId"`
}

// UpdateClientRequest campos opcionales; CompanyID cambia la empresa (se re-valida la propiedad).
type UpdateClientRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	CompanyID *string `json:"companyId"`
}

// ClientListQuery filtros de GET /clients.
type ClientListQuery struct {
	CompanyID string `query:"companyId"`
	PageRequest
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CompanyID string    `json:"companyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientSummary cliente embebido en pedidos.
type ClientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
