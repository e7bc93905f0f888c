package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa; el propietario es el usuario de la sesión.
type CreateCompanyRequest struct {
	TradeName string `json:"tradeName"`
	LegalName string `json:"legalName"`
	CNPJ      string `json:"cnpj"`
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	TradeName *string `json:"tradeName"`
	LegalName *string `json:"legalName"`
	CNPJ      *string `json:"cnpj"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	TradeName string    `json:"tradeName"`
	LegalName string    `json:"legalName"`
	CNPJ      string    `json:"cnpj"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CompanySummary empresa embebida en pedidos.
type CompanySummary struct {
	ID        string `json:"id"`
	TradeName string `json:"tradeName"`
	LegalName string `json:"legalName"`
	CNPJ      string `json:"cnpj"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
