package entity

import "time"

// Order es un pedido de un cliente contra una empresa.
// Number es un identificador de exhibición (8 dígitos), distinto del ID.
// El cliente del pedido siempre pertenece a la misma empresa del pedido.
type Order struct {
	ID        string
	Number    string
	Notes     string
	Date      time.Time // momento de creación
	ClientID  string
	CompanyID string
	CreatedAt time.Time
	UpdatedAt time.Time
}
