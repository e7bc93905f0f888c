package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// Modelos GORM. Las relaciones solo declaran las FK; las escrituras omiten asociaciones.

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:200;not null"`
	Email        string `gorm:"size:320;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type companyModel struct {
	ID          string    `gorm:"primaryKey;size:36"`
	TradeName   string    `gorm:"size:200;not null"`
	LegalName   string    `gorm:"size:200;not null"`
	CNPJ        string    `gorm:"column:cnpj;size:18;not null"`
	OwnerUserID string    `gorm:"size:36;not null;index"`
	Owner       userModel `gorm:"foreignKey:OwnerUserID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (companyModel) TableName() string { return "companies" }

type clientModel struct {
	ID        string       `gorm:"primaryKey;size:36"`
	CompanyID string       `gorm:"size:36;not null;index"`
	Company   companyModel `gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	Name      string       `gorm:"size:200;not null"`
	Email     string       `gorm:"size:320"`
	Phone     string       `gorm:"size:40"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientModel) TableName() string { return "clients" }

type productModel struct {
	ID          string          `gorm:"primaryKey;size:36"`
	CompanyID   string          `gorm:"size:36;not null;index"`
	Company     companyModel    `gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"size:2000"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (productModel) TableName() string { return "products" }

type orderModel struct {
	ID        string       `gorm:"primaryKey;size:36"`
	Number    string       `gorm:"size:8;not null;uniqueIndex"`
	Notes     string       `gorm:"size:2000"`
	Date      time.Time    `gorm:"not null"`
	ClientID  string       `gorm:"size:36;not null;index"`
	Client    clientModel  `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	CompanyID string       `gorm:"size:36;not null;index"`
	Company   companyModel `gorm:"foreignKey:CompanyID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (orderModel) TableName() string { return "orders" }

type orderLineModel struct {
	ID        string       `gorm:"primaryKey;size:36"`
	OrderID   string       `gorm:"size:36;not null;index"`
	Order     orderModel   `gorm:"foreignKey:OrderID;constraint:OnDelete:RESTRICT"`
	ProductID string       `gorm:"size:36;not null;index"`
	Product   productModel `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity  int          `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (orderLineModel) TableName() string { return "order_products" }

func allModels() []any {
	return []any{&userModel{}, &companyModel{}, &clientModel{}, &productModel{}, &orderModel{}, &orderLineModel{}}
}

func toUser(m *userModel) *entity.User {
	return &entity.User{ID: m.ID, Name: m.Name, Email: m.Email, PasswordHash: m.PasswordHash, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt}
}

func fromUser(u *entity.User) *userModel {
	return &userModel{ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func toCompany(m *companyModel) *entity.Company {
	return &entity.Company{
		ID: m.ID, TradeName: m.TradeName, LegalName: m.LegalName, CNPJ: m.CNPJ,
		OwnerUserID: m.OwnerUserID, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromCompany(c *entity.Company) *companyModel {
	return &companyModel{
		ID: c.ID, TradeName: c.TradeName, LegalName: c.LegalName, CNPJ: c.CNPJ,
		OwnerUserID: c.OwnerUserID, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toClient(m *clientModel) *entity.Client {
	return &entity.Client{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Email: m.Email, Phone: m.Phone,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromClient(c *entity.Client) *clientModel {
	return &clientModel{
		ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, Email: c.Email, Phone: c.Phone,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

func toProduct(m *productModel) *entity.Product {
	return &entity.Product{
		ID: m.ID, CompanyID: m.CompanyID, Name: m.Name, Description: m.Description, Price: m.Price,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromProduct(p *entity.Product) *productModel {
	return &productModel{
		ID: p.ID, CompanyID: p.CompanyID, Name: p.Name, Description: p.Description, Price: p.Price,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func toOrder(m *orderModel) *entity.Order {
	return &entity.Order{
		ID: m.ID, Number: m.Number, Notes: m.Notes, Date: m.Date, ClientID: m.ClientID, CompanyID: m.CompanyID,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromOrder(o *entity.Order) *orderModel {
	return &orderModel{
		ID: o.ID, Number: o.Number, Notes: o.Notes, Date: o.Date, ClientID: o.ClientID, CompanyID: o.CompanyID,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func toOrderLine(m *orderLineModel) *entity.OrderLine {
	return &entity.OrderLine{
		ID: m.ID, OrderID: m.OrderID, ProductID: m.ProductID, Quantity: m.Quantity,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func fromOrderLine(l *entity.OrderLine) *orderLineModel {
	return &orderLineModel{
		ID: l.ID, OrderID: l.OrderID, ProductID: l.ProductID, Quantity: l.Quantity,
		CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt,
	}
}
