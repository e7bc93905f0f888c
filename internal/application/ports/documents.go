package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vendergas-api/internal/domain/entity"
)

// OrderDocumentLine línea del pedido con su producto.
type OrderDocumentLine struct {
	Line    *entity.OrderLine
	Product *entity.Product
}

// OrderDocument datos completos de un pedido para renderizar o exportar.
type OrderDocument struct {
	Order   *entity.Order
	Company *entity.Company
	Client  *entity.Client
	Lines   []OrderDocumentLine
	Total   decimal.Decimal
}

// OrderPDFGenerator genera el comprobante del pedido en PDF.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc *OrderDocument) ([]byte, error)
}

// OrderXMLExporter exporta el pedido a XML para integración con ERP.
type OrderXMLExporter interface {
	ExportOrderXML(ctx context.Context, doc *OrderDocument) ([]byte, error)
}
