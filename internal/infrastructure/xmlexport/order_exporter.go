// Package xmlexport exporta pedidos a XML para integración con sistemas ERP.
package xmlexport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/vendergas-api/internal/application/ports"
)

// Namespace del documento exportado.
const Namespace = "urn:vendergas:pedido:1.0"

var _ ports.OrderXMLExporter = (*EtreeExporter)(nil)

// EtreeExporter implementa ports.OrderXMLExporter con beevik/etree.
type EtreeExporter struct{}

func NewEtreeExporter() *EtreeExporter { return &EtreeExporter{} }

// ExportOrderXML serializa pedido, empresa, cliente, líneas y total.
//
//	<Pedido id numero data>
//	  <Empresa id cnpj><NomeFantasia/><RazaoSocial/></Empresa>
//	  <Cliente id><Nome/><Email/><Telefone/></Cliente>
//	  <Itens><Item id produtoId quantidade><Descricao/><PrecoUnitario/><Subtotal/></Item></Itens>
//	  <Observacoes/>
//	  <Total/>
//	</Pedido>
func (e *EtreeExporter) ExportOrderXML(ctx context.Context, doc *ports.OrderDocument) ([]byte, error) {
	if doc == nil || doc.Order == nil || doc.Company == nil || doc.Client == nil {
		return nil, fmt.Errorf("xmlexport: documento de pedido incompleto")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("Pedido")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", doc.Order.ID)
	root.CreateAttr("numero", doc.Order.Number)
	root.CreateAttr("data", doc.Order.Date.UTC().Format(time.RFC3339))

	company := root.CreateElement("Empresa")
	company.CreateAttr("id", doc.Company.ID)
	company.CreateAttr("cnpj", doc.Company.CNPJ)
	company.CreateElement("NomeFantasia").SetText(doc.Company.TradeName)
	company.CreateElement("RazaoSocial").SetText(doc.Company.LegalName)

	client := root.CreateElement("Cliente")
	client.CreateAttr("id", doc.Client.ID)
	client.CreateElement("Nome").SetText(doc.Client.Name)
	if doc.Client.Email != "" {
		client.CreateElement("Email").SetText(doc.Client.Email)
	}
	if doc.Client.Phone != "" {
		client.CreateElement("Telefone").SetText(doc.Client.Phone)
	}

	items := root.CreateElement("Itens")
	for _, l := range doc.Lines {
		item := items.CreateElement("Item")
		item.CreateAttr("id", l.Line.ID)
		item.CreateAttr("produtoId", l.Line.ProductID)
		item.CreateAttr("quantidade", strconv.Itoa(l.Line.Quantity))
		item.CreateElement("Descricao").SetText(l.Product.Name)
		item.CreateElement("PrecoUnitario").SetText(l.Product.Price.StringFixed(2))
		item.CreateElement("Subtotal").SetText(l.Line.Subtotal(l.Product.Price).StringFixed(2))
	}

	if doc.Order.Notes != "" {
		root.CreateElement("Observacoes").SetText(doc.Order.Notes)
	}
	root.CreateElement("Total").SetText(doc.Total.StringFixed(2))

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar: %w", err)
	}
	return out, nil
}
