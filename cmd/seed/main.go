// seed crea un usuario de demostración con una empresa, clientes, productos y un pedido
// a partir de un catálogo XML (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed [ruta/catalogo.xml]
// Sin argumento usa el catálogo embebido. Usa la misma configuración que cmd/api.
package main

import (
	"context"
	_ "embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/internal/domain"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/events"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/stores"
	"github.com/jhoicas/vendergas-api/pkg/config"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

//go:embed catalogo.xml
var defaultCatalog string

const (
	demoEmail    = "demo@vendergas.local"
	demoPassword = "demo12345"
)

type catalog struct {
	Empresa     string    `xml:"empresa,attr"`
	RazaoSocial string    `xml:"razaoSocial,attr"`
	CNPJ        string    `xml:"cnpj,attr"`
	Clientes    []cliente `xml:"cliente"`
	Produtos    []produto `xml:"produto"`
}

type cliente struct {
	Nome     string `xml:"nome,attr"`
	Email    string `xml:"email,attr"`
	Telefone string `xml:"telefone,attr"`
}

type produto struct {
	Nome      string `xml:"nome,attr"`
	Preco     string `xml:"preco,attr"`
	Descricao string `xml:"descricao,attr"`
}

func main() {
	var src io.Reader = strings.NewReader(defaultCatalog)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		src = f
	}

	cat, err := parseCatalog(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	st, err := stores.Open(ctx, *cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión al almacén: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := seed(ctx, st, cfg, cat, log); err != nil {
		fmt.Fprintf(os.Stderr, "Seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Listo. Ingrese con %s / %s\n", demoEmail, demoPassword)
}

// parseCatalog decodifica el catálogo aceptando ISO-8859-1 además de UTF-8.
func parseCatalog(r io.Reader) (*catalog, error) {
	var c catalog
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.Empresa) == "" {
		return nil, errors.New("catálogo sin atributo empresa")
	}
	return &c, nil
}

func seed(ctx context.Context, st stores.Store, cfg *config.Config, cat *catalog, log *logger.Logger) error {
	repos := st.Repos()
	pub := events.NewNoopPublisher(log)
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, pub, log)

	user, err := authUC.Register(ctx, dto.RegisterRequest{Name: "Demo", Email: demoEmail, Password: demoPassword})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		fmt.Println("El usuario demo ya existe; nada que hacer.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("registrar usuario: %w", err)
	}

	companies := usecase.NewCompanyUseCase(repos, st, pub, log)
	clients := usecase.NewClientUseCase(repos, st, pub, log)
	products := usecase.NewProductUseCase(repos, st, pub, log)
	orders := usecase.NewOrderUseCase(repos, st, pub, nil, nil, nil, log)
	lines := usecase.NewOrderLineUseCase(repos, st, pub, log)

	company, err := companies.Create(ctx, user.ID, dto.CreateCompanyRequest{
		TradeName: cat.Empresa,
		LegalName: cat.RazaoSocial,
		CNPJ:      cat.CNPJ,
	})
	if err != nil {
		return fmt.Errorf("empresa: %w", err)
	}

	var clientIDs []string
	for _, c := range cat.Clientes {
		out, err := clients.Create(ctx, user.ID, dto.CreateClientRequest{
			Name:      strings.TrimSpace(c.Nome),
			Email:     strings.TrimSpace(c.Email),
			Phone:     strings.TrimSpace(c.Telefone),
			CompanyID: company.ID,
		})
		if err != nil {
			return fmt.Errorf("cliente %q: %w", c.Nome, err)
		}
		clientIDs = append(clientIDs, out.ID)
	}

	var productIDs []string
	for _, p := range cat.Produtos {
		price, err := decimal.NewFromString(strings.TrimSpace(p.Preco))
		if err != nil {
			return fmt.Errorf("precio de %q: %w", p.Nome, err)
		}
		out, err := products.Create(ctx, user.ID, dto.CreateProductRequest{
			Name:        strings.TrimSpace(p.Nome),
			Description: strings.TrimSpace(p.Descricao),
			Price:       &price,
			CompanyID:   company.ID,
		})
		if err != nil {
			return fmt.Errorf("producto %q: %w", p.Nome, err)
		}
		productIDs = append(productIDs, out.ID)
	}

	if len(clientIDs) == 0 || len(productIDs) == 0 {
		return nil
	}
	order, err := orders.Create(ctx, user.ID, dto.CreateOrderRequest{
		Notes:     "Pedido de demostración",
		ClientID:  clientIDs[0],
		CompanyID: company.ID,
	})
	if err != nil {
		return fmt.Errorf("pedido: %w", err)
	}
	for i, pid := range productIDs {
		if _, err := lines.Create(ctx, user.ID, dto.CreateOrderLineRequest{OrderID: order.ID, ProductID: pid, Quantity: i + 1}); err != nil {
			return fmt.Errorf("línea de pedido: %w", err)
		}
	}
	fmt.Printf("Empresa %s: %d clientes, %d productos, pedido %s\n", company.TradeName, len(clientIDs), len(productIDs), order.Number)
	return nil
}
