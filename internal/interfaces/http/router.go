package http

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	"github.com/jhoicas/vendergas-api/internal/application/dto"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// Pinger lo implementan los stores; alimenta /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	AccountUC   *usecase.AccountUseCase
	CompanyUC   *usecase.CompanyUseCase
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *usecase.OrderUseCase
	OrderLineUC *usecase.OrderLineUseCase
	Store       Pinger
	Log         *logger.Logger

	AppName        string
	CookieSecure   bool
	CORSOrigins    string // lista separada por comas o "*"
	SwaggerEnabled bool
	SwaggerFile    string
}

// NewApp crea la aplicación Fiber con middleware comunes, /health, Swagger opcional y las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
		deps.Log = log
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: httpErrorCode(fe.Code), Message: fe.Message})
			}
			return writeError(c, log, err)
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log.Named("http")))
	if origins := strings.TrimSpace(deps.CORSOrigins); origins != "" {
		// la cookie de sesión solo viaja con orígenes explícitos
		app.Use(cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			AllowCredentials: origins != "*",
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerEnabled {
		file := deps.SwaggerFile
		if file == "" {
			file = "./docs/swagger.json"
		}
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: file,
			Path:     "docs",
			Title:    "VenderGás API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Store != nil {
			if err := deps.Store.Ping(c.UserContext()); err != nil {
				log.Error().Err(err).Msg("health: store no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	requireSession := AuthMiddleware(deps.AuthUC)
	api := app.Group("/api")

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.AccountUC, deps.CookieSecure, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", requireSession, authHandler.Me)

	// Rutas protegidas (Bearer Token o cookie de sesión)
	v1 := api.Group("/v1", requireSession)

	users := v1.Group("/users")
	users.Put("/me", authHandler.UpdateMe)
	users.Delete("/me", authHandler.DeleteMe)

	companies := v1.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", companyHandler.Delete)

	clients := v1.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, log)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	products := v1.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/company/:companyId", productHandler.ListByCompany)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	orders := v1.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id/pdf", orderHandler.PDF)
	orders.Get("/:id/xml", orderHandler.XML)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)

	lines := v1.Group("/order-products")
	lineHandler := NewOrderLineHandler(deps.OrderLineUC, log)
	lines.Get("/", lineHandler.List)
	lines.Post("/", lineHandler.Create)
	lines.Get("/:id", lineHandler.GetByID)
	lines.Put("/:id", lineHandler.Update)
	lines.Delete("/:id", lineHandler.Delete)
}

func httpErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		return "HTTP_ERROR"
	}
}
