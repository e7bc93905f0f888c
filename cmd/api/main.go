package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/vendergas-api/internal/application/auth"
	"github.com/jhoicas/vendergas-api/internal/application/ports"
	"github.com/jhoicas/vendergas-api/internal/application/usecase"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/vendergas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/stores"
	"github.com/jhoicas/vendergas-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/vendergas-api/internal/interfaces/http"
	"github.com/jhoicas/vendergas-api/pkg/config"
	"github.com/jhoicas/vendergas-api/pkg/logger"
)

// publisher productor Kafka o no-op.
type publisher interface {
	ports.EventPublisher
	Close()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := stores.Open(ctx, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacén")
	}

	var pub publisher
	if cfg.Kafka.Enabled() {
		pub = events.NewProducer(events.ProducerConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic}, log)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("eventos a Kafka")
	} else {
		pub = events.NewNoopPublisher(log)
	}

	repos := st.Repos()
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, pub, log)

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AuthUC:      authUC,
		AccountUC:   usecase.NewAccountUseCase(repos, st, pub, log),
		CompanyUC:   usecase.NewCompanyUseCase(repos, st, pub, log),
		ClientUC:    usecase.NewClientUseCase(repos, st, pub, log),
		ProductUC:   usecase.NewProductUseCase(repos, st, pub, log),
		OrderUC:     usecase.NewOrderUseCase(repos, st, pub, nil, infrapdf.NewMarotoPDFGenerator(), xmlexport.NewEtreeExporter(), log),
		OrderLineUC: usecase.NewOrderLineUseCase(repos, st, pub, log),
		Store:       st,
		Log:         log,

		AppName:        cfg.App.Name,
		CookieSecure:   cfg.JWT.CookieSecure,
		CORSOrigins:    cfg.HTTP.CORSOrigins,
		SwaggerEnabled: cfg.HTTP.SwaggerEnabled,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	pub.Close()
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar almacén")
	}

	log.Info().Msg("aplicación detenida")
}
