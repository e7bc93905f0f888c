package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Drivers de almacenamiento soportados.
const (
	DriverPgx    = "pgx"
	DriverGorm   = "gorm"
	DriverSQLite = "sqlite"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	DB    DBConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Kafka KafkaConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// IsDevelopment indica si se ejecuta en entorno local.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// DBConfig configuración del almacén.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver         string // pgx | gorm | sqlite
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	SQLitePath     string
	ConnectTimeout time.Duration
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN construye el connection string de PostgreSQL escapando la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT y cookie de sesión.
type JWTConfig struct {
	Secret       string
	Expiration   int // minutos
	Issuer       string
	CookieSecure bool
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host           string
	Port           int
	CORSOrigins    string
	SwaggerEnabled bool
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// KafkaConfig eventos de dominio. Sin brokers se usa el publicador no-op.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled indica si hay brokers configurados.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, KAFKA_BROKERS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: .env o config.env
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "vendergas-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:         strings.ToLower(getString(v, "STORE_DRIVER", DriverPgx)),
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "vendergas"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			SQLitePath:     getString(v, "SQLITE_PATH", "vendergas.db"),
			ConnectTimeout: time.Duration(getInt(v, "DB_CONNECT_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		JWT: JWTConfig{
			Secret:       getString(v, "JWT_SECRET", ""),
			Expiration:   getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:       getString(v, "JWT_ISSUER", "vendergas-api"),
			CookieSecure: getBool(v, "SESSION_COOKIE_SECURE", false),
		},
		HTTP: HTTPConfig{
			Host:           getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:           getInt(v, "HTTP_PORT", 8080),
			CORSOrigins:    getString(v, "CORS_ORIGINS", "*"),
			SwaggerEnabled: getBool(v, "SWAGGER_ENABLED", true),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getString(v, "KAFKA_BROKERS", "")),
			Topic:   getString(v, "KAFKA_TOPIC", "vendergas.events"),
		},
	}

	if cfg.App.IsDevelopment() && cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-change-me"
	}

	return cfg, cfg.Validate()
}

// Validate rechaza combinaciones que impedirían arrancar de forma segura.
func (c *Config) Validate() error {
	var errs []error
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET es obligatorio fuera de development"))
	}
	switch c.DB.Driver {
	case DriverPgx, DriverGorm, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("config: STORE_DRIVER desconocido %q", c.DB.Driver))
	}
	if c.JWT.Expiration <= 0 {
		errs = append(errs, errors.New("config: JWT_EXPIRATION_MINUTES debe ser positivo"))
	}
	return errors.Join(errs...)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
