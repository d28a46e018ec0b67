package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
)

// Drivers de base de datos soportados.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	HTTP     HTTPConfig
	Security SecurityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// DBConfig configuración del store relacional.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	Driver      string // mysql, postgres, memory
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string // solo postgres
	MaxConns    int    // tamaño máximo del pool; las esperas no tienen límite
	AutoMigrate bool   // crea la tabla usuarios si no existe
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
// En mysql las opciones de DATABASE_URL se completan con las que exigen los repositorios.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL == "" {
		return c.DSN()
	}
	if c.Driver == DriverMySQL {
		mc, err := mysql.ParseDSN(c.DatabaseURL)
		if err != nil {
			// sql.Open reporta el mismo error de parseo
			return c.DatabaseURL
		}
		withRepoOptions(mc)
		return mc.FormatDSN()
	}
	return c.DatabaseURL
}

// withRepoOptions fija las opciones de las que dependen los repositorios mysql.
func withRepoOptions(mc *mysql.Config) {
	mc.ParseTime = true
	mc.Loc = time.UTC
	// UPDATE sin cambios reales cuenta como fila encontrada
	mc.ClientFoundRows = true
}

// DSN devuelve el connection string según el driver.
func (c DBConfig) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		// url.UserPassword maneja caracteres especiales en la contraseña
		u := &url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Path:     "/" + c.DBName,
			RawQuery: "sslmode=" + c.SSLMode,
		}
		return u.String()
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = c.User
		mc.Passwd = c.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
		mc.DBName = c.DBName
		withRepoOptions(mc)
		return mc.FormatDSN()
	default:
		return ""
	}
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	CORSAllowOrigins string
	WebEnabled       bool   // sirve el front end embebido en /
	DocsEnabled      bool   // Swagger UI en /docs
	DocsFile         string // ruta al swagger.json
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SecurityConfig parámetros de hashing.
type SecurityConfig struct {
	BcryptCost int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_DRIVER, DB_HOST, HTTP_PORT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	driver := strings.ToLower(getString(v, "DB_DRIVER", DriverMySQL))
	defPort, defUser := 3306, "root"
	switch driver {
	case DriverMySQL, DriverMemory:
	case DriverPostgres:
		defPort, defUser = 5432, "postgres"
	default:
		return nil, fmt.Errorf("DB_DRIVER no soportado: %q (mysql, postgres, memory)", driver)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "usuarios-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			Driver:      driver,
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", defPort),
			User:        getString(v, "DB_USER", defUser),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "app_db"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", false),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 3000),
			CORSAllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
			WebEnabled:       getBool(v, "WEB_ENABLED", true),
			DocsEnabled:      getBool(v, "DOCS_ENABLED", true),
			DocsFile:         getString(v, "DOCS_FILE", "./docs/swagger.json"),
		},
		Security: SecurityConfig{
			BcryptCost: getInt(v, "BCRYPT_COST", 10),
		},
	}
	if cfg.DB.MaxConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_CONNS debe ser mayor que 0")
	}
	return cfg, nil
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
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
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
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
