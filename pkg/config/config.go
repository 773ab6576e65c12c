package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Drafts   DraftsConfig
	Export   ExportConfig
	Business BusinessConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string // trace, debug, info, warn, error
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string // vacío o inexistente = sin /docs
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DraftsConfig ciclo de vida de los borradores en memoria.
type DraftsConfig struct {
	TTL           time.Duration // inactividad antes de descartar un borrador
	JanitorPeriod time.Duration
}

// ExportConfig exportación a PDF.
type ExportConfig struct {
	Timeout        time.Duration // límite de la captura de la vista previa
	Filename       string
	PageSize       string // tamaño estándar de página (A4, Letter...)
	ChromePath     string // vacío = búsqueda automática
	NoSandbox      bool   // requerido al correr como root (Docker)
	AutoDownload   bool   // descarga Chromium si no se encuentra
	ViewportWidth  int
	ViewportHeight int
	DeviceScale    float64
}

// BusinessConfig datos del emisor impresos en la cabecera.
type BusinessConfig struct {
	Name          string
	Address       string
	Phone         string
	InvoiceNumber string
	DueText       string
	LogoPath      string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, EXPORT_TIMEOUT, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	timeout, err := getDuration(v, "EXPORT_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration(v, "DRAFT_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	janitor, err := getDuration(v, "DRAFT_JANITOR_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "invoice-studio"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:        getInt(v, "HTTP_PORT", 8080),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Drafts: DraftsConfig{
			TTL:           ttl,
			JanitorPeriod: janitor,
		},
		Export: ExportConfig{
			Timeout:        timeout,
			Filename:       getString(v, "EXPORT_FILENAME", "invoice.pdf"),
			PageSize:       getString(v, "EXPORT_PAGE_SIZE", "A4"),
			ChromePath:     getString(v, "CHROME_PATH", ""),
			NoSandbox:      getBool(v, "CHROME_NO_SANDBOX", false),
			AutoDownload:   getBool(v, "CHROME_AUTO_DOWNLOAD", false),
			ViewportWidth:  getInt(v, "CAPTURE_VIEWPORT_WIDTH", 1024),
			ViewportHeight: getInt(v, "CAPTURE_VIEWPORT_HEIGHT", 1400),
			DeviceScale:    getFloat(v, "CAPTURE_DEVICE_SCALE", 2),
		},
		Business: BusinessConfig{
			Name:          getString(v, "BUSINESS_NAME", "Stomach Care Food"),
			Address:       getString(v, "BUSINESS_ADDRESS", "89 Cooke Ave, Brantford, ON, Canada"),
			Phone:         getString(v, "BUSINESS_PHONE", "+1 (647) 705-5758"),
			InvoiceNumber: getString(v, "INVOICE_NUMBER", "INVO001"),
			DueText:       getString(v, "INVOICE_DUE", "On Receipt"),
			LogoPath:      getString(v, "BUSINESS_LOGO_PATH", ""),
		},
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

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil {
			return def
		}
		return f
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

// getDuration acepta "45s", "2m" o un número entero de segundos.
func getDuration(v *viper.Viper, key string, def time.Duration) (time.Duration, error) {
	if !v.IsSet(key) {
		return def, nil
	}
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s inválido %q: %w", key, raw, err)
	}
	return d, nil
}
