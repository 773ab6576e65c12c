package capture

import "time"

// rasterizerConfig configuración interna del ChromeRasterizer.
type rasterizerConfig struct {
	chromePath     string
	noSandbox      bool
	autoDownload   bool
	headless       string
	viewportWidth  int64
	viewportHeight int64
	deviceScale    float64
	startTimeout   time.Duration
}

func defaultConfig() rasterizerConfig {
	return rasterizerConfig{
		headless:       "new",
		viewportWidth:  1024,
		viewportHeight: 1400,
		deviceScale:    2,
		startTimeout:   30 * time.Second,
	}
}

// Option configura un ChromeRasterizer.
type Option func(*rasterizerConfig)

// WithChromePath ruta al ejecutable de Chrome/Chromium. Vacío = búsqueda automática.
func WithChromePath(path string) Option {
	return func(c *rasterizerConfig) { c.chromePath = path }
}

// WithNoSandbox desactiva el sandbox de Chrome (necesario como root, p. ej. en Docker).
func WithNoSandbox(on bool) Option {
	return func(c *rasterizerConfig) { c.noSandbox = on }
}

// WithAutoDownload descarga un Chromium compatible si no se indicó ruta.
func WithAutoDownload(on bool) Option {
	return func(c *rasterizerConfig) { c.autoDownload = on }
}

// WithViewport tamaño de la ventana en la que se dibuja la vista previa.
func WithViewport(width, height int64) Option {
	return func(c *rasterizerConfig) {
		if width > 0 {
			c.viewportWidth = width
		}
		if height > 0 {
			c.viewportHeight = height
		}
	}
}

// WithStartTimeout límite para arrancar el navegador.
func WithStartTimeout(d time.Duration) Option {
	return func(c *rasterizerConfig) { c.startTimeout = d }
}

// WithDeviceScale factor de escala del dispositivo emulado (resolución de la captura).
func WithDeviceScale(scale float64) Option {
	return func(c *rasterizerConfig) {
		if scale > 0 {
			c.deviceScale = scale
		}
	}
}
