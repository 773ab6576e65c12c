// Package capture rasteriza la vista previa de la factura con Chrome headless (CDP).
package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/jhoicas/invoice-studio/internal/domain"
)

// ChromeRasterizer implementa invoice.Rasterizer. El navegador se inicia en la primera
// captura y se reutiliza; cada captura usa su propia pestaña. Seguro para uso concurrente.
type ChromeRasterizer struct {
	cfg rasterizerConfig

	mu            sync.Mutex
	closed        bool
	starting      chan struct{} // abierto mientras hay un arranque en curso
	startCancel   context.CancelFunc
	startErr      error
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeRasterizer construye el rasterizador sin arrancar el navegador.
func NewChromeRasterizer(opts ...Option) *ChromeRasterizer {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &ChromeRasterizer{cfg: cfg}
}

// Capture abre html en una pestaña nueva y devuelve un PNG del nodo selector.
// La captura se aborta cuando ctx vence o se cancela.
func (r *ChromeRasterizer) Capture(ctx context.Context, html []byte, selector string) ([]byte, error) {
	browserCtx, err := r.browser(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "invoice-preview-*.html")
	if err != nil {
		return nil, fmt.Errorf("capture: crear archivo temporal: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)
	if _, err := f.Write(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("capture: escribir archivo temporal: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("capture: cerrar archivo temporal: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("capture: resolver ruta: %w", err)
	}

	// La pestaña cuelga del navegador, no de ctx; se cierra cuando ctx termina.
	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var buf []byte
	err = chromedp.Run(tabCtx,
		// Factor de escala > 1 para que el texto no se vea borroso al estirar la imagen a A4.
		chromedp.ActionFunc(func(ctx context.Context) error {
			return emulation.SetDeviceMetricsOverride(
				r.cfg.viewportWidth, r.cfg.viewportHeight, r.cfg.deviceScale, false,
			).Do(ctx)
		}),
		chromedp.Navigate("file://"+abs),
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("capture: %w", ctxErr)
	}
	if err != nil {
		return nil, fmt.Errorf("capture: captura fallida: %w", err)
	}
	return buf, nil
}

// Close libera el navegador y aborta un arranque en curso. Es idempotente.
func (r *ChromeRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if r.startCancel != nil {
		r.startCancel()
	}
	r.shutdownLocked()
	return nil
}

// browser devuelve el contexto del navegador, arrancándolo (o reiniciándolo si murió).
// El arranque corre en segundo plano sin tomar r.mu; quien espera respeta ctx.
// Si ctx vence antes, el arranque sigue y lo aprovecha la siguiente captura.
func (r *ChromeRasterizer) browser(ctx context.Context) (context.Context, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, domain.ErrExporterClosed
	}
	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		b := r.browserCtx
		r.mu.Unlock()
		return b, nil
	}
	if r.starting == nil {
		r.shutdownLocked()
		launchCtx, cancel := context.WithCancel(context.Background())
		r.starting = make(chan struct{})
		r.startCancel = cancel
		go r.launch(launchCtx, cancel, r.starting)
	}
	wait := r.starting
	r.mu.Unlock()

	select {
	case <-wait:
	case <-ctx.Done():
		return nil, fmt.Errorf("capture: iniciar navegador: %w", ctx.Err())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, domain.ErrExporterClosed
	}
	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}
	if r.startErr != nil {
		return nil, r.startErr
	}
	return nil, fmt.Errorf("capture: iniciar navegador: el navegador terminó")
}

// launch arranca Chrome (descargándolo si hace falta) y publica el resultado al cerrar done.
// cancel libera ctx, del que cuelga el proceso del navegador.
func (r *ChromeRasterizer) launch(ctx context.Context, cancel context.CancelFunc, done chan struct{}) {
	browserCtx, release, err := r.start(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	defer close(done)
	r.starting = nil
	r.startCancel = nil
	if err == nil && r.closed {
		release()
		err = domain.ErrExporterClosed
	}
	if err != nil {
		cancel()
		r.startErr = fmt.Errorf("capture: iniciar navegador: %w", err)
		return
	}
	r.startErr = nil
	r.allocCancel = cancel
	r.browserCtx = browserCtx
	r.browserCancel = release
}

// start lanza el proceso bajo ctx y espera a que responda, como máximo startTimeout.
// release cierra el navegador y espera a que el proceso termine.
func (r *ChromeRasterizer) start(ctx context.Context) (context.Context, context.CancelFunc, error) {
	chromePath := r.cfg.chromePath
	if chromePath == "" && r.cfg.autoDownload {
		path, err := resolveBrowser(ctx)
		if err != nil {
			return nil, nil, err
		}
		chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("allow-file-access-from-files", true),
		chromedp.Flag("headless", r.cfg.headless),
	)
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}
	if r.cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}

	// El asignador cuelga de ctx: Close lo cancela y mata el proceso aunque siga arrancando.
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	release := func() {
		browserCancel()
		allocCancel()
	}

	startErr := make(chan error, 1)
	go func() { startErr <- chromedp.Run(browserCtx) }()
	var err error
	select {
	case err = <-startErr:
	case <-time.After(r.cfg.startTimeout):
		err = fmt.Errorf("tiempo de arranque agotado (%s)", r.cfg.startTimeout)
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		release()
		return nil, nil, err
	}
	return browserCtx, release, nil
}

func (r *ChromeRasterizer) shutdownLocked() {
	if r.browserCancel != nil {
		r.browserCancel()
	}
	if r.allocCancel != nil {
		r.allocCancel()
	}
	r.browserCtx, r.browserCancel, r.allocCancel = nil, nil, nil
}
