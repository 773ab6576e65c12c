package capture

import (
	"context"
	"fmt"

	"github.com/go-rod/rod/lib/launcher"
)

// resolveBrowser descarga (si no está en caché) un Chromium compatible y devuelve
// la ruta al ejecutable. Se guarda en ~/.cache/rod/browser. La descarga se corta con ctx.
func resolveBrowser(ctx context.Context) (string, error) {
	b := launcher.NewBrowser()
	b.Context = ctx
	path, err := b.Get()
	if err != nil {
		return "", fmt.Errorf("capture: descargar navegador: %w", err)
	}
	return path, nil
}
