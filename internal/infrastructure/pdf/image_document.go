package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

const capturedImageName = "invoice-capture"

// ImageDocumentAssembler implementa invoice.DocumentAssembler con gofpdf:
// página vertical, unidades en puntos, tamaño estándar fijo. La imagen se estira
// a la página completa sin conservar su relación de aspecto.
type ImageDocumentAssembler struct {
	pageSize string
	title    string
	now      func() time.Time
}

// NewImageDocumentAssembler pageSize es un tamaño estándar de gofpdf ("A4", "Letter"...).
func NewImageDocumentAssembler(pageSize, title string) *ImageDocumentAssembler {
	if pageSize == "" {
		pageSize = "A4"
	}
	return &ImageDocumentAssembler{pageSize: pageSize, title: title, now: time.Now}
}

// AssembleImagePage arma un PDF de una página con la imagen PNG en (0,0) ocupando
// el ancho y alto completos de la página.
func (a *ImageDocumentAssembler) AssembleImagePage(_ context.Context, png []byte) ([]byte, error) {
	if len(png) == 0 {
		return nil, fmt.Errorf("pdf: imagen vacía")
	}

	doc := gofpdf.New("P", "pt", a.pageSize, "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreationDate(a.now())
	if a.title != "" {
		doc.SetTitle(a.title, true)
	}
	doc.AddPage()

	width, height := doc.GetPageSize()
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(capturedImageName, opts, bytes.NewReader(png))
	doc.ImageOptions(capturedImageName, 0, 0, width, height, false, opts, 0, "")

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("pdf: incrustar imagen: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return buf.Bytes(), nil
}
