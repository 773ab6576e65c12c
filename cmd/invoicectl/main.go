// invoicectl genera la factura en PDF desde la línea de comandos, con el mismo
// controlador de borradores y la misma exportación que el servidor.
//
// Uso:
//
//	invoicectl export --name "Jane Doe" --phone "555-0100" \
//	    --item "Soup;10;3" --item "Bread;2.5;4" --out invoice.pdf
//	invoicectl export --items-csv items.csv --csv-encoding latin1 --mode vector
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/jhoicas/invoice-studio/internal/application/invoice"
	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/capture"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoice-studio/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/render"
	"github.com/jhoicas/invoice-studio/pkg/config"
	"github.com/jhoicas/invoice-studio/pkg/logger"
)

func main() {
	app := &cli.App{
		Name:     "invoicectl",
		Usage:    "genera facturas en PDF sin abrir la página",
		Commands: []*cli.Command{exportCommand()},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "invoicectl: %v\n", err)
		os.Exit(1)
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "arma un borrador con los datos indicados y lo exporta a PDF",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "nombre del cliente"},
			&cli.StringFlag{Name: "phone", Usage: "teléfono del cliente"},
			&cli.StringSliceFlag{Name: "item", Usage: `línea "descripción;tarifa;cantidad" (repetible)`},
			&cli.StringFlag{Name: "items-csv", Usage: "CSV con columnas description,rate,quantity"},
			&cli.StringFlag{Name: "csv-encoding", Value: "utf-8", Usage: "utf-8, latin1 o windows-1252"},
			&cli.StringFlag{Name: "mode", Value: string(invoice.ExportRaster), Usage: "raster (captura con Chrome) o vector; sin indicarlo, vector si no hay navegador"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "archivo de salida (por defecto EXPORT_FILENAME)"},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}, os.Stderr)

	mode, err := invoice.ParseExportMode(c.String("mode"))
	if err != nil {
		return err
	}

	rows := make([]itemRow, 0, len(c.StringSlice("item")))
	for _, s := range c.StringSlice("item") {
		rows = append(rows, parseItemFlag(s))
	}
	if path := c.String("items-csv"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("abrir CSV: %w", err)
		}
		csvRows, err := readItemsCSV(f, c.String("csv-encoding"))
		f.Close()
		if err != nil {
			return err
		}
		rows = append(rows, csvRows...)
	}

	logo, logoMIME, err := render.LoadLogo(cfg.Business.LogoPath)
	if err != nil {
		log.Warn().Err(err).Msg("logo no disponible, se omite")
	}
	drafts := invoice.NewDraftUseCase(memory.NewDraftRepository(), invoice.DraftConfig{
		Seller: entity.BusinessProfile{
			Name:          cfg.Business.Name,
			Address:       cfg.Business.Address,
			Phone:         cfg.Business.Phone,
			InvoiceNumber: cfg.Business.InvoiceNumber,
			DueText:       cfg.Business.DueText,
			Logo:          logo,
			LogoMIME:      logoMIME,
		},
	}, log.Zerolog())

	draft, err := drafts.Create()
	if err != nil {
		return err
	}
	if err := applyAll(drafts, draft.ID, c.String("name"), c.String("phone"), rows); err != nil {
		return err
	}

	renderer, err := render.NewRenderer(cfg.Export.Filename)
	if err != nil {
		return err
	}
	rasterizer := capture.NewChromeRasterizer(
		capture.WithChromePath(cfg.Export.ChromePath),
		capture.WithNoSandbox(cfg.Export.NoSandbox),
		capture.WithAutoDownload(cfg.Export.AutoDownload),
		capture.WithViewport(int64(cfg.Export.ViewportWidth), int64(cfg.Export.ViewportHeight)),
		capture.WithDeviceScale(cfg.Export.DeviceScale),
	)
	defer rasterizer.Close()

	exporter := invoice.NewExportUseCase(
		drafts, renderer, rasterizer,
		infrapdf.NewImageDocumentAssembler(cfg.Export.PageSize, "Invoice "+cfg.Business.InvoiceNumber),
		infrapdf.NewMarotoPDFGenerator(),
		invoice.ExportConfig{Timeout: cfg.Export.Timeout, Filename: cfg.Export.Filename},
		log.Zerolog(),
	)
	res, err := exportWithFallback(context.Background(), exporter, draft.ID, mode, c.IsSet("mode"), log.Zerolog())
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.Data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}

	final, err := drafts.Get(draft.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Generado %s: %d líneas, total %s\n", out, len(final.Items), render.Money(final.Total()))
	return nil
}

// invoiceExporter lo que runExport necesita de invoice.ExportUseCase.
type invoiceExporter interface {
	Export(ctx context.Context, id string, mode invoice.ExportMode) (*invoice.ExportResult, error)
}

// exportWithFallback exporta en mode. Si el modo no se pidió explícitamente y la captura
// no pudo hacerse (sin navegador), repite la exportación en modo vectorial.
func exportWithFallback(ctx context.Context, exp invoiceExporter, id string, mode invoice.ExportMode, explicit bool, log zerolog.Logger) (*invoice.ExportResult, error) {
	res, err := exp.Export(ctx, id, mode)
	if err == nil || explicit || mode != invoice.ExportRaster {
		return res, err
	}
	if !errors.Is(err, domain.ErrCaptureFailed) && !errors.Is(err, domain.ErrExporterClosed) {
		return nil, err
	}
	log.Warn().Err(err).Msg("navegador no disponible, se exporta en modo vectorial")
	return exp.Export(ctx, id, invoice.ExportVector)
}

// applyAll vuelca los datos en el borrador usando las mismas ediciones que la página.
// La primera fila ocupa la línea inicial; las demás se agregan con AppendItem.
func applyAll(drafts *invoice.DraftUseCase, id, name, phone string, rows []itemRow) error {
	updates := []entity.Update{
		entity.HeaderUpdate{Field: entity.HeaderCustomerName, Value: name},
		entity.HeaderUpdate{Field: entity.HeaderCustomerPhone, Value: phone},
	}
	for i, r := range rows {
		if i > 0 {
			updates = append(updates, entity.AppendItem{})
		}
		updates = append(updates,
			entity.ItemUpdate{Index: i, Field: entity.ItemDescription, Value: r.Description},
			entity.ItemUpdate{Index: i, Field: entity.ItemRate, Value: r.Rate},
			entity.ItemUpdate{Index: i, Field: entity.ItemQuantity, Value: r.Quantity},
		)
	}
	for _, u := range updates {
		if _, err := drafts.Apply(id, u); err != nil {
			return err
		}
	}
	return nil
}
