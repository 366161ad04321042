package checkout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Printer hands a finished invoice to the platform print/export flow. The
// outcome is never reported back.
type Printer interface {
	Print(ctx context.Context, doc Document)
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(context.Context, Document)

// Print implements Printer.
func (f PrinterFunc) Print(ctx context.Context, doc Document) { f(ctx, doc) }

// Overlay is the presentation state (cart sidebar, print area) reset after checkout.
type Overlay interface {
	Close()
}

// FilePrinter exports invoices as standalone HTML pages in Dir.
type FilePrinter struct {
	Dir    string
	Logger zerolog.Logger
}

// Print implements Printer. Failures are logged only.
func (p FilePrinter) Print(_ context.Context, doc Document) {
	path, err := p.write(doc)
	if err != nil {
		p.Logger.Error().Err(err).Str("invoice_id", doc.Invoice.ID).Msg("export invoice")
		return
	}
	p.Logger.Info().Str("invoice_id", doc.Invoice.ID).Str("path", path).Msg("invoice exported")
}

// Path returns the file an invoice is exported to.
func (p FilePrinter) Path(invoiceID string) string {
	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, "invoice-"+invoiceID+".html")
}

func (p FilePrinter) write(doc Document) (string, error) {
	path := p.Path(doc.Invoice.ID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(doc.Page()), 0o644); err != nil {
		return "", fmt.Errorf("write invoice: %w", err)
	}
	return path, nil
}
