package receipt

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"resto-pos/internal/model"

	"github.com/rs/zerolog"
)

// Renderer writes a receipt in one export format.
type Renderer interface {
	// Render writes the receipt to w.
	Render(w io.Writer, rcpt Receipt) error

	// Ext returns the file extension for this format, without the dot.
	Ext() string
}

// Registry maps export format names to renderers. Asking for a format that
// is not registered yields ErrExportUnavailable: a missing export
// capability is a warning for the caller, never a failure of the core.
type Registry struct {
	renderers map[string]Renderer
	logger    zerolog.Logger
}

// NewRegistry creates a registry with the built-in formats ("csv", "text")
// registered.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		renderers: make(map[string]Renderer),
		logger:    logger.With().Str("component", "receipt-registry").Logger(),
	}
	r.Register("csv", csvRenderer{})
	r.Register("text", textRenderer{})
	return r
}

// Register adds a renderer under the given format name.
func (r *Registry) Register(format string, renderer Renderer) {
	r.renderers[format] = renderer
}

// Get returns the renderer for a format, or ErrExportUnavailable.
func (r *Registry) Get(format string) (Renderer, error) {
	renderer, ok := r.renderers[strings.ToLower(format)]
	if !ok {
		r.logger.Warn().Str("format", format).Msg("export format not available")
		return nil, model.ErrExportUnavailable
	}
	return renderer, nil
}

// Formats returns the registered format names.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.renderers))
	for format := range r.renderers {
		formats = append(formats, format)
	}
	return formats
}

// WriteFile renders the receipt into dir as bill_<orderID>_<timestamp>.<ext>
// and returns the written path. The directory is created if absent.
func WriteFile(dir string, rcpt Receipt, renderer Renderer) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create receipt directory %s: %w", dir, err)
	}

	filename := fmt.Sprintf("bill_%d_%s.%s",
		rcpt.OrderID,
		rcpt.PlacedAt.Format("20060102_150405"),
		renderer.Ext(),
	)
	path := filepath.Join(dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create receipt file %s: %w", path, err)
	}
	defer file.Close()

	if err := renderer.Render(file, rcpt); err != nil {
		return "", fmt.Errorf("failed to render receipt: %w", err)
	}

	return path, nil
}

// csvRenderer writes the bill lines as CSV.
type csvRenderer struct{}

func (csvRenderer) Ext() string { return "csv" }

func (csvRenderer) Render(w io.Writer, rcpt Receipt) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"item_name", "quantity", "price", "gst", "line_total"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, line := range rcpt.Lines {
		record := []string{
			line.ItemName,
			strconv.Itoa(line.Quantity),
			line.Price.StringFixed(2),
			line.TaxRate.String(),
			line.LineTotal.StringFixed(2),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV line: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// textRenderer writes a printable plain-text bill.
type textRenderer struct{}

func (textRenderer) Ext() string { return "txt" }

func (textRenderer) Render(w io.Writer, rcpt Receipt) error {
	var b strings.Builder
	rule := strings.Repeat("-", 50)

	fmt.Fprintf(&b, "Order ID: %d\n", rcpt.OrderID)
	fmt.Fprintf(&b, "Mode: %s\n", rcpt.Mode)
	fmt.Fprintf(&b, "Payment: %s\n", rcpt.PaymentMethod)
	fmt.Fprintf(&b, "Date: %s\n", rcpt.PlacedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, rule)

	for _, line := range rcpt.Lines {
		fmt.Fprintf(&b, "%s x %d = %s%s\n",
			line.ItemName, line.Quantity, rcpt.Currency, line.LineTotal.StringFixed(2))
	}

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Subtotal: %s%s\n", rcpt.Currency, rcpt.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "GST: %s%s\n", rcpt.Currency, rcpt.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Grand Total: %s%s\n", rcpt.Currency, rcpt.Total.StringFixed(2))

	_, err := io.WriteString(w, b.String())
	return err
}
