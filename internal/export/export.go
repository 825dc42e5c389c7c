// Package export writes a stored task list as JSON, YAML or PDF.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatPDF  = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Loader is the read side of a record store.
type Loader interface {
	Load(ctx context.Context) []models.Task
}

type Exporter struct {
	loader Loader
	title  string
}

// NewExporter exports the list returned by loader. The title heads
// the PDF document.
func NewExporter(loader Loader, title string) *Exporter {
	return &Exporter{loader: loader, title: title}
}

func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	tasks := e.loader.Load(ctx)
	if tasks == nil {
		tasks = []models.Task{}
	}

	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(tasks, "", "  ")
	case FormatYAML:
		return yaml.Marshal(tasks)
	case FormatPDF:
		return e.pdf(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func (e *Exporter) pdf(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, tr(e.title))
	pdf.Ln(12)

	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 6, "No tasks")
	}
	for i, task := range tasks {
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, task.Title)), "0", "L", false)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, tr(task.About), "0", "L", false)
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
