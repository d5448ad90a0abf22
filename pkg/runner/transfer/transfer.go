// Package transfer exports and imports every category and block as a single
// YAML or JSON document.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/snip/pkg/app"
	"tableflip.dev/snip/pkg/printers"
)

// Stdio is the path that means stdin or stdout.
const Stdio = "-"

// Export writes every record to Path, or to Out when Path is empty or "-".
type Export struct {
	Path string
	// Format defaults to YAML, or JSON for a .json Path.
	Format printers.Format

	Service *app.Service
	Out     io.Writer
}

func (n *Export) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	doc, err := n.Service.Export(ctx)
	if err != nil {
		return err
	}
	format := n.Format
	if format == printers.FormatPretty {
		format = formatFor(n.Path)
	}

	if n.Path == "" || n.Path == Stdio {
		return printers.Encode(n.Out, format, doc)
	}
	f, err := os.Create(n.Path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := printers.Encode(f, format, doc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(n.Out, "exported %d categories and %d blocks to %s\n", len(doc.Categories), len(doc.Blocks), n.Path)
	return nil
}

// Import reads a document from Path, or from In when Path is "-".
type Import struct {
	Path string
	In   io.Reader

	Service *app.Service
	Format  printers.Format
	Out     io.Writer
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	var r io.Reader
	switch n.Path {
	case "":
		return errors.New("import: a file or - is required")
	case Stdio:
		r = n.In
	default:
		f, err := os.Open(n.Path)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := Decode(r, formatFor(n.Path))
	if err != nil {
		return err
	}
	report, err := n.Service.Import(ctx, doc)
	if err != nil {
		return err
	}
	if n.Format.Structured() {
		return printers.Encode(n.Out, n.Format, report)
	}
	faint := color.New(color.Faint)
	_, _ = fmt.Fprintf(n.Out, "categories: %d created, %d merged\n", report.CategoriesCreated, report.CategoriesMerged)
	_, _ = fmt.Fprintf(n.Out, "blocks:     %d created", report.BlocksCreated)
	if report.BlocksSkipped > 0 {
		_, _ = faint.Fprintf(n.Out, ", %d already present", report.BlocksSkipped)
	}
	_, _ = fmt.Fprintln(n.Out)
	return nil
}

// Decode reads an exported document.
func Decode(r io.Reader, format printers.Format) (app.Document, error) {
	var doc app.Document
	var err error
	if format == printers.FormatJSON {
		err = json.NewDecoder(r).Decode(&doc)
	} else {
		err = yaml.NewDecoder(r).Decode(&doc)
	}
	if err != nil {
		return app.Document{}, fmt.Errorf("import: decode: %w", err)
	}
	if doc.Version > app.DocumentVersion {
		return app.Document{}, fmt.Errorf("import: document version %d is newer than %d", doc.Version, app.DocumentVersion)
	}
	return doc, nil
}

func formatFor(path string) printers.Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return printers.FormatJSON
	}
	return printers.FormatYAML
}
