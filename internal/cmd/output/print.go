package output

import (
	"io"

	"github.com/agentstation/locallift/internal/cmd/table"
)

// Printer writes command results in the format chosen by the global flags.
type Printer struct {
	format Format
	w      io.Writer
}

// NewPrinter creates a printer writing to w. An empty format is detected
// from the terminal.
func NewPrinter(format string, w io.Writer) *Printer {
	return &Printer{format: DetectFormat(format), w: w}
}

// NewPrinterTo creates a printer for format writing to w.
func NewPrinterTo(format Format, w io.Writer) *Printer {
	return &Printer{format: format, w: w}
}

// Format returns the printer's format.
func (p *Printer) Format() Format {
	return p.format
}

// Wide reports whether the wide table was requested.
func (p *Printer) Wide() bool {
	return p.format == FormatWide
}

// Print writes raw for json and yaml, and the result of toTable otherwise.
// A nil toTable lets the table formatter convert raw itself.
func (p *Printer) Print(raw any, toTable func(wide bool) table.Data) error {
	if p.format.IsTable() && toTable != nil {
		return NewFormatter(p.format).Format(p.w, toTable(p.Wide()))
	}
	return NewFormatter(p.format).Format(p.w, raw)
}
