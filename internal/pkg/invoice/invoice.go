package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Pinned so repeated renders of one document are byte-identical.
var fixedCreationDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	lineSeparator  = "--------------------------"
	totalSeparator = "-----"
)

type Line struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Document struct {
	lines []Line
	total decimal.Decimal
}

func NewDocument(lines []Line) Document {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}

	copied := make([]Line, len(lines))
	copy(copied, lines)
	return Document{lines: copied, total: total}
}

func (d Document) Lines() []Line {
	copied := make([]Line, len(d.lines))
	copy(copied, d.lines)
	return copied
}

func (d Document) Total() decimal.Decimal { return d.total }

func (d Document) LineText(l Line) string {
	return fmt.Sprintf("%s - %d x $%s", l.Title, l.Quantity, l.UnitPrice.StringFixed(2))
}

func (d Document) TotalText() string {
	return "Total Price: $" + d.total.StringFixed(2)
}

// Render produces the PDF bytes. Rendering the same document twice
// yields identical output so every sink receives the same bytes.
func (d Document) Render() ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(fixedCreationDate)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "U", 26)
	pdf.CellFormat(0, 14, "Invoice", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, lineSeparator, "", 1, "L", false, 0, "")

	for _, l := range d.lines {
		pdf.CellFormat(0, 8, d.LineText(l), "", 1, "L", false, 0, "")
	}

	pdf.CellFormat(0, 8, totalSeparator, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 20)
	pdf.CellFormat(0, 12, d.TotalText(), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
