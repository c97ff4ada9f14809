// Package document renders the contract and power of attorney PDFs. Layout
// follows the company letterhead: A4 portrait, 20mm margins, justified body
// text at 10pt.
package document

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageTop     = 20.0  // top margin, also the cursor after a page break
	marginLeft  = 20.0  // left margin
	textWidth   = 170.0 // usable width on A4 with 20mm margins
	lineHeight  = 5.0   // body line height
	pageBottom  = 280.0 // hard limit for wrapped lines
	sectionMax  = 250.0 // a new section starting below this moves to a new page
	signatureMax = 190.0 // a signature block starting below this moves to a new page
)

// composer wraps one A4 document and tracks the vertical cursor.
type composer struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
	y   float64
}

func newComposer() *composer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Page breaks are decided per block, not mid paragraph.
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return &composer{pdf: pdf, tr: tr, y: pageTop}
}

func (c *composer) newPage() {
	c.pdf.AddPage()
	c.y = pageTop
}

// ensureSection starts a new page when a section heading would land too low.
func (c *composer) ensureSection() {
	if c.y > sectionMax {
		c.newPage()
	}
}

// ensureSignature starts a new page when a signature block would not fit.
func (c *composer) ensureSignature() {
	if c.y > signatureMax {
		c.newPage()
	}
}

func (c *composer) spacer(h float64) {
	c.y += h
}

// title writes the centered document title.
func (c *composer) title(text string) {
	c.pdf.SetFont("Arial", "B", 14)
	c.pdf.SetXY(marginLeft, c.y)
	c.pdf.CellFormat(textWidth, 8, c.tr(text), "", 0, "C", false, 0, "")
	c.y += 14
}

// heading writes a bold section heading.
func (c *composer) heading(text string) {
	c.ensureSection()
	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.SetXY(marginLeft, c.y)
	c.pdf.CellFormat(textWidth, 6, c.tr(text), "", 0, "L", false, 0, "")
	c.y += 8
}

// paragraph writes justified body text, wrapping and breaking pages line by
// line.
func (c *composer) paragraph(text string) {
	c.writeLines(text, "J", "")
}

// line writes a single short left-aligned line, optionally bold.
func (c *composer) line(text string, style string) {
	c.writeLines(text, "L", style)
}

func (c *composer) writeLines(text, align, style string) {
	c.pdf.SetFont("Arial", style, 10)
	lines := c.pdf.SplitText(c.tr(text), textWidth)
	for i, ln := range lines {
		if c.y > pageBottom {
			c.newPage()
			c.pdf.SetFont("Arial", style, 10)
		}
		lineAlign := align
		// Do not justify the last line of a justified paragraph.
		if align == "J" && i == len(lines)-1 {
			lineAlign = "L"
		}
		c.pdf.SetXY(marginLeft, c.y)
		c.pdf.CellFormat(textWidth, lineHeight, ln, "", 0, lineAlign, false, 0, "")
		c.y += lineHeight
	}
	c.y += 3
}

// signature writes one centered signature rule with the signer identity
// below it.
func (c *composer) signature(name, role string) {
	c.ensureSignature()
	c.pdf.SetFont("Arial", "", 10)

	c.pdf.SetXY(marginLeft+35, c.y)
	c.pdf.CellFormat(100, lineHeight, "_________________________________________", "", 0, "C", false, 0, "")
	c.y += lineHeight + 1

	c.pdf.SetFont("Arial", "B", 10)
	c.pdf.SetXY(marginLeft+35, c.y)
	c.pdf.CellFormat(100, lineHeight, c.tr(name), "", 0, "C", false, 0, "")
	c.y += lineHeight

	if role != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.SetXY(marginLeft+35, c.y)
		c.pdf.CellFormat(100, lineHeight, c.tr(role), "", 0, "C", false, 0, "")
		c.y += lineHeight
	}
	c.y += 8
}

// witnesses writes the two-witness block at the end of the contract.
func (c *composer) witnesses() {
	c.ensureSignature()
	c.pdf.SetFont("Arial", "B", 10)
	c.pdf.SetXY(marginLeft, c.y)
	c.pdf.CellFormat(textWidth, lineHeight, c.tr("TESTEMUNHAS:"), "", 0, "L", false, 0, "")
	c.y += 10

	c.pdf.SetFont("Arial", "", 10)
	for i := 0; i < 2; i++ {
		c.pdf.SetXY(marginLeft, c.y)
		c.pdf.CellFormat(textWidth, lineHeight, c.tr("Nome: ______________________________________ CPF: ____________________"), "", 0, "L", false, 0, "")
		c.y += 12
	}
}

// output renders the PDF into a byte slice.
func (c *composer) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
