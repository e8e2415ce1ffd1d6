// Package pdftest builds small, valid PDF documents for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"strings"
)

// Build returns a PDF with one page per entry in pages. Each page shows its
// text with a WinAnsi-encoded Helvetica font, one Tj per line.
func Build(pages ...string) []byte {
	return build(pages, nil)
}

// BrokenCatalog returns a PDF whose header, xref table, and trailer are well
// formed but whose xref entry for the catalog points at the pages object.
// Opening succeeds; resolving the page tree fails.
func BrokenCatalog(pages ...string) []byte {
	return build(pages, func(offsets []int) []int {
		broken := append([]int(nil), offsets...)
		broken[0] = offsets[1]
		return broken
	})
}

// build writes the document. xrefOffsets, when set, rewrites the offsets
// recorded in the xref table.
func build(pages []string, xrefOffsets func([]int) []int) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	obj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	for i, text := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		content := contentStream(text)
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	if xrefOffsets != nil {
		offsets = xrefOffsets(offsets)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\n", len(offsets)+1)
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xref)

	return buf.Bytes()
}

// Corrupt returns bytes that no PDF parser accepts.
func Corrupt() []byte {
	return []byte("this is not a pdf document, just some text pretending to be one\n")
}

// Truncated returns a PDF header followed by garbage and no trailer.
func Truncated() []byte {
	doc := Build("lost text")
	return doc[:len(doc)/2]
}

func contentStream(text string) string {
	var sb strings.Builder
	sb.WriteString("BT\n/F1 12 Tf\n72 720 Td\n14 TL\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString("T*\n")
		}
		sb.WriteString("(")
		sb.WriteString(escape(line))
		sb.WriteString(") Tj\n")
	}
	sb.WriteString("ET")
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
