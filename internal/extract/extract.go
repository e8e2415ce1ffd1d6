// Package extract provides page-level text extraction for PDF documents.
package extract

import (
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/ledongthuc/pdf"
)

// Document is an opened PDF whose pages can be read one at a time.
type Document interface {
	// NumPage returns the number of pages; pages are numbered from 1.
	// A page tree that cannot be resolved is an error, not zero pages.
	NumPage() (int, error)
	// PageText returns the extracted text of page n.
	PageText(n int) (string, error)
	Close() error
}

// Opener opens documents stored on a filesystem.
type Opener interface {
	Open(fsys billy.Filesystem, path string) (Document, error)
}

// PDFOpener opens documents with github.com/ledongthuc/pdf.
type PDFOpener struct{}

// NewPDFOpener returns an Opener backed by the PDF parser.
func NewPDFOpener() *PDFOpener {
	return &PDFOpener{}
}

// Open parses the cross-reference table and trailer of path. The parser
// reports some malformed input by panicking; those panics come back as
// *ExtractError.
func (o *PDFOpener) Open(fsys billy.Filesystem, path string) (doc Document, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &ExtractError{Path: path, Op: "open", Cause: err}
	}

	info, err := fsys.Stat(path)
	if err != nil {
		_ = f.Close()
		return nil, &ExtractError{Path: path, Op: "stat", Cause: err}
	}

	defer func() {
		if r := recover(); r != nil {
			_ = f.Close()
			doc = nil
			err = &ExtractError{Path: path, Op: "parse", Cause: panicError(r)}
		}
	}()

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		_ = f.Close()
		return nil, &ExtractError{Path: path, Op: "parse", Cause: err}
	}

	return &pdfDocument{path: path, file: f, reader: reader}, nil
}

type pdfDocument struct {
	path   string
	file   billy.File
	reader *pdf.Reader
}

func (d *pdfDocument) NumPage() (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
			err = &ExtractError{Path: d.path, Op: "page count", Cause: panicError(r)}
		}
	}()
	return d.reader.NumPage(), nil
}

func (d *pdfDocument) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractError{Path: d.path, Op: fmt.Sprintf("page %d", n), Cause: panicError(r)}
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}

	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", &ExtractError{Path: d.path, Op: fmt.Sprintf("page %d", n), Cause: err}
	}
	return text, nil
}

func (d *pdfDocument) Close() error {
	return d.file.Close()
}

// panicError converts a recovered value into an error.
func panicError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
