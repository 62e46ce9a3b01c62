package pdfdoc

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// Document is the page-level view of a loaded PDF the pipeline needs.
// Pages are numbered from 1.
type Document interface {
	NumPages() int
	PageText(n int) (string, error)
	Close() error
}

// Loader opens a PDF file.
type Loader interface {
	Load(path string) (Document, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (Document, error)

func (f LoaderFunc) Load(path string) (Document, error) { return f(path) }

// LedongthucLoader loads documents with github.com/ledongthuc/pdf.
type LedongthucLoader struct{}

func (LedongthucLoader) Load(path string) (Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &ledongthucDocument{file: f, reader: r}, nil
}

type ledongthucDocument struct {
	file   *os.File
	reader *pdf.Reader
}

func (d *ledongthucDocument) NumPages() int { return d.reader.NumPage() }

func (d *ledongthucDocument) PageText(n int) (string, error) {
	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing page object", n)
	}
	// A page without a content stream is blank, not broken.
	if page.V.Key("Contents").Kind() == pdf.Null {
		return "", nil
	}
	return page.GetPlainText(nil)
}

func (d *ledongthucDocument) Close() error { return d.file.Close() }
