// Package pdfdoc validates PDF files and turns them into cleaned text ready
// for an LLM prompt.
package pdfdoc

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"docsum/internal/textclean"
)

// textProbePages bounds how many leading pages Info inspects for text.
const textProbePages = 3

// Info describes a PDF without extracting its full text.
type Info struct {
	PageCount int    `json:"page_count"`
	Title     string `json:"title"`
	HasText   bool   `json:"has_text"`
}

// Extractor runs the validate, load, per-page extract and clean pipeline.
type Extractor struct {
	loader Loader
	log    *slog.Logger
}

// NewExtractor returns an Extractor. A nil loader means ledongthuc/pdf.
func NewExtractor(log *slog.Logger, loader Loader) *Extractor {
	if loader == nil {
		loader = LedongthucLoader{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{loader: loader, log: log}
}

// Extract returns the cleaned text of every readable page. Pages that fail to
// extract are logged and skipped; the document only fails when nothing
// readable is left.
func (e *Extractor) Extract(path string) (string, error) {
	if err := Validate(path); err != nil {
		return "", err
	}
	doc, err := e.load(path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	total := doc.NumPages()
	if total == 0 {
		return "", newError(KindNoPages, "PDF contains no pages", nil)
	}

	var sb strings.Builder
	failed := 0
	for n := 1; n <= total; n++ {
		text, err := pageText(doc, n)
		if err != nil {
			failed++
			e.log.Warn("failed to extract page text", "path", path, "page", n, "err", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	cleaned := textclean.Clean(sb.String())
	e.log.Debug("pdf extracted", "path", path, "pages", total, "failed_pages", failed, "chars", len(cleaned))
	if strings.TrimSpace(cleaned) == "" {
		return "", newError(KindNoReadableText,
			"No readable text found in PDF. This might be an image-based PDF or contain only graphics.", nil)
	}
	return cleaned, nil
}

// Info reports page count, a title taken from the file name and whether any
// of the first three pages has extractable text. Text that only appears later
// in the document is not detected.
func (e *Extractor) Info(path string) (Info, error) {
	if err := Validate(path); err != nil {
		return Info{}, err
	}
	doc, err := e.load(path)
	if err != nil {
		return Info{}, err
	}
	defer doc.Close()

	total := doc.NumPages()
	info := Info{
		PageCount: total,
		Title:     titleFromPath(path),
	}
	for n := 1; n <= total && n <= textProbePages; n++ {
		text, err := pageText(doc, n)
		if err == nil && strings.TrimSpace(text) != "" {
			info.HasText = true
			break
		}
	}
	return info, nil
}

func (e *Extractor) load(path string) (doc Document, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, loadError(fmt.Errorf("%v", rec))
		}
	}()
	doc, err = e.loader.Load(path)
	if err != nil {
		return nil, loadError(err)
	}
	return doc, nil
}

// pageText isolates a single page so that a parser panic on one corrupt page
// is reported as that page's error.
func pageText(doc Document, n int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", n, rec)
		}
	}()
	return doc.PageText(n)
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" || stem == "." || stem == string(filepath.Separator) {
		return "Unknown"
	}
	return stem
}
