package pdfdoc

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePage struct {
	text  string
	err   error
	panic bool
}

type fakeDoc struct {
	pages   []fakePage
	visited []int
	closed  bool
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) PageText(n int) (string, error) {
	d.visited = append(d.visited, n)
	p := d.pages[n-1]
	if p.panic {
		panic("malformed content stream")
	}
	return p.text, p.err
}

func (d *fakeDoc) Close() error {
	d.closed = true
	return nil
}

func newTestExtractor(doc *fakeDoc) *Extractor {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewExtractor(log, LoaderFunc(func(string) (Document, error) { return doc, nil }))
}

func TestExtract(t *testing.T) {
	pdfPath := writeFile(t, "doc.pdf", 16)

	tests := []struct {
		name    string
		pages   []fakePage
		want    string
		wantErr ErrorKind
	}{
		{
			name:  "joins pages in order",
			pages: []fakePage{{text: "Page one\ntext"}, {text: "  Page two  "}},
			want:  "Page one text Page two",
		},
		{
			name:    "no pages",
			pages:   []fakePage{},
			wantErr: KindNoPages,
		},
		{
			name:  "failing pages are skipped",
			pages: []fakePage{{err: errors.New("bad xref")}, {text: "survivor"}, {panic: true}, {text: "last"}},
			want:  "survivor last",
		},
		{
			name:    "whitespace only",
			pages:   []fakePage{{text: " \n "}, {text: "\t"}},
			wantErr: KindNoReadableText,
		},
		{
			name:    "every page fails",
			pages:   []fakePage{{err: errors.New("boom")}, {panic: true}},
			wantErr: KindNoReadableText,
		},
		{
			name:    "control noise only",
			pages:   []fakePage{{text: "\x00\x01\x02"}},
			wantErr: KindNoReadableText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &fakeDoc{pages: tt.pages}
			got, err := newTestExtractor(doc).Extract(pdfPath)
			if tt.wantErr != 0 {
				require.Error(t, err)
				assert.True(t, IsKind(err, tt.wantErr), "got %v", err)
				assert.Empty(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.True(t, doc.closed)
		})
	}
}

func TestExtractValidationRunsFirst(t *testing.T) {
	loaded := false
	e := NewExtractor(nil, LoaderFunc(func(string) (Document, error) {
		loaded = true
		return &fakeDoc{}, nil
	}))

	_, err := e.Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.True(t, IsKind(err, KindNotFound))

	_, err = e.Extract(writeFile(t, "doc.txt", 4))
	assert.True(t, IsKind(err, KindNotAPdf))

	assert.False(t, loaded)
}

func TestExtractLoadFailure(t *testing.T) {
	pdfPath := writeFile(t, "doc.pdf", 16)
	e := NewExtractor(nil, LoaderFunc(func(string) (Document, error) {
		return nil, errors.New("malformed PDF: missing trailer")
	}))
	_, err := e.Extract(pdfPath)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindLoad))
	assert.Equal(t, "Failed to load PDF: malformed PDF: missing trailer", err.Error())

	panicky := NewExtractor(nil, LoaderFunc(func(string) (Document, error) {
		panic("unexpected EOF")
	}))
	_, err = panicky.Extract(pdfPath)
	assert.True(t, IsKind(err, KindLoad))
}

func TestInfo(t *testing.T) {
	pdfPath := writeFile(t, "Quarterly Report.pdf", 16)

	doc := &fakeDoc{pages: []fakePage{{text: ""}, {text: "content"}, {text: "more"}}}
	info, err := newTestExtractor(doc).Info(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, Info{PageCount: 3, Title: "Quarterly Report", HasText: true}, info)
	assert.Equal(t, []int{1, 2}, doc.visited)
	assert.True(t, doc.closed)
}

func TestInfoProbesFirstThreePagesOnly(t *testing.T) {
	pdfPath := writeFile(t, "scan.pdf", 16)
	doc := &fakeDoc{pages: []fakePage{{}, {err: errors.New("bad")}, {panic: true}, {text: "late text"}, {}}}

	info, err := newTestExtractor(doc).Info(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, 5, info.PageCount)
	assert.False(t, info.HasText)
	assert.Equal(t, []int{1, 2, 3}, doc.visited)
}

func TestInfoEmptyDocument(t *testing.T) {
	pdfPath := writeFile(t, "empty.pdf", 16)
	info, err := newTestExtractor(&fakeDoc{}).Info(pdfPath)
	require.NoError(t, err)
	assert.Equal(t, Info{PageCount: 0, Title: "empty"}, info)
}
