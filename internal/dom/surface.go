package dom

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/XS227/StreamerSite/internal/canvas"
	"github.com/XS227/StreamerSite/internal/project"
)

// FileSurface loads page documents through the same fetcher as the project
// documents. HTML files are parsed as they are; Markdown pages are rendered
// into a document first.
type FileSurface struct {
	fetcher project.Fetcher
	md      goldmark.Markdown
}

var _ canvas.Surface = (*FileSurface)(nil)

// NewFileSurface creates a surface over a local application root.
func NewFileSurface(fsys fs.FS) *FileSurface {
	return NewSurface(project.FSFetcher{FS: fsys})
}

// NewSurface creates a surface that reads page files with f.
func NewSurface(f project.Fetcher) *FileSurface {
	return &FileSurface{
		fetcher: f,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
	}
}

// Load implements canvas.Surface.
func (s *FileSurface) Load(ctx context.Context, src string) <-chan canvas.LoadResult {
	out := make(chan canvas.LoadResult, 1)
	go func() {
		doc, err := s.Open(ctx, src)
		if err != nil {
			out <- canvas.LoadResult{Err: err}
			return
		}
		out <- canvas.LoadResult{Document: doc}
	}()
	return out
}

// Open reads and parses src synchronously. Absolute URLs are other
// origins: their documents are never readable.
func (s *FileSurface) Open(ctx context.Context, src string) (*Document, error) {
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return nil, fmt.Errorf("%w: %s", canvas.ErrInaccessible, src)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := project.FSPath(strings.SplitN(src, "?", 2)[0])
	data, err := s.fetcher.Fetch(ctx, name)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", canvas.ErrInaccessible, err)
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		data, err = s.renderMarkdown(name, data)
		if err != nil {
			return nil, err
		}
	}
	return Parse(bytes.NewReader(data))
}

func (s *FileSurface) renderMarkdown(name string, data []byte) ([]byte, error) {
	var fm struct {
		Title string `yaml:"title" toml:"title" json:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		// no usable frontmatter: treat the whole file as markdown
		body = data
	}

	var content bytes.Buffer
	if err := s.md.Convert(body, &content); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	if fm.Title != "" {
		buf.WriteString("<title>" + html.EscapeString(fm.Title) + "</title>")
	}
	buf.WriteString("</head><body>\n")
	buf.Write(content.Bytes())
	buf.WriteString("</body></html>\n")
	return buf.Bytes(), nil
}
