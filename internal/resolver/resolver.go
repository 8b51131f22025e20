// Package resolver picks the page to open when the editor starts or is
// deep-linked to a page.
package resolver

import (
	"strings"

	"github.com/XS227/StreamerSite/internal/model"
)

// ResolveInitialPage returns the page whose file path ends with the
// requested identifier. A single leading "/" is ignored. With no
// identifier, or no match, the first page wins. ok is false only when
// pages is empty.
//
// Matching is by suffix, so "a/index.html" and "b/index.html" both match
// "index.html"; the earlier page in the sequence is chosen.
func ResolveInitialPage(pages []model.Page, requested string) (model.Page, bool) {
	if len(pages) == 0 {
		return model.Page{}, false
	}
	if requested == "" {
		return pages[0], true
	}

	want := strings.TrimPrefix(requested, "/")
	for _, page := range pages {
		if strings.HasSuffix(page.File, want) || strings.HasSuffix(page.File, "/"+want) {
			return page, true
		}
	}
	return pages[0], true
}
