package model

// Page identifies one navigable document of a project.
type Page struct {
	ID      string `json:"id" yaml:"id"`
	Title   string `json:"title" yaml:"title"`
	File    string `json:"file" yaml:"file"`                           // resolved against the application root
	Preview string `json:"preview,omitempty" yaml:"preview,omitempty"` // resolved against the project root
	IsHome  bool   `json:"isHome,omitempty" yaml:"isHome,omitempty"`
}

// Label is the page list entry text.
func (p Page) Label() string {
	if p.IsHome {
		return p.Title + " (home)"
	}
	return p.Title
}

// Project is the single active project of an editor session.
type Project struct {
	Name         string `json:"name" yaml:"name"`
	TemplatePath string `json:"templatePath" yaml:"templatePath"`
	Pages        []Page `json:"pages" yaml:"pages"`

	// Fallback is set when the metadata document could not be used and
	// Pages holds the synthetic home page.
	Fallback bool `json:"fallback,omitempty" yaml:"fallback,omitempty"`
}

// Page returns the page with the given id.
func (p *Project) Page(id string) (Page, bool) {
	for _, page := range p.Pages {
		if page.ID == id {
			return page, true
		}
	}
	return Page{}, false
}

// Home returns the first page carrying the home flag, or the first page.
func (p *Project) Home() (Page, bool) {
	for _, page := range p.Pages {
		if page.IsHome {
			return page, true
		}
	}
	if len(p.Pages) > 0 {
		return p.Pages[0], true
	}
	return Page{}, false
}
