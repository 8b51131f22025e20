package model

// PageRecord is a page entry as written in the project-metadata document.
// File and Preview are relative to the template base and project root.
type PageRecord struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	File    string `json:"file"`
	IsHome  bool   `json:"isHome,omitempty"`
	Preview string `json:"preview,omitempty"`
}

// ProjectMeta is the project-metadata document (project.json).
type ProjectMeta struct {
	Name         string       `json:"name"`
	TemplatePath string       `json:"templatePath"`
	Pages        []PageRecord `json:"pages"`
}
