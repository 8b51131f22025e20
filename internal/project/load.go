package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/XS227/StreamerSite/internal/config"
	"github.com/XS227/StreamerSite/internal/model"
)

const (
	DefaultMetaPath     = "projects/default/project.json"
	DefaultTemplatePath = "projects/default/template"

	// FallbackPageFile is shown when the project metadata cannot be used.
	FallbackPageFile = "./projects/default/template/index.html"
)

var errNoPages = errors.New("project metadata lists no pages")

// Paths locates the two editor configuration documents.
type Paths struct {
	Config string
	Layers string
}

// LoadConfig fetches the editor config and layers documents concurrently.
// Both must succeed; a failure means no page can be rendered.
func LoadConfig(ctx context.Context, f Fetcher, paths Paths) (*config.Editor, *config.Layers, error) {
	var cfgData, layersData []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := f.Fetch(gctx, DocumentPath(paths.Config))
		cfgData = data
		return err
	})
	g.Go(func() error {
		data, err := f.Fetch(gctx, DocumentPath(paths.Layers))
		layersData = data
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("loading editor config: %w", err)
	}

	cfg, err := config.ParseEditor(cfgData)
	if err != nil {
		return nil, nil, err
	}
	layers, err := config.ParseLayers(layersData)
	if err != nil {
		return nil, nil, err
	}
	return cfg, layers, nil
}

// Load reads the project-metadata document named by cfg. It never returns a
// pageless project: any fetch or decode problem is logged and replaced by
// Fallback.
func Load(ctx context.Context, f Fetcher, cfg *config.Editor, log hclog.Logger) *model.Project {
	metaPath := cfg.ProjectMeta
	if metaPath == "" {
		metaPath = DefaultMetaPath
	}
	metaPath = DocumentPath(metaPath)

	meta, err := fetchMeta(ctx, f, metaPath)
	if err != nil {
		log.Error("unable to load project meta, using default page", "path", metaPath, "error", err)
		return Fallback(cfg)
	}

	p := FromMeta(meta, cfg)
	log.Debug("project loaded", "name", p.Name, "template", p.TemplatePath, "pages", len(p.Pages))
	return p
}

func fetchMeta(ctx context.Context, f Fetcher, metaPath string) (*model.ProjectMeta, error) {
	data, err := f.Fetch(ctx, metaPath)
	if err != nil {
		return nil, err
	}
	var meta model.ProjectMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", metaPath, err)
	}
	if len(meta.Pages) == 0 {
		return nil, errNoPages
	}
	return &meta, nil
}

// FromMeta resolves every page record against the template base path.
func FromMeta(meta *model.ProjectMeta, cfg *config.Editor) *model.Project {
	templatePath := meta.TemplatePath
	if templatePath == "" {
		templatePath = cfg.DefaultProject
	}
	if templatePath == "" {
		templatePath = DefaultTemplatePath
	}
	base := NormalizeTemplateBase(templatePath)
	root := ProjectRoot(base)

	p := &model.Project{
		Name:         meta.Name,
		TemplatePath: base,
		Pages:        make([]model.Page, 0, len(meta.Pages)),
	}
	if p.Name == "" {
		p.Name = cfg.ProjectName
	}

	for _, rec := range meta.Pages {
		page := model.Page{
			ID:     rec.ID,
			Title:  rec.Title,
			File:   Join(base, rec.File),
			IsHome: rec.IsHome,
		}
		if rec.Preview != "" {
			page.Preview = Join(root, rec.Preview)
		}
		if page.ID == "" {
			page.ID = baseName(rec.File)
		}
		if page.Title == "" {
			page.Title = titleFromFile(rec.File)
		}
		p.Pages = append(p.Pages, page)
	}
	return p
}

// Fallback is the single-page project used when metadata is unusable. Its
// page file is fixed; the template path follows the configured default.
func Fallback(cfg *config.Editor) *model.Project {
	templatePath := cfg.DefaultProject
	if templatePath == "" {
		templatePath = DefaultTemplatePath
	}
	return &model.Project{
		Name:         cfg.ProjectName,
		TemplatePath: NormalizeTemplateBase(templatePath),
		Pages: []model.Page{{
			ID:     "index",
			Title:  "Home",
			File:   FallbackPageFile,
			IsHome: true,
		}},
		Fallback: true,
	}
}

func baseName(file string) string {
	name := path.Base(file)
	return strings.TrimSuffix(name, path.Ext(name))
}

func titleFromFile(file string) string {
	name := strings.ReplaceAll(strings.ReplaceAll(baseName(file), "-", " "), "_", " ")
	return cases.Title(language.English).String(name)
}
