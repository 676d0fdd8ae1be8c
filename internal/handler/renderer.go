package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
)

// Renderer manages template parsing and rendering with isolated
// template sets. It supports two layouts:
//   - "auth" layout for the sign-in page
//   - "app" layout for everything behind the session
//
// Templates are organized as:
//   - layouts/auth.html, layouts/app.html - base layouts
//   - components/*.html - reusable components (shared across layouts)
//   - partials/*.html - standalone fragments (picker modals)
//   - pages/auth/*.html - auth pages (use auth layout)
//   - pages/<entity>/*.html - app pages (use app layout)
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex

	templatesDir string
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	TemplatesDir string
	Logger       *slog.Logger
	IsDev        bool
}

// entityDirs are the page subdirectories, one per list screen.
var entityDirs = []string{"leads", "properties", "staff", "calllogs", "sitevisits"}

// NewRenderer creates a new template renderer.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	r := &Renderer{
		templates:    make(map[string]*template.Template),
		logger:       cfg.Logger,
		isDev:        cfg.IsDev,
		templatesDir: cfg.TemplatesDir,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Renderer) loadTemplates() error {
	templatesDir := r.templatesDir

	var componentFiles []string
	componentsDir := filepath.Join(templatesDir, "components")
	err := filepath.WalkDir(componentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".html") {
			componentFiles = append(componentFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk components dir: %w", err)
	}

	partialFiles, err := filepath.Glob(filepath.Join(templatesDir, "partials", "*.html"))
	if err != nil {
		return fmt.Errorf("failed to glob partials: %w", err)
	}

	// Each partial is also a standalone template set so it can render
	// without a layout.
	for _, partial := range partialFiles {
		partialTmpl, err := template.New("").Funcs(TemplateFuncs()).ParseFiles(append([]string{partial}, componentFiles...)...)
		if err != nil {
			return fmt.Errorf("failed to parse partial %s: %w", partial, err)
		}
		name := strings.TrimSuffix(filepath.Base(partial), ".html")
		r.templates["partial/"+name] = partialTmpl
	}

	parseLayout := func(name string) (*template.Template, error) {
		layoutPath := filepath.Join(templatesDir, "layouts", name+".html")
		tmpl, err := template.New(name).Funcs(TemplateFuncs()).ParseFiles(layoutPath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s layout: %w", name, err)
		}
		if len(componentFiles) > 0 {
			if tmpl, err = tmpl.ParseFiles(componentFiles...); err != nil {
				return nil, fmt.Errorf("failed to parse components into %s layout: %w", name, err)
			}
		}
		if len(partialFiles) > 0 {
			if tmpl, err = tmpl.ParseFiles(partialFiles...); err != nil {
				return nil, fmt.Errorf("failed to parse partials into %s layout: %w", name, err)
			}
		}
		return tmpl, nil
	}

	authBaseTmpl, err := parseLayout("auth")
	if err != nil {
		return err
	}
	appBaseTmpl, err := parseLayout("app")
	if err != nil {
		return err
	}

	parsePages := func(base *template.Template, dir, prefix string) error {
		pages, err := filepath.Glob(filepath.Join(templatesDir, "pages", dir, "*.html"))
		if err != nil {
			return fmt.Errorf("failed to glob %s pages: %w", dir, err)
		}
		for _, page := range pages {
			pageTmpl, err := base.Clone()
			if err != nil {
				return fmt.Errorf("failed to clone template for %s: %w", page, err)
			}
			if pageTmpl, err = pageTmpl.ParseFiles(page); err != nil {
				return fmt.Errorf("failed to parse page %s: %w", page, err)
			}
			name := strings.TrimSuffix(filepath.Base(page), ".html")
			r.templates[prefix+name] = pageTmpl
		}
		return nil
	}

	if err := parsePages(authBaseTmpl, "auth", "auth/"); err != nil {
		return err
	}
	if err := parsePages(appBaseTmpl, "", ""); err != nil {
		return err
	}
	for _, dir := range entityDirs {
		if err := parsePages(appBaseTmpl, dir, dir+"/"); err != nil {
			return err
		}
	}

	r.logger.Info("templates loaded", "count", len(r.templates))
	return nil
}

// Reload reloads all templates from disk. Useful for development.
func (r *Renderer) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates = make(map[string]*template.Template)
	return r.loadTemplates()
}

// Render renders a template to an io.Writer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, r.baseTemplateName(name), data)
}

// RenderHTTP renders a template directly to an http.ResponseWriter,
// buffering first so a template failure does not leak half a page.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// RenderPartial renders a partial template without a layout. The
// partial file must contain {{define "name"}}...{{end}} where name
// matches the file name.
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data interface{}) {
	r.mu.RLock()
	tmpl, ok := r.templates["partial/"+name]
	r.mu.RUnlock()
	if !ok {
		r.logger.Error("partial template not found", "name", name)
		http.Error(w, "Partial not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("partial execution failed", "name", name, "error", err)
	}
}

// baseTemplateName determines which base template to execute.
func (r *Renderer) baseTemplateName(name string) string {
	if strings.HasPrefix(name, "auth/") {
		return "auth"
	}
	return "app"
}
