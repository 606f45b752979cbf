package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	texttemplate "text/template"
	"time"

	"ActionCountdown/internal/config"
	"ActionCountdown/internal/usecase"
	"ActionCountdown/internal/view/carousel"
	"ActionCountdown/internal/view/masonry"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	viewMasonry  = "masonry"
	viewCarousel = "carousel"
)

// Renderer executes the page templates for one site.
type Renderer struct {
	site  config.SiteConfig
	pages map[string]*template.Template
	css   []byte
}

type pageView struct {
	Title    string
	Base     string
	Active   string
	Day      int
	Today    time.Time
	Start    time.Time
	SettleMs int64
	Masonry  usecase.MasonryPage
	Carousel usecase.CarouselPage
}

// NewRenderer parses the embedded templates and renders the stylesheet.
func NewRenderer(site config.SiteConfig) (*Renderer, error) {
	r := &Renderer{site: site, pages: make(map[string]*template.Template, 2)}

	for _, name := range []string{viewMasonry, viewCarousel} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	css, err := renderCSS()
	if err != nil {
		return nil, err
	}
	r.css = css

	return r, nil
}

// Masonry writes the flip-card page.
func (r *Renderer) Masonry(w io.Writer, page usecase.MasonryPage) error {
	return r.execute(w, viewMasonry, pageView{
		Day:     page.CurrentDay,
		Today:   page.Today,
		Masonry: page,
	})
}

// Carousel writes the carousel page.
func (r *Renderer) Carousel(w io.Writer, page usecase.CarouselPage) error {
	return r.execute(w, viewCarousel, pageView{
		Day:      page.CurrentDay,
		Today:    page.Today,
		Carousel: page,
	})
}

// CSS is the stylesheet served as static/app.css.
func (r *Renderer) CSS() []byte {
	return r.css
}

// Static exposes the embedded static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func (r *Renderer) execute(w io.Writer, name string, view pageView) error {
	view.Title = r.site.Title
	view.Base = r.site.BasePath
	view.Active = name
	view.Start = view.Today.AddDate(0, 0, 1-view.Day)
	view.SettleMs = carousel.SettleDelay.Milliseconds()

	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "layout", view); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func renderCSS() ([]byte, error) {
	tmpl, err := texttemplate.ParseFS(templateFS, "templates/app.css.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Columns []masonry.Breakpoint
		Default carousel.Settings
		Tiers   []carousel.Tier
	}{masonry.Columns, carousel.Default, carousel.Tiers})
	if err != nil {
		return nil, fmt.Errorf("render stylesheet: %w", err)
	}
	return buf.Bytes(), nil
}
