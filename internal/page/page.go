// Package page renders the portfolio as a single static HTML document.
package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/dtobolski/portfolio/internal/card"
	"github.com/dtobolski/portfolio/internal/chart"
	"github.com/dtobolski/portfolio/internal/config"
	"github.com/dtobolski/portfolio/internal/document"
	"github.com/dtobolski/portfolio/internal/listview"
	"github.com/dtobolski/portfolio/internal/portfolio"
	"github.com/dtobolski/portfolio/internal/record"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"number": card.FormatNumber,
		"selected": func(current, option string) bool {
			return current == option
		},
	}
	compiledTemplate = template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
	template.Must(compiledTemplate.New("error").Parse(errorTemplate))
}

// Options configures rendering.
type Options struct {
	// Theme is light or dark; anything else renders light.
	Theme string

	// ChartKey opens the chart for that card. Empty leaves the panel closed.
	ChartKey string
}

type listData struct {
	ID      string
	Title   string
	Kind    listview.Kind
	State   listview.State
	Options listview.Options
	Items   []record.Record
	Total   int
}

type pageData struct {
	Theme        string
	Profile      *document.Profile
	GeneratedOn  string
	Cards        []card.Card
	Chart        *chart.Chart
	Publications listData
	Conferences  listData
}

type errorData struct {
	Theme   string
	Message string
}

// Render writes the full page for p. The chart for opts.ChartKey is opened
// on p's panel before rendering.
func Render(w io.Writer, p *portfolio.Portfolio, opts Options) error {
	if p == nil {
		return fmt.Errorf("portfolio cannot be nil")
	}

	if opts.ChartKey != "" {
		if _, err := p.OpenChart(opts.ChartKey); err != nil {
			return err
		}
	}

	data := pageData{
		Theme:       themeClass(opts.Theme),
		Profile:     p.Profile,
		GeneratedOn: p.Summary.GeneratedOn,
		Cards:       p.Cards,
		Chart:       p.Chart.Current(),
		Publications: listData{
			ID:      "publications",
			Title:   "Publications",
			Kind:    listview.Publications,
			State:   p.Publications.State(),
			Options: p.Publications.Options(),
			Items:   p.Publications.View(),
			Total:   p.Publications.Total(),
		},
		Conferences: listData{
			ID:      "conferences",
			Title:   "Conference contributions",
			Kind:    listview.Conferences,
			State:   p.Conferences.State(),
			Options: p.Conferences.Options(),
			Items:   p.Conferences.View(),
			Total:   p.Conferences.Total(),
		},
	}

	return execute(w, "page", data)
}

// RenderError writes the page shown when required data failed to load:
// a single error card in place of the metric grid.
func RenderError(w io.Writer, loadErr error, theme string) error {
	msg := "Unable to load portfolio data."
	if loadErr != nil {
		msg = fmt.Sprintf("Unable to load portfolio data: %v", loadErr)
	}
	return execute(w, "error", errorData{Theme: themeClass(theme), Message: msg})
}

// execute renders into a buffer first so a template error never leaves a
// half-written document.
func execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := compiledTemplate.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func themeClass(theme string) string {
	if theme == config.ThemeDark {
		return config.ThemeDark
	}
	return config.ThemeLight
}
