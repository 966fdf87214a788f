package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

//go:embed templates/*.html
var tmplFS embed.FS

var indexTmpl = template.Must(template.ParseFS(tmplFS, "templates/index.html"))

type pageData struct {
	Keyword string
	Panel   panelView
}

// panelView is the results container. At most one of Error, Message or
// Sections is set; the zero value renders an empty panel.
type panelView struct {
	Error    string
	Message  string
	Sections []sectionView
}

type sectionView struct {
	Title string
	Cards []cardView
}

type cardView struct {
	Image       string
	Title       string
	Description string
}

func buildPanel(res domain.Results, placeholderBase string) panelView {
	if app.NoMatch(res) {
		return panelView{Message: app.NoMatchMessage}
	}
	var p panelView
	for _, sec := range app.Sections(res) {
		sv := sectionView{Title: sec.Title, Cards: make([]cardView, 0, len(sec.Items))}
		for _, it := range sec.Items {
			sv.Cards = append(sv.Cards, cardView{
				Image:       app.ImageFor(it, placeholderBase),
				Title:       it.Name,
				Description: it.Description,
			})
		}
		p.Sections = append(p.Sections, sv)
	}
	return p
}

// renderPage executes into a buffer first so a template error never leaves
// a half-written page.
func renderPage(w http.ResponseWriter, status int, data pageData) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("render page failed")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error().Err(err).Msg("failed to write page")
	}
}
