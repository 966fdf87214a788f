package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"travel_reco/internal/adapters/observability"
	"travel_reco/internal/app"
	"travel_reco/internal/domain"
)

type Handlers struct {
	Q               *app.QueryService
	PlaceholderBase string
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type searchResponse struct {
	Keyword  string        `json:"keyword"`
	Sections []sectionJSON `json:"sections"`
	Message  string        `json:"message,omitempty"`
}

type sectionJSON struct {
	Category domain.Category `json:"category"`
	Title    string          `json:"title"`
	Items    []cardJSON      `json:"items"`
}

type cardJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)
	s.mux.Get("/", h.page)
	s.mux.Get("/reset", h.reset)

	s.mux.Route("/v1", func(r chi.Router) {
		r.Use(CORS(s.opts.CORSOrigins))
		r.Use(RateLimit(s.opts.SearchRPS))
		r.Get("/search", h.search)
		r.Get("/catalog", h.catalog)
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSONWithETag(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "encode response failed")
		return
	}
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// loadErrorMessage is the single line shown in the panel after a failed load.
func loadErrorMessage(err error) string {
	reason := err
	var lerr *domain.LoadError
	if errors.As(err, &lerr) {
		reason = lerr.Err
	}
	return "Error loading data: " + reason.Error()
}

func observeResults(res domain.Results) {
	observability.ObserveSearch(string(domain.CategoryCountry), len(res.Countries))
	observability.ObserveSearch(string(domain.CategoryCity), len(res.Cities))
	observability.ObserveSearch(string(domain.CategoryTemple), len(res.Temples))
	observability.ObserveSearch(string(domain.CategoryBeach), len(res.Beaches))
}

// ---- HTML ----

func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	kw := strings.TrimSpace(r.URL.Query().Get("q"))
	data := pageData{Keyword: kw}

	if kw == "" {
		if err := h.Q.Session().Err(); err != nil {
			data.Panel.Error = loadErrorMessage(err)
		}
		renderPage(w, http.StatusOK, data)
		return
	}

	res, err := h.Q.Search(r.Context(), kw)
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		// nothing to search; the panel stays empty
	case err != nil:
		log.Error().Err(err).Str("keyword", kw).Msg("search failed")
	default:
		observeResults(res)
		data.Panel = buildPanel(res, h.PlaceholderBase)
	}
	renderPage(w, http.StatusOK, data)
}

func (h *Handlers) reset(w http.ResponseWriter, r *http.Request) {
	renderPage(w, http.StatusOK, pageData{})
}

// ---- probes ----

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.Q.Session().Err(); err != nil {
		http.Error(w, loadErrorMessage(err), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// ---- JSON API ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	kw := strings.TrimSpace(r.URL.Query().Get("q"))
	if kw == "" {
		writeProblem(w, http.StatusBadRequest, "Missing keyword", "query parameter q is required")
		return
	}

	res, err := h.Q.Search(r.Context(), kw)
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable", loadErrorMessage(h.Q.Session().Err()))
		return
	}
	if err != nil {
		log.Error().Err(err).Str("keyword", kw).Msg("search failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "search failed")
		return
	}
	observeResults(res)

	out := searchResponse{Keyword: kw, Sections: []sectionJSON{}}
	for _, sec := range app.Sections(res) {
		sj := sectionJSON{Category: sec.Category, Title: sec.Title, Items: make([]cardJSON, 0, len(sec.Items))}
		for _, it := range sec.Items {
			sj.Items = append(sj.Items, cardJSON{
				Name:        it.Name,
				Description: it.Description,
				Image:       app.ImageFor(it, h.PlaceholderBase),
			})
		}
		out.Sections = append(out.Sections, sj)
	}
	if app.NoMatch(res) {
		out.Message = app.NoMatchMessage
	}
	writeJSONWithETag(w, r, out)
}

func (h *Handlers) catalog(w http.ResponseWriter, r *http.Request) {
	info, ok := h.Q.Session().Info()
	if !ok {
		writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable", loadErrorMessage(h.Q.Session().Err()))
		return
	}
	writeJSONWithETag(w, r, info)
}
