package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/doxynav/internal/catalog"
	"github.com/ziadkadry99/doxynav/internal/navtree"
)

type indexEntryResponse struct {
	Position int    `json:"position"`
	Entry    string `json:"entry"`
}

type indexPageResponse struct {
	URL    string `json:"url"`
	Page   int    `json:"page"`
	Script string `json:"script"`
}

type stringResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type childrenResponse struct {
	Link       string          `json:"link"`
	Breadcrumb []string        `json:"breadcrumb"`
	Children   []*navtree.Node `json:"children"`
}

// document returns the current document, or answers 503 and returns nil.
func (s *Server) document(w http.ResponseWriter) *navtree.Document {
	if s.source != nil {
		if doc, _ := s.source.Current(); doc != nil {
			return doc
		}
	}
	writeError(w, http.StatusServiceUnavailable, "no navigation document loaded")
	return nil
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(navtree.RenderHTML(doc.Root, r.URL.Query().Get("active"), r.URL.Query().Get("base"))))
		return
	}
	writeJSON(w, http.StatusOK, doc.Root)
}

func (s *Server) handleChildren(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	q := r.URL.Query()
	if !q.Has("link") {
		writeError(w, http.StatusBadRequest, "link parameter is required")
		return
	}
	link := q.Get("link")
	n := navtree.FindByLink(doc.Root, link)
	if n == nil {
		writeError(w, http.StatusNotFound, "no node links to "+strconv.Quote(link))
		return
	}
	writeJSON(w, http.StatusOK, childrenResponse{
		Link:       link,
		Breadcrumb: navtree.Breadcrumb(doc.Root, link),
		Children:   doc.Children(n),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, doc.Index.Entries())
}

func (s *Server) handleIndexEntry(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	pos, err := strconv.Atoi(chi.URLParam(r, "pos"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "position must be an integer")
		return
	}
	entry, err := doc.Entry(pos)
	if err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indexEntryResponse{Position: pos, Entry: entry})
}

func (s *Server) handleIndexPage(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url parameter is required")
		return
	}
	page := doc.Index.PageFor(url)
	script, err := doc.Index.ScriptName(page)
	if err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indexPageResponse{URL: url, Page: page, Script: script})
}

func (s *Server) handleString(w http.ResponseWriter, r *http.Request) {
	doc := s.document(w)
	if doc == nil {
		return
	}
	key, err := navtree.ParseKey(chi.URLParam(r, "key"))
	if err != nil {
		writeNavError(w, err)
		return
	}
	value, err := doc.String(key)
	if err != nil {
		writeNavError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stringResponse{Key: key.String(), Value: value})
}

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}
	sets, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sets == nil {
		sets = []catalog.DocSet{}
	}
	writeJSON(w, http.StatusOK, sets)
}

func (s *Server) handleCatalogGet(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not configured")
		return
	}
	ds, err := s.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ds)
}

// writeNavError maps navtree lookup errors onto status codes.
func writeNavError(w http.ResponseWriter, err error) {
	var oor *navtree.OutOfRangeError
	var uk *navtree.UnknownKeyError
	switch {
	case errors.As(err, &oor), errors.As(err, &uk):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
