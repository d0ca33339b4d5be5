package httpapi

import (
	"net/http"

	"alphinex-backend-go/internal/services"
)

func (s *Server) ListBlogs(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListBlogs(r.Context(), s.DB, listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

// GetBlog resolves {id} as either the blog id or its slug.
func (s *Server) GetBlog(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetBlog(r.Context(), s.DB, idParam(r), isAuthenticated(r))
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var in services.BlogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.CreateBlog(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	var in services.BlogInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateBlog(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteBlog(r.Context(), s.DB, idParam(r)))
}
