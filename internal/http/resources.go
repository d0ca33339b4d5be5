package httpapi

import (
	"net/http"

	"alphinex-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

// listOptions lets signed-in callers see hidden rows and honours ?limit=.
func listOptions(r *http.Request) services.ListOptions {
	return services.ListOptions{
		IncludeHidden: isAuthenticated(r),
		Limit:         services.ParseLimit(r.URL.Query().Get("limit")),
	}
}

func idParam(r *http.Request) string {
	return chi.URLParam(r, "id")
}

func (s *Server) deleted(w http.ResponseWriter, r *http.Request, err error) {
	s.reply(w, r, http.StatusOK, SuccessResponse{Success: true}, err)
}

// Team

func (s *Server) ListTeam(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListTeamMembers(r.Context(), s.DB, listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

func (s *Server) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetTeamMember(r.Context(), s.DB, idParam(r))
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var in services.TeamMemberInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.CreateTeamMember(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	var in services.TeamMemberInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateTeamMember(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteTeamMember(r.Context(), s.DB, idParam(r)))
}

// Testimonials

func (s *Server) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListTestimonials(r.Context(), s.DB, listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

func (s *Server) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetTestimonial(r.Context(), s.DB, idParam(r), isAuthenticated(r))
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in services.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.CreateTestimonial(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	var in services.TestimonialInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateTestimonial(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteTestimonial(r.Context(), s.DB, idParam(r)))
}

// Projects

func (s *Server) ListProjects(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListProjects(r.Context(), s.DB, listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

func (s *Server) GetProject(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetProject(r.Context(), s.DB, idParam(r), isAuthenticated(r))
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in services.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.CreateProject(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in services.ProjectInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateProject(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteProject(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteProject(r.Context(), s.DB, idParam(r)))
}

// Contact emails

func (s *Server) ListContactEmails(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListContactEmails(r.Context(), s.DB, listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

func (s *Server) GetContactEmail(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetContactEmail(r.Context(), s.DB, idParam(r), true)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) CreateContactEmail(w http.ResponseWriter, r *http.Request) {
	var in services.ContactEmailInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.CreateContactEmail(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateContactEmail(w http.ResponseWriter, r *http.Request) {
	var in services.ContactEmailInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateContactEmail(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteContactEmail(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteContactEmail(r.Context(), s.DB, idParam(r)))
}
