package httpapi

import (
	"net/http"

	"alphinex-backend-go/internal/models"
	"alphinex-backend-go/internal/services"

	"go.uber.org/zap"
)

// JobResponse adds the requirement lines the careers page renders as a list.
type JobResponse struct {
	models.Job
	RequirementList []string `json:"requirementList"`
}

func newJobResponse(job models.Job) JobResponse {
	return JobResponse{Job: job, RequirementList: services.RequirementLines(job.Requirements)}
}

func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := services.ListJobs(r.Context(), s.DB, listOptions(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	items := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		items = append(items, newJobResponse(job))
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := services.GetJob(r.Context(), s.DB, idParam(r), isAuthenticated(r))
	s.reply(w, r, http.StatusOK, newJobResponse(job), err)
}

func (s *Server) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in services.JobInput
	if !decodeJSON(w, r, &in) {
		return
	}
	job, err := services.CreateJob(r.Context(), s.DB, in)
	s.reply(w, r, http.StatusOK, newJobResponse(job), err)
}

func (s *Server) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var in services.JobInput
	if !decodeJSON(w, r, &in) {
		return
	}
	job, err := services.UpdateJob(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, newJobResponse(job), err)
}

func (s *Server) DeleteJob(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteJob(r.Context(), s.DB, idParam(r)))
}

func (s *Server) ListApplications(w http.ResponseWriter, r *http.Request) {
	items, err := services.ListApplications(r.Context(), s.DB, r.URL.Query().Get("jobId"), listOptions(r))
	s.reply(w, r, http.StatusOK, items, err)
}

func (s *Server) GetApplication(w http.ResponseWriter, r *http.Request) {
	item, err := services.GetApplication(r.Context(), s.DB, idParam(r))
	s.reply(w, r, http.StatusOK, item, err)
}

// SubmitApplication is the public careers form endpoint.
func (s *Server) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var in services.ApplicationInput
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.SubmitApplication(r.Context(), s.DB, in)
	if err == nil {
		s.Logger.Info("application received", zap.String("applicationId", item.ID), zap.String("jobId", item.JobID))
	}
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	var in services.ApplicationUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	item, err := services.UpdateApplication(r.Context(), s.DB, idParam(r), in)
	s.reply(w, r, http.StatusOK, item, err)
}

func (s *Server) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteApplication(r.Context(), s.DB, idParam(r)))
}
