package services

import (
	"context"
	"strings"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type JobInput struct {
	Title        *string `json:"title"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Type         *string `json:"type"`
	Experience   *string `json:"experience"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Salary       *string `json:"salary"`
	IsActive     *bool   `json:"isActive"`
	Order        *int    `json:"order"`
}

func (in JobInput) apply(j *models.Job) {
	if in.Title != nil {
		j.Title = *in.Title
	}
	if in.Department != nil {
		j.Department = *in.Department
	}
	if in.Location != nil {
		j.Location = *in.Location
	}
	if in.Type != nil {
		j.Type = *in.Type
	}
	if in.Experience != nil {
		j.Experience = *in.Experience
	}
	if in.Description != nil {
		j.Description = *in.Description
	}
	if in.Requirements != nil {
		j.Requirements = strings.TrimSpace(*in.Requirements)
	}
	if in.Salary != nil {
		j.Salary = optionalText(in.Salary)
	}
	if in.IsActive != nil {
		j.IsActive = *in.IsActive
	}
	if in.Order != nil {
		j.Order = *in.Order
	}
}

func validateJob(j *models.Job) error {
	var err error
	if j.Title, err = requireText("title", j.Title); err != nil {
		return err
	}
	if j.Department, err = requireText("department", j.Department); err != nil {
		return err
	}
	if j.Location, err = requireText("location", j.Location); err != nil {
		return err
	}
	if j.Type, err = oneOf("type", j.Type, models.JobTypes); err != nil {
		return err
	}
	if j.Experience, err = requireText("experience", j.Experience); err != nil {
		return err
	}
	if j.Description, err = requireText("description", j.Description); err != nil {
		return err
	}
	return nil
}

// RequirementLines splits the newline-delimited requirements into items.
func RequirementLines(requirements string) []string {
	return cleanList(strings.Split(strings.ReplaceAll(requirements, "\r\n", "\n"), "\n"))
}

const jobSelect = `
SELECT j.id, j.title, j.department, j.location, j.type, j.experience, j.description, j.requirements, j.salary,
       j.is_active, j.display_order, j.created_at, j.updated_at,
       (SELECT count(*) FROM applications a WHERE a.job_id = j.id) AS application_count
FROM jobs j`

func ListJobs(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.Job, error) {
	query := jobSelect
	args := []interface{}{}
	if !opts.IncludeHidden {
		query += ` WHERE j.is_active = ?`
		args = append(args, true)
	}
	query, args = withLimit(query+` ORDER BY j.display_order ASC, j.created_at ASC`, args, opts.Limit)
	items := []models.Job{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

// GetJob loads one job; inactive jobs are hidden unless includeHidden.
func GetJob(ctx context.Context, db *sqlx.DB, id string, includeHidden bool) (models.Job, error) {
	var job models.Job
	if err := getOne(ctx, db, &job, jobSelect+` WHERE j.id = ?`, id); err != nil {
		return job, notFoundOr(err, "Job not found")
	}
	if !includeHidden && !job.IsActive {
		return models.Job{}, ErrNotFound("Job not found")
	}
	return job, nil
}

func CreateJob(ctx context.Context, db *sqlx.DB, in JobInput) (models.Job, error) {
	job := models.Job{IsActive: true}
	in.apply(&job)
	if err := validateJob(&job); err != nil {
		return models.Job{}, err
	}
	job.ID = uuid.NewString()
	job.CreatedAt = now()
	job.UpdatedAt = job.CreatedAt
	_, err := db.NamedExecContext(ctx, `
INSERT INTO jobs (id, title, department, location, type, experience, description, requirements, salary, is_active, display_order, created_at, updated_at)
VALUES (:id, :title, :department, :location, :type, :experience, :description, :requirements, :salary, :is_active, :display_order, :created_at, :updated_at)
`, job)
	if err != nil {
		return models.Job{}, WrapError(err, "insert job")
	}
	return GetJob(ctx, db, job.ID, true)
}

func UpdateJob(ctx context.Context, db *sqlx.DB, id string, in JobInput) (models.Job, error) {
	job, err := GetJob(ctx, db, id, true)
	if err != nil {
		return models.Job{}, err
	}
	in.apply(&job)
	if err := validateJob(&job); err != nil {
		return models.Job{}, err
	}
	job.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE jobs
SET title = :title, department = :department, location = :location, type = :type, experience = :experience,
    description = :description, requirements = :requirements, salary = :salary, is_active = :is_active,
    display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, job)
	if err != nil {
		return models.Job{}, WrapError(err, "update job")
	}
	return GetJob(ctx, db, id, true)
}

// DeleteJob removes the job; its applications go with it (ON DELETE CASCADE).
func DeleteJob(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "jobs", id, "Job not found")
}
