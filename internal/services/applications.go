package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ApplicationInput is the public submission payload.
type ApplicationInput struct {
	JobID       string  `json:"jobId"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	Portfolio   *string `json:"portfolio"`
	LinkedInURL *string `json:"linkedinUrl"`
	CVURL       string  `json:"cvUrl"`
	CoverLetter *string `json:"coverLetter"`
}

// ApplicationUpdate is the admin edit payload.
type ApplicationUpdate struct {
	Status      *string `json:"status"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Portfolio   *string `json:"portfolio"`
	LinkedInURL *string `json:"linkedinUrl"`
	CVURL       *string `json:"cvUrl"`
	CoverLetter *string `json:"coverLetter"`
}

func validateApplication(a *models.Application) error {
	var err error
	if a.JobID, err = requireText("jobId", a.JobID); err != nil {
		return err
	}
	if a.Name, err = requireText("name", a.Name); err != nil {
		return err
	}
	if a.Email, err = requireEmail("email", a.Email); err != nil {
		return err
	}
	if a.Phone, err = requireText("phone", a.Phone); err != nil {
		return err
	}
	if a.CVURL, err = requireText("cvUrl", a.CVURL); err != nil {
		return err
	}
	if a.Status, err = oneOf("status", a.Status, models.ApplicationStatuses); err != nil {
		return err
	}
	return nil
}

const applicationSelect = `
SELECT a.id, a.job_id, a.name, a.email, a.phone, a.portfolio, a.linkedin_url, a.cv_url, a.cover_letter,
       a.status, a.created_at, a.updated_at,
       j.title AS "job.title", j.department AS "job.department"
FROM applications a
JOIN jobs j ON j.id = a.job_id`

// ListApplications returns applications newest first, optionally for one job.
func ListApplications(ctx context.Context, db *sqlx.DB, jobID string, opts ListOptions) ([]models.Application, error) {
	query := applicationSelect
	args := []interface{}{}
	if jobID != "" {
		query += ` WHERE a.job_id = ?`
		args = append(args, jobID)
	}
	query, args = withLimit(query+` ORDER BY a.created_at DESC`, args, opts.Limit)
	items := []models.Application{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

func GetApplication(ctx context.Context, db *sqlx.DB, id string) (models.Application, error) {
	var item models.Application
	err := getOne(ctx, db, &item, applicationSelect+` WHERE a.id = ?`, id)
	return item, notFoundOr(err, "Application not found")
}

// SubmitApplication records a public job application with status pending.
func SubmitApplication(ctx context.Context, db *sqlx.DB, in ApplicationInput) (models.Application, error) {
	item := models.Application{
		JobID:       in.JobID,
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Portfolio:   optionalText(in.Portfolio),
		LinkedInURL: optionalText(in.LinkedInURL),
		CVURL:       in.CVURL,
		CoverLetter: optionalText(in.CoverLetter),
		Status:      models.ApplicationPending,
	}
	if err := validateApplication(&item); err != nil {
		return models.Application{}, err
	}
	found, err := exists(ctx, db, `SELECT 1 FROM jobs WHERE id = ?`, item.JobID)
	if err != nil {
		return models.Application{}, err
	}
	if !found {
		return models.Application{}, ErrNotFoundField("jobId", "Job not found")
	}
	item.ID = uuid.NewString()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	_, err = db.NamedExecContext(ctx, `
INSERT INTO applications (id, job_id, name, email, phone, portfolio, linkedin_url, cv_url, cover_letter, status, created_at, updated_at)
VALUES (:id, :job_id, :name, :email, :phone, :portfolio, :linkedin_url, :cv_url, :cover_letter, :status, :created_at, :updated_at)
`, item)
	if err != nil {
		return models.Application{}, WrapError(err, "insert application")
	}
	return GetApplication(ctx, db, item.ID)
}

func UpdateApplication(ctx context.Context, db *sqlx.DB, id string, in ApplicationUpdate) (models.Application, error) {
	item, err := GetApplication(ctx, db, id)
	if err != nil {
		return models.Application{}, err
	}
	if in.Status != nil {
		item.Status = *in.Status
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Email != nil {
		item.Email = *in.Email
	}
	if in.Phone != nil {
		item.Phone = *in.Phone
	}
	if in.Portfolio != nil {
		item.Portfolio = optionalText(in.Portfolio)
	}
	if in.LinkedInURL != nil {
		item.LinkedInURL = optionalText(in.LinkedInURL)
	}
	if in.CVURL != nil {
		item.CVURL = *in.CVURL
	}
	if in.CoverLetter != nil {
		item.CoverLetter = optionalText(in.CoverLetter)
	}
	if err := validateApplication(&item); err != nil {
		return models.Application{}, err
	}
	item.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE applications
SET name = :name, email = :email, phone = :phone, portfolio = :portfolio, linkedin_url = :linkedin_url,
    cv_url = :cv_url, cover_letter = :cover_letter, status = :status, updated_at = :updated_at
WHERE id = :id
`, item)
	if err != nil {
		return models.Application{}, WrapError(err, "update application")
	}
	return GetApplication(ctx, db, id)
}

func DeleteApplication(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "applications", id, "Application not found")
}
