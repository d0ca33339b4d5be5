package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TestimonialInput struct {
	ClientName *string `json:"clientName"`
	Company    *string `json:"company"`
	Message    *string `json:"message"`
	Rating     *int    `json:"rating"`
	PhotoURL   *string `json:"photoUrl"`
	IsActive   *bool   `json:"isActive"`
	Order      *int    `json:"order"`
}

func (in TestimonialInput) apply(t *models.Testimonial) {
	if in.ClientName != nil {
		t.ClientName = *in.ClientName
	}
	if in.Company != nil {
		t.Company = *in.Company
	}
	if in.Message != nil {
		t.Message = *in.Message
	}
	if in.Rating != nil {
		t.Rating = *in.Rating
	}
	if in.PhotoURL != nil {
		t.PhotoURL = optionalText(in.PhotoURL)
	}
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if in.Order != nil {
		t.Order = *in.Order
	}
}

func validateTestimonial(t *models.Testimonial) error {
	var err error
	if t.ClientName, err = requireText("clientName", t.ClientName); err != nil {
		return err
	}
	if t.Message, err = requireText("message", t.Message); err != nil {
		return err
	}
	if t.Rating < 1 || t.Rating > 5 {
		return ErrValidation("rating", "rating must be between 1 and 5")
	}
	return nil
}

const testimonialColumns = `id, client_name, company, message, rating, photo_url, is_active, display_order, created_at, updated_at`

func ListTestimonials(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	args := []interface{}{}
	if !opts.IncludeHidden {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query, args = withLimit(query+` ORDER BY display_order ASC, created_at ASC`, args, opts.Limit)
	items := []models.Testimonial{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

// GetTestimonial loads one testimonial; inactive rows are hidden unless includeHidden.
func GetTestimonial(ctx context.Context, db *sqlx.DB, id string, includeHidden bool) (models.Testimonial, error) {
	var item models.Testimonial
	err := getOne(ctx, db, &item, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	if err != nil {
		return item, notFoundOr(err, "Testimonial not found")
	}
	if !includeHidden && !item.IsActive {
		return models.Testimonial{}, ErrNotFound("Testimonial not found")
	}
	return item, nil
}

func CreateTestimonial(ctx context.Context, db *sqlx.DB, in TestimonialInput) (models.Testimonial, error) {
	item := models.Testimonial{Rating: 5, IsActive: true}
	in.apply(&item)
	if err := validateTestimonial(&item); err != nil {
		return models.Testimonial{}, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	_, err := db.NamedExecContext(ctx, `
INSERT INTO testimonials (id, client_name, company, message, rating, photo_url, is_active, display_order, created_at, updated_at)
VALUES (:id, :client_name, :company, :message, :rating, :photo_url, :is_active, :display_order, :created_at, :updated_at)
`, item)
	if err != nil {
		return models.Testimonial{}, WrapError(err, "insert testimonial")
	}
	return GetTestimonial(ctx, db, item.ID, true)
}

func UpdateTestimonial(ctx context.Context, db *sqlx.DB, id string, in TestimonialInput) (models.Testimonial, error) {
	item, err := GetTestimonial(ctx, db, id, true)
	if err != nil {
		return models.Testimonial{}, err
	}
	in.apply(&item)
	if err := validateTestimonial(&item); err != nil {
		return models.Testimonial{}, err
	}
	item.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE testimonials
SET client_name = :client_name, company = :company, message = :message, rating = :rating, photo_url = :photo_url,
    is_active = :is_active, display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, item)
	if err != nil {
		return models.Testimonial{}, WrapError(err, "update testimonial")
	}
	return GetTestimonial(ctx, db, id, true)
}

func DeleteTestimonial(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "testimonials", id, "Testimonial not found")
}
