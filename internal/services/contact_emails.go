package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ContactEmailInput struct {
	Email    *string `json:"email"`
	IsActive *bool   `json:"isActive"`
	Order    *int    `json:"order"`
}

func (in ContactEmailInput) apply(c *models.ContactEmail) {
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
}

const contactEmailColumns = `id, email, is_active, display_order, created_at, updated_at`

func ListContactEmails(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.ContactEmail, error) {
	query := `SELECT ` + contactEmailColumns + ` FROM contact_emails`
	args := []interface{}{}
	if !opts.IncludeHidden {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query, args = withLimit(query+` ORDER BY display_order ASC, created_at ASC`, args, opts.Limit)
	items := []models.ContactEmail{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

// ActiveRecipients returns the addresses that receive contact notifications.
func ActiveRecipients(ctx context.Context, db *sqlx.DB) ([]string, error) {
	items, err := ListContactEmails(ctx, db, ListOptions{})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Email)
	}
	return out, nil
}

func GetContactEmail(ctx context.Context, db *sqlx.DB, id string, includeHidden bool) (models.ContactEmail, error) {
	var item models.ContactEmail
	err := getOne(ctx, db, &item, `SELECT `+contactEmailColumns+` FROM contact_emails WHERE id = ?`, id)
	if err != nil {
		return item, notFoundOr(err, "Contact email not found")
	}
	if !includeHidden && !item.IsActive {
		return models.ContactEmail{}, ErrNotFound("Contact email not found")
	}
	return item, nil
}

func ensureEmailFree(ctx context.Context, db *sqlx.DB, email, excludeID string) error {
	taken, err := exists(ctx, db, `SELECT 1 FROM contact_emails WHERE email = ? AND id <> ?`, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrConflict("email", "Email is already registered")
	}
	return nil
}

func CreateContactEmail(ctx context.Context, db *sqlx.DB, in ContactEmailInput) (models.ContactEmail, error) {
	item := models.ContactEmail{IsActive: true}
	in.apply(&item)
	var err error
	if item.Email, err = requireEmail("email", item.Email); err != nil {
		return models.ContactEmail{}, err
	}
	item.ID = uuid.NewString()
	if err := ensureEmailFree(ctx, db, item.Email, item.ID); err != nil {
		return models.ContactEmail{}, err
	}
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	_, err = db.NamedExecContext(ctx, `
INSERT INTO contact_emails (id, email, is_active, display_order, created_at, updated_at)
VALUES (:id, :email, :is_active, :display_order, :created_at, :updated_at)
`, item)
	if err != nil {
		return models.ContactEmail{}, WrapError(err, "insert contact email")
	}
	return GetContactEmail(ctx, db, item.ID, true)
}

func UpdateContactEmail(ctx context.Context, db *sqlx.DB, id string, in ContactEmailInput) (models.ContactEmail, error) {
	item, err := GetContactEmail(ctx, db, id, true)
	if err != nil {
		return models.ContactEmail{}, err
	}
	in.apply(&item)
	if item.Email, err = requireEmail("email", item.Email); err != nil {
		return models.ContactEmail{}, err
	}
	if err := ensureEmailFree(ctx, db, item.Email, item.ID); err != nil {
		return models.ContactEmail{}, err
	}
	item.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE contact_emails
SET email = :email, is_active = :is_active, display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, item)
	if err != nil {
		return models.ContactEmail{}, WrapError(err, "update contact email")
	}
	return GetContactEmail(ctx, db, id, true)
}

func DeleteContactEmail(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "contact_emails", id, "Contact email not found")
}
