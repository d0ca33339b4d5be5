package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ProjectInput struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Cost         *string   `json:"cost"`
	DemoURL      *string   `json:"demoUrl"`
	DemoUsername *string   `json:"username"`
	DemoPassword *string   `json:"password"`
	Images       *[]string `json:"images"`
	CoverImage   *string   `json:"coverImage"`
	IsActive     *bool     `json:"isActive"`
	Order        *int      `json:"order"`
}

func (in ProjectInput) apply(p *models.Project) {
	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Cost != nil {
		p.Cost = *in.Cost
	}
	if in.DemoURL != nil {
		p.DemoURL = optionalText(in.DemoURL)
	}
	if in.DemoUsername != nil {
		p.DemoUsername = optionalText(in.DemoUsername)
	}
	if in.DemoPassword != nil {
		p.DemoPassword = optionalText(in.DemoPassword)
	}
	if in.Images != nil {
		p.Images = cleanList(*in.Images)
	}
	if in.CoverImage != nil {
		p.CoverImage = optionalText(in.CoverImage)
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	if in.Order != nil {
		p.Order = *in.Order
	}
}

func validateProject(p *models.Project) error {
	var err error
	if p.Title, err = requireText("title", p.Title); err != nil {
		return err
	}
	if p.Description, err = requireText("description", p.Description); err != nil {
		return err
	}
	if p.Cost, err = requireText("cost", p.Cost); err != nil {
		return err
	}
	if p.Images == nil {
		p.Images = models.StringList{}
	}
	p.CoverImage = pickCover(p.Images, p.CoverImage)
	return nil
}

// pickCover keeps cover when it is one of images, otherwise falls back to
// the first image (or nil when there are none).
func pickCover(images []string, cover *string) *string {
	if cover != nil {
		for _, img := range images {
			if img == *cover {
				return cover
			}
		}
	}
	if len(images) == 0 {
		return nil
	}
	first := images[0]
	return &first
}

const projectColumns = `id, title, description, cost, demo_url, demo_username, demo_password, images, cover_image, is_active, display_order, created_at, updated_at`

func ListProjects(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	args := []interface{}{}
	if !opts.IncludeHidden {
		query += ` WHERE is_active = ?`
		args = append(args, true)
	}
	query, args = withLimit(query+` ORDER BY display_order ASC, created_at DESC`, args, opts.Limit)
	items := []models.Project{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

// GetProject loads one project; inactive projects are hidden unless includeHidden.
func GetProject(ctx context.Context, db *sqlx.DB, id string, includeHidden bool) (models.Project, error) {
	var item models.Project
	err := getOne(ctx, db, &item, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	if err != nil {
		return item, notFoundOr(err, "Project not found")
	}
	if !includeHidden && !item.IsActive {
		return models.Project{}, ErrNotFound("Project not found")
	}
	return item, nil
}

func CreateProject(ctx context.Context, db *sqlx.DB, in ProjectInput) (models.Project, error) {
	item := models.Project{IsActive: true}
	in.apply(&item)
	if err := validateProject(&item); err != nil {
		return models.Project{}, err
	}
	item.ID = uuid.NewString()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	_, err := db.NamedExecContext(ctx, `
INSERT INTO projects (id, title, description, cost, demo_url, demo_username, demo_password, images, cover_image, is_active, display_order, created_at, updated_at)
VALUES (:id, :title, :description, :cost, :demo_url, :demo_username, :demo_password, :images, :cover_image, :is_active, :display_order, :created_at, :updated_at)
`, item)
	if err != nil {
		return models.Project{}, WrapError(err, "insert project")
	}
	return GetProject(ctx, db, item.ID, true)
}

func UpdateProject(ctx context.Context, db *sqlx.DB, id string, in ProjectInput) (models.Project, error) {
	item, err := GetProject(ctx, db, id, true)
	if err != nil {
		return models.Project{}, err
	}
	in.apply(&item)
	if err := validateProject(&item); err != nil {
		return models.Project{}, err
	}
	item.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE projects
SET title = :title, description = :description, cost = :cost, demo_url = :demo_url, demo_username = :demo_username,
    demo_password = :demo_password, images = :images, cover_image = :cover_image, is_active = :is_active,
    display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, item)
	if err != nil {
		return models.Project{}, WrapError(err, "update project")
	}
	return GetProject(ctx, db, id, true)
}

func DeleteProject(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "projects", id, "Project not found")
}
