package services

import (
	"context"
	"strings"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const (
	DefaultBlogAuthor   = "Alphinex Solutions"
	DefaultBlogCategory = "Technology"
)

type BlogInput struct {
	Title       *string   `json:"title"`
	Slug        *string   `json:"slug"`
	Excerpt     *string   `json:"excerpt"`
	Content     *string   `json:"content"`
	CoverImage  *string   `json:"coverImage"`
	Author      *string   `json:"author"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	IsPublished *bool     `json:"isPublished"`
	Order       *int      `json:"order"`
}

func (in BlogInput) apply(b *models.Blog) {
	if in.Title != nil {
		b.Title = *in.Title
	}
	if in.Excerpt != nil {
		b.Excerpt = *in.Excerpt
	}
	if in.Content != nil {
		b.Content = *in.Content
	}
	if in.CoverImage != nil {
		b.CoverImage = optionalText(in.CoverImage)
	}
	if in.Author != nil {
		b.Author = strings.TrimSpace(*in.Author)
	}
	if in.Category != nil {
		b.Category = strings.TrimSpace(*in.Category)
	}
	if in.Tags != nil {
		b.Tags = CleanTags(*in.Tags)
	}
	if in.IsPublished != nil {
		b.IsPublished = *in.IsPublished
	}
	if in.Order != nil {
		b.Order = *in.Order
	}
}

func validateBlog(b *models.Blog) error {
	var err error
	if b.Title, err = requireText("title", b.Title); err != nil {
		return err
	}
	if b.Excerpt, err = requireText("excerpt", b.Excerpt); err != nil {
		return err
	}
	if b.Content, err = requireText("content", b.Content); err != nil {
		return err
	}
	if b.Author == "" {
		b.Author = DefaultBlogAuthor
	}
	if b.Category == "" {
		b.Category = DefaultBlogCategory
	}
	if b.Tags == nil {
		b.Tags = models.StringList{}
	}
	return nil
}

// markPublished stamps publishedAt on the first transition to published.
// Later edits, unpublishing and republishing keep the first stamp.
func markPublished(b *models.Blog) {
	if b.IsPublished && b.PublishedAt == nil {
		ts := now()
		b.PublishedAt = &ts
	}
}

const blogColumns = `id, title, slug, excerpt, content, cover_image, author, category, tags, is_published, published_at, display_order, created_at, updated_at`

func ListBlogs(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs`
	args := []interface{}{}
	if !opts.IncludeHidden {
		query += ` WHERE is_published = ?`
		args = append(args, true)
	}
	query, args = withLimit(query+` ORDER BY display_order ASC, created_at DESC`, args, opts.Limit)
	items := []models.Blog{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

// GetBlog finds a blog by id or slug; drafts are hidden unless includeHidden.
func GetBlog(ctx context.Context, db *sqlx.DB, idOrSlug string, includeHidden bool) (models.Blog, error) {
	var blog models.Blog
	err := getOne(ctx, db, &blog, `SELECT `+blogColumns+` FROM blogs WHERE id = ? OR slug = ?`, idOrSlug, idOrSlug)
	if err != nil {
		return blog, notFoundOr(err, "Blog not found")
	}
	if !includeHidden && !blog.IsPublished {
		return models.Blog{}, ErrNotFound("Blog not found")
	}
	return blog, nil
}

func getBlogByID(ctx context.Context, db *sqlx.DB, id string) (models.Blog, error) {
	var blog models.Blog
	err := getOne(ctx, db, &blog, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id)
	return blog, notFoundOr(err, "Blog not found")
}

func CreateBlog(ctx context.Context, db *sqlx.DB, in BlogInput) (models.Blog, error) {
	blog := models.Blog{}
	in.apply(&blog)
	if err := validateBlog(&blog); err != nil {
		return models.Blog{}, err
	}
	blog.ID = uuid.NewString()
	slug, err := resolveSlug(ctx, db, in.Slug, blog.Title, blog.ID)
	if err != nil {
		return models.Blog{}, err
	}
	blog.Slug = slug
	markPublished(&blog)
	blog.CreatedAt = now()
	blog.UpdatedAt = blog.CreatedAt
	_, err = db.NamedExecContext(ctx, `
INSERT INTO blogs (id, title, slug, excerpt, content, cover_image, author, category, tags, is_published, published_at, display_order, created_at, updated_at)
VALUES (:id, :title, :slug, :excerpt, :content, :cover_image, :author, :category, :tags, :is_published, :published_at, :display_order, :created_at, :updated_at)
`, blog)
	if err != nil {
		return models.Blog{}, WrapError(err, "insert blog")
	}
	return getBlogByID(ctx, db, blog.ID)
}

func UpdateBlog(ctx context.Context, db *sqlx.DB, id string, in BlogInput) (models.Blog, error) {
	blog, err := getBlogByID(ctx, db, id)
	if err != nil {
		return models.Blog{}, err
	}
	in.apply(&blog)
	if err := validateBlog(&blog); err != nil {
		return models.Blog{}, err
	}
	if in.Slug != nil {
		slug, err := resolveSlug(ctx, db, in.Slug, blog.Title, blog.ID)
		if err != nil {
			return models.Blog{}, err
		}
		blog.Slug = slug
	}
	markPublished(&blog)
	blog.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE blogs
SET title = :title, slug = :slug, excerpt = :excerpt, content = :content, cover_image = :cover_image,
    author = :author, category = :category, tags = :tags, is_published = :is_published,
    published_at = :published_at, display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, blog)
	if err != nil {
		return models.Blog{}, WrapError(err, "update blog")
	}
	return getBlogByID(ctx, db, id)
}

func DeleteBlog(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "blogs", id, "Blog not found")
}

// resolveSlug honours an explicit slug (rejecting one used by another blog)
// and otherwise derives a free slug from the title.
func resolveSlug(ctx context.Context, db *sqlx.DB, requested *string, title, blogID string) (string, error) {
	if requested != nil && strings.TrimSpace(*requested) != "" {
		slug := Slugify(*requested)
		taken, err := slugTaken(ctx, db, slug, blogID)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrConflict("slug", "Slug is already used by another blog")
		}
		return slug, nil
	}
	return ResolveBlogSlug(ctx, db, Slugify(title), blogID)
}
