package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type VisitInput struct {
	Path     *string `json:"path"`
	Referrer *string `json:"referrer"`
}

func RecordVisit(ctx context.Context, db *sqlx.DB, ip, userAgent string, in VisitInput) error {
	visit := models.SiteVisit{
		ID:        uuid.NewString(),
		IPAddress: optionalText(&ip),
		UserAgent: optionalText(&userAgent),
		Path:      optionalText(in.Path),
		Referrer:  optionalText(in.Referrer),
		CreatedAt: now(),
	}
	_, err := db.NamedExecContext(ctx, `
INSERT INTO site_visits (id, ip_address, user_agent, path, referrer, created_at)
VALUES (:id, :ip_address, :user_agent, :path, :referrer, :created_at)
`, visit)
	return WrapError(err, "insert visit")
}

func CountVisits(ctx context.Context, db *sqlx.DB) (int64, error) {
	var total int64
	err := getOne(ctx, db, &total, `SELECT count(*) FROM site_visits`)
	return total, err
}
