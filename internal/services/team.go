package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type TeamMemberInput struct {
	Name        *string `json:"name"`
	Role        *string `json:"role"`
	Bio         *string `json:"bio"`
	PhotoURL    *string `json:"photoUrl"`
	LinkedInURL *string `json:"linkedinUrl"`
	TwitterURL  *string `json:"twitterUrl"`
	GithubURL   *string `json:"githubUrl"`
	Order       *int    `json:"order"`
}

func (in TeamMemberInput) apply(m *models.TeamMember) {
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Role != nil {
		m.Role = *in.Role
	}
	if in.Bio != nil {
		m.Bio = *in.Bio
	}
	if in.PhotoURL != nil {
		m.PhotoURL = optionalText(in.PhotoURL)
	}
	if in.LinkedInURL != nil {
		m.LinkedInURL = optionalText(in.LinkedInURL)
	}
	if in.TwitterURL != nil {
		m.TwitterURL = optionalText(in.TwitterURL)
	}
	if in.GithubURL != nil {
		m.GithubURL = optionalText(in.GithubURL)
	}
	if in.Order != nil {
		m.Order = *in.Order
	}
}

func validateTeamMember(m *models.TeamMember) error {
	var err error
	if m.Name, err = requireText("name", m.Name); err != nil {
		return err
	}
	if m.Role, err = requireText("role", m.Role); err != nil {
		return err
	}
	return nil
}

const teamColumns = `id, name, role, bio, photo_url, linkedin_url, twitter_url, github_url, display_order, created_at, updated_at`

func ListTeamMembers(ctx context.Context, db *sqlx.DB, opts ListOptions) ([]models.TeamMember, error) {
	query, args := withLimit(`SELECT `+teamColumns+` FROM team_members ORDER BY display_order ASC, created_at ASC`, nil, opts.Limit)
	items := []models.TeamMember{}
	err := selectAll(ctx, db, &items, query, args...)
	return items, err
}

func GetTeamMember(ctx context.Context, db *sqlx.DB, id string) (models.TeamMember, error) {
	var member models.TeamMember
	err := getOne(ctx, db, &member, `SELECT `+teamColumns+` FROM team_members WHERE id = ?`, id)
	return member, notFoundOr(err, "Team member not found")
}

func CreateTeamMember(ctx context.Context, db *sqlx.DB, in TeamMemberInput) (models.TeamMember, error) {
	member := models.TeamMember{}
	in.apply(&member)
	if err := validateTeamMember(&member); err != nil {
		return models.TeamMember{}, err
	}
	member.ID = uuid.NewString()
	member.CreatedAt = now()
	member.UpdatedAt = member.CreatedAt
	_, err := db.NamedExecContext(ctx, `
INSERT INTO team_members (id, name, role, bio, photo_url, linkedin_url, twitter_url, github_url, display_order, created_at, updated_at)
VALUES (:id, :name, :role, :bio, :photo_url, :linkedin_url, :twitter_url, :github_url, :display_order, :created_at, :updated_at)
`, member)
	if err != nil {
		return models.TeamMember{}, WrapError(err, "insert team member")
	}
	return GetTeamMember(ctx, db, member.ID)
}

func UpdateTeamMember(ctx context.Context, db *sqlx.DB, id string, in TeamMemberInput) (models.TeamMember, error) {
	member, err := GetTeamMember(ctx, db, id)
	if err != nil {
		return models.TeamMember{}, err
	}
	in.apply(&member)
	if err := validateTeamMember(&member); err != nil {
		return models.TeamMember{}, err
	}
	member.UpdatedAt = now()
	_, err = db.NamedExecContext(ctx, `
UPDATE team_members
SET name = :name, role = :role, bio = :bio, photo_url = :photo_url, linkedin_url = :linkedin_url,
    twitter_url = :twitter_url, github_url = :github_url, display_order = :display_order, updated_at = :updated_at
WHERE id = :id
`, member)
	if err != nil {
		return models.TeamMember{}, WrapError(err, "update team member")
	}
	return GetTeamMember(ctx, db, id)
}

func DeleteTeamMember(ctx context.Context, db *sqlx.DB, id string) error {
	return deleteByID(ctx, db, "team_members", id, "Team member not found")
}
