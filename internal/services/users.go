package services

import (
	"context"
	"strings"

	"alphinex-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, name, created_at, updated_at, last_login_at`

func GetUser(ctx context.Context, db *sqlx.DB, userID string) (models.User, error) {
	var user models.User
	err := getOne(ctx, db, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, userID)
	return user, notFoundOr(err, "User not found")
}

func FindUserByEmail(ctx context.Context, db *sqlx.DB, email string) (models.User, error) {
	var user models.User
	err := getOne(ctx, db, &user, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	return user, notFoundOr(err, "User not found")
}

// CheckSession resolves the user behind session. Tokens for deleted users, and
// tokens issued before the user's last credential change, are rejected. Token
// times have second precision, so the comparison is done in whole seconds.
func CheckSession(ctx context.Context, db *sqlx.DB, session Session) (models.User, error) {
	user, err := GetUser(ctx, db, session.UserID)
	if err != nil {
		if IsNotFound(err) {
			return models.User{}, ErrUnauthorized("Unauthorized")
		}
		return models.User{}, err
	}
	if user.UpdatedAt.Unix() > session.IssuedAt.Unix() {
		return models.User{}, ErrUnauthorized("Session is no longer valid, please sign in again")
	}
	return user, nil
}

// Authenticate checks the credentials and records the login time.
func Authenticate(ctx context.Context, db *sqlx.DB, tokens TokenService, email, password string) (models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, ErrUnauthorized("Invalid email or password")
	}
	user, err := FindUserByEmail(ctx, db, email)
	if err != nil {
		if IsNotFound(err) {
			return models.User{}, ErrUnauthorized("Invalid email or password")
		}
		return models.User{}, err
	}
	if !tokens.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, ErrUnauthorized("Invalid email or password")
	}
	loginAt := now()
	if _, err := execQuery(ctx, db, `UPDATE users SET last_login_at = ? WHERE id = ?`, loginAt, user.ID); err != nil {
		return models.User{}, WrapError(err, "record login")
	}
	user.LastLoginAt = &loginAt
	return user, nil
}

// UpsertUser creates the user or replaces the name and password of an existing one.
func UpsertUser(ctx context.Context, db *sqlx.DB, email, passwordHash, name string) (models.User, error) {
	email, err := requireEmail("email", email)
	if err != nil {
		return models.User{}, err
	}
	existing, err := FindUserByEmail(ctx, db, email)
	ts := now()
	switch {
	case err == nil:
		if _, err := execQuery(ctx, db, `UPDATE users SET password_hash = ?, name = ?, updated_at = ? WHERE id = ?`,
			passwordHash, name, ts, existing.ID); err != nil {
			return models.User{}, WrapError(err, "update user")
		}
		return GetUser(ctx, db, existing.ID)
	case IsNotFound(err):
		id := uuid.NewString()
		if _, err := execQuery(ctx, db, `INSERT INTO users (id, email, password_hash, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			id, email, passwordHash, name, ts, ts); err != nil {
			return models.User{}, WrapError(err, "insert user")
		}
		return GetUser(ctx, db, id)
	default:
		return models.User{}, err
	}
}

// ChangePassword replaces the password after checking the current one.
func ChangePassword(ctx context.Context, db *sqlx.DB, tokens TokenService, userID, current, next string) error {
	if len(next) < 8 {
		return ErrValidation("newPassword", "newPassword must be at least 8 characters")
	}
	user, err := GetUser(ctx, db, userID)
	if err != nil {
		return err
	}
	if !tokens.VerifyPassword(current, user.PasswordHash) {
		return ErrUnauthorized("Current password is incorrect")
	}
	hash, err := tokens.HashPassword(next)
	if err != nil {
		return WrapError(err, "hash password")
	}
	if _, err := execQuery(ctx, db, `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, hash, now(), userID); err != nil {
		return WrapError(err, "update password")
	}
	return nil
}
