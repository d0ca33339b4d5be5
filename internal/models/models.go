package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a list of strings stored as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch value := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(value)
	case []byte:
		raw = value
	default:
		return fmt.Errorf("StringList: unsupported source %T", src)
	}
	items := []string{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
	}
	*l = items
	return nil
}

type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Name         string     `db:"name" json:"name"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
}

type TeamMember struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Role        string    `db:"role" json:"role"`
	Bio         string    `db:"bio" json:"bio"`
	PhotoURL    *string   `db:"photo_url" json:"photoUrl"`
	LinkedInURL *string   `db:"linkedin_url" json:"linkedinUrl"`
	TwitterURL  *string   `db:"twitter_url" json:"twitterUrl"`
	GithubURL   *string   `db:"github_url" json:"githubUrl"`
	Order       int       `db:"display_order" json:"order"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type Testimonial struct {
	ID         string    `db:"id" json:"id"`
	ClientName string    `db:"client_name" json:"clientName"`
	Company    string    `db:"company" json:"company"`
	Message    string    `db:"message" json:"message"`
	Rating     int       `db:"rating" json:"rating"`
	PhotoURL   *string   `db:"photo_url" json:"photoUrl"`
	IsActive   bool      `db:"is_active" json:"isActive"`
	Order      int       `db:"display_order" json:"order"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

const (
	JobTypeFullTime = "Full-time"
	JobTypePartTime = "Part-time"
	JobTypeContract = "Contract"
	JobTypeRemote   = "Remote"
)

var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeRemote}

type Job struct {
	ID               string    `db:"id" json:"id"`
	Title            string    `db:"title" json:"title"`
	Department       string    `db:"department" json:"department"`
	Location         string    `db:"location" json:"location"`
	Type             string    `db:"type" json:"type"`
	Experience       string    `db:"experience" json:"experience"`
	Description      string    `db:"description" json:"description"`
	Requirements     string    `db:"requirements" json:"requirements"`
	Salary           *string   `db:"salary" json:"salary"`
	IsActive         bool      `db:"is_active" json:"isActive"`
	Order            int       `db:"display_order" json:"order"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time `db:"updated_at" json:"updatedAt"`
	ApplicationCount int       `db:"application_count" json:"applicationCount"`
}

const (
	ApplicationPending     = "pending"
	ApplicationReviewed    = "reviewed"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
)

var ApplicationStatuses = []string{ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected}

// JobSummary is the slice of a Job embedded in application listings.
type JobSummary struct {
	Title      string `db:"title" json:"title"`
	Department string `db:"department" json:"department"`
}

type Application struct {
	ID          string      `db:"id" json:"id"`
	JobID       string      `db:"job_id" json:"jobId"`
	Name        string      `db:"name" json:"name"`
	Email       string      `db:"email" json:"email"`
	Phone       string      `db:"phone" json:"phone"`
	Portfolio   *string     `db:"portfolio" json:"portfolio"`
	LinkedInURL *string     `db:"linkedin_url" json:"linkedinUrl"`
	CVURL       string      `db:"cv_url" json:"cvUrl"`
	CoverLetter *string     `db:"cover_letter" json:"coverLetter"`
	Status      string      `db:"status" json:"status"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
	Job         *JobSummary `db:"job" json:"job,omitempty"`
}

type Blog struct {
	ID          string     `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	Content     string     `db:"content" json:"content"`
	CoverImage  *string    `db:"cover_image" json:"coverImage"`
	Author      string     `db:"author" json:"author"`
	Category    string     `db:"category" json:"category"`
	Tags        StringList `db:"tags" json:"tags"`
	IsPublished bool       `db:"is_published" json:"isPublished"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
	Order       int        `db:"display_order" json:"order"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

type Project struct {
	ID           string     `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Description  string     `db:"description" json:"description"`
	Cost         string     `db:"cost" json:"cost"`
	DemoURL      *string    `db:"demo_url" json:"demoUrl"`
	DemoUsername *string    `db:"demo_username" json:"username"`
	DemoPassword *string    `db:"demo_password" json:"password"`
	Images       StringList `db:"images" json:"images"`
	CoverImage   *string    `db:"cover_image" json:"coverImage"`
	IsActive     bool       `db:"is_active" json:"isActive"`
	Order        int        `db:"display_order" json:"order"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

type ContactEmail struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	Order     int       `db:"display_order" json:"order"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type MediaAsset struct {
	ID          string    `db:"id" json:"id"`
	Bucket      string    `db:"bucket" json:"bucket"`
	StorageKey  string    `db:"storage_key" json:"-"`
	Filename    *string   `db:"filename" json:"filename"`
	ContentType string    `db:"content_type" json:"contentType"`
	SizeBytes   int64     `db:"size_bytes" json:"sizeBytes"`
	Sha256      *string   `db:"sha256" json:"sha256"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

type SiteVisit struct {
	ID        string    `db:"id"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	Path      *string   `db:"path"`
	Referrer  *string   `db:"referrer"`
	CreatedAt time.Time `db:"created_at"`
}
