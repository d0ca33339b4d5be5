package services

import (
	"context"

	"alphinex-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

// ResourceCount is the size of one admin collection and how much of it is public.
type ResourceCount struct {
	Total  int64 `json:"total"`
	Public int64 `json:"public"`
}

type DashboardStats struct {
	Team                 ResourceCount    `json:"team"`
	Testimonials         ResourceCount    `json:"testimonials"`
	Jobs                 ResourceCount    `json:"jobs"`
	Blogs                ResourceCount    `json:"blogs"`
	Projects             ResourceCount    `json:"projects"`
	ContactEmails        ResourceCount    `json:"contactEmails"`
	Applications         int64            `json:"applications"`
	ApplicationsByStatus map[string]int64 `json:"applicationsByStatus"`
	Visits               int64            `json:"visits"`
}

func countResource(ctx context.Context, db *sqlx.DB, table, publicColumn string) (ResourceCount, error) {
	var counts ResourceCount
	if err := getOne(ctx, db, &counts.Total, `SELECT count(*) FROM `+table); err != nil {
		return counts, WrapError(err, "count "+table)
	}
	if publicColumn == "" {
		counts.Public = counts.Total
		return counts, nil
	}
	if err := getOne(ctx, db, &counts.Public, `SELECT count(*) FROM `+table+` WHERE `+publicColumn+` = ?`, true); err != nil {
		return counts, WrapError(err, "count "+table)
	}
	return counts, nil
}

// LoadDashboardStats gathers the counters shown on the admin dashboard.
func LoadDashboardStats(ctx context.Context, db *sqlx.DB) (DashboardStats, error) {
	stats := DashboardStats{ApplicationsByStatus: map[string]int64{}}
	targets := []struct {
		dest   *ResourceCount
		table  string
		column string
	}{
		{&stats.Team, "team_members", ""},
		{&stats.Testimonials, "testimonials", "is_active"},
		{&stats.Jobs, "jobs", "is_active"},
		{&stats.Blogs, "blogs", "is_published"},
		{&stats.Projects, "projects", "is_active"},
		{&stats.ContactEmails, "contact_emails", "is_active"},
	}
	for _, target := range targets {
		counts, err := countResource(ctx, db, target.table, target.column)
		if err != nil {
			return DashboardStats{}, err
		}
		*target.dest = counts
	}

	type statusRow struct {
		Status string `db:"status"`
		Total  int64  `db:"total"`
	}
	rows := []statusRow{}
	if err := selectAll(ctx, db, &rows, `SELECT status, count(*) AS total FROM applications GROUP BY status`); err != nil {
		return DashboardStats{}, WrapError(err, "count applications")
	}
	for _, status := range models.ApplicationStatuses {
		stats.ApplicationsByStatus[status] = 0
	}
	for _, row := range rows {
		stats.ApplicationsByStatus[row.Status] = row.Total
		stats.Applications += row.Total
	}

	visits, err := CountVisits(ctx, db)
	if err != nil {
		return DashboardStats{}, WrapError(err, "count visits")
	}
	stats.Visits = visits
	return stats, nil
}
