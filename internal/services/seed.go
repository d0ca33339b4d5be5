package services

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SeedReport counts what a seed run created.
type SeedReport struct {
	AdminEmail    string
	TeamMembers   int
	Testimonials  int
	ContactEmails int
}

var defaultContactEmails = []string{"alphinexsolutions@gmail.com"}

var sampleTeam = []TeamMemberInput{
	teamSeed("Suleman Khan", "CEO & Co-Founder", "Visionary leader with 10+ years of experience in software development and business strategy.", 1),
	teamSeed("Nouman Ahmed", "CTO & Co-Founder", "Full-stack, cloud architecture and AI/ML. Leads the technical team.", 2),
	teamSeed("Sarah Mitchell", "Lead UI/UX Designer", "Creates intuitive and beautiful user experiences.", 3),
	teamSeed("Michael Chen", "Senior Full Stack Developer", "Builds scalable applications with React, Node.js and cloud technologies.", 4),
}

var sampleTestimonials = []TestimonialInput{
	testimonialSeed("John Anderson", "TechStart Inc.", "Alphinex Solutions transformed our business with their innovative web application.", 1),
	testimonialSeed("Lisa Martinez", "Digital Ventures", "They built our mobile app in record time without compromising on quality.", 2),
	testimonialSeed("Robert Williams", "Global Solutions Ltd.", "The cloud infrastructure they set up for us has been rock solid.", 3),
}

func teamSeed(name, role, bio string, order int) TeamMemberInput {
	linkedin := "https://www.linkedin.com/company/alphinex-solutions/"
	return TeamMemberInput{Name: &name, Role: &role, Bio: &bio, LinkedInURL: &linkedin, Order: &order}
}

func testimonialSeed(client, company, message string, order int) TestimonialInput {
	rating := 5
	return TestimonialInput{ClientName: &client, Company: &company, Message: &message, Rating: &rating, Order: &order}
}

// SeedDefaults upserts the admin user and makes sure the default contact
// recipients exist. Running it twice is harmless.
func SeedDefaults(ctx context.Context, db *sqlx.DB, tokens TokenService, adminEmail, adminPassword, adminName string) (SeedReport, error) {
	report := SeedReport{}
	if adminPassword == "" {
		return report, ErrValidation("password", "admin password is required")
	}
	hash, err := tokens.HashPassword(adminPassword)
	if err != nil {
		return report, WrapError(err, "hash admin password")
	}
	user, err := UpsertUser(ctx, db, adminEmail, hash, adminName)
	if err != nil {
		return report, err
	}
	report.AdminEmail = user.Email

	for i, email := range defaultContactEmails {
		taken, err := exists(ctx, db, `SELECT 1 FROM contact_emails WHERE email = ?`, email)
		if err != nil {
			return report, err
		}
		if taken {
			continue
		}
		addr, order := email, i+1
		if _, err := CreateContactEmail(ctx, db, ContactEmailInput{Email: &addr, Order: &order}); err != nil {
			return report, err
		}
		report.ContactEmails++
	}
	return report, nil
}

// SeedSample fills empty team and testimonial tables with showcase content.
func SeedSample(ctx context.Context, db *sqlx.DB) (SeedReport, error) {
	report := SeedReport{}
	hasTeam, err := exists(ctx, db, `SELECT 1 FROM team_members`)
	if err != nil {
		return report, err
	}
	if !hasTeam {
		for _, in := range sampleTeam {
			if _, err := CreateTeamMember(ctx, db, in); err != nil {
				return report, err
			}
			report.TeamMembers++
		}
	}
	hasTestimonials, err := exists(ctx, db, `SELECT 1 FROM testimonials`)
	if err != nil {
		return report, err
	}
	if !hasTestimonials {
		for _, in := range sampleTestimonials {
			if _, err := CreateTestimonial(ctx, db, in); err != nil {
				return report, err
			}
			report.Testimonials++
		}
	}
	return report, nil
}
