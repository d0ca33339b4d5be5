package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"alphinex-backend-go/internal/db"
	"alphinex-backend-go/internal/migrations"
	"alphinex-backend-go/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open("sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Apply(database))
	return database
}

func ptr[T any](v T) *T { return &v }

func requireKind(t *testing.T, err error, kind string, status int) ServiceError {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %T: %v", err, err)
	assert.Equal(t, kind, svcErr.Kind)
	assert.Equal(t, status, svcErr.Status)
	return svcErr
}

func sampleJob(title string, active bool) JobInput {
	return JobInput{
		Title:        ptr(title),
		Department:   ptr("Engineering"),
		Location:     ptr("Remote"),
		Type:         ptr("full-time"),
		Experience:   ptr("3+ years"),
		Description:  ptr("Build things"),
		Requirements: ptr("Go\r\n\nSQL\n  Go  \n"),
		IsActive:     ptr(active),
	}
}

func sampleApplication(jobID string) ApplicationInput {
	return ApplicationInput{
		JobID: jobID,
		Name:  "Jane Doe",
		Email: "jane@x.com",
		Phone: "555-1212",
		CVURL: "http://example.com/cv.pdf",
	}
}

func TestTeamMemberLifecycle(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	created, err := CreateTeamMember(ctx, database, TeamMemberInput{
		Name:     ptr("  Ada Lovelace "),
		Role:     ptr("Engineer"),
		PhotoURL: ptr(" "),
		Order:    ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Nil(t, created.PhotoURL)

	loaded, err := GetTeamMember(ctx, database, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, loaded); diff != "" {
		t.Fatalf("team member mismatch (-created +loaded):\n%s", diff)
	}

	updated, err := UpdateTeamMember(ctx, database, created.ID, TeamMemberInput{Role: ptr("CTO")})
	require.NoError(t, err)
	assert.Equal(t, "CTO", updated.Role)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, 2, updated.Order)

	_, err = UpdateTeamMember(ctx, database, created.ID, TeamMemberInput{Name: ptr("")})
	svcErr := requireKind(t, err, KindValidation, http.StatusBadRequest)
	assert.Equal(t, "name", svcErr.Field)

	require.NoError(t, DeleteTeamMember(ctx, database, created.ID))
	requireKind(t, DeleteTeamMember(ctx, database, created.ID), KindNotFound, http.StatusNotFound)
	_, err = GetTeamMember(ctx, database, created.ID)
	assert.True(t, IsNotFound(err))
}

func TestTestimonialsHideInactive(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	visible, err := CreateTestimonial(ctx, database, TestimonialInput{ClientName: ptr("A"), Message: ptr("Great")})
	require.NoError(t, err)
	assert.Equal(t, 5, visible.Rating)
	assert.True(t, visible.IsActive)
	hidden, err := CreateTestimonial(ctx, database, TestimonialInput{ClientName: ptr("B"), Message: ptr("Good"), IsActive: ptr(false)})
	require.NoError(t, err)

	public, err := ListTestimonials(ctx, database, ListOptions{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, visible.ID, public[0].ID)

	all, err := ListTestimonials(ctx, database, ListOptions{IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = GetTestimonial(ctx, database, hidden.ID, false)
	assert.True(t, IsNotFound(err))
	_, err = GetTestimonial(ctx, database, hidden.ID, true)
	assert.NoError(t, err)

	_, err = CreateTestimonial(ctx, database, TestimonialInput{ClientName: ptr("C"), Message: ptr("x"), Rating: ptr(6)})
	svcErr := requireKind(t, err, KindValidation, http.StatusBadRequest)
	assert.Equal(t, "rating", svcErr.Field)
}

func TestJobsVisibilityAndRequirements(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	active, err := CreateJob(ctx, database, sampleJob("Backend Engineer", true))
	require.NoError(t, err)
	assert.Equal(t, models.JobTypeFullTime, active.Type)
	assert.Equal(t, []string{"Go", "SQL"}, RequirementLines(active.Requirements))
	inactive, err := CreateJob(ctx, database, sampleJob("Designer", false))
	require.NoError(t, err)

	public, err := ListJobs(ctx, database, ListOptions{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, active.ID, public[0].ID)

	all, err := ListJobs(ctx, database, ListOptions{IncludeHidden: true})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	limited, err := ListJobs(ctx, database, ListOptions{IncludeHidden: true, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = GetJob(ctx, database, inactive.ID, false)
	assert.True(t, IsNotFound(err))

	bad := sampleJob("Intern", true)
	bad.Type = ptr("Seasonal")
	_, err = CreateJob(ctx, database, bad)
	svcErr := requireKind(t, err, KindValidation, http.StatusBadRequest)
	assert.Equal(t, "type", svcErr.Field)
}

func TestApplicationFlow(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	job, err := CreateJob(ctx, database, sampleJob("Backend Engineer", true))
	require.NoError(t, err)

	app, err := SubmitApplication(ctx, database, sampleApplication(job.ID))
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationPending, app.Status)
	require.NotNil(t, app.Job)
	assert.Equal(t, "Backend Engineer", app.Job.Title)

	loadedJob, err := GetJob(ctx, database, job.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, loadedJob.ApplicationCount)

	updated, err := UpdateApplication(ctx, database, app.ID, ApplicationUpdate{Status: ptr("shortlisted")})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationShortlisted, updated.Status)
	assert.Equal(t, "Jane Doe", updated.Name)

	_, err = UpdateApplication(ctx, database, app.ID, ApplicationUpdate{Status: ptr("hired")})
	requireKind(t, err, KindValidation, http.StatusBadRequest)

	forJob, err := ListApplications(ctx, database, job.ID, ListOptions{})
	require.NoError(t, err)
	require.Len(t, forJob, 1)
	none, err := ListApplications(ctx, database, "other", ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubmitApplicationRejectsUnknownJob(t *testing.T) {
	database := newTestDB(t)

	_, err := SubmitApplication(context.Background(), database, sampleApplication("missing"))
	svcErr := requireKind(t, err, KindNotFound, http.StatusNotFound)
	assert.Equal(t, "jobId", svcErr.Field)

	in := sampleApplication("missing")
	in.Email = "not-an-email"
	_, err = SubmitApplication(context.Background(), database, in)
	svcErr = requireKind(t, err, KindValidation, http.StatusBadRequest)
	assert.Equal(t, "email", svcErr.Field)
}

func TestDeleteJobRemovesApplications(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	job, err := CreateJob(ctx, database, sampleJob("Backend Engineer", true))
	require.NoError(t, err)
	app, err := SubmitApplication(ctx, database, sampleApplication(job.ID))
	require.NoError(t, err)

	require.NoError(t, DeleteJob(ctx, database, job.ID))
	_, err = GetApplication(ctx, database, app.ID)
	assert.True(t, IsNotFound(err))
	requireKind(t, DeleteJob(ctx, database, job.ID), KindNotFound, http.StatusNotFound)
}

func blogInput(title string, published bool) BlogInput {
	return BlogInput{
		Title:       ptr(title),
		Excerpt:     ptr("Short"),
		Content:     ptr("Long form"),
		Tags:        ptr([]string{"go", " go ", "", "web"}),
		IsPublished: ptr(published),
	}
}

func TestBlogPublishedAtIsSetOnce(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	draft, err := CreateBlog(ctx, database, blogInput("Hello World", false))
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)
	assert.Equal(t, DefaultBlogAuthor, draft.Author)
	assert.Equal(t, DefaultBlogCategory, draft.Category)
	assert.Equal(t, models.StringList{"go", "web"}, draft.Tags)

	published, err := UpdateBlog(ctx, database, draft.ID, BlogInput{IsPublished: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	stamp := *published.PublishedAt

	edited, err := UpdateBlog(ctx, database, draft.ID, BlogInput{Content: ptr("Edited")})
	require.NoError(t, err)
	require.NotNil(t, edited.PublishedAt)
	assert.True(t, stamp.Equal(*edited.PublishedAt))

	unpublished, err := UpdateBlog(ctx, database, draft.ID, BlogInput{IsPublished: ptr(false)})
	require.NoError(t, err)
	require.NotNil(t, unpublished.PublishedAt)
	assert.True(t, stamp.Equal(*unpublished.PublishedAt))

	republished, err := UpdateBlog(ctx, database, draft.ID, BlogInput{IsPublished: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, republished.PublishedAt)
	assert.True(t, stamp.Equal(*republished.PublishedAt))
}

func TestBlogSlugs(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	first, err := CreateBlog(ctx, database, blogInput("Go Tips!", true))
	require.NoError(t, err)
	assert.Equal(t, "go-tips", first.Slug)
	second, err := CreateBlog(ctx, database, blogInput("Go tips", true))
	require.NoError(t, err)
	assert.Equal(t, "go-tips-2", second.Slug)

	explicit := blogInput("Another", true)
	explicit.Slug = ptr("go-tips")
	_, err = CreateBlog(ctx, database, explicit)
	svcErr := requireKind(t, err, KindConflict, http.StatusConflict)
	assert.Equal(t, "slug", svcErr.Field)

	// Title edits keep the slug unless one is supplied.
	renamed, err := UpdateBlog(ctx, database, first.ID, BlogInput{Title: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "go-tips", renamed.Slug)

	bySlug, err := GetBlog(ctx, database, "go-tips-2", false)
	require.NoError(t, err)
	assert.Equal(t, second.ID, bySlug.ID)
	byID, err := GetBlog(ctx, database, second.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "go-tips-2", byID.Slug)
}

func TestBlogDraftsHidden(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	draft, err := CreateBlog(ctx, database, blogInput("Draft", false))
	require.NoError(t, err)
	_, err = CreateBlog(ctx, database, blogInput("Live", true))
	require.NoError(t, err)

	public, err := ListBlogs(ctx, database, ListOptions{})
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Live", public[0].Title)

	_, err = GetBlog(ctx, database, draft.Slug, false)
	assert.True(t, IsNotFound(err))
	_, err = GetBlog(ctx, database, draft.Slug, true)
	assert.NoError(t, err)
}

func TestProjectCoverImage(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	project, err := CreateProject(ctx, database, ProjectInput{
		Title:       ptr("Shop"),
		Description: ptr("Storefront"),
		Cost:        ptr("$5k"),
		Images:      ptr([]string{"/a.png", "/b.png"}),
		CoverImage:  ptr("/missing.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, project.CoverImage)
	assert.Equal(t, "/a.png", *project.CoverImage)
	assert.True(t, project.IsActive)

	updated, err := UpdateProject(ctx, database, project.ID, ProjectInput{CoverImage: ptr("/b.png")})
	require.NoError(t, err)
	assert.Equal(t, "/b.png", *updated.CoverImage)

	cleared, err := UpdateProject(ctx, database, project.ID, ProjectInput{Images: ptr([]string{})})
	require.NoError(t, err)
	assert.Nil(t, cleared.CoverImage)
	assert.Empty(t, cleared.Images)
}

func TestPickCover(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		cover  *string
		want   *string
	}{
		{name: "kept", images: []string{"a", "b"}, cover: ptr("b"), want: ptr("b")},
		{name: "not listed", images: []string{"a", "b"}, cover: ptr("c"), want: ptr("a")},
		{name: "unset", images: []string{"a"}, want: ptr("a")},
		{name: "no images", cover: ptr("a")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickCover(tt.images, tt.cover))
		})
	}
}

func TestContactEmails(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	first, err := CreateContactEmail(ctx, database, ContactEmailInput{Email: ptr("Ops@Example.com"), Order: ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", first.Email)
	_, err = CreateContactEmail(ctx, database, ContactEmailInput{Email: ptr("sales@example.com"), Order: ptr(1)})
	require.NoError(t, err)
	_, err = CreateContactEmail(ctx, database, ContactEmailInput{Email: ptr("off@example.com"), IsActive: ptr(false)})
	require.NoError(t, err)

	_, err = CreateContactEmail(ctx, database, ContactEmailInput{Email: ptr("ops@example.com")})
	svcErr := requireKind(t, err, KindConflict, http.StatusConflict)
	assert.Equal(t, "email", svcErr.Field)

	recipients, err := ActiveRecipients(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales@example.com", "ops@example.com"}, recipients)

	_, err = CreateContactEmail(ctx, database, ContactEmailInput{Email: ptr("nope")})
	requireKind(t, err, KindValidation, http.StatusBadRequest)

	requireKind(t, DeleteContactEmail(ctx, database, "missing"), KindNotFound, http.StatusNotFound)
}

// storedFiles lists what SaveMediaAsset left under base/uploads.
func storedFiles(t *testing.T, base string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(base, BucketUploads))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	require.NoError(t, err)
	return entries
}

func TestSaveMediaAsset(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	base := t.TempDir()

	_, err := SaveMediaAsset(ctx, database, base, BucketUploads, "empty.pdf", strings.NewReader(""))
	requireKind(t, err, KindValidation, http.StatusBadRequest)
	assert.Empty(t, storedFiles(t, base))

	payload := "%PDF-1.4 resume"
	asset, err := SaveMediaAsset(ctx, database, base, BucketUploads, "cv.pdf", strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", asset.ContentType)
	assert.EqualValues(t, len(payload), asset.SizeBytes)
	require.NotNil(t, asset.Sha256)
	sum := sha256.Sum256([]byte(payload))
	assert.Equal(t, hex.EncodeToString(sum[:]), *asset.Sha256)
	assert.Equal(t, "/api/media/"+asset.ID, BuildAssetURL(asset.ID))

	loaded, err := GetMediaAsset(ctx, database, asset.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(asset, loaded, cmpopts.IgnoreFields(models.MediaAsset{}, "CreatedAt")); diff != "" {
		t.Fatalf("asset mismatch (-saved +loaded):\n%s", diff)
	}
	data, err := os.ReadFile(AssetPath(base, loaded))
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))

	require.NoError(t, DeleteMediaAsset(ctx, database, base, asset.ID))
	_, err = os.Stat(AssetPath(base, loaded))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	_, err = GetMediaAsset(ctx, database, asset.ID)
	assert.True(t, IsNotFound(err))
}

func TestSaveMediaAssetSniffsContentType(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	base := t.TempDir()

	png := "\x89PNG\r\n\x1a\n" + strings.Repeat("\x00", 600)
	asset, err := SaveMediaAsset(ctx, database, base, BucketUploads, "avatar.html", strings.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "image/png", asset.ContentType)
	assert.EqualValues(t, len(png), asset.SizeBytes, "bytes consumed by sniffing are still stored")

	rejected := map[string]string{
		"html":  `<script>fetch('/api/jobs',{method:'POST'})</script>`,
		"text":  "just some notes",
		"svg":   `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`,
		"zip":   "PK\x03\x04rest-of-archive",
		"empty": "",
	}
	for name, body := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := SaveMediaAsset(ctx, database, base, BucketUploads, "cv.pdf", strings.NewReader(body))
			svcErr := requireKind(t, err, KindValidation, http.StatusBadRequest)
			assert.Equal(t, "file", svcErr.Field)
		})
	}

	var count int
	require.NoError(t, database.GetContext(ctx, &count, `SELECT count(*) FROM media_assets`))
	assert.Equal(t, 1, count)
	assert.Len(t, storedFiles(t, base), 1)
}

func TestInlineContentType(t *testing.T) {
	for contentType, want := range map[string]bool{
		"image/png":                true,
		"IMAGE/JPEG":               true,
		"application/pdf":          true,
		"text/html; charset=utf-8": false,
		"image/svg+xml":            false,
		"application/octet-stream": false,
		"":                         false,
	} {
		assert.Equal(t, want, InlineContentType(contentType), contentType)
	}
}

func TestVisitsAndStats(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	require.NoError(t, RecordVisit(ctx, database, "127.0.0.1", "test", VisitInput{Path: ptr("/")}))
	require.NoError(t, RecordVisit(ctx, database, "127.0.0.1", "test", VisitInput{}))
	total, err := CountVisits(ctx, database)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	job, err := CreateJob(ctx, database, sampleJob("Backend Engineer", true))
	require.NoError(t, err)
	_, err = CreateJob(ctx, database, sampleJob("Designer", false))
	require.NoError(t, err)
	_, err = SubmitApplication(ctx, database, sampleApplication(job.ID))
	require.NoError(t, err)

	stats, err := LoadDashboardStats(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, ResourceCount{Total: 2, Public: 1}, stats.Jobs)
	assert.EqualValues(t, 1, stats.Applications)
	assert.EqualValues(t, 1, stats.ApplicationsByStatus[models.ApplicationPending])
	assert.EqualValues(t, 0, stats.ApplicationsByStatus[models.ApplicationRejected])
	assert.EqualValues(t, 2, stats.Visits)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	tokens := testTokens()

	_, err := SeedDefaults(ctx, database, tokens, "admin@example.com", "", "Admin")
	requireKind(t, err, KindValidation, http.StatusBadRequest)

	report, err := SeedDefaults(ctx, database, tokens, "Admin@Example.com", "s3cret-pass", "Admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", report.AdminEmail)
	assert.Equal(t, 1, report.ContactEmails)

	again, err := SeedDefaults(ctx, database, tokens, "admin@example.com", "other-pass", "Admin")
	require.NoError(t, err)
	assert.Zero(t, again.ContactEmails)

	_, err = Authenticate(ctx, database, tokens, "admin@example.com", "s3cret-pass")
	requireKind(t, err, KindUnauthorized, http.StatusUnauthorized)
	user, err := Authenticate(ctx, database, tokens, "admin@example.com", "other-pass")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLoginAt)

	sample, err := SeedSample(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, len(sampleTeam), sample.TeamMembers)
	assert.Equal(t, len(sampleTestimonials), sample.Testimonials)
	sample, err = SeedSample(ctx, database)
	require.NoError(t, err)
	assert.Zero(t, sample.TeamMembers)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	tokens := testTokens()

	hash, err := tokens.HashPassword("initial-pass")
	require.NoError(t, err)
	user, err := UpsertUser(ctx, database, "admin@example.com", hash, "Admin")
	require.NoError(t, err)

	requireKind(t, ChangePassword(ctx, database, tokens, user.ID, "initial-pass", "short"), KindValidation, http.StatusBadRequest)
	requireKind(t, ChangePassword(ctx, database, tokens, user.ID, "wrong-pass", "next-password"), KindUnauthorized, http.StatusUnauthorized)
	require.NoError(t, ChangePassword(ctx, database, tokens, user.ID, "initial-pass", "next-password"))

	_, err = Authenticate(ctx, database, tokens, "admin@example.com", "next-password")
	assert.NoError(t, err)
}

func TestCheckSession(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	tokens := testTokens()

	hash, err := tokens.HashPassword("initial-pass")
	require.NoError(t, err)
	user, err := UpsertUser(ctx, database, "admin@example.com", hash, "Admin")
	require.NoError(t, err)

	signed, _, err := tokens.CreateSessionToken(user.ID, user.Email, user.Name)
	require.NoError(t, err)
	session, err := tokens.ParseSessionToken(signed)
	require.NoError(t, err)
	got, err := CheckSession(ctx, database, session)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	stale := session
	stale.IssuedAt = time.Now().Add(-time.Hour)
	_, err = CheckSession(ctx, database, stale)
	requireKind(t, err, KindUnauthorized, http.StatusUnauthorized)

	// A password change invalidates sessions issued before it. The change is
	// pinned a second after sign-in since token times are whole seconds.
	require.NoError(t, ChangePassword(ctx, database, tokens, user.ID, "initial-pass", "next-password"))
	_, err = execQuery(ctx, database, `UPDATE users SET updated_at = ? WHERE id = ?`, session.IssuedAt.Add(time.Second).UTC(), user.ID)
	require.NoError(t, err)
	_, err = CheckSession(ctx, database, session)
	requireKind(t, err, KindUnauthorized, http.StatusUnauthorized)

	ghost := session
	ghost.UserID = "deleted-user"
	ghost.IssuedAt = time.Now().Add(time.Hour)
	_, err = CheckSession(ctx, database, ghost)
	requireKind(t, err, KindUnauthorized, http.StatusUnauthorized)
}

func TestMetricsHistoryAndPrune(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		_, err := RecordMetrics(ctx, database, MetricSample{CapturedAt: base.Add(time.Duration(i) * time.Minute), ProcessRSSBytes: int64(i + 1)})
		require.NoError(t, err)
	}

	latest, err := LatestMetrics(ctx, database, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.EqualValues(t, 2, latest[0].ProcessRSSBytes)
	assert.EqualValues(t, 3, latest[1].ProcessRSSBytes)

	removed, err := PruneMetrics(ctx, database, base.Add(90*time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)

	remaining, err := LatestMetrics(ctx, database, 0)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.EqualValues(t, 3, remaining[0].ProcessRSSBytes)
}
