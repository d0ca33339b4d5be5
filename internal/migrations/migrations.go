package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:embed sql/*.sql
var embedded embed.FS

type migration struct {
	Name string
	Path string
}

// Apply runs the embedded migrations that are not yet recorded in schema_migrations.
func Apply(db *sqlx.DB) error {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		return err
	}
	return ApplyFS(db, sub)
}

// ApplyFS runs every V<n>__name.sql file at the root of fsys in version order.
func ApplyFS(db *sqlx.DB, fsys fs.FS) error {
	if err := ensureTable(db); err != nil {
		return err
	}
	migs, err := listMigrations(fsys)
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}
	for _, mig := range migs {
		version := parseVersion(mig.Name)
		if applied.names[mig.Name] || (version != "" && applied.versions[version]) {
			continue
		}
		if err := applyMigration(db, fsys, mig); err != nil {
			return err
		}
	}
	return nil
}

// Applied lists the recorded migration names in application order.
func Applied(db *sqlx.DB) ([]string, error) {
	names := []string{}
	err := db.Select(&names, `SELECT name FROM schema_migrations ORDER BY id`)
	return names, err
}

func ensureTable(db *sqlx.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  id INTEGER PRIMARY KEY,
  version TEXT NULL,
  name TEXT NOT NULL UNIQUE,
  applied_at TIMESTAMP NOT NULL
)`)
	return err
}

func listMigrations(fsys fs.FS) ([]migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	migs := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		migs = append(migs, migration{
			Name: name,
			Path: path.Join(".", name),
		})
	}
	sort.Slice(migs, func(i, j int) bool {
		iVersion, iOk := parseVersionNumber(migs[i].Name)
		jVersion, jOk := parseVersionNumber(migs[j].Name)
		switch {
		case iOk && jOk && iVersion != jVersion:
			return iVersion < jVersion
		case iOk != jOk:
			return iOk
		default:
			return migs[i].Name < migs[j].Name
		}
	})
	return migs, nil
}

type appliedSet struct {
	names    map[string]bool
	versions map[string]bool
}

func appliedMigrations(db *sqlx.DB) (appliedSet, error) {
	rows := []struct {
		Name    string  `db:"name"`
		Version *string `db:"version"`
	}{}
	if err := db.Select(&rows, `SELECT name, version FROM schema_migrations`); err != nil {
		return appliedSet{}, err
	}
	set := appliedSet{names: map[string]bool{}, versions: map[string]bool{}}
	for _, row := range rows {
		set.names[row.Name] = true
		if row.Version != nil {
			set.versions[*row.Version] = true
		}
	}
	return set, nil
}

func applyMigration(db *sqlx.DB, fsys fs.FS, mig migration) error {
	content, err := fs.ReadFile(fsys, mig.Path)
	if err != nil {
		return err
	}
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, stmt := range splitStatements(string(content)) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply %s: %w", mig.Name, err)
		}
	}
	var nextID int64
	if err := tx.Get(&nextID, `SELECT COALESCE(MAX(id), 0) + 1 FROM schema_migrations`); err != nil {
		return err
	}
	_, err = tx.Exec(db.Rebind(`INSERT INTO schema_migrations (id, version, name, applied_at) VALUES (?, ?, ?, ?)`),
		nextID, nullIfEmpty(parseVersion(mig.Name)), mig.Name, time.Now().UTC())
	if err != nil {
		return err
	}
	committed = true
	return tx.Commit()
}

// splitStatements cuts a migration file on ';' line endings. Migration files
// hold plain DDL without procedural bodies.
func splitStatements(content string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			stmts = append(stmts, strings.TrimSuffix(stmt, ";"))
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}

func parseVersion(name string) string {
	if !strings.HasPrefix(name, "V") {
		return ""
	}
	parts := strings.SplitN(name[1:], "__", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}

func parseVersionNumber(name string) (int, bool) {
	raw := parseVersion(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func nullIfEmpty(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
