package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jlwbr/workplanner-sub000/internal/domain"
)

const dateLayout = "2006-01-02"

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// prefixed qualifies a comma separated column list with a table alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatDate(t time.Time) string {
	return domain.NormalizeDate(t).Format(dateLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound, tagged with the entity.
func notFound(err error, entity, id string) error {
	if err == sql.ErrNoRows {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}
