package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	id "truedial/pkg/domain"
	"truedial/pkg/sentinel"
)

// PostgresStore persists spam reports in PostgreSQL. Pure I/O; the
// (reporter_id, phone_number) unique index enforces one report per pair.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const reportColumns = `id, phone_number, reporter_id, description, created_at`

func (s *PostgresStore) Save(ctx context.Context, r Report) error {
	query := `
		INSERT INTO scam_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		r.ID.String(), r.PhoneNumber, r.ReporterID.String(), r.Description, r.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, reportID string) (Report, error) {
	query := `SELECT ` + reportColumns + ` FROM scam_reports WHERE id = $1`
	r, err := scanReportRow(s.db.QueryRowContext(ctx, query, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, sentinel.ErrNotFound
	}
	return r, err
}

func (s *PostgresStore) List(ctx context.Context, phoneNumber string, start, end *time.Time) ([]Report, error) {
	query := `SELECT ` + reportColumns + ` FROM scam_reports WHERE 1=1`
	var args []any
	if phoneNumber != "" {
		args = append(args, phoneNumber)
		query += fmt.Sprintf(" AND phone_number = $%d", len(args))
	}
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r, err := scanReportRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountByPhone(ctx context.Context, phoneNumber string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM scam_reports WHERE phone_number = $1`, phoneNumber)
}

func (s *PostgresStore) CountByReporter(ctx context.Context, reporterID string) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM scam_reports WHERE reporter_id = $1`, reporterID)
}

func (s *PostgresStore) count(ctx context.Context, query string, arg any) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReportRow(row rowScanner) (Report, error) {
	var (
		r                  Report
		rawID, rawReporter string
	)
	if err := row.Scan(&rawID, &r.PhoneNumber, &rawReporter, &r.Description, &r.CreatedAt); err != nil {
		return Report{}, err
	}
	reportID, err := id.ParseReportID(rawID)
	if err != nil {
		return Report{}, fmt.Errorf("scan report id: %w", err)
	}
	reporter, err := id.ParseUserID(rawReporter)
	if err != nil {
		return Report{}, fmt.Errorf("scan report reporter: %w", err)
	}
	r.ID = reportID
	r.ReporterID = reporter
	return r, nil
}
