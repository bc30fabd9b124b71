package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	id "truedial/pkg/domain"
	"truedial/pkg/sentinel"
)

// PostgresStore persists users in PostgreSQL. Pure I/O; validation and phone
// normalization happen in the service layer.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const userColumns = `id, phone_number, first_name, last_name, email, password_hash, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, u User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID.String(), u.PhoneNumber, u.FirstName, u.LastName, u.Email,
		u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, userID string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, userID))
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phoneNumber string) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return scanUser(s.db.QueryRowContext(ctx, query, phoneNumber))
}

func (s *PostgresStore) FindByPhoneIn(ctx context.Context, phoneNumbers []string) ([]User, error) {
	if len(phoneNumbers) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(phoneNumbers))
	args := make([]any, len(phoneNumbers))
	for i, p := range phoneNumbers {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = p
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number IN (` +
		strings.Join(placeholders, ", ") + `)`
	return s.queryUsers(ctx, query, args...)
}

func (s *PostgresStore) FindByNamePrefix(ctx context.Context, q string) ([]User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE first_name ILIKE $1 OR last_name ILIKE $1
		ORDER BY first_name, last_name
	`
	return s.queryUsers(ctx, query, escapeLike(q)+"%")
}

func (s *PostgresStore) FindByNameSubstring(ctx context.Context, q string) ([]User, error) {
	query := `
		SELECT ` + userColumns + ` FROM users
		WHERE (first_name ILIKE $1 OR last_name ILIKE $1)
		  AND NOT (first_name ILIKE $2 OR last_name ILIKE $2)
		ORDER BY first_name, last_name
	`
	escaped := escapeLike(q)
	return s.queryUsers(ctx, query, "%"+escaped+"%", escaped+"%")
}

func (s *PostgresStore) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row *sql.Row) (User, error) {
	u, err := scanUserRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, sentinel.ErrNotFound
	}
	return u, err
}

func scanUserRow(row rowScanner) (User, error) {
	var (
		u     User
		rawID string
		email sql.NullString
	)
	if err := row.Scan(&rawID, &u.PhoneNumber, &u.FirstName, &u.LastName, &email,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	parsed, err := id.ParseUserID(rawID)
	if err != nil {
		return User{}, fmt.Errorf("scan user id: %w", err)
	}
	u.ID = parsed
	u.Email = email.String
	return u, nil
}

// escapeLike neutralizes LIKE wildcards in user-supplied query text.
func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
