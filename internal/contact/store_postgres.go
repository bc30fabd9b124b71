package contact

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

// PostgresStore persists contacts in PostgreSQL. Pure I/O.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const contactColumns = `id, owner_id, first_name, last_name, phone_number, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, c Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID.String(), c.OwnerID.String(), c.FirstName, c.LastName,
		c.PhoneNumber, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("save contact: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, contactID string) (Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(s.db.QueryRowContext(ctx, query, contactID))
}

func (s *PostgresStore) FindByOwnerAndPhone(ctx context.Context, ownerID, phoneNumber string) (Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 AND phone_number = $2`
	return scanContact(s.db.QueryRowContext(ctx, query, ownerID, phoneNumber))
}

func (s *PostgresStore) FindByPhoneIn(ctx context.Context, phoneNumbers []string, ownerID string) ([]Contact, error) {
	if len(phoneNumbers) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(phoneNumbers))
	args := []any{ownerID}
	for i, p := range phoneNumbers {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, p)
	}
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 AND phone_number IN (` +
		strings.Join(placeholders, ", ") + `)`
	return s.queryContacts(ctx, query, args...)
}

func (s *PostgresStore) FindByNamePrefix(ctx context.Context, q, ownerID string) ([]Contact, error) {
	query := `
		SELECT ` + contactColumns + ` FROM contacts
		WHERE owner_id = $1 AND (first_name ILIKE $2 OR last_name ILIKE $2)
		ORDER BY first_name, last_name
	`
	return s.queryContacts(ctx, query, ownerID, escapeLike(q)+"%")
}

func (s *PostgresStore) FindByNameSubstring(ctx context.Context, q, ownerID string) ([]Contact, error) {
	query := `
		SELECT ` + contactColumns + ` FROM contacts
		WHERE owner_id = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2)
		  AND NOT (first_name ILIKE $3 OR last_name ILIKE $3)
		ORDER BY first_name, last_name
	`
	escaped := escapeLike(q)
	return s.queryContacts(ctx, query, ownerID, "%"+escaped+"%", escaped+"%")
}

func (s *PostgresStore) ExistsByOwnerAndPhone(ctx context.Context, ownerID, phoneNumber string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM contacts WHERE owner_id = $1 AND phone_number = $2)`
	var exists bool
	if err := s.db.QueryRowContext(ctx, query, ownerID, phoneNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("contact exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) queryContacts(ctx context.Context, query string, args ...any) ([]Contact, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var out []Contact
	for rows.Next() {
		c, err := scanContactRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row *sql.Row) (Contact, error) {
	c, err := scanContactRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Contact{}, sentinel.ErrNotFound
	}
	return c, err
}

func scanContactRow(row rowScanner) (Contact, error) {
	var (
		c              Contact
		rawID, ownerID string
	)
	if err := row.Scan(&rawID, &ownerID, &c.FirstName, &c.LastName,
		&c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return Contact{}, err
	}
	contactID, err := id.ParseContactID(rawID)
	if err != nil {
		return Contact{}, fmt.Errorf("scan contact id: %w", err)
	}
	owner, err := id.ParseUserID(ownerID)
	if err != nil {
		return Contact{}, fmt.Errorf("scan contact owner: %w", err)
	}
	c.ID = contactID
	c.OwnerID = owner
	return c, nil
}

func escapeLike(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(q)
}
