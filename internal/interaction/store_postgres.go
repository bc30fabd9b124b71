package interaction

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	id "truedial/pkg/domain"
)

// PostgresStore persists interactions in PostgreSQL, metadata as JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const interactionColumns = `id, initiator_id, receiver_id, receiver_phone, interaction_type, metadata, created_at`

func (s *PostgresStore) Save(ctx context.Context, in Interaction) error {
	metadata, err := json.Marshal(in.Metadata)
	if err != nil {
		return fmt.Errorf("marshal interaction metadata: %w", err)
	}
	var receiverID any
	if in.ReceiverID != nil {
		receiverID = in.ReceiverID.String()
	}

	query := `
		INSERT INTO interactions (` + interactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(ctx, query,
		in.ID.String(), in.InitiatorID.String(), receiverID,
		in.ReceiverPhone, string(in.Type), metadata, in.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save interaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByInitiator(ctx context.Context, initiatorID string, t Type, limit, offset int) ([]Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM interactions WHERE initiator_id = $1`
	args := []any{initiatorID}
	if t != "" {
		args = append(args, string(t))
		query += fmt.Sprintf(" AND interaction_type = $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return s.queryInteractions(ctx, query, args...)
}

func (s *PostgresStore) CountByInitiator(ctx context.Context, initiatorID string, t Type) (int, error) {
	query := `SELECT COUNT(*) FROM interactions WHERE initiator_id = $1`
	args := []any{initiatorID}
	if t != "" {
		args = append(args, string(t))
		query += fmt.Sprintf(" AND interaction_type = $%d", len(args))
	}
	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) ListInvolving(ctx context.Context, userID string, limit int) ([]Interaction, error) {
	query := `
		SELECT ` + interactionColumns + ` FROM interactions
		WHERE initiator_id = $1 OR receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return s.queryInteractions(ctx, query, userID, limit)
}

func (s *PostgresStore) CountInvolvingByType(ctx context.Context, userID string) (map[Type]int, error) {
	query := `
		SELECT interaction_type, COUNT(*) FROM interactions
		WHERE initiator_id = $1 OR receiver_id = $1
		GROUP BY interaction_type
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("count interactions by type: %w", err)
	}
	defer rows.Close()

	out := make(map[Type]int)
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, err
		}
		out[Type(t)] = n
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountInvolvingBetween(ctx context.Context, userID string, start, end time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM interactions
		WHERE (initiator_id = $1 OR receiver_id = $1)
		  AND created_at >= $2 AND created_at < $3
	`
	var n int
	if err := s.db.QueryRowContext(ctx, query, userID, start, end).Scan(&n); err != nil {
		return 0, fmt.Errorf("count interactions in range: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) TopByInitiator(ctx context.Context, initiatorID string, limit int) ([]PhoneCount, error) {
	query := `
		SELECT receiver_phone, COUNT(*) AS n FROM interactions
		WHERE initiator_id = $1
		GROUP BY receiver_phone
		ORDER BY n DESC, MIN(created_at)
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, initiatorID, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregate top contacts: %w", err)
	}
	defer rows.Close()

	var out []PhoneCount
	for rows.Next() {
		var pc PhoneCount
		if err := rows.Scan(&pc.PhoneNumber, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

func (s *PostgresStore) queryInteractions(ctx context.Context, query string, args ...any) ([]Interaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var out []Interaction
	for rows.Next() {
		in, err := scanInteraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func scanInteraction(rows *sql.Rows) (Interaction, error) {
	var (
		in               Interaction
		rawID, initiator string
		receiver         sql.NullString
		rawType          string
		metadata         []byte
	)
	if err := rows.Scan(&rawID, &initiator, &receiver, &in.ReceiverPhone,
		&rawType, &metadata, &in.CreatedAt); err != nil {
		return Interaction{}, err
	}

	interactionID, err := id.ParseInteractionID(rawID)
	if err != nil {
		return Interaction{}, fmt.Errorf("scan interaction id: %w", err)
	}
	initiatorID, err := id.ParseUserID(initiator)
	if err != nil {
		return Interaction{}, fmt.Errorf("scan interaction initiator: %w", err)
	}
	in.ID = interactionID
	in.InitiatorID = initiatorID
	in.Type = Type(rawType)

	if receiver.Valid {
		receiverID, err := id.ParseUserID(receiver.String)
		if err != nil {
			return Interaction{}, fmt.Errorf("scan interaction receiver: %w", err)
		}
		in.ReceiverID = &receiverID
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &in.Metadata); err != nil {
			return Interaction{}, fmt.Errorf("unmarshal interaction metadata: %w", err)
		}
	}
	return in, nil
}
