package audit

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-vault/pkg/utils"
)

// PostgresAuditRepository implements Repository using PostgreSQL
type PostgresAuditRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAuditRepository creates a new PostgreSQL audit repository
func NewPostgresAuditRepository(pool *pgxpool.Pool) *PostgresAuditRepository {
	return &PostgresAuditRepository{
		pool: pool,
	}
}

// Create appends an audit entry
func (r *PostgresAuditRepository) Create(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_log (id, ts, principal, ip, action, target, success, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.Timestamp,
		utils.ToNullString(entry.Principal),
		utils.ToNullString(entry.IP),
		entry.Action,
		utils.ToNullString(entry.Target),
		entry.Success,
		utils.ToNullString(entry.Message),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}

// FindByPrincipal returns entries recorded for a principal, oldest first
func (r *PostgresAuditRepository) FindByPrincipal(ctx context.Context, principal string) ([]Entry, error) {
	query := `
		SELECT id, ts, COALESCE(principal, ''), COALESCE(ip, ''), action,
		       COALESCE(target, ''), success, COALESCE(message, '')
		FROM audit_log
		WHERE principal = $1
		ORDER BY ts
	`

	rows, err := r.pool.Query(ctx, query, principal)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		err := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.Principal,
			&entry.IP,
			&entry.Action,
			&entry.Target,
			&entry.Success,
			&entry.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
