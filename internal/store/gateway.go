// Package store is the query and update facade over the external relational
// store holding user profiles, login records, and the approval audit table.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/luminohq/lumino-bot/internal/db"
)

// ErrNotFound reports that a lookup matched no row.
var ErrNotFound = errors.New("record not found")

type Gateway struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewGateway(log *slog.Logger, pool *pgxpool.Pool) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		pool:   pool,
		logger: log.With(slog.String("service", "store")),
	}
}

const userColumns = `u.id::text, COALESCE(u.name, ''), COALESCE(u.is_approved, false), to_jsonb(u)`

// ListUsers returns every user profile in the store's natural return order.
func (g *Gateway) ListUsers(ctx context.Context) ([]UserProfile, error) {
	rows, err := g.pool.Query(ctx, `SELECT `+userColumns+` FROM users_profile u`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// SearchUsers matches profiles by exact id, name substring, or email
// substring, case-insensitively. The id arm only applies when the query
// parses as a UUID.
func (g *Gateway) SearchUsers(ctx context.Context, query string) ([]UserProfile, error) {
	pattern := "%" + query + "%"

	var (
		rows pgx.Rows
		err  error
	)
	if pgID, uuidErr := db.ParseUUID(query); uuidErr == nil {
		rows, err = g.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users_profile u
			 WHERE u.id = $1 OR u.name ILIKE $2 OR u.email ILIKE $2`,
			pgID, pattern)
	} else {
		rows, err = g.pool.Query(ctx,
			`SELECT `+userColumns+` FROM users_profile u
			 WHERE u.name ILIKE $1 OR u.email ILIKE $1`,
			pattern)
	}
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// GetUser returns the profile for id, or ErrNotFound.
func (g *Gateway) GetUser(ctx context.Context, id string) (UserProfile, error) {
	row := g.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users_profile u WHERE u.id::text = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserProfile{}, ErrNotFound
		}
		return UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

const loginColumns = `l.id::text, COALESCE(l.email, ''), l.created_at, to_jsonb(l)`

// ListLogins returns every login record in the store's natural return order.
func (g *Gateway) ListLogins(ctx context.Context) ([]LoginRecord, error) {
	rows, err := g.pool.Query(ctx, `SELECT `+loginColumns+` FROM user_logins l`)
	if err != nil {
		return nil, fmt.Errorf("list logins: %w", err)
	}
	defer rows.Close()

	var logins []LoginRecord
	for rows.Next() {
		login, err := scanLogin(rows)
		if err != nil {
			return nil, fmt.Errorf("scan login: %w", err)
		}
		logins = append(logins, login)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logins: %w", err)
	}
	return logins, nil
}

// GetLoginByID returns the login record for id, or ErrNotFound.
func (g *Gateway) GetLoginByID(ctx context.Context, id string) (LoginRecord, error) {
	row := g.pool.QueryRow(ctx,
		`SELECT `+loginColumns+` FROM user_logins l WHERE l.id::text = $1 LIMIT 1`, id)
	login, err := scanLogin(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LoginRecord{}, ErrNotFound
		}
		return LoginRecord{}, fmt.Errorf("get login: %w", err)
	}
	return login, nil
}

// SetApproval writes the approval flag and the matching audit entry in one
// transaction, so the audit table never lags a committed flag change.
func (g *Gateway) SetApproval(ctx context.Context, id string, approved bool, entry AuditEntry) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set approval: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE users_profile SET is_approved = $2 WHERE id::text = $1`, id, approved)
	if err != nil {
		return fmt.Errorf("set approval: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO approval_logs (admin_id, admin_name, target_user_id, new_status, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.AdminID, entry.AdminName, entry.TargetUserID, entry.NewStatus, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("set approval: audit: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("set approval: commit: %w", err)
	}
	g.logger.Info("approval updated",
		slog.String("target_id", id),
		slog.Bool("approved", approved),
		slog.String("admin_id", entry.AdminID))
	return nil
}

func scanUsers(rows pgx.Rows) ([]UserProfile, error) {
	var users []UserProfile
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (UserProfile, error) {
	var user UserProfile
	if err := row.Scan(&user.ID, &user.Name, &user.Approved, &user.Attributes); err != nil {
		return UserProfile{}, err
	}
	return user, nil
}

func scanLogin(row pgx.Row) (LoginRecord, error) {
	var (
		login   LoginRecord
		created pgtype.Timestamptz
	)
	if err := row.Scan(&login.ID, &login.Email, &created, &login.Attributes); err != nil {
		return LoginRecord{}, err
	}
	login.CreatedAt = db.TimeFromPg(created)
	return login, nil
}
