package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type credentialRepoPG struct{ conn queryable }

func NewCredentialRepoPG(pool *pgxpool.Pool) CredentialRepository {
	return &credentialRepoPG{conn: pool}
}

const credCols = `serial_no, "user", environment, username, password, created_at`

func (r *credentialRepoPG) scanRow(row pgx.Row) (*Credential, error) {
	var c Credential
	err := row.Scan(&c.SerialNo, &c.User, &c.Environment, &c.Username, &c.Password, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *credentialRepoPG) Find(ctx context.Context, user, environment string) (*Credential, error) {
	return r.scanRow(r.conn.QueryRow(ctx, `
		SELECT `+credCols+` FROM cerner_credentials
		WHERE lower("user") = lower($1) AND lower(environment) = lower($2)
		ORDER BY serial_no
		LIMIT 1`, user, environment))
}

func (r *credentialRepoPG) List(ctx context.Context, environment string, limit, offset int) ([]*Credential, int, error) {
	query := `SELECT ` + credCols + ` FROM cerner_credentials WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM cerner_credentials WHERE 1=1`
	var args []interface{}
	idx := 1

	if environment != "" {
		query += fmt.Sprintf(` AND lower(environment) = lower($%d)`, idx)
		countQuery += fmt.Sprintf(` AND lower(environment) = lower($%d)`, idx)
		args = append(args, environment)
		idx++
	}

	var total int
	if err := r.conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY serial_no LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Credential
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}
