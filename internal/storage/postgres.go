package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Mostafa1201/coding-challenge-solution/internal/analytics"
	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
)

// Postgres reads the user registry from a table with id and age columns
type Postgres struct {
	db    *pgxpool.Pool
	table string
}

func NewPostgres(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	db, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return &Postgres{db: db, table: cfg.Table}, nil
}

func usersQuery(table string) string {
	return fmt.Sprintf(`SELECT id::text, age::float8 FROM %s`, pgx.Identifier(strings.Split(table, ".")).Sanitize())
}

func (p *Postgres) LoadUsers(ctx context.Context) (analytics.Users, error) {
	rows, err := p.db.Query(ctx, usersQuery(p.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make(analytics.Users)
	for rows.Next() {
		var (
			u   analytics.User
			age *float64
		)
		if err := rows.Scan(&u.ID, &age); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if age != nil {
			u.Age = *age
		}
		users[u.ID] = u
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row error during users query: %w", err)
	}

	return users, nil
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
