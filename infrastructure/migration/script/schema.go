package main

import (
	"context"
	"database/sql"
	"fmt"
)

// schema é aplicado em ordem dentro de uma única transação; todos os comandos são idempotentes
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		role_id INTEGER NOT NULL DEFAULT 2,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		provider TEXT NOT NULL,
		provider_account_id TEXT NOT NULL DEFAULT '',
		access_token TEXT NOT NULL,
		token_expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, provider)
	)`,
	`CREATE INDEX IF NOT EXISTS accounts_provider_expires_idx ON accounts (provider, token_expires_at)`,
	`CREATE TABLE IF NOT EXISTS ad_accounts (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		external_id TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, external_id)
	)`,
	`CREATE TABLE IF NOT EXISTS shops (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		access_token TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, name)
	)`,
}

const seedAdminSQL = `INSERT INTO users (name, email, password_hash, active, role_id)
	VALUES ($1, $2, $3, TRUE, $4)
	ON CONFLICT (email) DO NOTHING`

func applySchema(ctx context.Context, tx *sql.Tx) error {
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}

func seedAdmin(ctx context.Context, tx *sql.Tx, name, email, passwordHash string, roleID int) (bool, error) {
	res, err := tx.ExecContext(ctx, seedAdminSQL, name, email, passwordHash, roleID)
	if err != nil {
		return false, fmt.Errorf("seed admin: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
