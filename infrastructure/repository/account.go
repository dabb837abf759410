package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/journey-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
)

const accountsTable = "accounts"

var accountColumns = []string{
	"id", "user_id", "provider", "provider_account_id", "access_token", "token_expires_at", "created_at", "updated_at",
}

// AccountRepository guarda as credenciais dos usuários nos provedores externos
type AccountRepository interface {
	GetByUserAndProvider(ctx context.Context, userID int, provider string) (*domain.Account, error)
	Upsert(ctx context.Context, account *domain.Account) error
	ListExpiringBetween(ctx context.Context, provider string, from, to time.Time) ([]*domain.Account, error)
	UpdateToken(ctx context.Context, accountID, accessToken string, expiresAt *time.Time) error
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

// GetByUserAndProvider retorna nil, nil quando o usuário não conectou o provedor
func (a *accountRepository) GetByUserAndProvider(ctx context.Context, userID int, provider string) (*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"user_id": userID, "provider": provider}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	acc := &domain.Account{}
	err = a.conn.QueryRowContext(ctx, accountsSQL, accountsArgs...).Scan(
		&acc.ID,
		&acc.UserID,
		&acc.Provider,
		&acc.ProviderAccountID,
		&acc.AccessToken,
		&acc.TokenExpiresAt,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	return acc, nil
}

// Upsert grava a credencial; um usuário tem no máximo uma por provedor
func (a *accountRepository) Upsert(ctx context.Context, account *domain.Account) error {
	if account.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "failed to generate id")
		}
		account.ID = id
	}

	sqlQuery, args, err := squirrel.
		Insert(accountsTable).
		Columns("id", "user_id", "provider", "provider_account_id", "access_token", "token_expires_at").
		Values(account.ID, account.UserID, account.Provider, account.ProviderAccountID, account.AccessToken, account.TokenExpiresAt).
		Suffix(`
			ON CONFLICT (user_id, provider) DO UPDATE SET
				provider_account_id = EXCLUDED.provider_account_id,
				access_token = EXCLUDED.access_token,
				token_expires_at = EXCLUDED.token_expires_at,
				updated_at = NOW()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if err := a.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&account.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return errors.Wrapf(pqErr, "database error (code: %s)", pqErr.Code)
		}
		return errors.Wrap(err, "failed to upsert account")
	}

	return nil
}

// ListExpiringBetween lista credenciais ainda válidas cujo token expira em (from, to).
// Tokens já vencidos ficam de fora até o usuário reconectar.
func (a *accountRepository) ListExpiringBetween(ctx context.Context, provider string, from, to time.Time) ([]*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"provider": provider}).
		Where(squirrel.NotEq{"token_expires_at": nil}).
		Where(squirrel.Gt{"token_expires_at": from}).
		Where(squirrel.Lt{"token_expires_at": to}).
		OrderBy("token_expires_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list expiring accounts")
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc := &domain.Account{}
		if err := rows.Scan(
			&acc.ID,
			&acc.UserID,
			&acc.Provider,
			&acc.ProviderAccountID,
			&acc.AccessToken,
			&acc.TokenExpiresAt,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan account")
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate accounts")
	}

	return accounts, nil
}

func (a *accountRepository) UpdateToken(ctx context.Context, accountID, accessToken string, expiresAt *time.Time) error {
	sqlQuery, args, err := squirrel.
		Update(accountsTable).
		Set("access_token", accessToken).
		Set("token_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	result, err := a.conn.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update token")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "error getting rows affected")
	}

	if rowsAffected == 0 {
		return errors.New("account not found")
	}

	return nil
}
