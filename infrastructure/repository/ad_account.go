package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/journey-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
)

const adAccountsTable = "ad_accounts"

// ErrDuplicate é retornado quando a linha já existe para o usuário
var ErrDuplicate = errors.New("record already exists")

type AdAccountRepository interface {
	ListByUser(ctx context.Context, userID int) ([]*domain.AdAccount, error)
	GetByUserAndExternalID(ctx context.Context, userID int, externalID string) (*domain.AdAccount, error)
	Create(ctx context.Context, adAccount *domain.AdAccount) error
}

type adAccountRepository struct {
	conn *postgres.Connection
}

func NewAdAccountRepository(conn *postgres.Connection) AdAccountRepository {
	return &adAccountRepository{
		conn: conn,
	}
}

func (r *adAccountRepository) ListByUser(ctx context.Context, userID int) ([]*domain.AdAccount, error) {
	adAccountsSQL, args, err := squirrel.
		Select("id", "user_id", "external_id", "name", "created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, adAccountsSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ad accounts")
	}
	defer rows.Close()

	adAccounts := make([]*domain.AdAccount, 0)
	for rows.Next() {
		acc := &domain.AdAccount{}
		if err := rows.Scan(&acc.ID, &acc.UserID, &acc.ExternalID, &acc.Name, &acc.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan ad account")
		}
		adAccounts = append(adAccounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate ad accounts")
	}

	return adAccounts, nil
}

// GetByUserAndExternalID retorna nil, nil quando a conta não é acompanhada pelo usuário
func (r *adAccountRepository) GetByUserAndExternalID(ctx context.Context, userID int, externalID string) (*domain.AdAccount, error) {
	adAccountsSQL, args, err := squirrel.
		Select("id", "user_id", "external_id", "name", "created_at").
		From(adAccountsTable).
		Where(squirrel.Eq{"user_id": userID, "external_id": externalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	acc := &domain.AdAccount{}
	err = r.conn.QueryRowContext(ctx, adAccountsSQL, args...).Scan(&acc.ID, &acc.UserID, &acc.ExternalID, &acc.Name, &acc.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get ad account")
	}

	return acc, nil
}

func (r *adAccountRepository) Create(ctx context.Context, adAccount *domain.AdAccount) error {
	if adAccount.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "failed to generate id")
		}
		adAccount.ID = id
	}

	sqlQuery, args, err := squirrel.
		Insert(adAccountsTable).
		Columns("id", "user_id", "external_id", "name").
		Values(adAccount.ID, adAccount.UserID, adAccount.ExternalID, adAccount.Name).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&adAccount.CreatedAt); err != nil {
		return translateInsertError(err, "failed to create ad account")
	}

	return nil
}

// translateInsertError converte violação de unicidade em ErrDuplicate
func translateInsertError(err error, msg string) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return errors.Wrap(err, msg)
}
