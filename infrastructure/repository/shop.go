package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/journey-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/utils"
)

const shopsTable = "shops"

type ShopRepository interface {
	ListByUser(ctx context.Context, userID int) ([]*domain.Shop, error)
	GetByUserAndName(ctx context.Context, userID int, name string) (*domain.Shop, error)
	Create(ctx context.Context, shop *domain.Shop) error
}

type shopRepository struct {
	conn *postgres.Connection
}

func NewShopRepository(conn *postgres.Connection) ShopRepository {
	return &shopRepository{
		conn: conn,
	}
}

func (r *shopRepository) ListByUser(ctx context.Context, userID int) ([]*domain.Shop, error) {
	shopsSQL, args, err := squirrel.
		Select("id", "user_id", "name", "access_token", "created_at").
		From(shopsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	rows, err := r.conn.QueryContext(ctx, shopsSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list shops")
	}
	defer rows.Close()

	shops := make([]*domain.Shop, 0)
	for rows.Next() {
		shop := &domain.Shop{}
		if err := rows.Scan(&shop.ID, &shop.UserID, &shop.Name, &shop.AccessToken, &shop.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan shop")
		}
		shops = append(shops, shop)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate shops")
	}

	return shops, nil
}

// GetByUserAndName retorna nil, nil quando a loja não está conectada
func (r *shopRepository) GetByUserAndName(ctx context.Context, userID int, name string) (*domain.Shop, error) {
	shopsSQL, args, err := squirrel.
		Select("id", "user_id", "name", "access_token", "created_at").
		From(shopsTable).
		Where(squirrel.Eq{"user_id": userID, "name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build query")
	}

	shop := &domain.Shop{}
	err = r.conn.QueryRowContext(ctx, shopsSQL, args...).Scan(&shop.ID, &shop.UserID, &shop.Name, &shop.AccessToken, &shop.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get shop")
	}

	return shop, nil
}

func (r *shopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	if shop.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return errors.Wrap(err, "failed to generate id")
		}
		shop.ID = id
	}

	sqlQuery, args, err := squirrel.
		Insert(shopsTable).
		Columns("id", "user_id", "name", "access_token").
		Values(shop.ID, shop.UserID, shop.Name, shop.AccessToken).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "failed to build query")
	}

	if err := r.conn.QueryRowContext(ctx, sqlQuery, args...).Scan(&shop.CreatedAt); err != nil {
		return translateInsertError(err, "failed to create shop")
	}

	return nil
}
