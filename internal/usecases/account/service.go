package account

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify"
	"github.com/vfg2006/journey-insights-api/infrastructure/integrator/shopify/shopifyclient"
	"github.com/vfg2006/journey-insights-api/infrastructure/repository"
	"github.com/vfg2006/journey-insights-api/internal/domain"
	"github.com/vfg2006/journey-insights-api/pkg/apiErrors"
)

type AccountService interface {
	ListAdAccounts(ctx context.Context, userID int) ([]*domain.AdAccount, error)
	TrackAdAccount(ctx context.Context, userID int, req domain.TrackAdAccountRequest) (*domain.AdAccount, error)
	ListConnectedShops(ctx context.Context, userID int) ([]domain.ConnectedShop, error)
	ConnectShop(ctx context.Context, userID int, req domain.ConnectShopRequest) (*domain.ConnectedShop, error)
	ConnectFacebook(ctx context.Context, userID int, req domain.ConnectFacebookRequest) (*domain.ConnectFacebookResponse, error)
	FacebookAccessToken(ctx context.Context, userID int) (string, error)
}

type Service struct {
	accountRepository   repository.AccountRepository
	adAccountRepository repository.AdAccountRepository
	shopRepository      repository.ShopRepository
	metaService         meta.MetaIntegrator
	shopifyService      shopify.ShopifyIntegrator
}

func NewService(
	accountRepository repository.AccountRepository,
	adAccountRepository repository.AdAccountRepository,
	shopRepository repository.ShopRepository,
	metaService meta.MetaIntegrator,
	shopifyService shopify.ShopifyIntegrator,
) AccountService {
	return &Service{
		accountRepository:   accountRepository,
		adAccountRepository: adAccountRepository,
		shopRepository:      shopRepository,
		metaService:         metaService,
		shopifyService:      shopifyService,
	}
}

func (s *Service) ListAdAccounts(ctx context.Context, userID int) ([]*domain.AdAccount, error) {
	adAccounts, err := s.adAccountRepository.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("account: failed to list ad accounts")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar contas de anúncio")
	}

	return adAccounts, nil
}

func (s *Service) TrackAdAccount(ctx context.Context, userID int, req domain.TrackAdAccountRequest) (*domain.AdAccount, error) {
	externalID := strings.TrimSpace(req.ExternalID)
	if externalID == "" {
		return nil, NewAccountError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "external_id is required")
	}

	adAccount := &domain.AdAccount{
		UserID:     userID,
		ExternalID: metaclient.NormalizeAdAccountID(externalID),
		Name:       strings.TrimSpace(req.Name),
	}

	if err := s.adAccountRepository.Create(ctx, adAccount); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewAccountError(ErrAdAccountDuplicated, apiErrors.ErrInvalidRequest, adAccount.ExternalID)
		}
		logrus.WithFields(logrus.Fields{
			"user_id":       userID,
			"ad_account_id": adAccount.ExternalID,
			"error":         err.Error(),
		}).Error("account: failed to track ad account")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar conta de anúncio")
	}

	return adAccount, nil
}

func (s *Service) ListConnectedShops(ctx context.Context, userID int) ([]domain.ConnectedShop, error) {
	shops, err := s.shopRepository.ListByUser(ctx, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("account: failed to list shops")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar lojas")
	}

	connected := make([]domain.ConnectedShop, 0, len(shops))
	for _, shop := range shops {
		connected = append(connected, toConnectedShop(shop))
	}

	return connected, nil
}

// ConnectShop valida o token com uma consulta leve à Shopify antes de salvar a loja
func (s *Service) ConnectShop(ctx context.Context, userID int, req domain.ConnectShopRequest) (*domain.ConnectedShop, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.AccessToken == "" {
		return nil, NewAccountError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "name and access_token are required")
	}
	if _, err := shopifyclient.ShopDomain(name); err != nil {
		return nil, NewAccountError(ErrInvalidInput, apiErrors.ErrInvalidFormat, "name must be a myshopify.com shop")
	}

	ok, err := s.shopifyService.CheckConnection(ctx, name, req.AccessToken)
	if err != nil {
		accErr := NewAccountError(ErrShopifyConnection, apiErrors.ErrExternalService, name)
		accErr.Cause = err
		return nil, accErr
	}
	if !ok {
		return nil, NewAccountError(ErrShopifyConnection, apiErrors.ErrInvalidCredentials, "Token da loja inválido")
	}

	shop := &domain.Shop{
		UserID:      userID,
		Name:        name,
		AccessToken: req.AccessToken,
	}

	if err := s.shopRepository.Create(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewAccountError(ErrShopDuplicated, apiErrors.ErrInvalidRequest, name)
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"shop":    name,
			"error":   err.Error(),
		}).Error("account: failed to save shop")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar loja")
	}

	connected := toConnectedShop(shop)
	return &connected, nil
}

// ConnectFacebook troca o código OAuth por um token de longa duração e grava a credencial
func (s *Service) ConnectFacebook(ctx context.Context, userID int, req domain.ConnectFacebookRequest) (*domain.ConnectFacebookResponse, error) {
	if req.Code == "" || req.RedirectURI == "" {
		return nil, NewAccountError(ErrInvalidInput, apiErrors.ErrMissingRequiredData, "code and redirect_uri are required")
	}

	acc, err := s.metaService.ConnectAccount(ctx, req.Code, req.RedirectURI)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("account: failed to connect facebook")
		accErr := NewAccountError(ErrMetaIntegration, apiErrors.ErrExternalService, "Falha ao conectar conta do Facebook")
		accErr.Cause = err
		return nil, accErr
	}

	acc.UserID = userID
	if err := s.accountRepository.Upsert(ctx, acc); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"error":   err.Error(),
		}).Error("account: failed to save facebook credential")
		return nil, NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar credencial")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":          userID,
		"token_expires_at": acc.TokenExpiresAt,
	}).Info("account: facebook connected")

	return &domain.ConnectFacebookResponse{
		ProviderAccountID: acc.ProviderAccountID,
		TokenExpiresAt:    acc.TokenExpiresAt,
	}, nil
}

// FacebookAccessToken retorna "" quando o usuário não conectou o Facebook
func (s *Service) FacebookAccessToken(ctx context.Context, userID int) (string, error) {
	acc, err := s.accountRepository.GetByUserAndProvider(ctx, userID, domain.ProviderFacebook)
	if err != nil {
		return "", NewAccountError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if acc == nil {
		return "", nil
	}
	return acc.AccessToken, nil
}

func toConnectedShop(shop *domain.Shop) domain.ConnectedShop {
	return domain.ConnectedShop{
		ID:   shop.ID,
		Name: shop.Name,
		Shop: domain.ConnectedShopRef{Name: shop.Name},
	}
}
