package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"saletracker-api/internal/domain"
	"saletracker-api/internal/repository"
	"saletracker-api/pkg/apierror"
)

// defaultListLimit caps how many sales a single list call returns.
const defaultListLimit = 100

// SalesService handles sale CRUD business logic: payload validation, tenant
// scoping via the caller's userID, and translation of store failures into
// the API error taxonomy.
type SalesService struct {
	repo     repository.SaleRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSalesService creates a new sales service.
func NewSalesService(repo repository.SaleRepository, logger *zap.Logger) *SalesService {
	return &SalesService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all sales for the tenant, newest saleDate first.
func (s *SalesService) List(ctx context.Context, userID string) ([]*domain.Sale, error) {
	sales, err := s.repo.List(ctx, userID, defaultListLimit)
	if err != nil {
		s.logger.Error("failed to list sales", zap.String("userId", userID), zap.Error(err))
		return nil, apierror.InternalError("Failed to retrieve sales")
	}
	return sales, nil
}

// Create validates the payload and persists a new sale for the tenant.
func (s *SalesService) Create(ctx context.Context, userID string, req *domain.SaleCreate) (*domain.Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierror.BadRequest(validationDetail(err))
	}

	sale, err := s.repo.Create(ctx, userID, req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apierror.Conflict(domain.ErrConflict.Error())
		}
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, apierror.InternalError(domain.ErrStoreUnavailable.Error())
		}
		s.logger.Error("failed to create sale", zap.String("userId", userID), zap.Error(err))
		return nil, apierror.InternalError("Failed to create sale")
	}

	s.logger.Info("sale created",
		zap.String("userId", userID),
		zap.String("saleId", sale.ID),
		zap.Float64("amount", sale.Amount),
	)
	return sale, nil
}

// Get returns a single sale. A sale that does not exist for this tenant,
// including one owned by another tenant, is reported as not found.
func (s *SalesService) Get(ctx context.Context, userID, saleID string) (*domain.Sale, error) {
	sale, err := s.repo.Get(ctx, userID, saleID)
	if err != nil {
		s.logger.Error("failed to get sale", zap.String("userId", userID), zap.String("saleId", saleID), zap.Error(err))
		return nil, apierror.InternalError("Failed to retrieve sale")
	}
	if sale == nil {
		return nil, apierror.NotFound("Sale not found")
	}
	return sale, nil
}

// Update validates the partial payload and applies it to an existing sale.
func (s *SalesService) Update(ctx context.Context, userID, saleID string, req *domain.SaleUpdate) (*domain.Sale, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apierror.BadRequest(validationDetail(err))
	}

	sale, err := s.repo.Update(ctx, userID, saleID, req)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, apierror.InternalError(domain.ErrStoreUnavailable.Error())
		}
		s.logger.Error("failed to update sale", zap.String("userId", userID), zap.String("saleId", saleID), zap.Error(err))
		return nil, apierror.InternalError("Failed to update sale")
	}
	if sale == nil {
		return nil, apierror.NotFound("Sale not found")
	}

	s.logger.Info("sale updated", zap.String("userId", userID), zap.String("saleId", saleID))
	return sale, nil
}

// Delete removes a sale. Deleting a sale that does not exist for this tenant
// is reported as not found.
func (s *SalesService) Delete(ctx context.Context, userID, saleID string) error {
	deleted, err := s.repo.Delete(ctx, userID, saleID)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return apierror.InternalError(domain.ErrStoreUnavailable.Error())
		}
		s.logger.Error("failed to delete sale", zap.String("userId", userID), zap.String("saleId", saleID), zap.Error(err))
		return apierror.InternalError("Failed to delete sale")
	}
	if !deleted {
		return apierror.NotFound("Sale not found")
	}

	s.logger.Info("sale deleted", zap.String("userId", userID), zap.String("saleId", saleID))
	return nil
}

// validationDetail flattens validator errors into a single human-readable
// detail string.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request payload"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed validation on '%s'", fe.Field(), fe.Tag()))
	}
	return "Invalid sale payload: " + strings.Join(parts, "; ")
}
