package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	"github.com/Manakin-Wraith/Cheap-Cheap/logger"
	"github.com/Manakin-Wraith/Cheap-Cheap/repository"
	"go.uber.org/zap"
)

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Kind       apperrors.Kind
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// PromotionService defines the interface for serving the promotions dataset.
type PromotionService interface {
	// GetPromotions returns the dataset as compact JSON, read fresh from the repository.
	GetPromotions(ctx context.Context) (json.RawMessage, *ServiceError)
}

// promotionServiceImpl implements PromotionService.
type promotionServiceImpl struct {
	repo   repository.DatasetRepository
	logger *zap.Logger
}

// NewPromotionService creates a new PromotionService.
func NewPromotionService(repo repository.DatasetRepository, logger *zap.Logger) PromotionService {
	return &promotionServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// GetPromotions loads and parses the dataset on every call. The file's key
// order and number formatting are kept.
func (s *promotionServiceImpl) GetPromotions(ctx context.Context) (json.RawMessage, *ServiceError) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, s.fail(ctx, apperrors.ParseFailure("decode", s.repo.Location(), err))
	}
	return buf.Bytes(), nil
}

func (s *promotionServiceImpl) fail(ctx context.Context, err error) *ServiceError {
	kind := apperrors.KindOf(err)
	logger.WithRequest(ctx, s.logger).Error("Error loading data",
		zap.String("location", s.repo.Location()),
		zap.String("kind", kind.String()),
		zap.Error(err),
	)
	return &ServiceError{
		StatusCode: http.StatusInternalServerError,
		Kind:       kind,
		Message:    err.Error(),
	}
}
