package review

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/order"
	"github.com/swiftbasket/backend/internal/domain/review"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// Service handles product reviews
type Service struct {
	reviewRepo  review.ReviewRepository
	productRepo catalog.ProductRepository
	orderRepo   order.OrderRepository
	logger      *zap.Logger
}

// NewService creates a new review service
func NewService(
	reviewRepo review.ReviewRepository,
	productRepo catalog.ProductRepository,
	orderRepo order.OrderRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		logger:      logger,
	}
}

// Create writes a review for a product. The verified flag is decided
// here, once: the reviewer counts as verified when any of their order
// lines snapshots a product with the same name. One review per user
// per product rides on the database's unique index, so a concurrent
// double submit cannot slip through.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*ReviewInfo, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	verified, err := s.orderRepo.HasPurchased(ctx, userID, product.Name)
	if err != nil {
		s.logger.Error("Failed to check purchase history",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	r, err := review.NewReview(product.ID, userID, input.Rating, input.Comment, verified)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, r); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("ALREADY_REVIEWED", "You have already reviewed this product")
		}
		s.logger.Error("Failed to save review", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Review created",
		zap.String("review_id", r.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Bool("verified", r.IsVerified),
	)

	info := reviewInfoFromDomain(r)
	return &info, nil
}

// ListByProduct returns a page of a product's reviews with the total count
func (s *Service) ListByProduct(ctx context.Context, productID uuid.UUID, input ListInput) (*ListResult, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 && input.PageSize <= 100 {
		filter.PageSize = input.PageSize
	}

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.reviewRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	avg, err := s.reviewRepo.AvgRatingByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	infos := make([]ReviewInfo, len(reviews))
	for i := range reviews {
		infos[i] = reviewInfoFromDomain(&reviews[i])
	}
	return &ListResult{Reviews: infos, Total: total, AvgRating: avg}, nil
}
