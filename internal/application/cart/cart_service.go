package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/shared"
)

// Service handles cart operations for both anonymous sessions and
// logged-in buyers. Session carts live in the ephemeral store, user
// carts in the database; the same cart.Repository interface fronts
// both, so every operation here works identically against either.
type Service struct {
	sessionCarts cart.Repository
	userCarts    cart.Repository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewService creates a new cart service
func NewService(
	sessionCarts cart.Repository,
	userCarts cart.Repository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessionCarts: sessionCarts,
		userCarts:    userCarts,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Get returns the cart with lines enriched from the catalog. Lines
// whose product has been delisted are kept and flagged rather than
// silently dropped.
func (s *Service) Get(ctx context.Context, key cart.Key) (*CartInfo, error) {
	repo, err := s.repoFor(key)
	if err != nil {
		return nil, err
	}

	lines, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, lines)
}

// Add puts quantity of a product into the cart, folding into an
// existing line. The product must exist at add time.
func (s *Service) Add(ctx context.Context, key cart.Key, input ItemInput) (*CartInfo, error) {
	repo, err := s.repoFor(key)
	if err != nil {
		return nil, err
	}
	if input.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if _, err := s.productRepo.FindByID(ctx, input.ProductID); err != nil {
		return nil, err
	}

	if err := repo.Add(ctx, key, input.ProductID, input.Quantity); err != nil {
		s.logger.Error("Failed to add cart line", zap.Error(err))
		return nil, err
	}

	lines, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, lines)
}

// SetQuantity overwrites a line's quantity. Zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, key cart.Key, input ItemInput) (*CartInfo, error) {
	repo, err := s.repoFor(key)
	if err != nil {
		return nil, err
	}

	if err := repo.SetQuantity(ctx, key, input.ProductID, input.Quantity); err != nil {
		s.logger.Error("Failed to set cart quantity", zap.Error(err))
		return nil, err
	}

	lines, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, lines)
}

// Remove drops a product from the cart
func (s *Service) Remove(ctx context.Context, key cart.Key, productID uuid.UUID) (*CartInfo, error) {
	repo, err := s.repoFor(key)
	if err != nil {
		return nil, err
	}

	if err := repo.Remove(ctx, key, productID); err != nil {
		return nil, err
	}

	lines, err := repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, lines)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, key cart.Key) error {
	repo, err := s.repoFor(key)
	if err != nil {
		return err
	}
	return repo.Clear(ctx, key)
}

// Merge folds an anonymous session cart into the buyer's stored cart
// at login. Quantities for products present on both sides add up,
// lines whose product no longer exists are skipped, and the session
// cart is cleared whether or not any lines survived the move.
func (s *Service) Merge(ctx context.Context, sessionID string, userID uuid.UUID) error {
	sessionKey := cart.ForSession(sessionID)
	userKey := cart.ForUser(userID)

	lines, err := s.sessionCarts.Get(ctx, sessionKey)
	if err != nil {
		return err
	}

	if len(lines) > 0 {
		ids := make([]uuid.UUID, len(lines))
		for i, l := range lines {
			ids[i] = l.ProductID
		}
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]bool, len(products))
		for i := range products {
			known[products[i].ID] = true
		}

		for _, line := range lines {
			if !known[line.ProductID] {
				s.logger.Debug("Skipping merge of delisted product",
					zap.String("product_id", line.ProductID.String()),
				)
				continue
			}
			if err := s.userCarts.Add(ctx, userKey, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
	}

	if err := s.sessionCarts.Clear(ctx, sessionKey); err != nil {
		// the merge already happened, a stale session cart is not fatal
		s.logger.Warn("Failed to clear session cart after merge",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Session cart merged",
		zap.String("user_id", userID.String()),
		zap.Int("lines", len(lines)),
	)
	return nil
}

// repoFor routes a key to its backing store
func (s *Service) repoFor(key cart.Key) (cart.Repository, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	if key.IsAnonymous() {
		return s.sessionCarts, nil
	}
	return s.userCarts, nil
}

func (s *Service) enrich(ctx context.Context, lines []cart.Line) (*CartInfo, error) {
	info := &CartInfo{
		Items:         make([]ItemInfo, 0, len(lines)),
		TotalQuantity: cart.TotalQuantity(lines),
		Total:         decimal.Zero,
	}
	if len(lines) == 0 {
		return info, nil
	}

	ids := make([]uuid.UUID, len(lines))
	for i, l := range lines {
		ids[i] = l.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, line := range lines {
		item := ItemInfo{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if p, ok := byID[line.ProductID]; ok {
			item.ProductName = p.Name
			item.UnitPrice = p.Price
			item.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			info.Total = info.Total.Add(item.LineTotal)
		} else {
			item.Unavailable = true
		}
		info.Items = append(info.Items, item)
	}
	return info, nil
}
