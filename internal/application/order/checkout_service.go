package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/cart"
	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/identity"
	"github.com/swiftbasket/backend/internal/domain/order"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/mail"
)

// CheckoutService turns a buyer's stored cart into an order
type CheckoutService struct {
	orderRepo   order.OrderRepository
	userCarts   cart.Repository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	mailer      mail.Mailer
	logger      *zap.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo order.OrderRepository,
	userCarts cart.Repository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	mailer mail.Mailer,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		userCarts:   userCarts,
		productRepo: productRepo,
		userRepo:    userRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// Checkout places an order from the buyer's stored cart. Each line
// snapshots the product's current name and price. The order insert and
// the cart wipe commit in one transaction; the invoice mail goes out
// only after that commit, and a mail failure never unwinds the order.
func (s *CheckoutService) Checkout(ctx context.Context, buyerID uuid.UUID) (*OrderInfo, error) {
	key := cart.ForUser(buyerID)

	lines, err := s.userCarts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, shared.ErrCartEmpty
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

	items := make([]order.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			// delisted since it was added, nothing left to sell
			s.logger.Debug("Skipping delisted product at checkout",
				zap.String("product_id", line.ProductID.String()),
			)
			continue
		}
		item, err := order.NewOrderItem(p.ID, p.Name, p.Price, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, shared.ErrCartEmpty
	}

	o, err := order.NewOrder(buyerID, items)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Place(ctx, o); err != nil {
		s.logger.Error("Failed to place order",
			zap.String("buyer_id", buyerID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("buyer_id", buyerID.String()),
		zap.String("total", o.Total.StringFixed(2)),
	)

	s.sendInvoice(ctx, o)

	info := orderInfoFromDomain(o)
	return &info, nil
}

// Get returns one of the buyer's orders. Orders belonging to other
// buyers read as not found.
func (s *CheckoutService) Get(ctx context.Context, buyerID, orderID uuid.UUID) (*OrderInfo, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.BuyerID != buyerID {
		return nil, shared.ErrNotFound
	}
	info := orderInfoFromDomain(o)
	return &info, nil
}

// List returns the buyer's order history, newest first
func (s *CheckoutService) List(ctx context.Context, buyerID uuid.UUID, input ListInput) ([]OrderInfo, error) {
	filter := shared.DefaultFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 && input.PageSize <= 100 {
		filter.PageSize = input.PageSize
	}

	orders, err := s.orderRepo.FindByBuyer(ctx, buyerID, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]OrderInfo, len(orders))
	for i := range orders {
		infos[i] = orderInfoFromDomain(&orders[i])
	}
	return infos, nil
}

func (s *CheckoutService) sendInvoice(ctx context.Context, o *order.Order) {
	buyer, err := s.userRepo.FindByID(ctx, o.BuyerID)
	if err != nil {
		s.logger.Error("Failed to load buyer for invoice",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return
	}

	body := mail.InvoiceBody(buyer.Username, o)
	if err := s.mailer.Send(ctx, buyer.Email, mail.InvoiceSubject, body); err != nil {
		s.logger.Error("Failed to send invoice mail",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
	}
}
