package checkout

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/aws"
	"github.com/imrishuroy/go-commerce-api/internal/carts"
	"github.com/imrishuroy/go-commerce-api/internal/orders"
	"github.com/imrishuroy/go-commerce-api/internal/products"
	"github.com/imrishuroy/go-commerce-api/internal/users"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "checkout").Logger()

// AccountStore resolves buyers.
type AccountStore interface {
	Get(ctx context.Context, userID string) (*users.User, error)
}

// CatalogStore resolves products and owns the atomic stock adjustments.
// DecrementStock must fail with products.ErrInsufficientStock, leaving stock
// unchanged, when not enough is available; IncrementStock is its compensation.
type CatalogStore interface {
	Get(ctx context.Context, productID string) (*products.Product, error)
	DecrementStock(ctx context.Context, productID string, quantity int) error
	IncrementStock(ctx context.Context, productID string, quantity int) error
}

// CartStore reads and deletes a user's cart.
type CartStore interface {
	Get(ctx context.Context, userID string) (*carts.Cart, error)
	Delete(ctx context.Context, userID string) error
}

// OrderStore persists placed orders.
type OrderStore interface {
	Insert(ctx context.Context, order orders.Order) error
}

// Notifier broadcasts the new-order event. Best-effort: failures are logged,
// never surfaced, and placement never blocks on delivery.
type Notifier interface {
	PublishOrderPlaced(ctx context.Context, ev aws.OrderPlacedEvent) error
}

// Recorder emits placement metrics. Best-effort like the Notifier.
type Recorder interface {
	RecordOrderPlaced(ctx context.Context, totalAmount float64) error
}

// Charges is the checkout pricing policy, injected at construction instead of
// read from the environment ad hoc.
type Charges struct {
	Delivery        float64 // applied when the subtotal is below FreeDeliveryMin
	FreeDeliveryMin float64
	Handling        float64 // flat per-order charge
}

// Service converts a user's cart into a persisted order, decrementing product
// stock and clearing the cart, or fails without leaving stock changed.
type Service struct {
	accounts AccountStore
	catalog  CatalogStore
	carts    CartStore
	orders   OrderStore
	notifier Notifier
	metrics  Recorder
	charges  Charges

	nowFunc func() time.Time
}

// NewService wires a checkout Service. notifier and metrics may be nil.
func NewService(accounts AccountStore, catalog CatalogStore, cartStore CartStore, orderStore OrderStore, notifier Notifier, metrics Recorder, charges Charges) *Service {
	return &Service{
		accounts: accounts,
		catalog:  catalog,
		carts:    cartStore,
		orders:   orderStore,
		notifier: notifier,
		metrics:  metrics,
		charges:  charges,
		nowFunc:  time.Now,
	}
}

// PlaceOrder runs the placement flow:
//
//	resolve user and address -> validate cart against live stock ->
//	conditional decrements (compensated on failure) -> persist order ->
//	best-effort notify -> delete cart.
//
// The cart is deleted only after the order is durable, so a crash in between
// cannot lose a paid order; the order id's entropy protects a retry with the
// same cart from colliding.
func (s *Service) PlaceOrder(ctx context.Context, userID, addressID, paymentMode string) (*orders.Order, error) {
	user, err := s.accounts.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}

	address := user.AddressByID(addressID)
	if address == nil {
		return nil, apperr.New(apperr.KindInvalidInput, "Invalid address selected")
	}

	if paymentMode == "" {
		paymentMode = orders.PaymentCashOnDelivery
	}
	if paymentMode != orders.PaymentCashOnDelivery && paymentMode != orders.PaymentOnline {
		return nil, apperr.New(apperr.KindInvalidInput, "Invalid payment mode")
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperr.New(apperr.KindInvalidInput, "Cart is empty")
	}

	// Validation pass: resolve every line against live price and stock before
	// touching anything. Fail fast on the first violation.
	var subtotal float64
	items := make([]orders.Item, 0, len(cart.Items))
	for _, line := range cart.Items {
		product, err := s.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		if product == nil {
			return nil, apperr.New(apperr.KindInvalidInput, "Product not found in cart")
		}
		if product.Stock < line.Quantity {
			return nil, apperr.Newf(apperr.KindInsufficientStock,
				"Insufficient stock for %s. Available: %d, Requested: %d",
				product.Name, product.Stock, line.Quantity)
		}

		subtotal += product.Price * float64(line.Quantity)
		items = append(items, orders.Item{
			ProductID:   product.ProductID,
			Quantity:    line.Quantity,
			Price:       product.Price,
			ProductName: product.Name,
		})
	}

	// Mutation pass: conditional decrements close the check-then-act window.
	// A lost race rolls back every earlier decrement before failing.
	for i, it := range items {
		if err := s.catalog.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.compensate(ctx, items[:i])
			if err == products.ErrInsufficientStock {
				return nil, apperr.Newf(apperr.KindInsufficientStock,
					"Insufficient stock for %s. Available stock changed, Requested: %d",
					it.ProductName, it.Quantity)
			}
			return nil, apperr.Internal(err)
		}
	}

	deliveryCharge := float64(0)
	if subtotal < s.charges.FreeDeliveryMin {
		deliveryCharge = s.charges.Delivery
	}
	handlingCharge := s.charges.Handling
	grandTotal := subtotal + deliveryCharge + handlingCharge

	now := s.nowFunc()
	order := orders.Order{
		OrderID:        newOrderID(now),
		UserID:         userID,
		Items:          items,
		TotalAmount:    grandTotal,
		DeliveryCharge: deliveryCharge,
		HandlingCharge: handlingCharge,
		Status:         orders.StatusPending,
		Address:        *address, // deep copy; Address holds no reference types
		PaymentMode:    paymentMode,
		PaymentStatus:  paymentStatusFor(paymentMode),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		s.compensate(ctx, items)
		if err == orders.ErrDuplicateOrderID {
			return nil, apperr.Wrap(apperr.KindConflict, "Failed to place order, please try again", err)
		}
		return nil, apperr.Internal(err)
	}

	s.notify(ctx, order, user)

	// Cart deletion is the last step so a crash before it cannot lose a
	// durable order. If it fails the placement still succeeded; the stale
	// cart is surfaced in logs, not to the buyer.
	if err := s.carts.Delete(ctx, userID); err != nil {
		logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to clear cart after placement")
	}

	return &order, nil
}

// compensate re-increments stock for every already-decremented line.
// Failures are logged; there is nothing further to unwind.
func (s *Service) compensate(ctx context.Context, decremented []orders.Item) {
	for _, it := range decremented {
		if err := s.catalog.IncrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			logger.Error().Err(err).
				Str("product_id", it.ProductID).
				Int("quantity", it.Quantity).
				Msg("stock compensation failed")
		}
	}
}

func (s *Service) notify(ctx context.Context, order orders.Order, user *users.User) {
	if s.notifier != nil {
		ev := aws.OrderPlacedEvent{
			OrderID: order.OrderID,
			User: aws.OrderEventUser{
				Name:   user.Name,
				Email:  user.Email,
				Mobile: user.Mobile,
			},
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt,
		}
		if err := s.notifier.PublishOrderPlaced(ctx, ev); err != nil {
			logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("order event publish failed")
		}
	}
	if s.metrics != nil {
		if err := s.metrics.RecordOrderPlaced(ctx, order.TotalAmount); err != nil {
			logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("order metrics emit failed")
		}
	}
}

func paymentStatusFor(mode string) string {
	if mode == orders.PaymentCashOnDelivery {
		return orders.PaymentStatusPending
	}
	return orders.PaymentStatusPaid
}

// newOrderID combines the creation timestamp with a short random alphanumeric
// suffix. Collision-resistant under concurrent placement without a
// coordinating sequence; the store's insert guard catches the rest.
func newOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", now.UnixMilli(), suffix)
}
