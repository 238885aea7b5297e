package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
	"github.com/Rafa37412/CeFoods/internal/repository"
)

// CheckoutRecorder counts checkout outcomes.
type CheckoutRecorder interface {
	RecordCheckout(method, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCheckout(string, string) {}

// CheckoutService runs purchases from validation to the rating flow. It holds
// at most one checkout in the rating stage.
type CheckoutService struct {
	sessions   *SessionService
	carts      repository.CartRepository
	settlement repository.SettlementRepository
	publisher  messaging.Publisher
	recorder   CheckoutRecorder
	log        *zap.SugaredLogger
	now        func() time.Time

	mu     sync.Mutex
	active *entity.Checkout
}

func NewCheckoutService(
	sessions *SessionService,
	carts repository.CartRepository,
	settlement repository.SettlementRepository,
	publisher messaging.Publisher,
	recorder CheckoutRecorder,
	log *zap.SugaredLogger,
) *CheckoutService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &CheckoutService{
		sessions:   sessions,
		carts:      carts,
		settlement: settlement,
		publisher:  publisher,
		recorder:   recorder,
		log:        log,
		now:        time.Now,
	}
}

// Start validates the cart against the bound account and settles it. On
// success the checkout is returned in the rating stage.
func (s *CheckoutService) Start(ctx context.Context, method entity.PaymentMethod) (entity.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		return entity.Checkout{}, entity.ErrCheckoutPending
	}

	account, err := s.sessions.Current(ctx)
	if err != nil {
		return entity.Checkout{}, err
	}
	if account == nil {
		return entity.Checkout{}, entity.ErrNoSession
	}
	cart, err := s.carts.Load(ctx)
	if err != nil {
		return entity.Checkout{}, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return entity.Checkout{}, entity.ErrEmptyCart
	}

	co := entity.NewCheckout(uuid.NewString(), account.ID, method, cart, s.now().UTC())
	s.log.Infow("Service: Starting checkout", "checkout_id", co.ID, "account_id", account.ID,
		"method", method, "total", entity.FormatCurrency(co.Total), "items", cart.Count())

	if err := co.Validate(account.Balance); err != nil {
		s.log.Infow("Checkout rejected", "checkout_id", co.ID, "reason", err)
		s.recorder.RecordCheckout(string(method), "rejected")
		return *co, err
	}

	updated, err := s.settlement.Settle(ctx, account.ID, co.Debit(), co.Sales())
	if err != nil {
		s.recorder.RecordCheckout(string(method), "failed")
		return entity.Checkout{}, fmt.Errorf("failed to settle checkout: %w", err)
	}
	if err := co.Settled(); err != nil {
		return entity.Checkout{}, err
	}
	s.recorder.RecordCheckout(string(method), "settled")
	s.log.Infow("Checkout settled", "checkout_id", co.ID, "balance", entity.FormatCurrency(updated.Balance))

	messaging.Emit(ctx, s.publisher, s.log, co.ID, entity.OrderSettled{
		CheckoutID:    co.ID,
		AccountID:     account.ID,
		PaymentMethod: co.Method,
		Items:         co.Lines,
		Sales:         co.Sales(),
		TotalPrice:    co.Total,
		SettledAt:     s.now().UTC(),
	})

	s.active = co
	return snapshot(co), nil
}

// Active returns the checkout in the rating stage.
func (s *CheckoutService) Active() (entity.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return entity.Checkout{}, entity.ErrCheckoutNotActive
	}
	return snapshot(s.active), nil
}

// Rate drafts the rating of one purchased product.
func (s *CheckoutService) Rate(ctx context.Context, productID string, stars int, comment string) (entity.Checkout, error) {
	return s.step(ctx, func(co *entity.Checkout) (bool, error) {
		return false, co.Rate(productID, stars, comment)
	})
}

// Next moves to the following product; moving past the last one completes the
// checkout.
func (s *CheckoutService) Next(ctx context.Context) (entity.Checkout, error) {
	return s.step(ctx, (*entity.Checkout).Next)
}

// Prev moves back one product.
func (s *CheckoutService) Prev(ctx context.Context) (entity.Checkout, error) {
	return s.step(ctx, func(co *entity.Checkout) (bool, error) {
		return false, co.Prev()
	})
}

// Skip abandons the remaining ratings and completes the checkout.
func (s *CheckoutService) Skip(ctx context.Context) (entity.Checkout, error) {
	return s.step(ctx, func(co *entity.Checkout) (bool, error) {
		return true, co.Skip()
	})
}

func (s *CheckoutService) step(ctx context.Context, fn func(*entity.Checkout) (bool, error)) (entity.Checkout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return entity.Checkout{}, entity.ErrCheckoutNotActive
	}
	done, err := fn(s.active)
	if err != nil {
		return snapshot(s.active), err
	}
	if !done {
		return snapshot(s.active), nil
	}
	co := s.active
	if err := s.complete(ctx, co); err != nil {
		return snapshot(co), err
	}
	return snapshot(co), nil
}

// complete clears the cart, publishes the ratings and discards the checkout.
func (s *CheckoutService) complete(ctx context.Context, co *entity.Checkout) error {
	s.log.Infow("Service: Completing checkout", "checkout_id", co.ID)
	if err := s.carts.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	for _, rated := range co.Rated() {
		messaging.Emit(ctx, s.publisher, s.log, rated.ProductID, rated)
	}
	s.active = nil
	return nil
}

// Reset drops a checkout left in the rating stage, completing it.
func (s *CheckoutService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	co := s.active
	if err := co.Skip(); err != nil && !errors.Is(err, entity.ErrCheckoutNotActive) {
		return err
	}
	return s.complete(ctx, co)
}

func snapshot(co *entity.Checkout) entity.Checkout {
	out := *co
	out.Lines = append([]entity.CartLine(nil), co.Lines...)
	out.Ratings = make(map[string]entity.Rating, len(co.Ratings))
	for k, v := range co.Ratings {
		out.Ratings[k] = v
	}
	return out
}
