package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafa37412/CeFoods/internal/entity"
	"github.com/Rafa37412/CeFoods/internal/messaging"
)

func (f *fixture) fill(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := f.cart.AddProduct(context.Background(), id)
		require.NoError(t, err)
	}
}

func (f *fixture) balance(t *testing.T) string {
	t.Helper()
	acc, err := f.session.Current(context.Background())
	require.NoError(t, err)
	require.NotNil(t, acc)
	return entity.FormatCurrency(acc.Balance)
}

func TestCheckoutScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "100.00")
	f.fill(t, "p1", "p1", "p2")

	co, err := f.checkout.Start(ctx, entity.PaymentBalance)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutRatingCollection, co.State)
	assert.Equal(t, "20.50", entity.FormatCurrency(co.Total))
	assert.Equal(t, "79.50", f.balance(t))

	store, err := f.stores.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, store.Sales)
	assert.Equal(t, "20.50", entity.FormatCurrency(store.Revenue))

	other, err := f.stores.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Zero(t, other.Sales)

	_, err = f.checkout.Skip(ctx)
	require.NoError(t, err)
	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestCheckoutBoundaryInclusive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "20.50")
	f.fill(t, "p1", "p1", "p2")

	_, err := f.checkout.Start(ctx, entity.PaymentBalance)
	require.NoError(t, err)
	assert.Equal(t, "0.00", f.balance(t))
}

func TestCheckoutInsufficientFundsChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "20.49")
	f.fill(t, "p1", "p1", "p2")
	before, err := f.cart.Cart(ctx)
	require.NoError(t, err)

	co, err := f.checkout.Start(ctx, entity.PaymentBalance)
	assert.ErrorIs(t, err, entity.ErrInsufficientFunds)
	assert.Equal(t, entity.CheckoutRejected, co.State)

	assert.Equal(t, "20.49", f.balance(t))
	after, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	store, err := f.stores.FindByID(ctx, "1")
	require.NoError(t, err)
	assert.Zero(t, store.Sales)

	_, err = f.checkout.Active()
	assert.ErrorIs(t, err, entity.ErrCheckoutNotActive)
}

func TestCheckoutCashSkipsBalance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "")
	f.fill(t, "p1", "p3", "p3")

	_, err := f.checkout.Start(ctx, entity.PaymentCash)
	require.NoError(t, err)
	assert.Equal(t, "0.00", f.balance(t))

	s1, err := f.stores.FindByID(ctx, "1")
	require.NoError(t, err)
	s2, err := f.stores.FindByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, 1, s1.Sales)
	assert.Equal(t, "6.00", entity.FormatCurrency(s1.Revenue))
	assert.Equal(t, 2, s2.Sales)
	assert.Equal(t, "10.00", entity.FormatCurrency(s2.Revenue))
}

func TestCheckoutGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.fill(t, "p1")

	_, err := f.checkout.Start(ctx, entity.PaymentBalance)
	assert.ErrorIs(t, err, entity.ErrNoSession)

	f.signUp(t, "ana", "50")
	require.NoError(t, f.cart.Clear(ctx))
	_, err = f.checkout.Start(ctx, entity.PaymentBalance)
	assert.ErrorIs(t, err, entity.ErrEmptyCart)
	assert.Equal(t, "50.00", f.balance(t))

	f.fill(t, "p1")
	_, err = f.checkout.Start(ctx, entity.PaymentMethod("card"))
	assert.ErrorIs(t, err, entity.ErrInvalidPayment)

	_, err = f.checkout.Start(ctx, entity.PaymentPix)
	require.NoError(t, err)
	_, err = f.checkout.Start(ctx, entity.PaymentPix)
	assert.ErrorIs(t, err, entity.ErrCheckoutPending)
}

func TestRatingFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "100")
	f.fill(t, "p1", "p3")

	co, err := f.checkout.Start(ctx, entity.PaymentBalance)
	require.NoError(t, err)
	assert.Equal(t, 0, co.Index)

	_, err = f.checkout.Rate(ctx, "p1", 6, "")
	assert.ErrorIs(t, err, entity.ErrInvalidRating)
	_, err = f.checkout.Rate(ctx, "p2", 5, "")
	assert.ErrorIs(t, err, entity.ErrProductNotFound)

	co, err = f.checkout.Rate(ctx, "p1", 5, "ótimo")
	require.NoError(t, err)
	assert.Equal(t, 5, co.Ratings["p1"].Stars)

	co, err = f.checkout.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, co.Index)

	co, err = f.checkout.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, co.Index)
	assert.Equal(t, entity.CheckoutRatingCollection, co.State)

	cart, err := f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.False(t, cart.IsEmpty())

	co, err = f.checkout.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.CheckoutComplete, co.State)

	cart, err = f.cart.Cart(ctx)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = f.checkout.Next(ctx)
	assert.ErrorIs(t, err, entity.ErrCheckoutNotActive)

	assert.Equal(t, []string{
		messaging.TopicAccountRegistered,
		messaging.TopicOrderSettled,
		messaging.TopicProductRated,
	}, f.publisher.topics())
	last := f.publisher.events[len(f.publisher.events)-1]
	assert.Equal(t, "p1", last.key)
	assert.Equal(t, 5, last.event.(entity.ProductRated).Rating)
}

func TestResetCompletesPendingCheckout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.signUp(t, "ana", "100")
	f.fill(t, "p1")
	_, err := f.checkout.Start(ctx, entity.PaymentBalance)
	require.NoError(t, err)

	require.NoError(t, f.checkout.Reset(ctx))
	require.NoError(t, f.checkout.Reset(ctx))
	_, err = f.checkout.Active()
	assert.ErrorIs(t, err, entity.ErrCheckoutNotActive)
}
