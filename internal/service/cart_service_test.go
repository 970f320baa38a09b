package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/service"
)

func cartFixtures() (*fakeCartRepo, *fakeProductRepo, *service.CartService) {
	carts := newFakeCartRepo()
	products := newFakeProductRepo()
	svc := service.NewCartService(carts, products, zap.NewNop())
	return carts, products, svc
}

func TestCartServiceAddItem(t *testing.T) {
	ctx := t.Context()

	_, products, svc := cartFixtures()
	product := products.put(testProduct(5))

	actor := userActor()

	_, err := svc.AddItem(ctx, actor, product.ID, 0)
	require.EqualError(t, err, "quantity must be positive")

	// unknown product is rejected before touching the cart
	_, err = svc.AddItem(ctx, actor, uuid.New(), 1)
	require.ErrorIs(t, err, errNotFound)

	item, err := svc.AddItem(ctx, actor, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)
	assert.Equal(t, 2, item.Quantity)
}

func TestCartServiceCartIsScopedToActor(t *testing.T) {
	ctx := t.Context()

	_, products, svc := cartFixtures()
	product := products.put(testProduct(5))

	alice := userActor()
	bob := userActor()

	_, err := svc.AddItem(ctx, alice, product.ID, 1)
	require.NoError(t, err)

	aliceCart, err := svc.GetCart(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, aliceCart.Items, 1)

	bobCart, err := svc.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobCart.Items)
}

func TestCartServiceUpdateAndRemove(t *testing.T) {
	ctx := t.Context()

	_, products, svc := cartFixtures()
	product := products.put(testProduct(5))

	actor := userActor()

	item, err := svc.AddItem(ctx, actor, product.ID, 1)
	require.NoError(t, err)

	updated, err := svc.UpdateItemQuantity(ctx, actor, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)

	removed, err := svc.RemoveItem(ctx, actor, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveItem(ctx, actor, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCartServiceClearCart(t *testing.T) {
	ctx := t.Context()

	carts, products, svc := cartFixtures()
	product := products.put(testProduct(5))

	actor := userActor()

	_, err := svc.AddItem(ctx, actor, product.ID, 1)
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, actor))

	cart, err := svc.GetCart(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Contains(t, carts.cleared, actor.ID)
}
