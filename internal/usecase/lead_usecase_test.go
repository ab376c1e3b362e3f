package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"go.uber.org/zap/zaptest"
)

func newLeads(t *testing.T, sender *recordingSender) LeadUseCase {
	t.Helper()
	return NewLeadUseCase(sender, storage.NewBuiltinProductRepository(), zaptest.NewLogger(t))
}

func TestSubmitContact(t *testing.T) {
	sender := &recordingSender{}
	leads := newLeads(t, sender)

	err := leads.SubmitContact(context.Background(), ContactForm{
		Name: "  Иван ", Phone: "+7 900", Email: "ivan@example.com", Comment: "Перезвоните",
	})
	require.NoError(t, err)

	got := sender.all()
	require.Len(t, got, 1)
	assert.Equal(t, entity.Lead{
		Type:    entity.LeadContact,
		Name:    "Иван",
		Phone:   "+7 900",
		Email:   "ivan@example.com",
		Comment: "Перезвоните",
	}, got[0])
}

func TestSubmitContact_MissingFields(t *testing.T) {
	sender := &recordingSender{}
	leads := newLeads(t, sender)

	for _, form := range []ContactForm{
		{Name: "", Phone: "+7 900"},
		{Name: "Иван", Phone: "   "},
		{},
	} {
		err := leads.SubmitContact(context.Background(), form)
		assert.ErrorIs(t, err, ErrMissingContactFields)
	}
	assert.Empty(t, sender.all())
}

func TestSubmitInterest(t *testing.T) {
	sender := &recordingSender{}
	leads := newLeads(t, sender)

	err := leads.SubmitInterest(context.Background(), InterestForm{
		Name: "Иван", Phone: "+7 900", ProductIDs: []string{"keta-premium", "missing", "wholesale-13kg"},
	})
	require.NoError(t, err)

	got := sender.all()
	require.Len(t, got, 1)
	assert.Equal(t, entity.LeadContact, got[0].Type)
	assert.Equal(t, "Интересующие товары:\n• Кета премиум (5 500 ₽)\n• Оптовая партия 13 кг (52 000 ₽)", got[0].Comment)
}

func TestSubmitInterest_NoProducts(t *testing.T) {
	sender := &recordingSender{}
	leads := newLeads(t, sender)

	err := leads.SubmitInterest(context.Background(), InterestForm{Name: "Иван", Phone: "+7 900"})
	assert.ErrorIs(t, err, ErrNoProductsSelected)

	err = leads.SubmitInterest(context.Background(), InterestForm{Name: "Иван", Phone: "+7 900", ProductIDs: []string{"missing"}})
	assert.ErrorIs(t, err, ErrNoProductsSelected)

	err = leads.SubmitInterest(context.Background(), InterestForm{ProductIDs: []string{"keta-premium"}})
	assert.ErrorIs(t, err, ErrMissingContactFields)
	assert.Empty(t, sender.all())
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{}
	leads := newLeads(t, sender)
	cart, _, _ := newCart(t)

	_, err := cart.Add(ctx, keta)
	require.NoError(t, err)
	_, err = cart.Add(ctx, keta)
	require.NoError(t, err)
	_, err = cart.Add(ctx, beluga)
	require.NoError(t, err)

	lead, err := leads.PlaceOrder(ctx, cart, OrderForm{Name: "Иван", Phone: "+7 900"})
	require.NoError(t, err)

	assert.Equal(t, entity.LeadOrder, lead.Type)
	assert.Equal(t, "Иван, +7 900", lead.Contact)
	assert.Equal(t, PickupDelivery, lead.Delivery)
	assert.Equal(t, int64(56000), lead.Total)
	assert.Equal(t, []entity.OrderLine{
		{Name: "Кета премиум", Quantity: 2, Price: 11000, Weight: "1 кг"},
		{Name: "Белуга империал", Quantity: 1, Price: 45000, Weight: "500 г"},
	}, lead.Products)
	assert.Equal(t, []entity.Lead{lead}, sender.all())

	state, err := cart.Get(ctx)
	require.NoError(t, err)
	assert.True(t, state.IsEmpty())
}

func TestPlaceOrder_WithAddress(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{}
	cart, _, _ := newCart(t)
	_, err := cart.Add(ctx, giftLuxe)
	require.NoError(t, err)

	lead, err := newLeads(t, sender).PlaceOrder(ctx, cart, OrderForm{
		Name: "Иван", Phone: "+7 900", Address: " Москва ", Comment: " к 18:00 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Москва", lead.Delivery)
	assert.Equal(t, "к 18:00", lead.Comment)
}

func TestPlaceOrder_FailureKeepsCart(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{err: errors.New("boom")}
	cart, _, _ := newCart(t)
	_, err := cart.Add(ctx, keta)
	require.NoError(t, err)

	_, err = newLeads(t, sender).PlaceOrder(ctx, cart, OrderForm{Name: "Иван", Phone: "+7 900"})
	assert.ErrorIs(t, err, ErrDeliveryFailed)

	count, err := cart.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	sender := &recordingSender{}
	leads := newLeads(t, sender)
	cart, _, _ := newCart(t)

	_, err := leads.PlaceOrder(ctx, cart, OrderForm{Name: "Иван", Phone: "+7 900"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = cart.Add(ctx, keta)
	require.NoError(t, err)
	_, err = leads.PlaceOrder(ctx, cart, OrderForm{Name: "Иван"})
	assert.ErrorIs(t, err, ErrMissingContactFields)

	assert.Empty(t, sender.all())
}
