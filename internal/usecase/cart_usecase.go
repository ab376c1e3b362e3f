package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// CartKey savatcha saqlanadigan qat'iy kalit
const CartKey = "caviar_cart"

// Notifier savatcha o'zgarganda signal beruvchi (broadcast.Bus)
type Notifier interface {
	Publish(topic string)
}

// CartUseCase savatcha bilan bog'liq business logic
type CartUseCase interface {
	// Get joriy holat; yo'q yoki buzilgan bo'lsa bo'sh savatcha
	Get(ctx context.Context) (entity.CartState, error)

	// Add mahsulot qo'shish (bor bo'lsa soni +1)
	Add(ctx context.Context, item entity.CartItem) (entity.CartState, error)

	// Remove qatorni o'chirish (yo'q bo'lsa hech narsa qilmaydi)
	Remove(ctx context.Context, id string) (entity.CartState, error)

	// UpdateQuantity sonini o'rnatish; n <= 0 bo'lsa Remove bilan bir xil
	UpdateQuantity(ctx context.Context, id string, quantity int) (entity.CartState, error)

	// Clear savatchani tozalash
	Clear(ctx context.Context) (entity.CartState, error)

	// Count jami donalar soni
	Count(ctx context.Context) (int, error)
}

type cartUseCase struct {
	store    repository.KeyValueStore
	notifier Notifier
	topic    string
	logger   *zap.Logger
}

// NewCartUseCase yangi CartUseCase yaratish. topic - signal kanali nomi (slot).
func NewCartUseCase(store repository.KeyValueStore, notifier Notifier, topic string, logger *zap.Logger) CartUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cartUseCase{
		store:    store,
		notifier: notifier,
		topic:    topic,
		logger:   logger.With(zap.String("cart", topic)),
	}
}

// Get joriy holatni olish
func (u *cartUseCase) Get(ctx context.Context) (entity.CartState, error) {
	raw, ok, err := u.store.Get(ctx, CartKey)
	if err != nil {
		return entity.EmptyCart(), fmt.Errorf("failed to read cart: %w", err)
	}
	if !ok || len(raw) == 0 {
		return entity.EmptyCart(), nil
	}

	var state entity.CartState
	if err := json.Unmarshal(raw, &state); err != nil {
		// Buzilgan ma'lumot bo'sh savatcha sifatida qabul qilinadi
		u.logger.Debug("stored cart is malformed, treating as empty", zap.Error(err))
		return entity.EmptyCart(), nil
	}
	if state.Items == nil {
		state.Items = []entity.CartItem{}
	}
	state.Total = state.CalculateTotal()
	return state, nil
}

// Add mahsulot qo'shish
func (u *cartUseCase) Add(ctx context.Context, item entity.CartItem) (entity.CartState, error) {
	state, err := u.Get(ctx)
	if err != nil {
		return state, err
	}

	if idx := indexOf(state.Items, item.ID); idx >= 0 {
		state.Items[idx].Quantity++
	} else {
		item.Quantity = 1
		state.Items = append(state.Items, item)
	}

	return u.save(ctx, state)
}

// Remove qatorni o'chirish
func (u *cartUseCase) Remove(ctx context.Context, id string) (entity.CartState, error) {
	state, err := u.Get(ctx)
	if err != nil {
		return state, err
	}

	kept := state.Items[:0]
	for _, item := range state.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	state.Items = kept

	return u.save(ctx, state)
}

// UpdateQuantity sonini o'zgartirish
func (u *cartUseCase) UpdateQuantity(ctx context.Context, id string, quantity int) (entity.CartState, error) {
	if quantity <= 0 {
		return u.Remove(ctx, id)
	}

	state, err := u.Get(ctx)
	if err != nil {
		return state, err
	}

	if idx := indexOf(state.Items, id); idx >= 0 {
		state.Items[idx].Quantity = quantity
	}

	return u.save(ctx, state)
}

// Clear savatchani tozalash
func (u *cartUseCase) Clear(ctx context.Context) (entity.CartState, error) {
	return u.save(ctx, entity.EmptyCart())
}

// Count jami donalar soni
func (u *cartUseCase) Count(ctx context.Context) (int, error) {
	state, err := u.Get(ctx)
	if err != nil {
		return 0, err
	}
	return state.Count(), nil
}

// save jami summani qayta hisoblash, saqlash va signal berish
func (u *cartUseCase) save(ctx context.Context, state entity.CartState) (entity.CartState, error) {
	state.Total = state.CalculateTotal()

	raw, err := json.Marshal(state)
	if err != nil {
		return state, fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := u.store.Set(ctx, CartKey, raw); err != nil {
		return state, fmt.Errorf("failed to persist cart: %w", err)
	}

	if u.notifier != nil {
		u.notifier.Publish(u.topic)
	}
	u.logger.Debug("cart saved", zap.Int("items", len(state.Items)), zap.Int64("total", state.Total))
	return state, nil
}

func indexOf(items []entity.CartItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
