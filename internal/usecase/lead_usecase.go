package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// Forma xatolari
var (
	ErrMissingContactFields = errors.New("name and phone are required")
	ErrNoProductsSelected   = errors.New("at least one product must be selected")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrDeliveryFailed       = errors.New("lead delivery failed")
)

// PickupDelivery manzil ko'rsatilmaganda yetkazish turi
const PickupDelivery = "Самовывоз"

// ContactForm qayta aloqa formasi
type ContactForm struct {
	Name    string
	Phone   string
	Email   string
	Comment string
}

// InterestForm mahsulotlarga qiziqish formasi
type InterestForm struct {
	Name       string
	Phone      string
	ProductIDs []string
}

// OrderForm savatchadan buyurtma formasi
type OrderForm struct {
	Name    string
	Phone   string
	Address string
	Comment string
}

// LeadUseCase lead formalarini tekshirish va yuborish
type LeadUseCase interface {
	// SubmitContact qayta aloqa so'rovi
	SubmitContact(ctx context.Context, form ContactForm) error

	// SubmitInterest tanlangan mahsulotlar bo'yicha so'rov (contact turida yuboriladi)
	SubmitInterest(ctx context.Context, form InterestForm) error

	// PlaceOrder savatchadagi buyurtmani yuborish; savatcha faqat muvaffaqiyatdan keyin tozalanadi
	PlaceOrder(ctx context.Context, cart CartUseCase, form OrderForm) (entity.Lead, error)
}

type leadUseCase struct {
	sender      repository.LeadSender
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

// NewLeadUseCase yangi LeadUseCase yaratish
func NewLeadUseCase(sender repository.LeadSender, productRepo repository.ProductRepository, logger *zap.Logger) LeadUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &leadUseCase{
		sender:      sender,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SubmitContact qayta aloqa so'rovini yuborish
func (u *leadUseCase) SubmitContact(ctx context.Context, form ContactForm) error {
	name, phone, err := requireContact(form.Name, form.Phone)
	if err != nil {
		return err
	}

	lead := entity.Lead{
		Type:    entity.LeadContact,
		Name:    name,
		Phone:   phone,
		Email:   strings.TrimSpace(form.Email),
		Comment: strings.TrimSpace(form.Comment),
	}
	return u.submit(ctx, lead)
}

// SubmitInterest tanlangan mahsulotlar bilan so'rov yuborish
func (u *leadUseCase) SubmitInterest(ctx context.Context, form InterestForm) error {
	name, phone, err := requireContact(form.Name, form.Phone)
	if err != nil {
		return err
	}
	if len(form.ProductIDs) == 0 {
		return ErrNoProductsSelected
	}

	var sb strings.Builder
	sb.WriteString("Интересующие товары:")
	listed := 0
	for _, id := range form.ProductIDs {
		product, err := u.productRepo.GetByID(ctx, id)
		if err != nil {
			u.logger.Warn("selected product is not in catalog", zap.String("id", id))
			continue
		}
		sb.WriteString(fmt.Sprintf("\n• %s (%s ₽)", product.Name, entity.FormatPrice(product.Price)))
		listed++
	}
	if listed == 0 {
		return ErrNoProductsSelected
	}

	lead := entity.Lead{
		Type:    entity.LeadContact,
		Name:    name,
		Phone:   phone,
		Comment: sb.String(),
	}
	return u.submit(ctx, lead)
}

// PlaceOrder buyurtmani yuborish
func (u *leadUseCase) PlaceOrder(ctx context.Context, cart CartUseCase, form OrderForm) (entity.Lead, error) {
	name, phone, err := requireContact(form.Name, form.Phone)
	if err != nil {
		return entity.Lead{}, err
	}

	state, err := cart.Get(ctx)
	if err != nil {
		return entity.Lead{}, err
	}
	if state.IsEmpty() {
		return entity.Lead{}, ErrEmptyCart
	}

	lead := BuildOrderLead(state, name, phone, form.Address, form.Comment)
	if err := u.submit(ctx, lead); err != nil {
		return lead, err
	}

	// Yetkazilgani tasdiqlangandan keyingina tozalaymiz
	if _, err := cart.Clear(ctx); err != nil {
		return lead, fmt.Errorf("order sent but cart was not cleared: %w", err)
	}
	return lead, nil
}

// BuildOrderLead savatcha holatidan order lead yaratish
func BuildOrderLead(state entity.CartState, name, phone, address, comment string) entity.Lead {
	lines := make([]entity.OrderLine, 0, len(state.Items))
	for _, item := range state.Items {
		lines = append(lines, entity.OrderLine{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.LineTotal(),
			Weight:   item.Weight,
		})
	}

	delivery := strings.TrimSpace(address)
	if delivery == "" {
		delivery = PickupDelivery
	}

	return entity.Lead{
		Type:     entity.LeadOrder,
		Products: lines,
		Total:    state.Total,
		Contact:  fmt.Sprintf("%s, %s", name, phone),
		Delivery: delivery,
		Comment:  strings.TrimSpace(comment),
	}
}

func (u *leadUseCase) submit(ctx context.Context, lead entity.Lead) error {
	if err := u.sender.Submit(ctx, lead); err != nil {
		u.logger.Warn("lead delivery failed", zap.String("type", string(lead.Type)), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	u.logger.Info("lead delivered", zap.String("type", string(lead.Type)))
	return nil
}

func requireContact(name, phone string) (string, string, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return "", "", ErrMissingContactFields
	}
	return name, phone, nil
}
