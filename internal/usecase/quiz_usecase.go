package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// Tavsiya to'plamlari (har biri aynan 3 ta mahsulot)
var (
	giftSet      = []string{"gift-set-luxury", "beluga-imperial", "gift-set-premium"}
	eliteSet     = []string{"beluga-imperial", "chawych-royal", "osetr-classic"}
	largeRoeSet  = []string{"keta-premium", "chawych-royal", "beluga-imperial"}
	smallRoeSet  = []string{"nerka-elite", "sevruga-select", "gorbuscha-classic"}
	uniqueSet    = []string{"nerka-elite", "kijuch-gold", "osetr-classic"}
	richSet      = []string{"keta-premium", "osetr-classic", "chawych-royal"}
	delicateSet  = []string{"beluga-imperial", "kijuch-gold", "gorbuscha-classic"}
	budgetSet    = []string{"gorbuscha-classic", "kijuch-gold", "keta-premium"}
	premiumSet   = []string{"chawych-royal", "nerka-elite", "osetr-classic"}
	wholesaleSet = []string{"wholesale-13kg", "keta-premium", "gorbuscha-classic"}
	businessSet  = []string{"beluga-imperial", "gift-set-luxury", "osetr-classic"}
	defaultSet   = []string{"keta-premium", "gorbuscha-classic", "gift-set-premium"}
)

// RecommendIDs javoblar bo'yicha tavsiya qilinadigan mahsulot ID lari.
// Birinchi mos kelgan shart g'olib; bo'sh javoblar uchun default to'plam.
func RecommendIDs(answers []entity.QuizAnswer) []string {
	byQuestion := make(map[int]string, len(answers))
	for _, a := range answers {
		byQuestion[a.Question] = a.Answer
	}

	kind := byQuestion[entity.QuestionType]
	occasion := byQuestion[entity.QuestionOccasion]
	budget := byQuestion[entity.QuestionBudget]
	taste := byQuestion[entity.QuestionTaste]
	size := byQuestion[entity.QuestionSize]
	quantity := byQuestion[entity.QuestionQuantity]
	experience := byQuestion[entity.QuestionExperience]

	var ids []string
	switch {
	case kind == "gift":
		ids = giftSet
	case budget == "unlimited" || (experience == "expert" && budget == "premium"):
		ids = eliteSet
	case size == "large":
		ids = largeRoeSet
	case size == "small":
		ids = smallRoeSet
	case taste == "unique":
		ids = uniqueSet
	case taste == "rich":
		ids = richSet
	case taste == "delicate":
		ids = delicateSet
	case budget == "budget":
		ids = budgetSet
	case budget == "premium":
		ids = premiumSet
	case quantity == "13kg":
		ids = wholesaleSet
	case occasion == "business":
		ids = businessSet
	default:
		ids = defaultSet
	}

	return append([]string(nil), ids...)
}

// QuizUseCase quiz bilan bog'liq business logic
type QuizUseCase interface {
	// Questions quizning 7 ta savoli
	Questions() []entity.QuizQuestion

	// Recommend javoblar bo'yicha 3 tagacha mahsulot
	Recommend(ctx context.Context, answers []entity.QuizAnswer) []entity.Product

	// Complete tavsiyalarni qaytaradi va quiz leadini fonda yuboradi
	Complete(ctx context.Context, answers []entity.QuizAnswer, contact string) []entity.Product

	// Wait fondagi yuborishlar tugashini kutish
	Wait()
}

type quizUseCase struct {
	productRepo repository.ProductRepository
	sender      repository.LeadSender
	timeout     time.Duration
	logger      *zap.Logger
	wg          sync.WaitGroup
}

// NewQuizUseCase yangi QuizUseCase yaratish
func NewQuizUseCase(
	productRepo repository.ProductRepository,
	sender repository.LeadSender,
	timeout time.Duration,
	logger *zap.Logger,
) QuizUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &quizUseCase{
		productRepo: productRepo,
		sender:      sender,
		timeout:     timeout,
		logger:      logger,
	}
}

// Questions savollar ro'yxati
func (u *quizUseCase) Questions() []entity.QuizQuestion {
	return entity.QuizQuestions
}

// Recommend ID larni katalog bo'yicha mahsulotlarga aylantirish; topilmaganlari tashlanadi
func (u *quizUseCase) Recommend(ctx context.Context, answers []entity.QuizAnswer) []entity.Product {
	ids := RecommendIDs(answers)
	products := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		product, err := u.productRepo.GetByID(ctx, id)
		if err != nil {
			u.logger.Warn("recommended product is not in catalog", zap.String("id", id), zap.Error(err))
			continue
		}
		products = append(products, *product)
	}
	return products
}

// Complete tavsiya va quiz leadini yuborish
func (u *quizUseCase) Complete(ctx context.Context, answers []entity.QuizAnswer, contact string) []entity.Product {
	products := u.Recommend(ctx, answers)
	if u.sender == nil {
		return products
	}

	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	lead := entity.Lead{
		Type:           entity.LeadQuiz,
		Answers:        append([]entity.QuizAnswer(nil), answers...),
		Recommendation: strings.Join(names, ", "),
		Contact:        strings.TrimSpace(contact),
	}

	// Natija foydalanuvchiga darhol ko'rsatiladi, yuborish kutilmaydi
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		defer cancel()
		if err := u.sender.Submit(sendCtx, lead); err != nil {
			u.logger.Warn("failed to send quiz results", zap.Error(err))
			return
		}
		u.logger.Info("quiz results sent", zap.Int("answers", len(answers)))
	}()

	return products
}

// Wait fondagi yuborishlarni kutish
func (u *quizUseCase) Wait() {
	u.wg.Wait()
}
