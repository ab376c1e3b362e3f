package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"go.uber.org/zap/zaptest"
)

func answers(pairs ...any) []entity.QuizAnswer {
	out := make([]entity.QuizAnswer, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entity.QuizAnswer{Question: pairs[i].(int), Answer: pairs[i+1].(string)})
	}
	return out
}

func TestRecommendIDs(t *testing.T) {
	tests := []struct {
		name    string
		answers []entity.QuizAnswer
		want    []string
	}{
		{"gift", answers(entity.QuestionType, "gift"), []string{"gift-set-luxury", "beluga-imperial", "gift-set-premium"}},
		{"unlimited budget", answers(entity.QuestionBudget, "unlimited"), []string{"beluga-imperial", "chawych-royal", "osetr-classic"}},
		{"expert premium", answers(entity.QuestionExperience, "expert", entity.QuestionBudget, "premium"), []string{"beluga-imperial", "chawych-royal", "osetr-classic"}},
		{"large roe", answers(entity.QuestionSize, "large"), []string{"keta-premium", "chawych-royal", "beluga-imperial"}},
		{"small roe", answers(entity.QuestionSize, "small"), []string{"nerka-elite", "sevruga-select", "gorbuscha-classic"}},
		{"unique taste", answers(entity.QuestionTaste, "unique"), []string{"nerka-elite", "kijuch-gold", "osetr-classic"}},
		{"rich taste", answers(entity.QuestionTaste, "rich"), []string{"keta-premium", "osetr-classic", "chawych-royal"}},
		{"delicate taste", answers(entity.QuestionTaste, "delicate"), []string{"beluga-imperial", "kijuch-gold", "gorbuscha-classic"}},
		{"budget", answers(entity.QuestionBudget, "budget"), []string{"gorbuscha-classic", "kijuch-gold", "keta-premium"}},
		{"premium budget", answers(entity.QuestionBudget, "premium"), []string{"chawych-royal", "nerka-elite", "osetr-classic"}},
		{"wholesale", answers(entity.QuestionQuantity, "13kg"), []string{"wholesale-13kg", "keta-premium", "gorbuscha-classic"}},
		{"business", answers(entity.QuestionOccasion, "business"), []string{"beluga-imperial", "gift-set-luxury", "osetr-classic"}},
		{"no answers", nil, []string{"keta-premium", "gorbuscha-classic", "gift-set-premium"}},
		{"unknown tokens", answers(entity.QuestionType, "???", 42, "gift"), []string{"keta-premium", "gorbuscha-classic", "gift-set-premium"}},

		// ustuvorlik
		{"gift beats unlimited", answers(entity.QuestionBudget, "unlimited", entity.QuestionType, "gift"), []string{"gift-set-luxury", "beluga-imperial", "gift-set-premium"}},
		{"size beats taste", answers(entity.QuestionTaste, "unique", entity.QuestionSize, "large"), []string{"keta-premium", "chawych-royal", "beluga-imperial"}},
		{"classic taste falls through to budget", answers(entity.QuestionTaste, "classic", entity.QuestionBudget, "budget"), []string{"gorbuscha-classic", "kijuch-gold", "keta-premium"}},
		{"expert alone is default", answers(entity.QuestionExperience, "expert", entity.QuestionBudget, "medium"), []string{"keta-premium", "gorbuscha-classic", "gift-set-premium"}},
		{"last answer wins", answers(entity.QuestionType, "gift", entity.QuestionType, "personal"), []string{"keta-premium", "gorbuscha-classic", "gift-set-premium"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecommendIDs(tt.answers)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 3)
		})
	}
}

func TestRecommendIDs_ReturnsCopy(t *testing.T) {
	first := RecommendIDs(nil)
	first[0] = "mutated"
	assert.Equal(t, "keta-premium", RecommendIDs(nil)[0])
}

func TestRecommendIDs_EveryIDInBuiltinCatalog(t *testing.T) {
	repo := storage.NewBuiltinProductRepository()
	sets := [][]string{giftSet, eliteSet, largeRoeSet, smallRoeSet, uniqueSet, richSet, delicateSet, budgetSet, premiumSet, wholesaleSet, businessSet, defaultSet}
	for _, set := range sets {
		for _, id := range set {
			_, err := repo.GetByID(context.Background(), id)
			assert.NoError(t, err, id)
		}
	}
}

func TestQuiz_RecommendDropsUnknownProducts(t *testing.T) {
	catalog := storage.DefaultCatalog()
	catalog.Products = catalog.Products[:1] // faqat keta-premium
	repo := storage.NewMemoryProductRepository(catalog)

	quiz := NewQuizUseCase(repo, nil, time.Second, zaptest.NewLogger(t))
	products := quiz.Recommend(context.Background(), nil)

	require.Len(t, products, 1)
	assert.Equal(t, "keta-premium", products[0].ID)
}

func TestQuiz_CompleteSendsLead(t *testing.T) {
	sender := &recordingSender{}
	quiz := NewQuizUseCase(storage.NewBuiltinProductRepository(), sender, time.Second, zaptest.NewLogger(t))

	given := answers(entity.QuestionType, "personal", entity.QuestionBudget, "budget")
	products := quiz.Complete(context.Background(), given, "+7 900")
	quiz.Wait()

	require.Len(t, products, 3)
	leads := sender.all()
	require.Len(t, leads, 1)
	assert.Equal(t, entity.LeadQuiz, leads[0].Type)
	assert.Equal(t, given, leads[0].Answers)
	assert.Equal(t, "Горбуша классик, Кижуч голд, Кета премиум", leads[0].Recommendation)
	assert.Equal(t, "+7 900", leads[0].Contact)
}

func TestQuiz_CompleteIgnoresDeliveryFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("offline")}
	quiz := NewQuizUseCase(storage.NewBuiltinProductRepository(), sender, time.Second, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	products := quiz.Complete(ctx, nil, "")
	cancel()
	quiz.Wait()

	assert.Len(t, products, 3)
	assert.Empty(t, sender.all())
}

func TestQuiz_Questions(t *testing.T) {
	quiz := NewQuizUseCase(storage.NewBuiltinProductRepository(), nil, 0, nil)
	questions := quiz.Questions()
	require.Len(t, questions, 7)
	for i, q := range questions {
		assert.Equal(t, i, q.Index)
		assert.NotEmpty(t, q.Options)
	}
}
