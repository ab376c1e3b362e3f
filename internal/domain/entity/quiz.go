package entity

// QuizAnswer bitta savolga berilgan javob
type QuizAnswer struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

// QuizOption savol varianti
type QuizOption struct {
	Value string
	Label string
}

// QuizQuestion quiz savoli
type QuizQuestion struct {
	Index   int
	Title   string // menejer xabaridagi qisqa nom
	Prompt  string
	Options []QuizOption
}

// Savollar indekslari
const (
	QuestionType = iota
	QuestionOccasion
	QuestionBudget
	QuestionTaste
	QuestionSize
	QuestionQuantity
	QuestionExperience
)

// QuizQuestions quizning qat'iy 7 ta savoli
var QuizQuestions = []QuizQuestion{
	{
		Index:  QuestionType,
		Title:  "Какую икру ищет",
		Prompt: "Какую икру вы ищете?",
		Options: []QuizOption{
			{Value: "kamchatka", Label: "Камчатская премиум"},
			{Value: "gift", Label: "В подарок"},
			{Value: "personal", Label: "Для себя"},
		},
	},
	{
		Index:  QuestionOccasion,
		Title:  "Повод покупки",
		Prompt: "По какому случаю планируется покупка?",
		Options: []QuizOption{
			{Value: "holiday", Label: "Праздник"},
			{Value: "everyday", Label: "Для повседневного стола"},
			{Value: "business", Label: "Деловое мероприятие"},
			{Value: "special", Label: "Особый случай"},
		},
	},
	{
		Index:  QuestionBudget,
		Title:  "Бюджет на кг",
		Prompt: "Какой у вас бюджет на кг?",
		Options: []QuizOption{
			{Value: "budget", Label: "До 4 000 ₽"},
			{Value: "medium", Label: "4 000 – 5 000 ₽"},
			{Value: "premium", Label: "От 5 000 ₽"},
			{Value: "unlimited", Label: "Без ограничений"},
		},
	},
	{
		Index:  QuestionTaste,
		Title:  "Вкусовые предпочтения",
		Prompt: "Какие вкусы вам нравятся?",
		Options: []QuizOption{
			{Value: "delicate", Label: "Нежные"},
			{Value: "classic", Label: "Классические"},
			{Value: "rich", Label: "Насыщенные"},
			{Value: "unique", Label: "Уникальные"},
		},
	},
	{
		Index:  QuestionSize,
		Title:  "Размер икринок",
		Prompt: "Размер икринок?",
		Options: []QuizOption{
			{Value: "small", Label: "Мелкие"},
			{Value: "medium", Label: "Средние"},
			{Value: "large", Label: "Крупные"},
			{Value: "any", Label: "Не важно"},
		},
	},
	{
		Index:  QuestionQuantity,
		Title:  "Объем покупки",
		Prompt: "Сколько планируете купить?",
		Options: []QuizOption{
			{Value: "1kg", Label: "1 кг"},
			{Value: "3kg", Label: "3 кг"},
			{Value: "5kg", Label: "5 кг"},
			{Value: "13kg", Label: "13 кг и более"},
		},
	},
	{
		Index:  QuestionExperience,
		Title:  "Опыт с морепродуктами",
		Prompt: "Ваш опыт с морепродуктами?",
		Options: []QuizOption{
			{Value: "beginner", Label: "Новичок"},
			{Value: "occasional", Label: "Иногда покупаю"},
			{Value: "regular", Label: "Регулярно покупаю"},
			{Value: "expert", Label: "Эксперт"},
		},
	},
}

// QuestionTitle savol indeksi bo'yicha qisqa nom
func QuestionTitle(index int) (string, bool) {
	if index < 0 || index >= len(QuizQuestions) {
		return "", false
	}
	return QuizQuestions[index].Title, true
}

// OptionLabel javob tokeni uchun foydalanuvchiga ko'rinadigan matn
func OptionLabel(index int, value string) string {
	if index < 0 || index >= len(QuizQuestions) {
		return value
	}
	for _, opt := range QuizQuestions[index].Options {
		if opt.Value == value {
			return opt.Label
		}
	}
	return value
}
