package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/usecase"
)

// quizCmd javoblar bo'yicha tavsiyalarni chiqarish (lead yuborilmaydi)
var quizCmd = &cobra.Command{
	Use:   "quiz [question=answer ...]",
	Short: "Print recommendations for quiz answers, e.g. caviar quiz 0=gift 2=premium",
	Long: `Questions are numbered from 0:
  0 type  1 occasion  2 budget  3 taste  4 size  5 quantity  6 experience

Without arguments the questions and their answer tokens are listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			printQuestions(out)
			return nil
		}

		answers, err := parseAnswers(args)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		quiz := usecase.NewQuizUseCase(a.productRepo, nil, cfg.LeadTimeout, logger.Named("quiz"))
		for _, p := range quiz.Recommend(cmd.Context(), answers) {
			fmt.Fprintf(out, "%s\t%s\t%s ₽ / %s\n", p.ID, p.Name, entity.FormatPrice(p.Price), p.Weight)
		}
		return nil
	},
}

// parseAnswers "indeks=token" argumentlarini javoblarga aylantirish
func parseAnswers(args []string) ([]entity.QuizAnswer, error) {
	answers := make([]entity.QuizAnswer, 0, len(args))
	for _, arg := range args {
		rawIndex, token, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q must look like index=token", arg)
		}
		index, err := strconv.Atoi(strings.TrimSpace(rawIndex))
		if err != nil {
			return nil, fmt.Errorf("answer %q: bad question index: %w", arg, err)
		}
		if _, known := entity.QuestionTitle(index); !known {
			return nil, fmt.Errorf("answer %q: question %d does not exist", arg, index)
		}
		answers = append(answers, entity.QuizAnswer{Question: index, Answer: strings.TrimSpace(token)})
	}
	return answers, nil
}

func printQuestions(w io.Writer) {
	for _, q := range entity.QuizQuestions {
		fmt.Fprintf(w, "%d. %s\n", q.Index, q.Prompt)
		for _, opt := range q.Options {
			fmt.Fprintf(w, "   %s\t%s\n", opt.Value, opt.Label)
		}
	}
}
