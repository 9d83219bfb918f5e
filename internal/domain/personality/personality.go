// Package personality turns the five-question survey into a score and a
// personality category.
package personality

import (
	"fmt"

	"github.com/okian/teamforge/internal/domain/model"
)

// Survey scoring constants.
const (
	QuestionCount = 5
	MinRating     = 1
	MaxRating     = 5
	scoreScale    = 4 // 5..25 scaled into 20..100

	leaderThreshold   = 90
	balancedThreshold = 70
)

// Questions are asked in this order; answers map index to index.
var Questions = [QuestionCount]string{
	"I enjoy leading groups.",
	"I stay calm under pressure.",
	"I prefer analyzing before acting.",
	"I enjoy supporting teammates.",
	"I like communicating and coordinating.",
}

// Score sums the ratings and scales them into the 20..100 range.
func Score(answers []int) (int, error) {
	if len(answers) != QuestionCount {
		return 0, fmt.Errorf("%w: want %d answers, got %d", ErrInvalidAnswers, QuestionCount, len(answers))
	}
	sum := 0
	for i, a := range answers {
		if a < MinRating || a > MaxRating {
			return 0, fmt.Errorf("%w: answer %d is %d", ErrInvalidRating, i+1, a)
		}
		sum += a
	}
	return sum * scoreScale, nil
}

// Classify maps a score to its category: >=90 Leader, >=70 Balanced, else Thinker.
func Classify(score int) model.Category {
	switch {
	case score >= leaderThreshold:
		return model.CategoryLeader
	case score >= balancedThreshold:
		return model.CategoryBalanced
	default:
		return model.CategoryThinker
	}
}

// Evaluate scores the answers and classifies the result.
func Evaluate(answers []int) (int, model.Category, error) {
	score, err := Score(answers)
	if err != nil {
		return 0, model.CategoryUnknown, err
	}
	return score, Classify(score), nil
}
