package workflow

import (
	"regexp"
	"strconv"
	"strings"

	"riskbot/pkg/session"
)

// ValidationError carries the user-facing message rendered above the
// re-prompted step. The draft stays untouched when one is returned.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

func validationErr(msg string) *ValidationError { return &ValidationError{Message: msg} }

var numberRe = regexp.MustCompile(`-?\d+`)

// parseTriple extracts the first three signed integers found anywhere in the
// text; separators are arbitrary. The min ≤ most likely ≤ max invariant is
// checked here so a failed entry never reaches the draft.
func parseTriple(text string) (session.Triple, *ValidationError) {
	nums := numberRe.FindAllString(text, 3)
	if len(nums) < 3 {
		return session.Triple{}, validationErr("Неверный формат. Введите три числа.")
	}
	var vals [3]int
	for i, n := range nums {
		v, err := strconv.Atoi(n)
		if err != nil {
			return session.Triple{}, validationErr("Неверный формат. Введите три числа.")
		}
		vals[i] = v
	}
	t := session.Triple{Min: vals[0], MostLikely: vals[1], Max: vals[2]}
	if !t.Valid() {
		return session.Triple{}, validationErr(
			"Ошибка: Значения должны быть в порядке возрастания (мин <= вероятно <= макс).\n" +
				"Пожалуйста, введите значения снова:")
	}
	return t, nil
}

// parseProbability accepts an integer percent in [0,100].
func parseProbability(text string) (int, *ValidationError) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || v < 0 || v > 100 {
		return 0, validationErr("Пожалуйста, введите число от 0 до 100:")
	}
	return v, nil
}
