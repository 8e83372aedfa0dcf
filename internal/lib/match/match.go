// Package match реализует подсчёт процента совпадения навыков кандидата
// с навыками, требуемыми в объявлении. Чистая функция без побочных эффектов,
// используется при выдаче списка объявлений для ранжирования на клиенте.
package match

import (
	"math"
	"strings"
)

// Score возвращает округлённый процент требуемых навыков, которыми владеет
// кандидат. Сравнение токенов точное, с учётом регистра. Пустой список
// требуемых навыков даёт 0.
func Score(candidate, required []string) int {
	if len(required) == 0 {
		return 0
	}
	owned := make(map[string]struct{}, len(candidate))
	for _, skill := range candidate {
		owned[skill] = struct{}{}
	}
	matched := 0
	for _, skill := range required {
		if _, ok := owned[skill]; ok {
			matched++
		}
	}
	return int(math.Round(float64(matched) / float64(len(required)) * 100))
}

// SplitSkills разбирает навыки свободным текстом через запятую,
// отбрасывая пустые элементы и пробелы по краям.
func SplitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
