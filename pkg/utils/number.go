package utils

import "math"

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// Average retorna a média dos valores ou nil quando não há valores
func Average(values []int) *float64 {
	if len(values) == 0 {
		return nil
	}

	total := 0
	for _, v := range values {
		total += v
	}

	avg := float64(total) / float64(len(values))
	return &avg
}
