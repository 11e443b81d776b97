package utils

import "math"

// RoundWithOneDecimalPlace arredonda para uma casa decimal. É o formato de
// exibição de todas as porcentagens do dashboard; cálculos encadeados devem
// usar os valores intermediários sem arredondamento.
func RoundWithOneDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*10) / 10
}

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
