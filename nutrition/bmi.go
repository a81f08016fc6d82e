package nutrition

import (
	"fmt"

	"github.com/Bhaskar125/macro-tracking-webapp/apperr"
)

// BMI expects height in centimeters and weight in kilograms.
func BMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, fmt.Errorf("height and weight must be positive: %w", apperr.ErrInvalidInput)
	}
	// outside these bounds the inputs are almost certainly in the wrong unit
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, fmt.Errorf("height/weight out of plausible range: %w", apperr.ErrInvalidInput)
	}

	h := heightCm / 100.0
	return weightKg / (h * h), nil
}

// BMICategory maps a BMI value to its WHO adult classification.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
