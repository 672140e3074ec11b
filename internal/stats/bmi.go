package stats

// BMI computes body mass index from weight in kilograms and height in
// centimeters. ok is false when either input is missing or non-positive.
func BMI(weightKg, heightCm float64) (value float64, category string, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, "", false
	}
	meters := heightCm / 100
	value = weightKg / (meters * meters)
	switch {
	case value < 18.5:
		category = "Underweight"
	case value < 25:
		category = "Normal"
	case value < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return value, category, true
}
