package api

import "fmt"

//ValidateString returns an error if the given value is empty or longer than max
func ValidateString(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%s must not be empty", field)
	} else if len(value) > max {
		return fmt.Errorf("%s length (%d) was more than maximum allowed (%d)", field, len(value), max)
	}
	return nil
}

//ValidateOptionalString returns an error if the given value is longer than max
func ValidateOptionalString(field, value string, max int) error {
	if len(value) > max {
		return fmt.Errorf("%s length (%d) was more than maximum allowed (%d)", field, len(value), max)
	}
	return nil
}

//ValidatePercent returns an error if the given value is outside 0..100
func ValidatePercent(field string, value float64) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%s (%v) must be between 0 and 100", field, value)
	}
	return nil
}
