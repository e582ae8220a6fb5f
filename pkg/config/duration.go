package config

import (
	"fmt"
	"time"
)

// ValidatePositiveDuration validates that a duration is positive (greater than zero).
//
// Example:
//
//	if err := ValidatePositiveDuration(timeout); err != nil {
//	    return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
//	}
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateDurationRange validates that min <= d <= max.
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
