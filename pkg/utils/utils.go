package utils

import (
	"fmt"
	"log"
)

// GoSafe runs the given function in a new goroutine and recovers from any panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

func ToPointer[T any](value T) *T {
	return &value
}

func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value*100)
}

// FormatOptionalFloat mencetak metrik pointer, "undefined" kalau nil.
func FormatOptionalFloat(value *float64, format string) string {
	if value == nil {
		return "undefined"
	}
	return fmt.Sprintf(format, *value)
}
