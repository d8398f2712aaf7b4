package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOTP creates a numeric OTP of specified length
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	otp := ""
	for i := 0; i < length; i++ {
		otp += fmt.Sprintf("%d", rand.Intn(10))
	}

	return otp
}

// GenerateOrderNumber creates a human-readable order number with a
// date-stamped prefix and random suffix. Uniqueness is enforced by the
// orders table; callers regenerate on conflict.
func GenerateOrderNumber() string {
	now := time.Now()

	// Format: ORD-YYYYMMDD-RANDOM
	datePart := now.Format("20060102")
	randomPart := fmt.Sprintf("%06d", rand.Intn(1000000))

	return fmt.Sprintf("ORD-%s-%s", datePart, randomPart)
}
