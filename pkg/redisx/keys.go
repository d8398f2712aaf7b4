package redisx

import "time"

const (
	// Resend cooldown per address: otp:cooldown:{purpose}:{email}
	KeyOTPCooldown = "otp:cooldown:%s:%s"
)

var (
	TTLOTPCooldown = 60 * time.Second
)
