package entity

import (
	"time"
)

type OTPPurpose string

const (
	OTPPurposeVerification  OTPPurpose = "verification"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
	OTPPurposeLogin         OTPPurpose = "login"
)

func (p OTPPurpose) Valid() bool {
	switch p {
	case OTPPurposeVerification, OTPPurposePasswordReset, OTPPurposeLogin:
		return true
	}
	return false
}

// OTP is a single-use code row. Only the hash is persisted; the row is
// deleted on first correct verify, on attempt exhaustion, or on expiry.
type OTP struct {
	BaseSimple
	Email     string     `db:"email"`
	CodeHash  string     `db:"code_hash"`
	Purpose   OTPPurpose `db:"purpose"`
	ExpiresAt time.Time  `db:"expires_at"`
	Attempts  int        `db:"attempts"`
}
