package domain

import "time"

// VerificationCode is a one-time 6-digit email verification code.
// PK: email, SK: code_id — several records may coexist for one address,
// which is why deletion after a successful verify goes by CodeID and not
// by email. ExpiresAt doubles as the DynamoDB TTL attribute.
type VerificationCode struct {
	Email     string    `json:"email" dynamodbav:"email"`
	CodeID    string    `json:"code_id" dynamodbav:"code_id"`
	Code      string    `json:"-" dynamodbav:"code"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}

// Expired reports whether the code is past its validity window at t.
// Checked explicitly on every verify; the store's TTL eviction is only a
// cleanup mechanism, never the authority on expiry.
func (v *VerificationCode) Expired(t time.Time) bool {
	return v.ExpiresAt < t.Unix()
}
