package domain

import "time"

// TokenScope is stamped into every access token issued for the v1 API.
const TokenScope = "api_v1_user"

// Token represents issued access token metadata.
type Token struct {
	Value     string
	SubjectID int64
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
