package domain

import "time"

// Claims is the verified identity carried by a session token.
type Claims struct {
	Username  string
	Role      Role
	Issuer    string
	Audience  []string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
