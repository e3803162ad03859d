package middleware

import (
	"github.com/gorilla/securecookie"
)

// CookieCodec signs session ids into cookie values with the configured
// session secret, so a tampered cookie is rejected before any store lookup.
type CookieCodec struct {
	sc *securecookie.SecureCookie
}

func NewCookieCodec(secret string) *CookieCodec {
	return &CookieCodec{sc: securecookie.New([]byte(secret), nil)}
}

// Encode wraps a session id into a signed cookie value.
func (cc *CookieCodec) Encode(sessionID string) (string, error) {
	return cc.sc.Encode(SessionCookie, sessionID)
}

// Decode verifies a cookie value and returns the session id it carries.
func (cc *CookieCodec) Decode(value string) (string, error) {
	var sessionID string
	if err := cc.sc.Decode(SessionCookie, value, &sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}
