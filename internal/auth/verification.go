package auth

import "encoding/base64"

// The verification token is the account email, reversibly encoded. There is
// no expiry and no single-use tracking; a known limitation carried over from
// the current design rather than silently changed.

// EncodeVerification builds the email-confirmation token for an address.
func EncodeVerification(email string) string {
	return base64.URLEncoding.EncodeToString([]byte(email))
}

// DecodeVerification recovers the email address from a confirmation token.
func DecodeVerification(token string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
