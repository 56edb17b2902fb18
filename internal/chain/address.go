package chain

import (
	"encoding/hex"
	"strings"
)

// Address format: 0x followed by 20 bytes of hex, lowercase preferred but
// accepted case-insensitively.
const addressHexLen = 40

// ValidAddress reports whether s is a well-formed account address.
func ValidAddress(s string) bool {
	if len(s) != 2+addressHexLen {
		return false
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	_, err := hex.DecodeString(s[2:])
	return err == nil
}

// NormalizeAddress lowercases a well-formed address so equality checks on
// issuer/owner identities are canonical.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}
