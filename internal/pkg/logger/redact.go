package logger

import "strings"

// secretKeyHints marks log field names whose values are credential material:
// gateway keys, webhook secrets, bearer tokens.
var secretKeyHints = []string{
	"secret", "token", "authorization", "apikey", "api_key", "webhook_key", "password",
}

func redactSecretValue(key, val string) string {
	lower := strings.ToLower(key)
	for _, hint := range secretKeyHints {
		if strings.Contains(lower, hint) {
			return RedactKey(val)
		}
	}
	return val
}

// RedactKey masks credential material for safe logging, preserving the last
// four characters of longer keys so entries remain correlatable.
// "sk_live_a1b2c3d4" → "****c3d4"
func RedactKey(k string) string {
	if k == "" {
		return ""
	}
	if len(k) <= 8 {
		return "****"
	}
	return "****" + k[len(k)-4:]
}
