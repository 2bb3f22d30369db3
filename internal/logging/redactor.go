package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor handles secret redaction in log fields.
//
// Named keys match case-insensitively. SRP symbols match exactly, because
// case carries meaning there: "a" is the client's private exponent while "A"
// is its public value.
type Redactor struct {
	sensitiveKeys    map[string]bool
	sensitiveSymbols map[string]bool
}

// NewRedactor creates a new Redactor with default sensitive keys.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":    true,
			"secret":      true,
			"private_key": true,

			// Enrollment record
			"salt":     true,
			"verifier": true,

			// Derived session secrets
			"premaster_secret": true,
			"shared_secret":    true,
			"session_key":      true,
			"k_session":        true,
			"proof":            true,
			"m1":               true,
			"m2":               true,
		},
		sensitiveSymbols: map[string]bool{
			"a": true, // client private exponent
			"b": true, // server private exponent
			"x": true, // password-derived private key
			"v": true, // verifier
			"S": true, // premaster secret
			"K": true, // session key
		},
	}
}

// AddSensitiveKey adds a custom key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// RedactFields redacts sensitive values from a map of fields, descending into
// nested maps.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))

	for k, v := range fields {
		if r.IsSensitive(k) {
			redacted[k] = redactedValue
		} else if nested, ok := v.(map[string]any); ok {
			redacted[k] = r.RedactFields(nested)
		} else {
			redacted[k] = v
		}
	}

	return redacted
}

// RedactString replaces s entirely when it contains a "key=value",
// "key: value" or JSON "key": pattern for a sensitive named key.
func (r *Redactor) RedactString(s string) string {
	lower := strings.ToLower(s)

	for key := range r.sensitiveKeys {
		patterns := []string{
			key + "=",
			key + ": ",
			"\"" + key + "\":",
		}

		for _, pattern := range patterns {
			if strings.Contains(lower, pattern) {
				return redactedValue
			}
		}
	}

	return s
}

// IsSensitive reports whether a field key is redacted.
func (r *Redactor) IsSensitive(key string) bool {
	if r.sensitiveSymbols[key] {
		return true
	}
	return r.sensitiveKeys[strings.ToLower(key)]
}
