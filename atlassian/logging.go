package atlassian

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func SanitizeHeaders(h http.Header) http.Header {
	clean := http.Header{}
	for k, vals := range h {
		switch strings.ToLower(k) {
		case "authorization", "cookie":
			clean[k] = []string{"<redacted>"}
		default:
			clean[k] = append([]string{}, vals...)
		}
	}
	return clean
}

type headerFields http.Header

func (h headerFields) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, vals := range h {
		enc.AddString(k, strings.Join(vals, ", "))
	}
	return nil
}

// Headers is a zap field carrying request headers with credentials redacted.
func Headers(key string, h http.Header) zap.Field {
	return zap.Object(key, headerFields(SanitizeHeaders(h)))
}
