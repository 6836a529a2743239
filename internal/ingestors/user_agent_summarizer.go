package ingestors

import (
	"strings"

	"log-analyzer/internal/models"

	"github.com/mileusna/useragent"
)

const unknownUserAgent = "unknown"

type UserAgentSummarizer interface {
	// Family reduces an http_user_agent value to a browser or client family.
	Family(userAgent models.FieldValue) string
}

type userAgentSummarizer struct{}

func NewUserAgentSummarizer() UserAgentSummarizer {
	return &userAgentSummarizer{}
}

func (s *userAgentSummarizer) Family(userAgent models.FieldValue) string {
	raw, ok := userAgent.AsString()
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return unknownUserAgent
	}

	// unknown agents keep their raw string as the family
	parsed := useragent.Parse(raw)
	if parsed.Name != "" {
		return parsed.Name
	}
	return raw
}
