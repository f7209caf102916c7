package domain

import (
	"errors"
	"strings"
)

// Job posting statuses. Listing, search, and stats expose published
// postings only; the other values are labels set by the publisher.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusExpired   = "expired"
	StatusClosed    = "closed"
)

// Logo slugs derived from the company name.
const (
	LogoAmazon  = "amazon"
	LogoTesla   = "tesla"
	LogoGeneric = "generic"
)

// DefaultExperience is applied when a posting does not specify one.
const DefaultExperience = "1-3 yr Exp"

var (
	ErrJobNotFound = errors.New("job not found")
)

// DeriveLogo maps a company name to its logo slug. The match is a
// case-insensitive substring check, so "Amazon Inc" and "AMAZON" both
// resolve to the amazon logo.
func DeriveLogo(company string) string {
	c := strings.ToLower(company)
	switch {
	case strings.Contains(c, "amazon"):
		return LogoAmazon
	case strings.Contains(c, "tesla"):
		return LogoTesla
	default:
		return LogoGeneric
	}
}

// IsValidStatus reports whether s is one of the posting statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusExpired, StatusClosed:
		return true
	}
	return false
}
