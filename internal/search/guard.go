// Package search guards user-typed search text before it reaches the
// recipe API.
package search

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// MaxQueryLength is the longest accepted query, in characters.
const MaxQueryLength = 100

// ErrRejected marks a query refused by the guard.
var ErrRejected = errors.New("search query rejected")

const (
	tagCharset = "searchcharset"
	tagSafe    = "searchsafe"
)

// Rules are evaluated left to right; the first failure wins.
var queryRules = fmt.Sprintf("max=%d,%s,%s", MaxQueryLength, tagCharset, tagSafe)

const allowedExtra = "áéíóúÁÉÍÓÚñÑ.,!?-"

var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<iframe`),
	regexp.MustCompile(`(?i)union\s+select`),
	regexp.MustCompile(`(?i)drop\s+table`),
	regexp.MustCompile(`(?i)exec\s*\(`),
	regexp.MustCompile(`(?i)eval\s*\(`),
}

// Guard validates search input. The zero value is not usable; use NewGuard.
type Guard struct {
	validate *validator.Validate
}

// NewGuard builds a Guard with the search rules registered.
func NewGuard() *Guard {
	v := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(tagCharset, func(fl validator.FieldLevel) bool {
		return allowedCharset(fl.Field().String())
	})
	_ = v.RegisterValidation(tagSafe, func(fl validator.FieldLevel) bool {
		return !isDangerous(strings.TrimSpace(fl.Field().String()))
	})
	return &Guard{validate: v}
}

// Clean returns the trimmed query, or an error wrapping ErrRejected naming
// the rule that failed. Blank input is accepted and comes back as "".
func (g *Guard) Clean(raw string) (string, error) {
	if err := g.validate.Var(raw, queryRules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return "", fmt.Errorf("%w: %s", ErrRejected, ruleName(verrs[0].Tag()))
		}
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	return strings.TrimSpace(raw), nil
}

func ruleName(tag string) string {
	switch tag {
	case "max":
		return "too long"
	case tagCharset:
		return "unsupported characters"
	case tagSafe:
		return "disallowed content"
	default:
		return tag
	}
}

func allowedCharset(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case unicode.IsSpace(r):
		case strings.ContainsRune(allowedExtra, r):
		default:
			return false
		}
	}
	return true
}

func isDangerous(s string) bool {
	if s == "" {
		return false
	}
	for _, p := range dangerousPatterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
