// Package validation runs declarative per-field rule chains over raw request
// fields. Each field's chain short-circuits on its first failure; independent
// fields are evaluated concurrently. The outcome is all-or-nothing: either
// every field is valid and normalized, or a single aggregated error carrying
// the first failure of each field in declaration order.
package validation

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"linkup/internal/model"
)

// Rule either normalizes the value in place or asserts a predicate. A rule
// failure is reported with Fail; any other error aborts the whole run as an
// internal fault (e.g. the store was unreachable during a uniqueness check).
type Rule func(ctx context.Context, value *string) error

// ruleError distinguishes an expected rule failure from an internal fault.
type ruleError string

func (e ruleError) Error() string { return string(e) }

// Fail reports a rule failure with a human-readable message.
func Fail(message string) error {
	return ruleError(message)
}

// Field is one named value with its ordered rule chain.
type Field struct {
	name  string
	value string
	rules []Rule
}

// Value returns the normalized value after a successful Validate.
func (f *Field) Value() string {
	return f.value
}

// Chain is an ordered list of fields to validate together.
type Chain struct {
	fields []*Field
}

func NewChain() *Chain {
	return &Chain{}
}

// Field registers a value with its rule chain and returns a handle for
// reading the normalized value back.
func (c *Chain) Field(name, value string, rules ...Rule) *Field {
	f := &Field{name: name, value: value, rules: rules}
	c.fields = append(c.fields, f)
	return f
}

// Validate evaluates all field chains concurrently. It returns nil when every
// field passed, an InvalidInput error aggregating first-failure-per-field
// otherwise, or an Internal error if any check itself failed.
func (c *Chain) Validate(ctx context.Context) error {
	failures := make([]string, len(c.fields))

	g, gctx := errgroup.WithContext(ctx)
	for i, field := range c.fields {
		g.Go(func() error {
			for _, rule := range field.rules {
				err := rule(gctx, &field.value)
				if err == nil {
					continue
				}
				var rerr ruleError
				if errors.As(err, &rerr) {
					failures[i] = string(rerr)
					return nil // stop this chain, keep evaluating other fields
				}
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.NewInternal("validation check failed", err)
	}

	var messages []string
	for _, msg := range failures {
		if msg != "" {
			messages = append(messages, msg)
		}
	}
	if len(messages) > 0 {
		return model.NewInvalidInput(strings.Join(messages, ", "))
	}
	return nil
}

// Trim normalizes surrounding whitespace away.
func Trim() Rule {
	return func(ctx context.Context, value *string) error {
		*value = strings.TrimSpace(*value)
		return nil
	}
}

// Lowercase case-folds the value (e.g. email normalization).
func Lowercase() Rule {
	return func(ctx context.Context, value *string) error {
		*value = strings.ToLower(*value)
		return nil
	}
}

// Required fails when the value is empty.
func Required(message string) Rule {
	return func(ctx context.Context, value *string) error {
		if *value == "" {
			return Fail(message)
		}
		return nil
	}
}

// LengthBetween fails when the rune count is outside [min, max].
func LengthBetween(min, max int, message string) Rule {
	return func(ctx context.Context, value *string) error {
		n := utf8.RuneCountInString(*value)
		if n < min || n > max {
			return Fail(message)
		}
		return nil
	}
}

// MaxLength fails when the rune count exceeds max.
func MaxLength(max int, message string) Rule {
	return func(ctx context.Context, value *string) error {
		if utf8.RuneCountInString(*value) > max {
			return Fail(message)
		}
		return nil
	}
}

// Matches fails when the value does not match the pattern.
func Matches(pattern *regexp.Regexp, message string) Rule {
	return func(ctx context.Context, value *string) error {
		if !pattern.MatchString(*value) {
			return Fail(message)
		}
		return nil
	}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email fails when the value is not a plausible address.
func Email(message string) Rule {
	return func(ctx context.Context, value *string) error {
		if !emailPattern.MatchString(*value) {
			return Fail(message)
		}
		return nil
	}
}

// PasswordStrength fails unless the value contains at least one lowercase
// letter, one uppercase letter, and one digit. Go's regexp has no lookahead,
// so the classes are checked directly.
func PasswordStrength(message string) Rule {
	return func(ctx context.Context, value *string) error {
		var lower, upper, digit bool
		for _, r := range *value {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			}
		}
		if !lower || !upper || !digit {
			return Fail(message)
		}
		return nil
	}
}

// NotTaken runs an existence check against the store and fails when the value
// is already in use. A check error aborts the run as an internal fault.
func NotTaken(check func(ctx context.Context, value string) (bool, error), message string) Rule {
	return func(ctx context.Context, value *string) error {
		taken, err := check(ctx, *value)
		if err != nil {
			return err
		}
		if taken {
			return Fail(message)
		}
		return nil
	}
}
