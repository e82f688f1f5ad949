package validation

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"linkup/internal/model"
)

func TestChain_AllValid(t *testing.T) {
	chain := NewChain()
	username := chain.Field("username", "  Alice_1  ", Trim(), LengthBetween(3, 30, "bad length"))
	email := chain.Field("email", "  Alice@Example.COM ", Trim(), Email("bad email"), Lowercase())

	if err := chain.Validate(context.Background()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if username.Value() != "Alice_1" {
		t.Errorf("username = %q, want %q", username.Value(), "Alice_1")
	}
	if email.Value() != "alice@example.com" {
		t.Errorf("email = %q, want %q", email.Value(), "alice@example.com")
	}
}

func TestChain_ShortCircuitsPerField(t *testing.T) {
	reached := false
	spy := func(ctx context.Context, value *string) error {
		reached = true
		return nil
	}

	chain := NewChain()
	chain.Field("name", "", Required("name is required"), Rule(spy))

	err := chain.Validate(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if reached {
		t.Error("rules after the first failure of a field must not run")
	}
}

func TestChain_AggregatesFirstFailurePerField(t *testing.T) {
	chain := NewChain()
	chain.Field("a", "", Required("a is required"), LengthBetween(3, 5, "a has bad length"))
	chain.Field("b", "ok-value")
	chain.Field("c", "", Required("c is required"))

	err := chain.Validate(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := model.AsAppError(err)
	if appErr.Kind != model.KindInvalidInput {
		t.Errorf("kind = %v, want KindInvalidInput", appErr.Kind)
	}
	// One message per failed field, declaration order, comma joined.
	if appErr.Message != "a is required, c is required" {
		t.Errorf("message = %q, want %q", appErr.Message, "a is required, c is required")
	}
}

func TestChain_InternalFaultAborts(t *testing.T) {
	storeErr := errors.New("store unreachable")
	chain := NewChain()
	chain.Field("username", "alice", NotTaken(func(ctx context.Context, value string) (bool, error) {
		return false, storeErr
	}, "taken"))

	err := chain.Validate(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	appErr := model.AsAppError(err)
	if appErr.Kind != model.KindInternal {
		t.Errorf("kind = %v, want KindInternal", appErr.Kind)
	}
	if !errors.Is(err, storeErr) {
		t.Error("internal fault must wrap the underlying error")
	}
}

func TestNotTaken(t *testing.T) {
	taken := NotTaken(func(ctx context.Context, value string) (bool, error) {
		return value == "used", nil
	}, "already in use")

	free := "fresh"
	if err := taken(context.Background(), &free); err != nil {
		t.Errorf("free value should pass, got: %v", err)
	}

	used := "used"
	err := taken(context.Background(), &used)
	if err == nil {
		t.Fatal("expected failure for taken value")
	}
	var rerr ruleError
	if !errors.As(err, &rerr) || string(rerr) != "already in use" {
		t.Errorf("unexpected failure: %v", err)
	}
}

func TestLengthBetween_CountsRunes(t *testing.T) {
	rule := LengthBetween(3, 5, "bad length")

	// Five runes, many more bytes.
	value := "日本語です"
	if err := rule(context.Background(), &value); err != nil {
		t.Errorf("rune count must be used, got: %v", err)
	}
}

func TestPasswordStrength(t *testing.T) {
	rule := PasswordStrength("weak")

	tests := []struct {
		password string
		wantFail bool
	}{
		{"Abc123", false},
		{"alllower1", true},
		{"ALLUPPER1", true},
		{"NoDigits", true},
		{"Mixed1Case", false},
	}
	for _, tt := range tests {
		value := tt.password
		err := rule(context.Background(), &value)
		if tt.wantFail && err == nil {
			t.Errorf("PasswordStrength(%q) should fail", tt.password)
		}
		if !tt.wantFail && err != nil {
			t.Errorf("PasswordStrength(%q) should pass, got: %v", tt.password, err)
		}
	}
}

func TestEmail(t *testing.T) {
	rule := Email("bad email")

	for _, good := range []string{"a@b.co", "first.last@sub.example.org"} {
		value := good
		if err := rule(context.Background(), &value); err != nil {
			t.Errorf("Email(%q) should pass, got: %v", good, err)
		}
	}
	for _, bad := range []string{"", "plain", "a b@c.d", "a@b", "@example.com"} {
		value := bad
		if err := rule(context.Background(), &value); err == nil {
			t.Errorf("Email(%q) should fail", bad)
		}
	}
}

func TestMatches(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z]+$`)
	rule := Matches(pattern, "lowercase only")

	value := "abc"
	if err := rule(context.Background(), &value); err != nil {
		t.Errorf("expected pass, got: %v", err)
	}

	value = "ABC"
	if err := rule(context.Background(), &value); err == nil {
		t.Error("expected failure")
	}
}

func TestMaxLength(t *testing.T) {
	rule := MaxLength(3, "too long")

	value := strings.Repeat("x", 3)
	if err := rule(context.Background(), &value); err != nil {
		t.Errorf("exactly the limit must pass, got: %v", err)
	}

	value = strings.Repeat("x", 4)
	if err := rule(context.Background(), &value); err == nil {
		t.Error("over the limit must fail")
	}
}
