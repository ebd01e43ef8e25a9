package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule is one predicate of a field together with the message reported when
// it fails.
type Rule struct {
	message  string
	implicit bool
	filled   bool
	check    func(ctx context.Context, value any) (bool, error)
}

// WithMessage replaces the default message.
func (r Rule) WithMessage(message string) Rule {
	r.message = message
	return r
}

// Field binds an input key to its ordered rules.
type Field struct {
	Name  string
	Rules []Rule
}

// RuleSet is evaluated field by field in declaration order.
type RuleSet []Field

// Validate checks data against every rule and returns all failure messages
// in order. A nil slice means the input is valid. An error is returned only
// when a rule could not be evaluated (for example a failed uniqueness lookup).
//
// Absent, null and blank values only trigger required rules, plus filled
// rules when the key is present; the remaining rules of that field are skipped.
func (rs RuleSet) Validate(ctx context.Context, data map[string]any) ([]string, error) {
	var errs []string
	for _, field := range rs {
		value, present := data[field.Name]
		if !present || isEmpty(value) {
			for _, rule := range field.Rules {
				if rule.implicit || (rule.filled && present) {
					errs = append(errs, rule.message)
				}
			}
			continue
		}

		for _, rule := range field.Rules {
			if rule.implicit || rule.filled {
				continue
			}
			ok, err := rule.check(ctx, value)
			if err != nil {
				return nil, fmt.Errorf("validate %s: %w", field.Name, err)
			}
			if !ok {
				errs = append(errs, rule.message)
			}
		}
	}
	return errs, nil
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	}
	return false
}

func simple(message string, fn func(value any) bool) Rule {
	return Rule{
		message: message,
		check: func(_ context.Context, value any) (bool, error) {
			return fn(value), nil
		},
	}
}

func Required(label string) Rule {
	return Rule{message: fmt.Sprintf("O campo %s é obrigatório.", label), implicit: true}
}

// Filled rejects a key that is sent with a null or blank value. An absent
// key passes.
func Filled(label string) Rule {
	return Rule{message: fmt.Sprintf("O campo %s não pode ficar vazio.", label), filled: true}
}

func String(label string) Rule {
	return simple(fmt.Sprintf("O campo %s deve ser um texto.", label), func(value any) bool {
		_, ok := value.(string)
		return ok
	})
}

// MaxLength limits strings by rune count. Other types are left to the type rules.
func MaxLength(label string, n int) Rule {
	return simple(fmt.Sprintf("O campo %s não pode ter mais de %d caracteres.", label, n), func(value any) bool {
		s, ok := value.(string)
		return !ok || utf8.RuneCountInString(s) <= n
	})
}

// MinLength requires a string of at least n runes.
func MinLength(label string, n int) Rule {
	return simple(fmt.Sprintf("O campo %s deve ter pelo menos %d caracteres.", label, n), func(value any) bool {
		s, ok := value.(string)
		return ok && utf8.RuneCountInString(s) >= n
	})
}

func Numeric(label string) Rule {
	return simple(fmt.Sprintf("O campo %s deve ser um número.", label), func(value any) bool {
		_, ok := toNumber(value)
		return ok
	})
}

// Min bounds numeric values from below. Non-numeric values pass; Numeric reports them.
func Min(label string, min float64) Rule {
	return simple(fmt.Sprintf("O campo %s deve ser no mínimo %s.", label, strconv.FormatFloat(min, 'f', -1, 64)), func(value any) bool {
		n, ok := toNumber(value)
		return !ok || n >= min
	})
}

// Max bounds numeric values from above. Non-numeric values pass.
func Max(label string, max float64) Rule {
	return simple(fmt.Sprintf("O campo %s deve ser no máximo %s.", label, strconv.FormatFloat(max, 'f', -1, 64)), func(value any) bool {
		n, ok := toNumber(value)
		return !ok || n <= max
	})
}

func Email(label string) Rule {
	return simple(fmt.Sprintf("O campo %s deve ser um endereço de e-mail válido.", label), func(value any) bool {
		s, ok := value.(string)
		return ok && validEmail(s)
	})
}

func In(label string, allowed []string) Rule {
	msg := fmt.Sprintf("O campo %s deve ser um dos seguintes valores: %s.", label, strings.Join(allowed, ", "))
	return simple(msg, func(value any) bool {
		s, ok := value.(string)
		return ok && slices.Contains(allowed, s)
	})
}

// ExistsFunc reports whether a value is already taken.
type ExistsFunc func(ctx context.Context, value string) (bool, error)

// Unique fails when exists reports the value as taken. Non-string values pass.
func Unique(label string, exists ExistsFunc) Rule {
	return Rule{
		message: fmt.Sprintf("O %s informado já está em uso.", label),
		check: func(ctx context.Context, value any) (bool, error) {
			s, ok := value.(string)
			if !ok {
				return true, nil
			}
			taken, err := exists(ctx, s)
			if err != nil {
				return false, err
			}
			return !taken, nil
		},
	}
}

func validEmail(s string) bool {
	if len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@")+1:], ".")
}

func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case int:
		n = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
