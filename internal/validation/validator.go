package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	dom "usermgmt/internal/domain/user"
)

// Errors maps a field name to its message. An empty map means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, name := range dom.Fields {
		if msg, ok := e[name]; ok {
			parts = append(parts, name+": "+msg)
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct {
	rules []Rule
	index map[string]Rule
	check *validator.Validate
}

// New builds a validator over rules. Rule names must be unique user fields.
func New(rules []Rule) (*Validator, error) {
	known := make(map[string]bool, len(dom.Fields))
	for _, f := range dom.Fields {
		known[f] = true
	}

	index := make(map[string]Rule, len(rules))
	for _, r := range rules {
		if !known[r.Name] {
			return nil, fmt.Errorf("rule %q: not a user field", r.Name)
		}
		if _, dup := index[r.Name]; dup {
			return nil, fmt.Errorf("rule %q: defined twice", r.Name)
		}
		index[r.Name] = r
	}

	return &Validator{
		rules: rules,
		index: index,
		check: validator.New(),
	}, nil
}

// Default returns a validator over DefaultRules.
func Default() *Validator {
	v, err := New(DefaultRules)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Validator) Rules() []Rule {
	return v.rules
}

func (v *Validator) Rule(name string) (Rule, bool) {
	r, ok := v.index[name]
	return r, ok
}

// ValidateField returns the message for value, or "" if it passes.
// The pattern is checked before the required flag.
func (v *Validator) ValidateField(name, value string) string {
	r, ok := v.index[name]
	if !ok {
		return ""
	}

	if r.Pattern != nil && value != "" && !r.Pattern.MatchString(value) {
		return r.patternMessage()
	}

	if r.Required && v.check.Var(strings.TrimSpace(value), "required") != nil {
		return r.requiredMessage()
	}

	return ""
}

// ValidateForm checks every rule and then the submit-only phone length rule.
func (v *Validator) ValidateForm(values map[string]string) Errors {
	errs := Errors{}
	for _, r := range v.rules {
		if msg := v.ValidateField(r.Name, values[r.Name]); msg != "" {
			errs[r.Name] = msg
		}
	}

	if _, ok := v.index[dom.FieldPhone]; ok {
		phone := strings.TrimSpace(values[dom.FieldPhone])
		if v.check.Var(phone, "len="+strconv.Itoa(PhoneLength)) != nil {
			errs[dom.FieldPhone] = PhoneLengthMessage
		}
	}

	return errs
}
