// Package validation holds the declarative field rules for the user form and
// evaluates them.
package validation

import (
	"regexp"

	dom "usermgmt/internal/domain/user"
)

// Rule describes how one user field is validated.
type Rule struct {
	Name            string
	Label           string
	Required        bool
	RequiredMessage string
	Pattern         *regexp.Regexp
	PatternMessage  string
}

const (
	defaultRequiredMessage = "This field is required"
	defaultPatternMessage  = "Invalid value"

	// PhoneLength is enforced only when the form is submitted.
	PhoneLength        = 10
	PhoneLengthMessage = "Phone must be exactly 10 digits"
)

var (
	lettersPattern = regexp.MustCompile(`^[A-Za-z\s]+$`)
	digitsPattern  = regexp.MustCompile(`^[0-9]*$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)
)

// DefaultRules is the rule set for the user form, in display order.
var DefaultRules = []Rule{
	{
		Name:            dom.FieldFirstName,
		Label:           "First Name",
		Required:        true,
		RequiredMessage: "First Name is required",
		Pattern:         lettersPattern,
		PatternMessage:  "Only letters are allowed in First Name",
	},
	{
		Name:            dom.FieldLastName,
		Label:           "Last Name",
		Required:        true,
		RequiredMessage: "Last Name is required",
		Pattern:         lettersPattern,
		PatternMessage:  "Only letters are allowed in Last Name",
	},
	{
		Name:            dom.FieldPhone,
		Label:           "Phone Number",
		Required:        true,
		RequiredMessage: "Phone is required",
		Pattern:         digitsPattern,
		PatternMessage:  "Only digits are allowed",
	},
	{
		Name:            dom.FieldEmail,
		Label:           "Email Address",
		Required:        true,
		RequiredMessage: "Email is required",
		Pattern:         emailPattern,
		PatternMessage:  "Enter a valid email address",
	},
}

func (r Rule) requiredMessage() string {
	if r.RequiredMessage != "" {
		return r.RequiredMessage
	}
	return defaultRequiredMessage
}

func (r Rule) patternMessage() string {
	if r.PatternMessage != "" {
		return r.PatternMessage
	}
	return defaultPatternMessage
}
