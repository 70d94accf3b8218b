package usersync

import (
	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/validation"
)

// Form is the interaction state of the user form. A field is untouched until
// its first blur; only touched fields display their error.
type Form struct {
	Values  map[string]string `json:"values"`
	Touched map[string]bool   `json:"touched"`
	Errors  map[string]string `json:"errors"`
}

// NewForm returns a form holding u's values, or an empty form for nil.
func NewForm(u *dom.User) Form {
	f := Form{}
	f.Reset(u)
	return f
}

// Reset loads u (or blanks) and forgets touched fields and errors.
func (f *Form) Reset(u *dom.User) {
	var src dom.User
	if u != nil {
		src = *u
	}
	f.Values = src.Values()
	f.Touched = map[string]bool{}
	f.Errors = map[string]string{}
}

// Change records a new value. The field is revalidated only once touched.
// It reports false for fields the validator has no rule for.
func (f *Form) Change(v *validation.Validator, name, value string) bool {
	if _, ok := v.Rule(name); !ok {
		return false
	}
	f.ensure()
	f.Values[name] = value
	if f.Touched[name] {
		f.setError(name, v.ValidateField(name, value))
	}
	return true
}

// Blur marks the field touched and validates it.
func (f *Form) Blur(v *validation.Validator, name, value string) bool {
	if _, ok := v.Rule(name); !ok {
		return false
	}
	f.ensure()
	f.Values[name] = value
	f.Touched[name] = true
	f.setError(name, v.ValidateField(name, value))
	return true
}

// Submit runs full-form validation. On failure every field becomes touched
// so all messages show.
func (f *Form) Submit(v *validation.Validator) validation.Errors {
	f.ensure()
	errs := v.ValidateForm(f.Values)
	f.Errors = map[string]string{}
	for name, msg := range errs {
		f.Errors[name] = msg
	}
	if !errs.Valid() {
		for _, r := range v.Rules() {
			f.Touched[r.Name] = true
		}
	}
	return errs
}

// VisibleError is the message to display under the field, if any.
func (f *Form) VisibleError(name string) string {
	if !f.Touched[name] {
		return ""
	}
	return f.Errors[name]
}

func (f *Form) Value(name string) string {
	return f.Values[name]
}

// Candidate builds the record to submit from the current values.
func (f *Form) Candidate() dom.User {
	return dom.FromValues("", f.Values)
}

func (f *Form) setError(name, msg string) {
	if msg == "" {
		delete(f.Errors, name)
		return
	}
	f.Errors[name] = msg
}

// ensure guards against forms decoded from a session with null maps.
func (f *Form) ensure() {
	if f.Values == nil {
		f.Values = map[string]string{}
	}
	if f.Touched == nil {
		f.Touched = map[string]bool{}
	}
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
}
