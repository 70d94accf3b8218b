package usersync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "usermgmt/internal/domain/user"
	"usermgmt/internal/validation"
)

func TestFormTouchedStateMachine(t *testing.T) {
	v := validation.Default()
	f := NewForm(nil)

	// untouched: changes are stored but not validated
	require.True(t, f.Change(v, dom.FieldFirstName, "Ann1"))
	assert.Equal(t, "Ann1", f.Value(dom.FieldFirstName))
	assert.Empty(t, f.VisibleError(dom.FieldFirstName))

	// first blur touches and validates
	f.Blur(v, dom.FieldFirstName, "Ann1")
	assert.Equal(t, "Only letters are allowed in First Name", f.VisibleError(dom.FieldFirstName))

	// touched: every change revalidates
	f.Change(v, dom.FieldFirstName, "Ann")
	assert.Empty(t, f.VisibleError(dom.FieldFirstName))
	f.Change(v, dom.FieldFirstName, "")
	assert.Equal(t, "First Name is required", f.VisibleError(dom.FieldFirstName))
}

func TestFormIgnoresUnknownFields(t *testing.T) {
	v := validation.Default()
	f := NewForm(nil)

	assert.False(t, f.Change(v, "nickname", "x"))
	assert.False(t, f.Blur(v, "nickname", "x"))
	assert.NotContains(t, f.Values, "nickname")
}

func TestFormSubmit(t *testing.T) {
	v := validation.Default()
	f := NewForm(&dom.User{FirstName: "Ann", LastName: "Lee", Phone: "555", Email: "a@b.com"})

	errs := f.Submit(v)
	assert.False(t, errs.Valid())
	assert.Equal(t, validation.PhoneLengthMessage, f.VisibleError(dom.FieldPhone))
	assert.Empty(t, f.VisibleError(dom.FieldEmail))
	assert.True(t, f.Touched[dom.FieldEmail])

	f.Change(v, dom.FieldPhone, "5551234567")
	errs = f.Submit(v)
	assert.True(t, errs.Valid())
	assert.Equal(t, dom.User{FirstName: "Ann", LastName: "Lee", Phone: "5551234567", Email: "a@b.com"}, f.Candidate())
}

func TestFormReset(t *testing.T) {
	v := validation.Default()
	f := NewForm(nil)
	f.Blur(v, dom.FieldEmail, "bad")
	require.NotEmpty(t, f.VisibleError(dom.FieldEmail))

	f.Reset(&ann)
	assert.Equal(t, ann.Values(), f.Values)
	assert.Empty(t, f.Touched)
	assert.Empty(t, f.Errors)
}

func TestFormZeroValueIsUsable(t *testing.T) {
	var f Form
	assert.True(t, f.Blur(validation.Default(), dom.FieldPhone, ""))
	assert.Equal(t, "Phone is required", f.VisibleError(dom.FieldPhone))
}
