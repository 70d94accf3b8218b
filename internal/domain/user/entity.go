package user

import "time"

// User is one record of the users collection. ID is assigned by the server;
// an empty ID means the record has not been acknowledged yet.
type User struct {
	ID        string    `json:"id,omitempty"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (u User) Persisted() bool {
	return u.ID != ""
}

// Field names as they appear on the wire and in form rules.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldPhone     = "phone"
	FieldEmail     = "email"
)

// Fields lists the editable fields in display order.
var Fields = []string{FieldFirstName, FieldLastName, FieldPhone, FieldEmail}

// Values returns the editable fields keyed by wire name.
func (u User) Values() map[string]string {
	return map[string]string{
		FieldFirstName: u.FirstName,
		FieldLastName:  u.LastName,
		FieldPhone:     u.Phone,
		FieldEmail:     u.Email,
	}
}

// FromValues builds a User from wire-named field values. Unknown keys are ignored.
func FromValues(id string, values map[string]string) User {
	return User{
		ID:        id,
		FirstName: values[FieldFirstName],
		LastName:  values[FieldLastName],
		Phone:     values[FieldPhone],
		Email:     values[FieldEmail],
	}
}
