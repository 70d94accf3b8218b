package user

// UserRequest is the body of POST /users and PUT /users/{id}. A client may
// echo the id back on update; on create it is ignored.
type UserRequest struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName"  validate:"required,max=100"`
	Phone     string `json:"phone"     validate:"required,number,len=10"`
	Email     string `json:"email"     validate:"required,email"`
}
