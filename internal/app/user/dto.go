package user

import (
	"time"

	dom "usermgmt/internal/domain/user"
)

type UserDto struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// UpdateUserInput replaces every editable field of the record ID.
type UpdateUserInput struct {
	ID string
	CreateUserInput
}

func toDTO(u *dom.User) *UserDto {
	if u == nil {
		return nil
	}
	return &UserDto{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toDTOs(list []dom.User) []UserDto {
	res := make([]UserDto, 0, len(list))
	for _, u := range list {
		item := u // copy
		res = append(res, *toDTO(&item))
	}
	return res
}
