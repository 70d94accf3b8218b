package usersapi

import (
	"bytes"
	"encoding/json"

	dom "usermgmt/internal/domain/user"
)

// createRequest is the create body: the server assigns the id.
type createRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

type updateRequest struct {
	ID string `json:"id"`
	createRequest
}

type userResponse struct {
	ID        wireID `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

func toRequest(u dom.User) createRequest {
	return createRequest{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Email:     u.Email,
	}
}

func toUpdateRequest(id string, u dom.User) updateRequest {
	return updateRequest{ID: id, createRequest: toRequest(u)}
}

func (r userResponse) toDomain() dom.User {
	return dom.User{
		ID:        string(r.ID),
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Email:     r.Email,
	}
}

func toDomainUsers(list []userResponse) []dom.User {
	res := make([]dom.User, 0, len(list))
	for _, r := range list {
		res = append(res, r.toDomain())
	}
	return res
}

// wireID accepts both string and numeric ids; some backends number their records.
type wireID string

func (id *wireID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = wireID(n.String())
	return nil
}
