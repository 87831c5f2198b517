package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ID identifies a user or a post. The backend emits numeric ids for posts
// and string ids for users, so ID accepts both JSON forms.
type ID string

// UnmarshalJSON decodes a JSON string, number, or null into an ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric-looking ids as JSON numbers and everything else
// as strings, mirroring what the backend sends.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseUint(string(id), 10, 64); err == nil && strconv.FormatUint(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the id as text.
func (id ID) String() string {
	return string(id)
}

// Envelope is the wrapper every backend response uses.
type Envelope[T any] struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
	Data    T      `json:"data,omitempty" yaml:"data,omitempty"`
}

// Address is a user's postal address.
type Address struct {
	ID      ID     `json:"id" yaml:"id"`
	Street  string `json:"street" yaml:"street"`
	City    string `json:"city" yaml:"city"`
	State   string `json:"state" yaml:"state"`
	Zipcode string `json:"zipcode" yaml:"zipcode"`
	UserID  ID     `json:"user_id" yaml:"user_id"`
}

// String renders the address on one line, street first.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s, %s, %s", a.Street, a.State, a.City, a.Zipcode)
}

// User is a backend user record.
type User struct {
	ID        ID        `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Email     string    `json:"email" yaml:"email"`
	Username  string    `json:"username" yaml:"username"`
	Phone     string    `json:"phone" yaml:"phone"`
	Address   Address   `json:"address" yaml:"address"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Post is a message owned by a user.
type Post struct {
	ID        ID        `json:"id" yaml:"id"`
	UserID    ID        `json:"user_id" yaml:"user_id"`
	Title     string    `json:"title" yaml:"title"`
	Body      string    `json:"body" yaml:"body"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// UsersPage is one page of the user listing plus its paging metadata.
type UsersPage struct {
	Users      []User `json:"users" yaml:"users"`
	Count      int    `json:"count" yaml:"count"`
	TotalPages int    `json:"total_pages" yaml:"total_pages"`
	Page       int    `json:"page" yaml:"page"`
	Limit      int    `json:"limit" yaml:"limit"`
	HasNext    bool   `json:"has_next" yaml:"has_next"`
	HasPrev    bool   `json:"has_prev" yaml:"has_prev"`
}

// UserPosts bundles a user with the posts they own.
type UserPosts struct {
	User  User
	Posts []Post
}

// UserCount is the payload of GET /users/count.
type UserCount struct {
	Count int `json:"count"`
}

// UnmarshalJSON accepts the backend's {"count": N} object and a bare
// number.
func (c *UserCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		if err := json.Unmarshal(data, &c.Count); err != nil {
			return fmt.Errorf("decoding user count: %w", err)
		}
		return nil
	}

	var obj struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding user count: %w", err)
	}
	c.Count = obj.Count
	return nil
}
