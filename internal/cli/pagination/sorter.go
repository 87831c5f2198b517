package pagination

import (
	"slices"
	"sort"
	"strings"

	"github.com/rshade/postdeck/internal/api"
)

// Sorter orders a fetched page of users.
type Sorter interface {
	// Sort returns users ordered by field and order.
	Sort(users []api.User, field, order string) []api.User
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns a list of valid field names for sorting.
	GetValidFields() []string
}

// UserSorter implements Sorter for api.User.
type UserSorter struct {
	keys map[string]func(api.User) string
}

// NewUserSorter creates a UserSorter over the user columns shown in listings.
func NewUserSorter() *UserSorter {
	return &UserSorter{
		keys: map[string]func(api.User) string{
			"id":       func(u api.User) string { return u.ID.String() },
			"name":     func(u api.User) string { return strings.ToLower(u.Name) },
			"username": func(u api.User) string { return strings.ToLower(u.Username) },
			"email":    func(u api.User) string { return strings.ToLower(u.Email) },
			"city":     func(u api.User) string { return strings.ToLower(u.Address.City) },
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *UserSorter) IsValidField(field string) bool {
	_, ok := s.keys[field]
	return ok
}

// GetValidFields returns all valid sort fields.
func (s *UserSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.keys))
	for field := range s.keys {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of users. The input is not modified. An unknown
// field returns the input unchanged.
func (s *UserSorter) Sort(users []api.User, field, order string) []api.User {
	key, ok := s.keys[field]
	if !ok {
		return users
	}

	sorted := slices.Clone(users)
	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			i, j = j, i
		}
		return key(sorted[i]) < key(sorted[j])
	})
	return sorted
}
