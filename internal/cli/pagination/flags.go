package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination defaults and validation limits.
const (
	DefaultLimit     = 4
	MinLimit         = 1
	MaxLimit         = 100
	DefaultPage      = 1
	MinPage          = 1
	DefaultPick      = 5
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit      = errors.New("limit must be between 1 and 100")
	ErrInvalidPage       = errors.New("page must be >= 1")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// PaginationParams holds the page-based listing flags.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Page is the 1-based page number requested from the backend.
	Page int

	// Limit is the number of users per page.
	Limit int

	// SortField is the field the fetched page is ordered by (empty keeps backend order).
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Page:      DefaultPage,
		Limit:     DefaultLimit,
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// WithLimit returns params whose default limit is limit instead of DefaultLimit.
// Values outside the accepted range are ignored.
func (p *PaginationParams) WithLimit(limit int) *PaginationParams {
	if limit >= MinLimit && limit <= MaxLimit {
		p.Limit = limit
	}
	return p
}

// Validate checks that page and limit are in range.
func (p PaginationParams) Validate() error {
	if p.Page < MinPage {
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	}
	if p.Limit < MinLimit || p.Limit > MaxLimit {
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	}
	if p.SortOrder != "" && p.SortOrder != SortOrderAsc && p.SortOrder != SortOrderDesc {
		return fmt.Errorf("%w: got %q", ErrInvalidSortOrder, p.SortOrder)
	}
	return nil
}

// AddFlags registers --page, --limit and --sort on cmd. The sort value is
// parsed by Bind after flag parsing.
func (p *PaginationParams) AddFlags(cmd *cobra.Command, sort *string) {
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "page number (1-based)")
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, fmt.Sprintf("users per page (%d-%d)", MinLimit, MaxLimit))
	if sort != nil {
		cmd.Flags().StringVar(sort, "sort", "", "sort the page by field[:asc|desc]")
	}
}

// Bind parses the raw --sort value into the params and validates the result.
func (p *PaginationParams) Bind(sort string) error {
	field, order, err := ParseSort(sort)
	if err != nil {
		return err
	}
	p.SortField, p.SortOrder = field, order
	return p.Validate()
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "name", "email:desc".
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if strings.TrimSpace(sortStr) == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// Clamp returns page limited to [1, totalPages]. When totalPages is zero the
// result is 1.
func Clamp(page, totalPages int) int {
	if totalPages < MinPage {
		return MinPage
	}
	return min(max(page, MinPage), totalPages)
}
