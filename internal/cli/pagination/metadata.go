package pagination

import (
	"github.com/rshade/postdeck/internal/api"
)

// PaginationMeta contains metadata about a paginated listing.
//
//nolint:revive // PaginationMeta is the canonical name for this exported type.
type PaginationMeta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// MetaFromUsersPage builds metadata from a backend users page. The backend's
// own has_next/has_prev flags are trusted as-is.
func MetaFromUsersPage(p api.UsersPage) PaginationMeta {
	return PaginationMeta{
		CurrentPage: p.Page,
		PageSize:    p.Limit,
		TotalPages:  p.TotalPages,
		TotalItems:  p.Count,
		HasPrevious: p.HasPrev,
		HasNext:     p.HasNext,
	}
}

// Window returns the page-number bar for this listing.
func (m PaginationMeta) Window(pick int) []PageMarker {
	return ComputeWindow(m.CurrentPage, m.TotalPages, pick)
}
