// Package pagination holds the page-based navigation shared by the CLI and
// the terminal UI.
//
// It contains:
//   - PaginationParams: --page/--limit/--sort flag parsing and validation
//   - PaginationMeta: metadata derived from a backend users page
//   - ComputeWindow: the condensed page-number bar (1 … 9 10 11 … 20)
//   - UserSorter: client-side ordering of a fetched page
package pagination
