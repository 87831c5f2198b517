package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/api"
	"github.com/rshade/postdeck/internal/cli/pagination"
	"github.com/rshade/postdeck/internal/config"
)

// newUsersCmd creates the users command group.
func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Inspect backend users"}
	cmd.AddCommand(NewUsersListCmd(), NewUsersGetCmd(), NewUsersCountCmd())
	return cmd
}

// usersListOutput is the structured form of users list.
type usersListOutput struct {
	Users      []api.User                `json:"users"      yaml:"users"`
	Pagination pagination.PaginationMeta `json:"pagination" yaml:"pagination"`
}

// NewUsersListCmd creates the users list command.
func NewUsersListCmd() *cobra.Command {
	params := pagination.NewPaginationParams()
	var (
		sort string
		pick int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of users",
		Example: `  # First page with the configured page size
  postdeck users list

  # Page 3, ten users per page, sorted by name descending
  postdeck users list --page 3 --limit 10 --sort name:desc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("limit") {
				params.WithLimit(config.GetGlobalConfig().API.PageSize)
			}
			if err := params.Bind(sort); err != nil {
				return err
			}
			return runUsersList(cmd, params, pagination.NormalizePick(pick))
		},
	}

	params.AddFlags(cmd, &sort)
	cmd.Flags().IntVar(&pick, "pick", pagination.DefaultPick, "page numbers shown around the current page")

	return cmd
}

func runUsersList(cmd *cobra.Command, params *pagination.PaginationParams, pick int) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	sorter := pagination.NewUserSorter()
	if params.SortField != "" && !sorter.IsValidField(params.SortField) {
		return fmt.Errorf("%w: %q (valid: %s)", pagination.ErrInvalidSortField,
			params.SortField, strings.Join(sorter.GetValidFields(), ", "))
	}

	client, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	page, err := client.ListUsers(cmd.Context(), params.Page, params.Limit)
	if err != nil {
		return fmt.Errorf("listing users: %w", err)
	}
	users := page.Users
	if params.SortField != "" {
		users = sorter.Sort(users, params.SortField, params.SortOrder)
	}
	meta := pagination.MetaFromUsersPage(page)

	logger.Debug().Ctx(cmd.Context()).
		Int("page", meta.CurrentPage).
		Int("total_pages", meta.TotalPages).
		Int("returned", len(users)).
		Msg("listed users")

	if format != outputTable {
		return writeStructured(cmd.OutOrStdout(), format, usersListOutput{Users: users, Pagination: meta})
	}

	if len(users) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "ID\tName\tEmail\tCity")
	fmt.Fprintln(w, "--\t----\t-----\t----")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Address.City)
	}
	if err = w.Flush(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, pagination.RenderWindow(meta.Window(pick), meta.CurrentPage))
	fmt.Fprintf(out, "Page %d of %d (%s users)\n", meta.CurrentPage, meta.TotalPages, formatCount(meta.TotalItems))
	return nil
}

// NewUsersGetCmd creates the users get command.
func NewUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return fmt.Errorf("getting user %s: %w", args[0], err)
			}

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, user)
			}
			printUser(cmd, user)
			return nil
		},
	}
}

func printUser(cmd *cobra.Command, u api.User) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	fmt.Fprintf(w, "Name:\t%s\n", u.Name)
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone:\t%s\n", u.Phone)
	}
	fmt.Fprintf(w, "Address:\t%s\n", u.Address)
	if !u.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Created:\t%s\n", u.CreatedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
}

// usersCountOutput is the structured form of users count.
type usersCountOutput struct {
	Count int `json:"count" yaml:"count"`
}

// NewUsersCountCmd creates the users count command.
func NewUsersCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := outputFormat()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			n, err := client.CountUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("counting users: %w", err)
			}

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, usersCountOutput{Count: n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s users\n", formatCount(n))
			return nil
		},
	}
}
