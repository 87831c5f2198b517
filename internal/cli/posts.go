package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/api"
)

var (
	// ErrUserRequired is returned when --user is missing.
	ErrUserRequired = errors.New("--user is required")

	// ErrNotConfirmed is returned when a deletion was not confirmed.
	ErrNotConfirmed = errors.New("deletion not confirmed; pass --yes to skip the prompt")
)

// newPostsCmd creates the posts command group.
func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "posts", Short: "List, create and delete posts"}
	cmd.AddCommand(NewPostsListCmd(), NewPostsCreateCmd(), NewPostsDeleteCmd())
	return cmd
}

// NewPostsListCmd creates the posts list command.
func NewPostsListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the posts of a user",
		Example: `  postdeck posts list --user 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID == "" {
				return ErrUserRequired
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			posts, err := client.ListPosts(cmd.Context(), api.ID(userID))
			if err != nil {
				return fmt.Errorf("listing posts of user %s: %w", userID, err)
			}

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, posts)
			}
			return printPosts(cmd, posts)
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "id of the user whose posts to list")
	return cmd
}

func printPosts(cmd *cobra.Command, posts []api.Post) error {
	if len(posts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No posts found.")
		return nil
	}

	const bodyWidth = 60
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(w, "ID\tTitle\tBody")
	fmt.Fprintln(w, "--\t-----\t----")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Title, truncate(p.Body, bodyWidth))
	}
	return w.Flush()
}

// truncate cuts s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// NewPostsCreateCmd creates the posts create command.
func NewPostsCreateCmd() *cobra.Command {
	var (
		userID string
		post   api.NewPost
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a post for a user",
		Example: `  postdeck posts create --user 3 --title "Hello" --body "First post"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			post.UserID = api.ID(userID)
			if err := post.Validate(); err != nil {
				return err
			}
			format, err := outputFormat()
			if err != nil {
				return err
			}
			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			created, msg, err := client.CreatePost(cmd.Context(), post.Normalize())
			if err != nil {
				return fmt.Errorf("creating post: %w", err)
			}
			logger.Debug().Ctx(cmd.Context()).
				Str("post_id", created.ID.String()).
				Str("user_id", created.UserID.String()).
				Msg("post created")

			if format != outputTable {
				return writeStructured(cmd.OutOrStdout(), format, created)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %s)\n", msg, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "id of the post's author")
	cmd.Flags().StringVar(&post.Title, "title", "", "post title (at most 200 characters)")
	cmd.Flags().StringVar(&post.Body, "body", "", "post body")
	return cmd
}

// NewPostsDeleteCmd creates the posts delete command. Without --yes it asks
// for confirmation, and refuses outright when stdin is not a terminal.
func NewPostsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Example: `  # Asks for confirmation
  postdeck posts delete 12

  # In scripts
  postdeck posts delete 12 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				answer := Confirm(cmd.OutOrStdout(), cmd.InOrStdin(),
					fmt.Sprintf("Delete post %s?", args[0]), isTerminal(os.Stdin))
				if !answer.Accepted {
					return ErrNotConfirmed
				}
			}

			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			msg, err := client.DeletePost(cmd.Context(), api.ID(args[0]))
			if err != nil {
				return fmt.Errorf("deleting post %s: %w", args[0], err)
			}
			logger.Debug().Ctx(cmd.Context()).Str("post_id", args[0]).Msg("post deleted")

			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}
