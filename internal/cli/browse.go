package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/postdeck/internal/cli/pagination"
	"github.com/rshade/postdeck/internal/config"
	"github.com/rshade/postdeck/internal/logging"
	"github.com/rshade/postdeck/internal/notify"
	"github.com/rshade/postdeck/internal/tui"
)

// ErrNotTerminal is returned when browse runs without an interactive terminal.
var ErrNotTerminal = errors.New("browse needs an interactive terminal; use 'postdeck users list' in scripts")

// NewBrowseCmd creates the browse command, which starts the interactive
// users and posts browser.
func NewBrowseCmd() *cobra.Command {
	var (
		page int
		pick int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse users and their posts interactively",
		Long: `Opens a full-screen browser over the backend's users.

Keys: ←/h and →/l change page, g and G jump to the first and last page,
enter opens a user's posts, n writes a new post, d deletes the selected post,
x dismisses the newest notification, esc goes back and q quits.

Logs are written to the log file (default ~/.postdeck/logs/postdeck.log).`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationLogToFile: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return ErrNotTerminal
			}
			if page < pagination.MinPage {
				return pagination.ErrInvalidPage
			}

			client, err := newAPIClient(cmd)
			if err != nil {
				return err
			}

			cfg := config.GetGlobalConfig()
			log := logging.FromContext(cmd.Context())
			store := notify.NewStore(
				notify.WithTTL(cfg.Notifications.TTL),
				notify.WithLogger(*log),
			)

			return tui.Run(cmd.Context(), tui.Options{
				Backend:  client,
				Store:    store,
				Logger:   *log,
				PageSize: cfg.API.PageSize,
				Pick:     pagination.NormalizePick(pick),
				Page:     page,
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", pagination.DefaultPage, "page to open first")
	cmd.Flags().IntVar(&pick, "pick", pagination.DefaultPick, "page numbers shown around the current page")

	return cmd
}
