// Package commands implements the timeline CLI, which prints the bucket
// windows the API serves without needing a database.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// NewRootCommand builds the timeline command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "timeline",
		Short: "Inspect reporting timeline buckets",
		Long: `timeline prints the time buckets used by the reporting timeline.

Examples:
  timeline window                                  # Weekly window around today
  timeline window -g day --date 2024-03-15         # Ten days around a date
  timeline window -g month --size 12 -o json       # A year of months as JSON
  timeline parse 2024-W11 -g week                  # Resolve a bucket id`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("timezone", "UTC",
		"Timezone buckets are aligned to (e.g., Africa/Nairobi, UTC)")

	root.AddCommand(newWindowCommand(), newParseCommand())
	return root
}

func location(cmd *cobra.Command) (*time.Location, error) {
	name, err := cmd.Flags().GetString("timezone")
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}
