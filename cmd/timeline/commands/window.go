package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
)

func newWindowCommand() *cobra.Command {
	var (
		granularity string
		date        string
		size        int
		output      string
	)

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the bucket window around a date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := location(cmd)
			if err != nil {
				return err
			}

			now := time.Now().In(loc)
			ref := now
			if date != "" {
				ref, err = time.ParseInLocation(dateLayout, date, loc)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
				}
			}

			g := entity.Granularity(granularity)
			if size == 0 {
				size = timeline.DefaultWindowSize(g)
			}

			buckets, err := timeline.GenerateAt(ref, g, size, now)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), output, toViews(buckets, timeline.Identify(ref, g)))
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "week",
		"Bucket granularity (day, week, month, year)")
	cmd.Flags().StringVar(&date, "date", "",
		"Reference date as YYYY-MM-DD (default today)")
	cmd.Flags().IntVarP(&size, "size", "n", 0,
		"Number of buckets (0 = granularity default)")
	cmd.Flags().StringVarP(&output, "output", "o", "table",
		"Output format (table, json, yaml)")

	return cmd
}

func newParseCommand() *cobra.Command {
	var (
		granularity string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "parse <bucket-id>",
		Short: "Resolve a bucket id to its time range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := location(cmd)
			if err != nil {
				return err
			}

			g := entity.Granularity(granularity)
			start, err := timeline.ParseBucketID(args[0], g, loc)
			if err != nil {
				return err
			}

			bucket := timeline.NewBucket(start, g, time.Now().In(loc))
			return render(cmd.OutOrStdout(), output, toViews([]entity.TimeBucket{bucket}, bucket.ID))
		},
	}

	cmd.Flags().StringVarP(&granularity, "granularity", "g", "week",
		"Granularity the id belongs to (day, week, month, year)")
	cmd.Flags().StringVarP(&output, "output", "o", "table",
		"Output format (table, json, yaml)")

	return cmd
}
