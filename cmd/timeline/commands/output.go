package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/epiwatch/backend/internal/domain/entity"
)

type bucketView struct {
	ID           string    `json:"id" yaml:"id"`
	Granularity  string    `json:"granularity" yaml:"granularity"`
	Start        time.Time `json:"start" yaml:"start"`
	End          time.Time `json:"end" yaml:"end"`
	Label        string    `json:"label" yaml:"label"`
	DisplayValue string    `json:"display_value" yaml:"display_value"`
	IsCurrent    bool      `json:"is_current" yaml:"is_current"`
	IsSelected   bool      `json:"is_selected" yaml:"is_selected"`
}

func toViews(buckets []entity.TimeBucket, selectedID string) []bucketView {
	views := make([]bucketView, len(buckets))
	for i, b := range buckets {
		views[i] = bucketView{
			ID:           b.ID,
			Granularity:  string(b.Granularity),
			Start:        b.Start,
			End:          b.End,
			Label:        b.Label,
			DisplayValue: b.DisplayValue,
			IsCurrent:    b.IsCurrent,
			IsSelected:   b.ID == selectedID,
		}
	}
	return views
}

func render(w io.Writer, format string, views []bucketView) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		return renderTable(w, views)
	default:
		return fmt.Errorf("unknown output format %q (table, json, yaml)", format)
	}
}

func renderTable(w io.Writer, views []bucketView) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tLABEL\tVALUE\tSTART\tEND\t")
	for _, v := range views {
		marker := ""
		if v.IsSelected {
			marker = "*"
		}
		if v.IsCurrent {
			marker += " now"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Label, v.DisplayValue,
			v.Start.Format(dateLayout),
			v.End.Add(-time.Nanosecond).Format(dateLayout),
			marker,
		)
	}
	return tw.Flush()
}
