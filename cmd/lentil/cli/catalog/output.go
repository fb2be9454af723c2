package catalog

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const timeFormat = "2006-01-02 15:04:05"

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "output format (table, yaml)")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	switch format = strings.ToLower(format); format {
	case "", "table":
		return "table", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported output format '%s'", format)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}

func printTags(cmd *cobra.Command, tags []models.Tag) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "yaml" {
		return writeYAML(cmd.OutOrStdout(), tags)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAFF\tCREATED")
	for _, tag := range tags {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", tag.ID, tag.Name, tag.StaffTag, tag.CreatedAt.Format(timeFormat))
	}
	return w.Flush()
}

func printTagsets(cmd *cobra.Command, tagsets []models.Tagset) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "yaml" {
		return writeYAML(cmd.OutOrStdout(), tagsets)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tHARVEST\tDESCRIPTION")
	for _, tagset := range tagsets {
		fmt.Fprintf(w, "%d\t%s\t%t\t%s\n", tagset.ID, tagset.Title, tagset.Harvest, tagset.Description)
	}
	return w.Flush()
}

func printImages(cmd *cobra.Command, images []models.Image) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	if format == "yaml" {
		return writeYAML(cmd.OutOrStdout(), images)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tURL\tCREATED\tDESCRIPTION")
	for _, image := range images {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", image.ID, image.URL, image.CreatedAt.Format(timeFormat), image.Description)
	}
	return w.Flush()
}
