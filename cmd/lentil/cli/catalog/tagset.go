package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
	"github.com/spf13/cobra"
)

func NewTagsetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagset",
		Short: "Manage tagsets",
		Long:  "Create and update tagsets, toggle their harvest flag and assign tags to them.",
	}

	cmd.AddCommand(newTagsetCreateCommand())
	cmd.AddCommand(newTagsetListCommand())
	cmd.AddCommand(newTagsetUpdateCommand())
	cmd.AddCommand(newTagsetDeleteCommand())
	cmd.AddCommand(newTagsetAssignCommand())
	cmd.AddCommand(newTagsetUnassignCommand())
	cmd.AddCommand(newTagsetTagsCommand())

	return cmd
}

func newTagsetCreateCommand() *cobra.Command {
	var description string
	var harvest bool

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a new tagset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tagset, err := st.CreateTagset(ctx, models.TagsetInput{
					Title:       args[0],
					Description: description,
					Harvest:     harvest,
				})
				if err != nil {
					return err
				}

				l.Info("Created tagset '%s' (id: %d, harvest: %t)", tagset.Title, tagset.ID, tagset.Harvest)
				return printTagsets(cmd, []models.Tagset{*tagset})
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description of the tagset")
	cmd.Flags().BoolVar(&harvest, "harvest", false, "Flag the tagset for harvesting")
	addOutputFlag(cmd)

	return cmd
}

func newTagsetListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tagsets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tagsets, err := st.ListTagsets(ctx)
				if err != nil {
					return err
				}
				return printTagsets(cmd, tagsets)
			})
		},
	}

	addOutputFlag(cmd)

	return cmd
}

func newTagsetUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the title, description or harvest flag of a tagset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tagset", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tagset, err := st.GetTagset(ctx, id)
				if err != nil {
					return err
				}

				input := models.TagsetInput{
					Title:       tagset.Title,
					Description: tagset.Description,
					Harvest:     tagset.Harvest,
				}
				if cmd.Flags().Changed("title") {
					input.Title, _ = cmd.Flags().GetString("title")
				}
				if cmd.Flags().Changed("description") {
					input.Description, _ = cmd.Flags().GetString("description")
				}
				if cmd.Flags().Changed("harvest") {
					input.Harvest, _ = cmd.Flags().GetBool("harvest")
				}

				updated, err := st.UpdateTagset(ctx, id, input)
				if err != nil {
					return err
				}

				l.Info("Updated tagset %d", updated.ID)
				return printTagsets(cmd, []models.Tagset{*updated})
			})
		},
	}

	cmd.Flags().String("title", "", "New title of the tagset")
	cmd.Flags().String("description", "", "New description of the tagset")
	cmd.Flags().Bool("harvest", false, "Whether the tagset is flagged for harvesting")
	addOutputFlag(cmd)

	return cmd
}

func newTagsetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tagset, keeping its tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tagset", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.DeleteTagset(ctx, id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted tagset %d\n", id)
				return nil
			})
		},
	}
}

func newTagsetAssignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <tagset-id> <tag-id>",
		Short: "Assign a tag to a tagset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "tagset", "tag")
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.AssignTag(ctx, ids[0], ids[1]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Assigned tag %d to tagset %d\n", ids[1], ids[0])
				return nil
			})
		},
	}
}

func newTagsetUnassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <tagset-id> <tag-id>",
		Short: "Remove a tag from a tagset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "tagset", "tag")
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.UnassignTag(ctx, ids[0], ids[1]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %d from tagset %d\n", ids[1], ids[0])
				return nil
			})
		},
	}
}

func newTagsetTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags <id>",
		Short: "List the tags assigned to a tagset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tagset", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if _, err := st.GetTagset(ctx, id); err != nil {
					return err
				}

				tags, err := st.GetTagsetTags(ctx, id)
				if err != nil {
					return err
				}
				return printTags(cmd, tags)
			})
		},
	}

	addOutputFlag(cmd)

	return cmd
}
