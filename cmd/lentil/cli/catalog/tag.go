package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/lentil/internal/tagging"
	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
	"github.com/spf13/cobra"
)

func NewTagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Manage tags",
		Long:  "Create, inspect and remove tags and list the images and tagsets they belong to.",
	}

	cmd.AddCommand(newTagCreateCommand())
	cmd.AddCommand(newTagListCommand())
	cmd.AddCommand(newTagShowCommand())
	cmd.AddCommand(newTagUpdateCommand())
	cmd.AddCommand(newTagDeleteCommand())
	cmd.AddCommand(newTagImagesCommand())
	cmd.AddCommand(newTagTagsetsCommand())
	cmd.AddCommand(newTagHarvestableCommand())

	return cmd
}

func newTagCreateCommand() *cobra.Command {
	var staff bool

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tag, err := tagging.NewService(st, l.Named("tagging")).Create(ctx, args[0], staff)
				if err != nil {
					return err
				}
				return printTags(cmd, []models.Tag{*tag})
			})
		},
	}

	cmd.Flags().BoolVar(&staff, "staff", false, "Mark the tag as a staff tag")
	addOutputFlag(cmd)

	return cmd
}

func newTagListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tags, err := st.ListTags(ctx, limit, offset)
				if err != nil {
					return err
				}
				return printTags(cmd, tags)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of tags to list (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of tags to skip")
	addOutputFlag(cmd)

	return cmd
}

func newTagShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tag", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tag, err := st.GetTag(ctx, id)
				if err != nil {
					return err
				}
				return printTags(cmd, []models.Tag{*tag})
			})
		},
	}

	addOutputFlag(cmd)

	return cmd
}

func newTagUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the name or staff flag of a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tag", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tag, err := st.GetTag(ctx, id)
				if err != nil {
					return err
				}

				input := models.TagInput{
					Name:     tag.Name,
					StaffTag: tag.StaffTag,
				}
				if cmd.Flags().Changed("name") {
					input.Name, _ = cmd.Flags().GetString("name")
				}
				if cmd.Flags().Changed("staff") {
					input.StaffTag, _ = cmd.Flags().GetBool("staff")
				}

				updated, err := st.UpdateTag(ctx, id, input)
				if err != nil {
					return err
				}

				l.Info("Updated tag %d", updated.ID)
				return printTags(cmd, []models.Tag{*updated})
			})
		},
	}

	cmd.Flags().String("name", "", "New name of the tag")
	cmd.Flags().Bool("staff", false, "Whether the tag is a staff tag")
	addOutputFlag(cmd)

	return cmd
}

func newTagDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a tag and detach it from all images and tagsets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tag", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.DeleteTag(ctx, id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted tag %d\n", id)
				return nil
			})
		},
	}
}

func newTagImagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "images <id>",
		Short: "List the images tagged with a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tag", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				images, err := tagging.NewService(st, l.Named("tagging")).Images(ctx, id)
				if err != nil {
					return err
				}
				return printImages(cmd, images)
			})
		},
	}

	addOutputFlag(cmd)

	return cmd
}

func newTagTagsetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagsets <id>",
		Short: "List the tagsets a tag is assigned to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("tag", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tagsets, err := tagging.NewService(st, l.Named("tagging")).Tagsets(ctx, id)
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

func newTagHarvestableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvestable",
		Short: "List tags assigned to at least one harvest tagset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				tags, err := tagging.NewService(st, l.Named("tagging")).HarvestableTags(ctx)
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
