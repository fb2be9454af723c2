package catalog

import (
	"context"
	"fmt"

	"github.com/mwantia/lentil/pkg/db/models"
	"github.com/mwantia/lentil/pkg/db/store"
	"github.com/mwantia/lentil/pkg/log"
	"github.com/spf13/cobra"
)

func NewImageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage images",
		Long:  "Register images and attach or detach tags.",
	}

	cmd.AddCommand(newImageCreateCommand())
	cmd.AddCommand(newImageListCommand())
	cmd.AddCommand(newImageDeleteCommand())
	cmd.AddCommand(newImageTagCommand())
	cmd.AddCommand(newImageUntagCommand())
	cmd.AddCommand(newImageTagsCommand())

	return cmd
}

func newImageCreateCommand() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create <url>",
		Short: "Register a new image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				image, err := st.CreateImage(ctx, models.ImageInput{
					URL:         args[0],
					Description: description,
				})
				if err != nil {
					return err
				}

				l.Info("Registered image %d", image.ID)
				return printImages(cmd, []models.Image{*image})
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description of the image")
	addOutputFlag(cmd)

	return cmd
}

func newImageListCommand() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				images, err := st.ListImages(ctx, limit, offset)
				if err != nil {
					return err
				}
				return printImages(cmd, images)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of images to list (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of images to skip")
	addOutputFlag(cmd)

	return cmd
}

func newImageDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an image and its taggings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("image", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.DeleteImage(ctx, id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Deleted image %d\n", id)
				return nil
			})
		},
	}
}

func newImageTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <image-id> <tag-id>",
		Short: "Attach a tag to an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "image", "tag")
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.TagImage(ctx, ids[0], ids[1]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Tagged image %d with tag %d\n", ids[0], ids[1])
				return nil
			})
		},
	}
}

func newImageUntagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <image-id> <tag-id>",
		Short: "Detach a tag from an image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args, "image", "tag")
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if err := st.UntagImage(ctx, ids[0], ids[1]); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Removed tag %d from image %d\n", ids[1], ids[0])
				return nil
			})
		},
	}
}

func newImageTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags <id>",
		Short: "List the tags attached to an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("image", args[0])
			if err != nil {
				return err
			}

			return withStore(cmd, func(ctx context.Context, st store.MetadataStore, l log.LoggerService) error {
				if _, err := st.GetImage(ctx, id); err != nil {
					return err
				}

				tags, err := st.GetImageTags(ctx, id)
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
