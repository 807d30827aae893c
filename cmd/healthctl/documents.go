package main

import (
	"github.com/spf13/cobra"

	"github.com/AmzurATG/heatlhcare-demo/client"
)

func newDocumentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Upload documents for processing",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "upload <path>",
			Short: "Upload one document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := client.OpenFile(args[0])
				if err != nil {
					return err
				}
				return a.run(cmd, "documents upload", func(c *client.Client) (any, error) {
					return c.UploadDocument(cmd.Context(), f)
				})
			},
		},
		&cobra.Command{
			Use:   "upload-many <path>...",
			Short: "Upload several documents in one request",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				files, err := openFiles(args)
				if err != nil {
					return err
				}
				return a.run(cmd, "documents upload-many", func(c *client.Client) (any, error) {
					return c.UploadDocuments(cmd.Context(), files)
				})
			},
		},
		&cobra.Command{
			Use:   "types",
			Short: "List supported document types",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "documents types", func(c *client.Client) (any, error) {
					return c.GetSupportedTypes(cmd.Context())
				})
			},
		},
	)
	return cmd
}
