package main

import (
	"github.com/spf13/cobra"

	"github.com/AmzurATG/heatlhcare-demo/client"
)

func newChatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the assistant",
	}
	cmd.AddCommand(
		newChatSendCmd(a),
		newChatQueryCmd(a),
		newChatContextCmd(a),
		newChatAskCmd(a),
		&cobra.Command{
			Use:   "start",
			Short: "Start a chat session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat start", func(c *client.Client) (any, error) {
					return c.StartChatSession(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "refresh",
			Short: "Rebuild the knowledge base",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat refresh", func(c *client.Client) (any, error) {
					return map[string]any{"refreshed": true}, c.RefreshKnowledgeBase(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "upload <session-id> <path>",
			Short: "Attach a file to a session",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				f, err := client.OpenFile(args[1])
				if err != nil {
					return err
				}
				return a.run(cmd, "chat upload", func(c *client.Client) (any, error) {
					return c.UploadSessionFile(cmd.Context(), args[0], f)
				})
			},
		},
		&cobra.Command{
			Use:   "files <session-id>",
			Short: "List files attached to a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat files", func(c *client.Client) (any, error) {
					return c.ListSessionFiles(cmd.Context(), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "end <session-id>",
			Short: "Delete a session",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat end", func(c *client.Client) (any, error) {
					return map[string]any{"deleted": args[0]}, c.DeleteChatSession(cmd.Context(), args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "cache-stats",
			Short: "Show file cache statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat cache-stats", func(c *client.Client) (any, error) {
					return c.GetCacheStats(cmd.Context())
				})
			},
		},
		&cobra.Command{
			Use:   "clear-cache",
			Short: "Empty the file cache",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, "chat clear-cache", func(c *client.Client) (any, error) {
					return map[string]any{"cleared": true}, c.ClearCache(cmd.Context())
				})
			},
		},
	)
	return cmd
}

func newChatSendCmd(a *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Send a chat message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "chat send", func(c *client.Client) (any, error) {
				return c.SendMessage(cmd.Context(), client.ChatMessage{Message: args[0], SessionID: sessionID})
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID (optional)")
	return cmd
}

func newChatQueryCmd(a *app) *cobra.Command {
	var sessionID string
	var paths []string

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Ask a question with recent patients and files as context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := openFiles(paths)
			if err != nil {
				return err
			}
			return a.run(cmd, "chat query", func(c *client.Client) (any, error) {
				return c.SendMessageWithPatientContext(cmd.Context(), sessionID, args[0], files)
			})
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Session ID")
	cmd.Flags().StringArrayVar(&paths, "file", nil, "File to attach (repeatable)")
	return cmd
}

func newChatContextCmd(a *app) *cobra.Command {
	var ids []string
	var limit int

	cmd := &cobra.Command{
		Use:   "context",
		Short: "Show patient data formatted for chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "chat context", func(c *client.Client) (any, error) {
				return c.GetPatientContext(cmd.Context(), ids, limit)
			})
		},
	}
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "Patient IDs (comma separated); recent patients when empty")
	cmd.Flags().IntVar(&limit, "limit", client.DefaultContextLimit, "Maximum patients")
	return cmd
}

func newChatAskCmd(a *app) *cobra.Command {
	var patientContext string

	cmd := &cobra.Command{
		Use:   "ask <session-id> <question>",
		Short: "Ask a question against a session's attached files",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, "chat ask", func(c *client.Client) (any, error) {
				return c.ChatWithSessionFiles(cmd.Context(), args[0], args[1], patientContext)
			})
		},
	}
	cmd.Flags().StringVar(&patientContext, "patient-context", "", "Extra patient context text")
	return cmd
}
