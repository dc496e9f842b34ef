package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	var adminKey string

	supportCmd := &cobra.Command{Use: "support", Short: "Support agent operations"}
	supportCmd.PersistentFlags().StringVarP(&adminKey, "key", "k", "", "Support API key (required)")

	adminHeaders := func() map[string]string {
		return map[string]string{"X-Api-Key": adminKey}
	}

	getCmd := &cobra.Command{
		Use:   "get TICKET_ID",
		Short: "Get a ticket with its comment thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if adminKey == "" {
				return fmt.Errorf("--key required")
			}
			data, err := doGet("/api/admin/support/tickets/"+args[0], adminHeaders())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	supportCmd.AddCommand(getCmd)

	var status string
	transitionCmd := &cobra.Command{
		Use:   "transition TICKET_ID",
		Short: "Move a ticket to a new status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if adminKey == "" || status == "" {
				return fmt.Errorf("--key and --status required")
			}
			payload := map[string]interface{}{"status": status}
			data, err := doPostJSON("/api/admin/support/tickets/"+args[0]+"/status", payload, adminHeaders())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	transitionCmd.Flags().StringVarP(&status, "status", "s", "", "Target status (required)")
	_ = transitionCmd.MarkFlagRequired("status")
	supportCmd.AddCommand(transitionCmd)

	var body, author string
	commentCmd := &cobra.Command{
		Use:   "comment TICKET_ID",
		Short: "Add a support-side comment to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if adminKey == "" || body == "" {
				return fmt.Errorf("--key and --body required")
			}
			payload := map[string]interface{}{"body": body}
			if author != "" {
				payload["author"] = author
			}
			data, err := doPostJSON("/api/admin/support/tickets/"+args[0]+"/comments", payload, adminHeaders())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	commentCmd.Flags().StringVarP(&body, "body", "b", "", "Comment body (required)")
	commentCmd.Flags().StringVar(&author, "author", "", "Comment author (defaults to support)")
	_ = commentCmd.MarkFlagRequired("body")
	supportCmd.AddCommand(commentCmd)

	rootCmd.AddCommand(supportCmd)
}
