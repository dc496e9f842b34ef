package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	crystalsCmd := &cobra.Command{Use: "crystals", Short: "Crystal catalog operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the crystal catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/crystals", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	crystalsCmd.AddCommand(listCmd)

	getCmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Get a crystal by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/crystals/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	crystalsCmd.AddCommand(getCmd)

	dailyCmd := &cobra.Command{
		Use:   "daily",
		Short: "Show the crystal of the day",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/crystals/daily", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	crystalsCmd.AddCommand(dailyCmd)

	rootCmd.AddCommand(crystalsCmd)

	moonCmd := &cobra.Command{
		Use:   "moon",
		Short: "Show the current moon phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/moon", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(moonCmd)

	plansCmd := &cobra.Command{
		Use:   "plans",
		Short: "List the subscription tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/plans", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(plansCmd)
}
