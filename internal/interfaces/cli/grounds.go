package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roadpenalty/appealcore/internal/domain/grounds"
)

func newGroundsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grounds",
		Short: "Browse the legal grounds catalog",
	}
	cmd.AddCommand(newGroundsListCommand(opts))
	cmd.AddCommand(newGroundsSearchCommand(opts))
	cmd.AddCommand(newGroundsShowCommand(opts))
	return cmd
}

func newGroundsListCommand(opts *rootOptions) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all appeal grounds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := grounds.Default()
			defs := catalog.All()
			if category != "" {
				defs = catalog.ByCategory(grounds.Category(category))
			}
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), defs)
			}
			printGroundTable(cmd, defs)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category (statutory, procedural, mitigating)")
	return cmd
}

func newGroundsSearchCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search grounds by keyword or scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := grounds.Default().Search(strings.Join(args, " "))
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), defs)
			}
			if len(defs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No grounds matched.")
				return nil
			}
			printGroundTable(cmd, defs)
			return nil
		},
	}
}

func newGroundsShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one ground in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := grounds.Default().ByID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, d)
			}
			fmt.Fprintf(out, "%s (%s, %s strength)\n\n%s\n", d.Title, d.Category, d.Strength, d.Description)
			if d.LegalBasis != "" {
				fmt.Fprintf(out, "\nLegal basis: %s\n", d.LegalBasis)
			}
			if len(d.RequiredEvidence) > 0 {
				fmt.Fprintln(out, "\nEvidence to gather:")
				for _, item := range d.RequiredEvidence {
					fmt.Fprintf(out, "  - %s\n", item)
				}
			}
			return nil
		},
	}
}

func printGroundTable(cmd *cobra.Command, defs []grounds.Definition) {
	out := cmd.OutOrStdout()
	for _, d := range defs {
		fmt.Fprintf(out, "%-32s %-11s %-6s %s\n", d.ID, d.Category, d.Strength, d.Title)
	}
}
