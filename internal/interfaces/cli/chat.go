package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCommand(_ *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interview a penalty case interactively",
		Long:  "Starts the guided appeal interview. Answer the prompts; type 'reset' at any point to start over, or 'quit' to leave.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := buildChatService()
			ctx := cmd.Context()

			sess, prompt, err := svc.StartSession(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, prompt)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if strings.EqualFold(line, "quit") || strings.EqualFold(line, "exit") {
					fmt.Fprintln(out, "Goodbye. Your case was not submitted.")
					return nil
				}

				turn, err := svc.Submit(ctx, sess.ID, line)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, turn.Reply)
				if turn.Completed {
					return nil
				}
			}
			return scanner.Err()
		},
	}
}
