package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roadpenalty/appealcore/internal/prediction"
)

func newPredictCommand(opts *rootOptions) *cobra.Command {
	var (
		daysSince     int
		evidence      []string
		priorAttempts int
		authority     string
		location      string
		fineAmount    float64
	)

	cmd := &cobra.Command{
		Use:   "predict <description>",
		Short: "Score a case description without an interview",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, engine := buildPredictor()
			result := engine.Predict(prediction.Input{
				Description:   strings.Join(args, " "),
				Location:      location,
				DaysSince:     daysSince,
				Evidence:      evidence,
				PriorAttempts: priorAttempts,
				Authority:     authority,
				FineAmount:    fineAmount,
			})

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return printJSON(out, result)
			}

			fmt.Fprintf(out, "Success probability: %.0f%% (confidence %.0f%%)\n",
				result.SuccessProbability*100, result.Confidence*100)
			if len(result.Grounds) > 0 {
				fmt.Fprintln(out, "\nMatched grounds:")
				for _, g := range result.Grounds {
					fmt.Fprintf(out, "  - %s (%s, weight %.2f)\n", g.Title, g.Category, g.Weight)
				}
			}
			for _, gap := range result.EvidenceGaps {
				fmt.Fprintf(out, "Missing evidence: %s\n", gap.Item)
			}
			for _, risk := range result.RiskFactors {
				fmt.Fprintf(out, "Risk: %s\n", risk)
			}
			fmt.Fprintf(out, "\n%s\n", result.Strategy)
			return nil
		},
	}

	cmd.Flags().IntVar(&daysSince, "days-since", -1, "days since the incident (-1 if unknown)")
	cmd.Flags().StringSliceVar(&evidence, "evidence", nil, "evidence items you hold")
	cmd.Flags().IntVar(&priorAttempts, "prior-attempts", 0, "earlier appeal attempts for this penalty")
	cmd.Flags().StringVar(&authority, "authority", "", "issuing authority")
	cmd.Flags().StringVar(&location, "location", "", "contravention location")
	cmd.Flags().Float64Var(&fineAmount, "amount", 0, "penalty amount in pounds")
	return cmd
}
