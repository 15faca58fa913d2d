package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avolkov/reframe/internal/detect"
)

var checkOut string

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <prompt>",
	Short: "Detect ambiguity in a prompt before reframing",
	Long: `Check inspects a prompt for the patterns that make reframing guesswork:
vague quantifiers, undefined scope, and missing output format. For each
finding it prints a clarifying question with suggested answers, as JSON.

An unambiguous prompt yields hasAmbiguity=false with no questions.

Example:
  reframe check "summarize some recent papers"
  reframe check "explain recursion" --json findings.json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkOut, "json", "", "output JSON path (default: stdout)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	detection := detect.New().Detect(args[0])

	if verbose {
		if detection.HasAmbiguity {
			fmt.Fprintf(os.Stderr, "Found %d clarifying question(s)\n", len(detection.Questions))
		} else {
			fmt.Fprintf(os.Stderr, "No ambiguity detected\n")
		}
	}

	return writeJSON(detection, checkOut)
}
