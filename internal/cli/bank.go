package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moorworks/peatshelf/internal/quiz"
)

var bankPath string

// bankCmd represents the bank command
var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Work with the trivia question bank",
}

var bankLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate the question bank file",
	Long: `Lint loads the question bank exactly the way the daemon does and reports
what it finds. The daemon refuses to start on a broken bank, so run this
before deploying a bank change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := quiz.LoadBank(bankPath)
		if err != nil {
			return err
		}
		total := 0
		for _, ti := range bank.Tiers() {
			fmt.Printf("%-8s %d questions\n", ti.Difficulty, ti.Questions)
			total += ti.Questions
		}
		fmt.Printf("OK: %d questions across %d tiers\n", total, len(bank.Tiers()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bankCmd)
	bankCmd.AddCommand(bankLintCmd)

	bankCmd.PersistentFlags().StringVar(&bankPath, "bank", "./data/quiz-bank.json", "question bank file")
}
