package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaRthiK15789/tablechat-cli/internal/query"
	"github.com/KaRthiK15789/tablechat-cli/internal/sample"
	"github.com/KaRthiK15789/tablechat-cli/internal/session"
)

var askSample string

var askCmd = &cobra.Command{
	Use:   "ask <file> <question...>",
	Short: "Ask a single question about a tabular file",
	Long: `Ask loads a CSV, TSV or XLSX file, answers one question, and exits.

Examples:
  tablechat ask sales.csv what is the average price
  tablechat ask employees.xlsx "compare salary across departments"
  tablechat ask --sample sales "show me a pie chart of region"`,
	Args: func(cmd *cobra.Command, args []string) error {
		if askSample != "" {
			return cobra.MinimumNArgs(1)(cmd, args)
		}
		return cobra.MinimumNArgs(2)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(newEngine())
		var question string
		if askSample != "" {
			ds, err := sample.Dataset(askSample)
			if err != nil {
				return err
			}
			s.SetDataset(ds)
			question = strings.Join(args, " ")
		} else {
			if err := s.LoadFile(args[0]); err != nil {
				return err
			}
			question = strings.Join(args[1:], " ")
		}

		env := s.Ask(context.Background(), question)
		renderEnvelope(os.Stdout, env)
		if env.Kind == query.KindError {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askSample, "sample", "", "use a built-in sample dataset instead of a file (employees, sales, survey)")
	rootCmd.AddCommand(askCmd)
}
