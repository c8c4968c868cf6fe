package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaRthiK15789/tablechat-cli/internal/sample"
)

var (
	sampleFormat string
	sampleOut    string
)

var sampleCmd = &cobra.Command{
	Use:   "sample <name>",
	Short: "Write a built-in sample dataset to disk",
	Long: fmt.Sprintf(`Sample generates a seeded demo dataset for trying the tool.

Available samples: %s`, strings.Join(sample.Names(), ", ")),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		out := sampleOut
		if out == "" {
			out = name + "." + sampleFormat
		}
		var err error
		switch sampleFormat {
		case "csv":
			err = sample.WriteCSV(name, out)
		case "xlsx":
			err = sample.WriteXLSX(name, out)
		default:
			return fmt.Errorf("unknown format %q (use csv or xlsx)", sampleFormat)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVar(&sampleFormat, "format", "csv", "output format: csv or xlsx")
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "", "output path (default <name>.<format>)")
	rootCmd.AddCommand(sampleCmd)
}
