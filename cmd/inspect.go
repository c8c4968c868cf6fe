package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KaRthiK15789/tablechat-cli/internal/dataset"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
	"github.com/KaRthiK15789/tablechat-cli/internal/sample"
)

var inspectSample string

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the inferred schema of a tabular file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			ds  *dataset.Dataset
			err error
		)
		switch {
		case inspectSample != "":
			ds, err = sample.Dataset(inspectSample)
		case len(args) == 1:
			ds, err = dataset.LoadFile(args[0])
		default:
			return fmt.Errorf("provide a file to inspect, or --sample (employees, sales, survey)")
		}
		if err != nil {
			return err
		}
		printSchema(os.Stdout, ds)
		return nil
	},
}

// printSchema writes the dataset overview plus a per-column breakdown.
func printSchema(w io.Writer, ds *dataset.Dataset) {
	o := ds.Overview()
	fmt.Fprintf(w, "%s: %d rows × %d columns (%d numeric, %d categorical, %d binary, %d datetime, %d missing values)\n\n",
		ds.Name, o.Rows, o.Columns, o.NumericColumns, o.CategoricalColumns, o.BinaryColumns, o.DatetimeColumns, o.MissingValues)

	t := &query.Table{Columns: []string{"Column", "Original", "Type", "Non-Null", "Missing", "Unique", "Details"}}
	for _, c := range ds.Columns() {
		t.Rows = append(t.Rows, []string{
			c.Name, c.Original, string(c.Type),
			fmt.Sprintf("%d", c.NonNull()), fmt.Sprintf("%d", c.MissingCount()),
			fmt.Sprintf("%d", c.Unique()), columnDetails(c),
		})
	}
	renderTable(w, t)
}

// columnDetails summarizes the values: range and mean for numerics, the most
// common value otherwise.
func columnDetails(c *dataset.Column) string {
	if c.Type == dataset.TypeNumeric {
		nums := c.Numbers()
		if len(nums) == 0 {
			return ""
		}
		lo, hi, sum := nums[0], nums[0], 0.0
		for _, n := range nums {
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
			sum += n
		}
		return fmt.Sprintf("min %g, max %g, mean %.2f", lo, hi, sum/float64(len(nums)))
	}
	common, n := c.MostCommon()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("most common: %s (%d)", common, n)
}

func init() {
	inspectCmd.Flags().StringVar(&inspectSample, "sample", "", "inspect a built-in sample dataset instead of a file")
	rootCmd.AddCommand(inspectCmd)
}
