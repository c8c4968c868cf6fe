package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaRthiK15789/tablechat-cli/internal/sample"
	"github.com/KaRthiK15789/tablechat-cli/internal/session"
)

var chatSample string

var chatCmd = &cobra.Command{
	Use:   "chat [file]",
	Short: "Start an interactive question/answer session",
	Long: `Chat loads a tabular file and answers questions in a loop.

In-session commands:
  :schema          show columns and inferred types
  :load <path>     switch to another file
  :export <path>   write the session transcript as JSON
  :help            list commands
  exit, quit       leave the session`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := session.New(newEngine())
		switch {
		case chatSample != "":
			ds, err := sample.Dataset(chatSample)
			if err != nil {
				return err
			}
			s.SetDataset(ds)
		case len(args) == 1:
			if err := s.LoadFile(args[0]); err != nil {
				return err
			}
		default:
			return fmt.Errorf("provide a file to load, or --sample (employees, sales, survey)")
		}

		ds := s.Dataset()
		fmt.Printf("Loaded %s: %d rows, %d columns. Ask away (type 'exit' to quit, ':help' for commands).\n",
			ds.Name, ds.Rows(), len(ds.Columns()))

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			switch {
			case line == "":
				continue
			case line == "exit" || line == "quit":
				return nil
			case strings.HasPrefix(line, ":"):
				if err := runChatCommand(s, line); err != nil {
					fmt.Fprintf(os.Stderr, "✗ %v\n", err)
				}
			default:
				renderEnvelope(os.Stdout, s.Ask(context.Background(), line))
			}
			fmt.Println()
		}
		return scanner.Err()
	},
}

func runChatCommand(s *session.Session, line string) error {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":help":
		fmt.Println("Commands: :schema, :load <path>, :export <path>, exit")
	case ":schema":
		printSchema(os.Stdout, s.Dataset())
	case ":load":
		if len(fields) < 2 {
			return fmt.Errorf("usage: :load <path>")
		}
		if err := s.LoadFile(fields[1]); err != nil {
			return err
		}
		ds := s.Dataset()
		fmt.Printf("Loaded %s: %d rows, %d columns.\n", ds.Name, ds.Rows(), len(ds.Columns()))
	case ":export":
		if len(fields) < 2 {
			return fmt.Errorf("usage: :export <path>")
		}
		if err := s.Export(fields[1]); err != nil {
			return err
		}
		fmt.Printf("Transcript written to %s\n", fields[1])
	default:
		return fmt.Errorf("unknown command %s (try :help)", fields[0])
	}
	return nil
}

func init() {
	chatCmd.Flags().StringVar(&chatSample, "sample", "", "use a built-in sample dataset instead of a file (employees, sales, survey)")
	rootCmd.AddCommand(chatCmd)
}
