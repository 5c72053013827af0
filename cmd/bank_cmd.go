package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/holmes89/quizbank/lib/bank"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "add the questions of a YAML bank file",
	Args:  cobra.ExactArgs(1),
	RunE:  app.Import,
	Annotations: map[string]string{
		annotationNoSeed: "true",
	},
}

func (app *App) Import(cmd *cobra.Command, args []string) error {
	var r io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	drafts, err := bank.Decode(r)
	if err != nil {
		return err
	}
	n, err := bank.Import(cmd.Context(), app.questions, drafts)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions\n", n)
	return err
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "write every question to a YAML bank file",
	Args:  cobra.ExactArgs(1),
	RunE:  app.Export,
}

func (app *App) Export(cmd *cobra.Command, args []string) error {
	records, err := app.questions.List(cmd.Context())
	if err != nil {
		return err
	}
	if args[0] == "-" {
		return bank.Encode(cmd.OutOrStdout(), records)
	}
	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := bank.Encode(f, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func init() {
	rootCmd.AddCommand(importCmd, exportCmd)
}
