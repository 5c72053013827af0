package cmd

import (
	"github.com/spf13/cobra"
)

// Every shell word that works on the bank is also a one-shot subcommand.
// Unlike the shell, a failing subcommand exits non-zero.

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the questions",
	Args:  cobra.NoArgs,
	RunE:  app.run("list"),
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "show a question and its answer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.run("show"),
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "add a question interactively",
	Args:  cobra.NoArgs,
	RunE:  app.run("add"),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "delete a question",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.run("delete"),
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "edit a question interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.run("edit"),
}

var testCmd = &cobra.Command{
	Use:   "test <id>",
	Short: "answer a single question",
	Args:  cobra.MaximumNArgs(1),
	RunE:  app.run("test"),
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "play a round over every question in random order",
	Args:  cobra.NoArgs,
	RunE:  app.run("play"),
}

// run dispatches word to a fresh shell. A missing id is passed on as an
// empty token so the engine reports it like the shell does.
func (app *App) run(word string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		var id string
		if len(args) > 0 {
			id = args[0]
		}
		return app.shell(cmd).Dispatch(cmd.Context(), word, id)
	}
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, addCmd, deleteCmd, editCmd, testCmd, playCmd)
}
