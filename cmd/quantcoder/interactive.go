// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Run quantcoder as an interactive session",
	Long: `Interactive starts a prompt loop over the whole pipeline: search for
papers, list the current snapshot, download a PDF, and generate
algorithm code, without re-invoking the binary per step.`,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

const interactiveMenu = `Commands:
  search <query>    search for papers and save the snapshot
  list              show the current article snapshot
  download <n>      download article n's PDF
  summarize <n>     extract the strategy from article n
  generate <n>      generate algorithm code for article n
  help              show this menu
  quit              exit
`

func runInteractive(cmd *cobra.Command, args []string) error {
	fmt.Print(interactiveMenu)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("quantcoder> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		name, rest := fields[0], fields[1:]

		switch name {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Print(interactiveMenu)
			continue
		}

		sub := findSubcommand(name)
		if sub == nil {
			fmt.Printf("unknown command %q, type help for the menu\n", name)
			continue
		}
		rest = menuArgs(sub, rest)
		if sub.Args != nil {
			if err := sub.Args(sub, rest); err != nil {
				fmt.Printf("%s: %v\n", name, err)
				continue
			}
		}
		sub.SetContext(cmd.Context())
		if err := sub.RunE(sub, rest); err != nil {
			fmt.Printf("%s: %v\n", name, err)
		}
	}
}

// menuArgs adapts the tokenized menu input to the subcommand's
// positional contract: search takes its whole query as one argument, so
// the words typed after it are joined back together.
func menuArgs(sub *cobra.Command, rest []string) []string {
	if sub.Name() == "search" && len(rest) > 1 {
		return []string{strings.Join(rest, " ")}
	}
	return rest
}

// findSubcommand resolves an interactive command name against the
// regular subcommands, so both modes share one implementation. The
// command is matched by name to keep this free of initialization
// cycles with the interactive command itself.
func findSubcommand(name string) *cobra.Command {
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "interactive" || sub.RunE == nil {
			continue
		}
		if sub.Name() == name {
			return sub
		}
		for _, alias := range sub.Aliases {
			if alias == name {
				return sub
			}
		}
	}
	return nil
}
