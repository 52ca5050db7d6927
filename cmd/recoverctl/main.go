// Command recoverctl is the operator CLI for the recovery service. It works
// directly against the SQLite store, so it can be used offline: listing and
// registering question sets, running verification attempts, and auditing
// whether a half-remembered answer can still reproduce a stored hash.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "recoverctl",
		Usage: "Operate on a recovery question store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database",
				Aliases: []string{"d"},
				Value:   "recovery.db",
				Usage:   "SQLite database path",
				Sources: cli.EnvVars("RECOVERY_DATABASE_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "questions",
				Usage: "Manage the registered question set",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List registered questions",
						Action: runQuestionsList,
					},
					{
						Name:   "set",
						Usage:  "Register a new question set (replaces the previous one)",
						Action: runQuestionsSet,
					},
					{
						Name:      "reset",
						Usage:     "Reset the answer of a single question (administrative)",
						ArgsUsage: "<question-id>",
						Action:    runQuestionsReset,
					},
					{
						Name:   "upgrade",
						Usage:  "Rewrite every stored hash with the modern scheme",
						Action: runQuestionsUpgrade,
					},
				},
			},
			{
				Name:   "verify",
				Usage:  "Run a recovery attempt against the stored question set",
				Action: runVerify,
			},
			{
				Name:  "audit",
				Usage: "Search for an answer that reproduces a stored hash",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "hint",
						Usage: "Best guess at the answer; expands case variants and single-character typos",
					},
					&cli.StringFlag{
						Name:  "dictionary",
						Usage: "Built-in word list to try (pets, surnames, streets)",
					},
					&cli.StringFlag{
						Name:  "wordlist",
						Usage: "Path to a newline-separated word list to try",
					},
					&cli.IntFlag{
						Name:  "max",
						Usage: "Maximum candidates to try (0 = unbounded)",
					},
				},
				Action: runAudit,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
