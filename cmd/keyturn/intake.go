package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/keyturn-crm/keyturn/internal/cli"
	"github.com/keyturn-crm/keyturn/internal/intake"
)

func intakeCmd() *cobra.Command {
	var (
		fromFile string
		autoYes  bool
	)

	cmd := &cobra.Command{
		Use:   "intake [text]",
		Short: "Turn a free-text note into a record",
		Long: `Classify a free-text note, show the drafted record, and save it once
confirmed. With --file, each non-empty line of the file is processed as
one note; --yes accepts confirmable guesses without prompting.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if fromFile == "" && len(args) == 0 {
				return errors.New("provide a note as an argument or use --file")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			workflow := intake.NewWorkflow(store)
			prompter := cli.NewPrompter(os.Stdin, os.Stdout)

			if fromFile == "" {
				return runIntakeOne(ctx, workflow, prompter, args[0], autoYes)
			}
			return runIntakeFile(ctx, workflow, prompter, fromFile, autoYes)
		},
	}

	cmd.Flags().StringVar(&fromFile, "file", "", "process each non-empty line of a file as one note")
	cmd.Flags().BoolVar(&autoYes, "yes", false, "accept confirmable guesses without prompting")

	return cmd
}

func runIntakeOne(ctx context.Context, workflow *intake.Workflow, prompter *cli.Prompter, text string, autoYes bool) error {
	decision := workflow.Propose(text)

	choice := ""
	draft := *decision.Draft

	if autoYes {
		// Only a confirmable guess (options [kind, cancel]) can be accepted
		// unattended; disambiguation and transaction asks need a human.
		if len(decision.Options) == 2 && decision.Options[1] == "cancel" {
			choice = decision.Options[0]
		} else {
			fmt.Println(cli.WarningStyle.Render("Skipped (needs a human answer): " + strings.TrimSpace(text)))
			return nil
		}
	} else {
		var err error
		choice, draft, err = prompter.Resolve(ctx, decision)
		if err != nil {
			return err
		}
	}

	result, err := workflow.Commit(ctx, choice, draft)
	if err != nil {
		if errors.Is(err, intake.ErrInvalidChoice) || errors.Is(err, intake.ErrTransactionRefs) {
			fmt.Println(cli.FormatError(err.Error()))
			return nil
		}
		return err
	}

	switch result.Status {
	case intake.StatusCreated:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved %s #%d", result.Entity, result.ID)))
	case intake.StatusCancelled:
		fmt.Println(cli.SubtleStyle.Render("Cancelled, nothing saved"))
	}
	return nil
}

func runIntakeFile(ctx context.Context, workflow *intake.Workflow, prompter *cli.Prompter, path string, autoYes bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open notes file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var notes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			notes = append(notes, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read notes file: %w", err)
	}
	if len(notes) == 0 {
		fmt.Println(cli.InfoStyle.Render("No notes found in " + path))
		return nil
	}

	bar := progressbar.NewOptions(len(notes),
		progressbar.OptionSetDescription("Processing notes"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	for _, note := range notes {
		if err := runIntakeOne(ctx, workflow, prompter, note, autoYes); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	return nil
}
