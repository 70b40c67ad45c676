package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/keyturn-crm/keyturn/internal/cli"
	"github.com/keyturn-crm/keyturn/internal/model"
)

func documentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "Manage stored documents",
		Long:  `Attach files to records and fetch them back out.`,
	}

	cmd.AddCommand(listDocumentsCmd())
	cmd.AddCommand(attachDocumentCmd())
	cmd.AddCommand(fetchDocumentCmd())

	return cmd
}

func listDocumentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			docs, err := store.ListDocuments(ctx)
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}

			fmt.Println(cli.FormatTitle("Documents"))
			if len(docs) == 0 {
				fmt.Println(cli.InfoStyle.Render("No documents stored."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Filename"),
				headerStyle.Render("Type"),
				headerStyle.Render("Size"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 24),
				strings.Repeat("-", 18),
				strings.Repeat("-", 10))

			for _, d := range docs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", d.ID, d.Filename, d.MimeType, d.Size)
			}
			return nil
		},
	}
}

func attachDocumentCmd() *cobra.Command {
	var (
		contactID     int64
		propertyID    int64
		transactionID int64
	)

	cmd := &cobra.Command{
		Use:   "attach <file>",
		Short: "Store a file, optionally linked to a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}

			doc := &model.Document{
				Filename: filepath.Base(args[0]),
				MimeType: mime.TypeByExtension(filepath.Ext(args[0])),
				Attrs:    map[string]any{},
				Data:     data,
			}
			if contactID != 0 {
				doc.ContactID = &contactID
			}
			if propertyID != 0 {
				doc.PropertyID = &propertyID
			}
			if transactionID != 0 {
				doc.TransactionID = &transactionID
			}

			id, err := store.SaveDocument(ctx, doc)
			if err != nil {
				return fmt.Errorf("failed to store document: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Stored %s as %s", doc.Filename, id)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&contactID, "contact", 0, "link to contact id")
	cmd.Flags().Int64Var(&propertyID, "property", 0, "link to property id")
	cmd.Flags().Int64Var(&transactionID, "transaction", 0, "link to transaction id")

	return cmd
}

func fetchDocumentCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "fetch <id>",
		Short: "Fetch a stored document's bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			doc, err := store.GetDocument(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch document: %w", err)
			}

			dest := out
			if dest == "" {
				dest = doc.Filename
			}
			if err := os.WriteFile(dest, doc.Data, 0600); err != nil {
				return fmt.Errorf("failed to write %s: %w", dest, err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %s (%d bytes)", dest, doc.Size)))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output path (default: stored filename)")

	return cmd
}
