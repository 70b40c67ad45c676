package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/keyturn-crm/keyturn/internal/cli"
	"github.com/keyturn-crm/keyturn/internal/model"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contacts",
		Long:  `List and add the people on the books.`,
	}

	cmd.AddCommand(listContactsCmd())
	cmd.AddCommand(addContactCmd())

	return cmd
}

func listContactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			contacts, err := store.ListContacts(ctx)
			if err != nil {
				return fmt.Errorf("failed to list contacts: %w", err)
			}

			fmt.Println(cli.FormatTitle("Contacts"))
			if len(contacts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No contacts yet. Try 'keyturn intake \"met Jane, jane@example.com\"'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Email"),
				headerStyle.Render("Phone"),
				headerStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 24),
				strings.Repeat("-", 14),
				strings.Repeat("-", 8))

			for _, c := range contacts {
				fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\n",
					c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Status)
			}
			return nil
		},
	}
}

func addContactCmd() *cobra.Command {
	var contact model.Contact

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact directly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if contact.Status == "" {
				contact.Status = "new"
			}
			id, err := store.CreateContact(ctx, &contact)
			if err != nil {
				return fmt.Errorf("failed to create contact: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created contact #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&contact.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&contact.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&contact.Email, "email", "", "email address")
	cmd.Flags().StringVar(&contact.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&contact.Status, "status", "", "status (default new)")
	_ = cmd.MarkFlagRequired("first")

	return cmd
}
