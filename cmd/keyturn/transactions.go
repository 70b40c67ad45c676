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

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage transactions",
		Long:  `List and add deals linking a contact to a property.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all transactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			transactions, err := store.ListTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			fmt.Println(cli.FormatTitle("Transactions"))
			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Contact"),
				headerStyle.Render("Property"),
				headerStyle.Render("Side"),
				headerStyle.Render("Stage"),
				headerStyle.Render("Offer"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 8),
				strings.Repeat("-", 8),
				strings.Repeat("-", 6),
				strings.Repeat("-", 8),
				strings.Repeat("-", 12))

			for _, t := range transactions {
				offer := ""
				if t.OfferPrice != nil {
					offer = fmt.Sprintf("%.2f", *t.OfferPrice)
				}
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
					t.ID, t.ContactID, t.PropertyID, t.Side, t.Stage, offer)
			}
			return nil
		},
	}
}

func addTransactionCmd() *cobra.Command {
	var (
		txn   model.Transaction
		offer float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction directly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if txn.Side == "" {
				txn.Side = model.SideBuy
			}
			if txn.Stage == "" {
				txn.Stage = model.StageLead
			}
			if cmd.Flags().Changed("offer") {
				txn.OfferPrice = &offer
			}

			id, err := store.CreateTransaction(ctx, &txn)
			if err != nil {
				return fmt.Errorf("failed to create transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created transaction #%d", id)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&txn.ContactID, "contact", 0, "contact id")
	cmd.Flags().Int64Var(&txn.PropertyID, "property", 0, "property id")
	cmd.Flags().StringVar(&txn.Side, "side", "", "buy, sell, or lease (default buy)")
	cmd.Flags().StringVar(&txn.Stage, "stage", "", "pipeline stage (default lead)")
	cmd.Flags().Float64Var(&offer, "offer", 0, "offer price")
	_ = cmd.MarkFlagRequired("contact")
	_ = cmd.MarkFlagRequired("property")

	return cmd
}
