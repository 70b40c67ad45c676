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

func propertiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Manage properties",
		Long:  `List and add the listings and prospect addresses on the books.`,
	}

	cmd.AddCommand(listPropertiesCmd())
	cmd.AddCommand(addPropertyCmd())

	return cmd
}

func listPropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all properties",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			properties, err := store.ListProperties(ctx)
			if err != nil {
				return fmt.Errorf("failed to list properties: %w", err)
			}

			fmt.Println(cli.FormatTitle("Properties"))
			if len(properties) == 0 {
				fmt.Println(cli.InfoStyle.Render("No properties yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Address"),
				headerStyle.Render("City"),
				headerStyle.Render("Country"),
				headerStyle.Render("Status"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 32),
				strings.Repeat("-", 14),
				strings.Repeat("-", 10),
				strings.Repeat("-", 10))

			for _, p := range properties {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					p.ID, p.Address, p.City, p.Country, p.Status)
			}
			return nil
		},
	}
}

func addPropertyCmd() *cobra.Command {
	var property model.Property

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property directly",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if property.Country == "" {
				property.Country = "Canada"
			}
			if property.Status == "" {
				property.Status = "prospect"
			}
			id, err := store.CreateProperty(ctx, &property)
			if err != nil {
				return fmt.Errorf("failed to create property: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created property #%d", id)))
			return nil
		},
	}

	cmd.Flags().StringVar(&property.Address, "address", "", "street address")
	cmd.Flags().StringVar(&property.City, "city", "", "city")
	cmd.Flags().StringVar(&property.StateProvince, "province", "", "state or province")
	cmd.Flags().StringVar(&property.Country, "country", "", "country (default Canada)")
	cmd.Flags().StringVar(&property.Status, "status", "", "status (default prospect)")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}
