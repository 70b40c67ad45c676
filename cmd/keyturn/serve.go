package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/keyturn-crm/keyturn/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Serve the CRM REST API, including the smart intake endpoints, until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			addr := viper.GetString("server.addr")
			if addr == "" {
				addr = ":8080"
			}

			srv := server.NewServer(store)
			if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
