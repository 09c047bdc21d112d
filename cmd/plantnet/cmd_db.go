package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/plantnet/plantnet-api/internal/infrastructure/db/mongo"
)

// plantnet indexes: create the MongoDB indexes and exit.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.Context())
		if err != nil {
			return err
		}

		client, db, err := mongodb.Connect(cmd.Context(), mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		return runIndexes(cmd.Context(), db, cmd.OutOrStdout())
	},
}

func runIndexes(ctx context.Context, db *mongo.Database, out io.Writer) error {
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "indexes ensured on %s\n", db.Name())
	return err
}
