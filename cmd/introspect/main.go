// Command introspect reads the schema of a live database and prints it as a
// datamodel.
//
//	introspect pull --url postgres://localhost:5432/app
//	introspect capabilities --url "$DATABASE_URL"
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	// Load .env before flags read the environment.
	_ "github.com/joho/godotenv/autoload"

	// Register database/sql drivers.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "introspect",
		Usage: "Describe a database schema as a datamodel",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "database connection URL",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "provider",
				Usage:   "declared provider (e.g. postgresql, cockroachdb)",
				Sources: cli.EnvVars("INTROSPECT_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the config file",
				Value:   DefaultConfigName,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log probe and describe statements",
			},
		},
		Commands: []*cli.Command{
			pullCommand(out),
			capabilitiesCommand(out),
		},
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
