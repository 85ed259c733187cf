package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/syssam/introspect"
	"github.com/syssam/introspect/dialect/sql"
	"github.com/syssam/introspect/translate"
)

// ErrInvalidDatamodel is returned when a described schema does not
// translate into a valid datamodel.
var ErrInvalidDatamodel = errors.New("described schema is not a valid datamodel")

func pullCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "pull",
		Usage: "Describe schemas and print them as datamodels",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "schema",
				Aliases: []string{"s"},
				Usage:   "schema to describe (repeatable, default: schema of the URL)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runPull(ctx, s, out)
		},
	}
}

// session is an open connection with its resolved describer.
type session struct {
	info          introspect.ConnectionInfo
	drv           *sql.StatsDriver
	describer     introspect.Describer
	circumstances introspect.Circumstances
	log           *zap.Logger
}

func open(ctx context.Context, s *settings) (*session, error) {
	log, err := newLogger(s.debug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	info, err := introspect.ParseConnectionInfo(s.url)
	if err != nil {
		return nil, err
	}
	drv, err := sql.OpenWithStats(info.DriverName, info.DSN, sql.WithQueryLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", info.Family, err)
	}
	d, c, err := introspect.LoadDescriber(ctx, drv, info, s.provider, introspect.WithLogger(log))
	if err != nil {
		drv.Close()
		return nil, err
	}
	return &session{info: info, drv: drv, describer: d, circumstances: c, log: log}, nil
}

func (s *session) Close() error {
	_ = s.log.Sync()
	return s.drv.Close()
}

func runPull(ctx context.Context, s *settings, out io.Writer) error {
	sess, err := open(ctx, s)
	if err != nil {
		return err
	}
	defer sess.Close()

	names := s.schemas
	if len(names) == 0 {
		names = []string{sess.info.Schema}
	}
	schemas, err := introspect.DescribeSchemas(ctx, sess.describer, names...)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	for _, raw := range schemas {
		report := translate.Check(raw)
		for _, w := range report.Warnings {
			sess.log.Warn("schema warning", zap.String("schema", raw.Name), zap.String("issue", w.Error()))
		}
		if err := report.Err(); err != nil {
			return fmt.Errorf("schema %q: %w", raw.Name, err)
		}
		dm := translate.Datamodel(raw)
		if result := dm.Validate(); result.HasErrors() {
			sess.log.Error("invalid datamodel", zap.String("schema", raw.Name), zap.Stringer("result", result))
			return fmt.Errorf("schema %q: %w: %w", raw.Name, ErrInvalidDatamodel, result.Err())
		}
		doc := newDocument(raw.Name, sess.describer.Dialect(), sess.circumstances, dm)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding schema %q: %w", raw.Name, err)
		}
	}
	sess.log.Debug("pull finished", zap.Stringer("stats", sess.drv.QueryStats().Stats()))
	return enc.Close()
}
