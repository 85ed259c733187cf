package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func capabilitiesCommand(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "capabilities",
		Aliases: []string{"caps"},
		Usage:   "Print the dialect and capabilities of the database",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			return runCapabilities(ctx, s, out)
		},
	}
}

// capabilities is the output of the capabilities command.
type capabilities struct {
	Dialect       string   `yaml:"dialect"`
	Schema        string   `yaml:"schema"`
	Circumstances []string `yaml:"circumstances"`
	RoundTrips    int64    `yaml:"roundTrips"`
}

func runCapabilities(ctx context.Context, s *settings, out io.Writer) error {
	sess, err := open(ctx, s)
	if err != nil {
		return err
	}
	defer sess.Close()
	enc := yaml.NewEncoder(out)
	err = enc.Encode(capabilities{
		Dialect:       sess.describer.Dialect(),
		Schema:        sess.info.Schema,
		Circumstances: sess.circumstances.Names(),
		RoundTrips:    sess.drv.QueryStats().Stats().RoundTrips(),
	})
	if err != nil {
		return err
	}
	return enc.Close()
}
