package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bromq-dev/mqttsn-gateway/pkg/codec"
	"github.com/bromq-dev/mqttsn-gateway/pkg/config"
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

// app carries the state shared by all subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	closer io.Closer

	out    io.Writer
	errOut io.Writer
}

// run executes the command line in args.
func run(args []string, out, errOut io.Writer) (err error) {
	a := &app{out: out, errOut: errOut}
	defer func() {
		if cerr := a.teardown(); err == nil {
			err = cerr
		}
	}()

	root := a.rootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "snwire",
		Short:         "Decode, encode and replay MQTT and MQTT-SN frames",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level from the configuration")

	root.AddCommand(
		a.decodeCmd(),
		a.encodeCmd(),
		a.replayCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if err := cfg.Apply(); err != nil {
		return err
	}

	logger, closer, err := cfg.Log.NewLogger(a.errOut)
	if err != nil {
		return err
	}
	wire.SetLogger(logger)

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	logger.Debug("configuration loaded",
		"config", a.configPath,
		"text_encoding", wire.TextEncoding().Name(),
	)
	return nil
}

func (a *app) teardown() error {
	wire.SetLogger(nil)
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// printMessage writes one line describing m.
func (a *app) printMessage(p codec.Protocol, m codec.Message) {
	fields := strings.TrimPrefix(fmt.Sprintf("%+v", m), "&")
	fmt.Fprintf(a.out, "%s %s %s\n", p, codec.Kind(m), fields)
}
