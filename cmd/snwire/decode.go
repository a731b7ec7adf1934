package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bromq-dev/mqttsn-gateway/pkg/capture"
	"github.com/bromq-dev/mqttsn-gateway/pkg/codec"
)

func (a *app) decodeCmd() *cobra.Command {
	var protocol string

	cmd := &cobra.Command{
		Use:   "decode <hex>...",
		Short: "Decode hex encoded frames",
		Long: "Decode one frame per argument. Spaces and colons inside an argument are ignored.\n" +
			"Frames are appended to capture.file when it is configured.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := codec.ParseProtocol(protocol)
			if err != nil {
				return err
			}

			var w *capture.Writer
			if a.cfg.Capture.File != "" {
				f, err := os.OpenFile(a.cfg.Capture.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("open capture file: %w", err)
				}
				defer f.Close()
				w = capture.NewWriter(f)
			}

			for _, arg := range args {
				frame, err := parseHex(arg)
				if err != nil {
					return err
				}

				m, err := codec.Decode(p, frame)
				if err != nil {
					a.logger.Warn("frame dropped", "protocol", p, "frame", arg, "error", err)
					return err
				}
				a.printMessage(p, m)

				if w != nil {
					if err := w.Write(p, frame); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&protocol, "protocol", "p", "mqtt", "frame protocol: mqtt or sn")
	return cmd
}

func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer(" ", "", ":", "", "0x", "").Replace(s)
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame: %w", err)
	}
	return b, nil
}
