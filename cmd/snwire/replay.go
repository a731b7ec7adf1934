package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bromq-dev/mqttsn-gateway/pkg/capture"
	"github.com/bromq-dev/mqttsn-gateway/pkg/codec"
	"github.com/bromq-dev/mqttsn-gateway/pkg/packet"
	"github.com/bromq-dev/mqttsn-gateway/pkg/snpacket"
	"github.com/bromq-dev/mqttsn-gateway/pkg/topic"
)

func (a *app) replayCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "replay <capture-file>",
		Short: "Decode every frame of a capture file",
		Long: "Decode every frame of a capture file. With --topic only messages carrying\n" +
			"a topic name that matches the filter are printed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filter != "" {
				if err := topic.ValidateFilter(filter); err != nil {
					return fmt.Errorf("--topic: %w", err)
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			var total, dropped int
			err = capture.Replay(f, func(rec capture.Record, m codec.Message, err error) error {
				total++
				if err != nil {
					dropped++
					a.logger.Warn("frame dropped",
						"protocol", rec.Protocol,
						"time", rec.Time,
						"len", len(rec.Frame),
						"error", err,
					)
					return nil
				}
				if filter != "" {
					name, ok := topicName(m)
					if !ok || !topic.Match(filter, name) {
						return nil
					}
				}
				a.printMessage(rec.Protocol, m)
				return nil
			})
			a.logger.Info("replay finished", "file", args[0], "frames", total, "dropped", dropped)
			return err
		},
	}

	cmd.Flags().StringVarP(&filter, "topic", "t", "", "only show messages whose topic matches this filter")
	return cmd
}

// topicName returns the topic name a message carries, if any.
func topicName(m codec.Message) (string, bool) {
	switch v := m.(type) {
	case *packet.Publish:
		return v.TopicName, true
	case *packet.Connect:
		return v.WillTopic, v.WillFlag
	case *snpacket.Publish:
		name := v.TopicName()
		return name, name != ""
	case *snpacket.Register:
		return v.TopicName, true
	case *snpacket.WillTopic:
		return v.Topic, v.Topic != ""
	case *snpacket.WillTopicUpdate:
		return v.Topic, v.Topic != ""
	default:
		return "", false
	}
}
