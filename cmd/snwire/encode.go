package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bromq-dev/mqttsn-gateway/pkg/codec"
	"github.com/bromq-dev/mqttsn-gateway/pkg/packet"
	"github.com/bromq-dev/mqttsn-gateway/pkg/snpacket"
	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

func (a *app) encodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a message and print it as hex",
	}
	cmd.AddCommand(a.encodeAckCmd(), a.encodeWillTopicCmd())
	return cmd
}

var classicAcks = map[string]packet.Type{
	"puback":   packet.TypePuback,
	"pubrec":   packet.TypePubrec,
	"pubrel":   packet.TypePubrel,
	"pubcomp":  packet.TypePubcomp,
	"unsuback": packet.TypeUnsuback,
}

var snAcks = map[string]snpacket.MsgType{
	"pubrec":   snpacket.TypePubrec,
	"pubrel":   snpacket.TypePubrel,
	"pubcomp":  snpacket.TypePubcomp,
	"unsuback": snpacket.TypeUnsuback,
}

func (a *app) encodeAckCmd() *cobra.Command {
	var (
		protocol string
		kind     string
		id       uint16
	)

	cmd := &cobra.Command{
		Use:   "ack",
		Short: "Encode an acknowledgment carrying a message id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := codec.ParseProtocol(protocol)
			if err != nil {
				return err
			}

			var m codec.Message
			switch p {
			case codec.MQTT:
				t, ok := classicAcks[strings.ToLower(kind)]
				if !ok {
					return wire.Invalidf("unknown MQTT acknowledgment %q", kind)
				}
				m = &packet.Ack{Kind: t, PacketID: id}
			default:
				t, ok := snAcks[strings.ToLower(kind)]
				if !ok {
					return wire.Invalidf("unknown MQTT-SN acknowledgment %q", kind)
				}
				m = &snpacket.Ack{Kind: t, MsgID: id}
			}
			return a.printHex(m)
		},
	}

	cmd.Flags().StringVarP(&protocol, "protocol", "p", "mqtt", "frame protocol: mqtt or sn")
	cmd.Flags().StringVar(&kind, "kind", "pubcomp", "acknowledgment kind")
	cmd.Flags().Uint16Var(&id, "id", 0, "message id")
	return cmd
}

func (a *app) encodeWillTopicCmd() *cobra.Command {
	var (
		qos    int8
		retain bool
		topic  string
		update bool
	)

	cmd := &cobra.Command{
		Use:   "willtopic",
		Short: "Encode an MQTT-SN WILLTOPIC; an empty topic clears the will",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var m codec.Message = &snpacket.WillTopic{QoS: snpacket.QoS(qos), Retain: retain, Topic: topic}
			if update {
				m = &snpacket.WillTopicUpdate{QoS: snpacket.QoS(qos), Retain: retain, Topic: topic}
			}
			return a.printHex(m)
		},
	}

	cmd.Flags().Int8Var(&qos, "qos", 0, "will QoS: -1, 0, 1 or 2")
	cmd.Flags().BoolVar(&retain, "retain", false, "retain the will message")
	cmd.Flags().StringVar(&topic, "topic", "", "will topic")
	cmd.Flags().BoolVar(&update, "update", false, "encode WILLTOPICUPD instead")
	return cmd
}

func (a *app) printHex(m codec.Message) error {
	data, err := codec.Encode(m)
	if err != nil {
		return err
	}
	a.logger.Debug("encoded", "kind", codec.Kind(m), "size", len(data))
	_, err = fmt.Fprintln(a.out, hex.EncodeToString(data))
	return err
}
