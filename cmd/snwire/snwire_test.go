package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttsn-gateway/pkg/wire"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { wire.SetTextEncoding(wire.UTF8) })

	var out, errOut bytes.Buffer
	err := run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestEncodeAck(t *testing.T) {
	out, _, err := execute(t, "encode", "ack", "--kind", "pubcomp", "--id", "300")
	require.NoError(t, err)
	assert.Equal(t, "7002012c\n", out)

	out, _, err = execute(t, "encode", "ack", "--protocol", "sn", "--kind", "pubcomp", "--id", "300")
	require.NoError(t, err)
	assert.Equal(t, "040e012c\n", out)

	_, _, err = execute(t, "encode", "ack", "--protocol", "sn", "--kind", "puback")
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
}

func TestEncodeWillTopic(t *testing.T) {
	out, _, err := execute(t, "encode", "willtopic", "--qos", "1", "--retain", "--topic", "a/b")
	require.NoError(t, err)
	assert.Equal(t, "060730612f62\n", out)

	out, _, err = execute(t, "encode", "willtopic")
	require.NoError(t, err)
	assert.Equal(t, "0207\n", out)

	out, _, err = execute(t, "encode", "willtopic", "--qos=-1", "--topic", "w", "--update")
	require.NoError(t, err)
	assert.Equal(t, "041a6077\n", out)

	_, _, err = execute(t, "encode", "willtopic", "--qos", "5", "--topic", "w")
	assert.ErrorIs(t, err, wire.ErrInvalidArgument)
}

func TestDecode(t *testing.T) {
	out, _, err := execute(t, "decode", "70 02 01 2c")
	require.NoError(t, err)
	assert.Equal(t, "mqtt PUBCOMP {Kind:PUBCOMP PacketID:300}\n", out)

	out, _, err = execute(t, "decode", "--protocol", "sn", "0507306162")
	require.NoError(t, err)
	assert.Equal(t, "mqtt-sn WILLTOPIC {QoS:QoS1 Retain:true Topic:ab}\n", out)

	_, errOut, err := execute(t, "decode", "--protocol", "sn", "0211")
	assert.ErrorIs(t, err, wire.ErrUnknownMessageType)
	assert.Contains(t, errOut, "frame dropped")

	_, _, err = execute(t, "decode", "zz")
	assert.Error(t, err)
}

func TestDecodeCaptureAndReplay(t *testing.T) {
	dir := t.TempDir()
	capturePath := filepath.Join(dir, "frames.mp")
	configPath := filepath.Join(dir, "snwire.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("capture:\n  file: "+capturePath+"\n"), 0o600))

	_, _, err := execute(t, "--config", configPath, "decode", "--protocol", "sn",
		"0507306162",           // WILLTOPIC ab
		"040e012c",             // PUBCOMP 300
		"0a0a0001000273742f31", // REGISTER st/1
	)
	require.NoError(t, err)

	out, _, err := execute(t, "replay", capturePath)
	require.NoError(t, err)
	assert.Equal(t,
		"mqtt-sn WILLTOPIC {QoS:QoS1 Retain:true Topic:ab}\n"+
			"mqtt-sn PUBCOMP {Kind:PUBCOMP MsgID:300}\n"+
			"mqtt-sn REGISTER {TopicID:1 MsgID:2 TopicName:st/1}\n",
		out)

	out, _, err = execute(t, "replay", "--topic", "st/+", capturePath)
	require.NoError(t, err)
	assert.Equal(t, "mqtt-sn REGISTER {TopicID:1 MsgID:2 TopicName:st/1}\n", out)
}

func TestConfigEncoding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snwire.yaml")
	require.NoError(t, os.WriteFile(path, []byte("text:\n  encoding: ISO-8859-1\n"), 0o600))

	out, _, err := execute(t, "--config", path, "encode", "willtopic", "--topic", "café")
	require.NoError(t, err)
	assert.Equal(t, "070700636166e9\n", out)
}
