// Command snwire decodes, encodes and replays classic MQTT and MQTT-SN
// frames.
//
// Usage:
//
//	snwire decode --protocol sn 0507306162
//	snwire encode ack --kind pubcomp --id 300
//	snwire encode willtopic --qos 1 --retain --topic a/b
//	snwire replay frames.mp --topic 'sensors/#'
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
