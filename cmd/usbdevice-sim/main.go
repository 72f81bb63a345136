// Command usbdevice-sim drives a usbcore.Driver against the in-memory
// usbloopback.LLD, standing in for real hardware so the control transfer
// state machine and standard request handling can be exercised and
// observed without a USB controller attached.
package main

import (
	"fmt"
	"os"

	"github.com/ardnew/usbcore/cmd/usbdevice-sim/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
