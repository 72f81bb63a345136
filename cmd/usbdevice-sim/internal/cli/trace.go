package cli

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/usbcore/usbcore"
	"github.com/ardnew/usbcore/usbconfig"
	"github.com/ardnew/usbcore/usbloopback"
)

// traceCmd drives a scripted enumeration sequence (reset, GET_DESCRIPTOR,
// SET_ADDRESS, SET_CONFIGURATION) against the loopback LLD, printing
// every state/EP0 phase transition and driver event as it happens. It
// exists to make the control transfer state machine observable without
// attaching a real host or controller.
func traceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Print a step-by-step trace of a scripted enumeration sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := usbconfig.Load(configFile)
			if err != nil {
				return err
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}

			table := buildDescriptorTable(cfg)
			lld := usbloopback.New(cfg.MaxEndpoints)
			d := usbcore.New(lld, opts...)

			out := cmd.OutOrStdout()
			logTransition := func(label string) {
				fmt.Fprintf(out, "%-28s state=%-8v ep0=%-14v address=%-3d configuration=%d\n",
					label, d.State(), d.EP0State(), d.Address(), d.Configuration())
			}

			if err := d.Start(usbcore.Config{
				GetDescriptor: table.Get,
				EventCB: func(d *usbcore.Driver, ev usbcore.Event) {
					fmt.Fprintf(out, "  -> event: %v\n", eventName(ev))
				},
			}); err != nil {
				return err
			}
			defer d.Stop()

			if err := d.Reset(); err != nil {
				return err
			}
			logTransition("after Reset")

			lld.InjectSetup(getDeviceDescriptorSetup())
			lld.Sync()
			logTransition("after GET_DESCRIPTOR(Device) SETUP")
			lld.Sync()
			// The host acknowledges the IN data with a zero-length OUT.
			lld.InjectOut(0, nil)
			lld.Sync()
			logTransition("after GET_DESCRIPTOR(Device) status stage")

			lld.InjectSetup(setAddressSetup(9))
			lld.Sync()
			logTransition("after SET_ADDRESS SETUP")
			lld.Sync()
			logTransition("after SET_ADDRESS status stage")

			lld.InjectSetup(setConfigurationSetup(1))
			lld.Sync()
			logTransition("after SET_CONFIGURATION SETUP")
			lld.Sync()
			logTransition("after SET_CONFIGURATION status stage")

			return nil
		},
	}
}

func eventName(ev usbcore.Event) string {
	switch ev {
	case usbcore.EventAddress:
		return "EventAddress"
	case usbcore.EventConfigured:
		return "EventConfigured"
	case usbcore.EventStalled:
		return "EventStalled"
	default:
		return "unknown"
	}
}

func getDeviceDescriptorSetup() [8]byte {
	var raw [8]byte
	raw[0] = 0x80 // device-to-host, standard, recipient device
	raw[1] = usbcore.RequestGetDescriptor
	raw[3] = 0x01 // descriptor type DEVICE in wValue high byte
	binary.LittleEndian.PutUint16(raw[6:8], 64)
	return raw
}
