package cli

import (
	"encoding/binary"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ardnew/usbcore/usbcore"
	"github.com/ardnew/usbcore/usbconfig"
	"github.com/ardnew/usbcore/usbdesc"
	"github.com/ardnew/usbcore/usbloopback"
)

func runCmd() *cobra.Command {
	var address uint8
	var configValue uint8

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a simulated device through address assignment and configuration",
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

			if err := d.Start(usbcore.Config{
				GetDescriptor: table.Get,
				EventCB: func(d *usbcore.Driver, ev usbcore.Event) {
					fmt.Fprintf(cmd.OutOrStdout(), "event: %v\n", ev)
				},
			}); err != nil {
				return err
			}
			defer d.Stop()
			if err := d.Reset(); err != nil {
				return err
			}

			lld.InjectSetup(setAddressSetup(address))
			lld.Sync()
			lld.Sync()
			fmt.Fprintf(cmd.OutOrStdout(), "address: %d, state: %v\n", d.Address(), d.State())

			lld.InjectSetup(setConfigurationSetup(configValue))
			lld.Sync()
			lld.Sync()
			fmt.Fprintf(cmd.OutOrStdout(), "configuration: %d, state: %v\n", d.Configuration(), d.State())

			return nil
		},
	}
	cmd.Flags().Uint8Var(&address, "address", 5, "USB address to assign")
	cmd.Flags().Uint8Var(&configValue, "configuration", 1, "configuration value to select")
	return cmd
}

func buildDescriptorTable(cfg usbconfig.Config) *usbdesc.Table {
	table := usbdesc.NewTable()
	table.SetDevice(usbdesc.DeviceDescriptor{
		USBVersion:        0x0200,
		MaxPacketSize0:    uint8(cfg.EP0MaxPacketSize),
		VendorID:          cfg.VendorID,
		ProductID:         cfg.ProductID,
		DeviceVersion:     0x0100,
		ManufacturerIndex: 1,
		ProductIndex:      2,
		SerialNumberIndex: 3,
		NumConfigurations: 1,
	})
	table.SetLanguages(usbdesc.LangIDUSEnglish)

	var mfg, prod, serial [64]byte
	n1 := usbdesc.StringDescriptorTo(mfg[:], "usbcore")
	n2 := usbdesc.StringDescriptorTo(prod[:], "usbdevice-sim")
	n3 := usbdesc.StringDescriptorTo(serial[:], "0001")
	table.SetString(1, mfg[2:n1])
	table.SetString(2, prod[2:n2])
	table.SetString(3, serial[2:n3])

	var configHeader [usbdesc.ConfigurationDescriptorSize]byte
	var iface [usbdesc.InterfaceDescriptorSize]byte
	(&usbdesc.ConfigurationDescriptor{
		TotalLength:        usbdesc.ConfigurationDescriptorSize + usbdesc.InterfaceDescriptorSize,
		NumInterfaces:      1,
		ConfigurationValue: 1,
		Attributes:         usbdesc.ConfigAttrReserved,
		MaxPower:           50,
	}).MarshalTo(configHeader[:])
	(&usbdesc.InterfaceDescriptor{
		InterfaceNumber: 0,
		InterfaceClass:  usbdesc.ClassVendor,
	}).MarshalTo(iface[:])
	full := append(append([]byte{}, configHeader[:]...), iface[:]...)
	table.AddConfiguration(full)

	return table
}

func setAddressSetup(addr uint8) [8]byte {
	var raw [8]byte
	raw[1] = usbcore.RequestSetAddress
	binary.LittleEndian.PutUint16(raw[2:4], uint16(addr))
	return raw
}

func setConfigurationSetup(value uint8) [8]byte {
	var raw [8]byte
	raw[1] = usbcore.RequestSetConfiguration
	binary.LittleEndian.PutUint16(raw[2:4], uint16(value))
	return raw
}
