package usbdesc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/usbcore/usbcore"
	"github.com/ardnew/usbcore/usbdesc"
)

func TestTableGetDevice(t *testing.T) {
	table := usbdesc.NewTable().SetDevice(usbdesc.DeviceDescriptor{
		MaxPacketSize0: 64,
		VendorID:       0x1209,
		ProductID:      0x0001,
	})

	desc, ok := table.Get(usbdesc.TypeDevice, 0, 0)
	require.True(t, ok)
	require.Equal(t, usbcore.EncodingRaw, desc.Encoding)
	require.Len(t, desc.Bytes, usbdesc.DeviceDescriptorSize)
}

func TestTableGetDeviceBeforeSetFails(t *testing.T) {
	_, ok := usbdesc.NewTable().Get(usbdesc.TypeDevice, 0, 0)
	require.False(t, ok)
}

func TestTableGetConfiguration(t *testing.T) {
	table := usbdesc.NewTable().AddConfiguration([]byte{0x09, 0x02, 0x09, 0x00, 0x01, 0x01, 0x00, 0x80, 0x32})

	desc, ok := table.Get(usbdesc.TypeConfiguration, 0, 0)
	require.True(t, ok)
	require.Equal(t, usbcore.EncodingRaw, desc.Encoding)

	_, ok = table.Get(usbdesc.TypeConfiguration, 1, 0)
	require.False(t, ok)
}

func TestTableGetLanguagesAtStringIndexZero(t *testing.T) {
	table := usbdesc.NewTable().SetLanguages(usbdesc.LangIDUSEnglish)

	desc, ok := table.Get(usbdesc.TypeString, 0, 0)
	require.True(t, ok)
	require.Equal(t, usbcore.EncodingRaw, desc.Encoding)
}

func TestTableGetString(t *testing.T) {
	table := usbdesc.NewTable().SetString(1, []byte{'h', 0x00, 'i', 0x00})

	desc, ok := table.Get(usbdesc.TypeString, 1, usbdesc.LangIDUSEnglish)
	require.True(t, ok)
	require.Equal(t, usbcore.EncodingUTF16String, desc.Encoding)
	require.Equal(t, []byte{'h', 0x00, 'i', 0x00}, desc.Bytes)
}

func TestTableGetStringMissingIndexFails(t *testing.T) {
	_, ok := usbdesc.NewTable().Get(usbdesc.TypeString, 5, 0)
	require.False(t, ok)
}

func TestTableGetUnknownTypeFails(t *testing.T) {
	_, ok := usbdesc.NewTable().Get(0xFF, 0, 0)
	require.False(t, ok)
}
