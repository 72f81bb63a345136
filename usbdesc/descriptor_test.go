package usbdesc_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/usbcore/usberr"
	"github.com/ardnew/usbcore/usbdesc"
)

func TestDeviceDescriptorRoundTrip(t *testing.T) {
	want := usbdesc.DeviceDescriptor{
		USBVersion:        0x0200,
		DeviceClass:       0xFF,
		DeviceSubClass:    0x00,
		DeviceProtocol:    0x00,
		MaxPacketSize0:    64,
		VendorID:          0x1209,
		ProductID:         0x0001,
		DeviceVersion:     0x0100,
		ManufacturerIndex: 1,
		ProductIndex:      2,
		SerialNumberIndex: 3,
		NumConfigurations: 1,
	}

	buf := make([]byte, usbdesc.DeviceDescriptorSize)
	n := want.MarshalTo(buf)
	require.Equal(t, usbdesc.DeviceDescriptorSize, n)
	require.Equal(t, uint8(usbdesc.DeviceDescriptorSize), buf[0])
	require.Equal(t, usbdesc.TypeDevice, buf[1])

	var got usbdesc.DeviceDescriptor
	require.NoError(t, usbdesc.ParseDeviceDescriptor(buf, &got))

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("device descriptor round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDeviceDescriptorMarshalToBufferTooSmall(t *testing.T) {
	var d usbdesc.DeviceDescriptor
	buf := make([]byte, usbdesc.DeviceDescriptorSize-1)
	require.Equal(t, 0, d.MarshalTo(buf))
}

func TestParseDeviceDescriptorTooShort(t *testing.T) {
	var out usbdesc.DeviceDescriptor
	err := usbdesc.ParseDeviceDescriptor(make([]byte, usbdesc.DeviceDescriptorSize-1), &out)
	require.ErrorIs(t, err, usberr.ErrDescriptorTooShort)
}

func TestParseDeviceDescriptorTypeMismatch(t *testing.T) {
	buf := make([]byte, usbdesc.DeviceDescriptorSize)
	buf[0] = usbdesc.DeviceDescriptorSize
	buf[1] = usbdesc.TypeConfiguration

	var out usbdesc.DeviceDescriptor
	err := usbdesc.ParseDeviceDescriptor(buf, &out)
	require.ErrorIs(t, err, usberr.ErrDescriptorTypeMismatch)
}

func TestConfigurationDescriptorMarshalTo(t *testing.T) {
	c := usbdesc.ConfigurationDescriptor{
		TotalLength:        usbdesc.ConfigurationDescriptorSize + usbdesc.InterfaceDescriptorSize,
		NumInterfaces:      1,
		ConfigurationValue: 1,
		Attributes:         usbdesc.ConfigAttrReserved,
		MaxPower:           50,
	}
	buf := make([]byte, usbdesc.ConfigurationDescriptorSize)
	n := c.MarshalTo(buf)
	require.Equal(t, usbdesc.ConfigurationDescriptorSize, n)
	require.Equal(t, usbdesc.TypeConfiguration, buf[1])
	require.Equal(t, uint8(1), buf[5])
	require.Equal(t, uint8(usbdesc.ConfigAttrReserved), buf[7])
	require.Equal(t, uint8(50), buf[8])
}

func TestInterfaceDescriptorMarshalTo(t *testing.T) {
	i := usbdesc.InterfaceDescriptor{
		InterfaceNumber: 0,
		NumEndpoints:    2,
		InterfaceClass:  usbdesc.ClassVendor,
	}
	buf := make([]byte, usbdesc.InterfaceDescriptorSize)
	n := i.MarshalTo(buf)
	require.Equal(t, usbdesc.InterfaceDescriptorSize, n)
	require.Equal(t, usbdesc.TypeInterface, buf[1])
	require.Equal(t, uint8(2), buf[4])
	require.Equal(t, uint8(usbdesc.ClassVendor), buf[5])
}

func TestEndpointDescriptorMarshalTo(t *testing.T) {
	e := usbdesc.EndpointDescriptor{
		EndpointAddress: 0x81,
		Attributes:      0x02,
		MaxPacketSize:   64,
		Interval:        0,
	}
	buf := make([]byte, usbdesc.EndpointDescriptorSize)
	n := e.MarshalTo(buf)
	require.Equal(t, usbdesc.EndpointDescriptorSize, n)
	require.Equal(t, usbdesc.TypeEndpoint, buf[1])
	require.Equal(t, uint8(0x81), buf[2])
	require.Equal(t, uint8(64), buf[4])
}

func TestInterfaceAssociationDescriptorMarshalTo(t *testing.T) {
	i := usbdesc.InterfaceAssociationDescriptor{
		FirstInterface: 0,
		InterfaceCount: 2,
		FunctionClass:  usbdesc.ClassCDC,
	}
	buf := make([]byte, usbdesc.InterfaceAssociationDescriptorSize)
	n := i.MarshalTo(buf)
	require.Equal(t, usbdesc.InterfaceAssociationDescriptorSize, n)
	require.Equal(t, usbdesc.TypeInterfaceAssociation, buf[1])
	require.Equal(t, uint8(2), buf[3])
}

func TestStringDescriptorTo(t *testing.T) {
	buf := make([]byte, 64)
	n := usbdesc.StringDescriptorTo(buf, "hi")
	require.Equal(t, 6, n) // 2-byte header + 2 runes * 2 bytes
	require.Equal(t, uint8(6), buf[0])
	require.Equal(t, usbdesc.TypeString, buf[1])
	require.Equal(t, []byte{'h', 0x00, 'i', 0x00}, buf[2:6])
}

func TestLanguageDescriptorTo(t *testing.T) {
	buf := make([]byte, 8)
	n := usbdesc.LanguageDescriptorTo(buf, usbdesc.LangIDUSEnglish)
	require.Equal(t, 4, n)
	require.Equal(t, uint8(4), buf[0])
	require.Equal(t, usbdesc.TypeString, buf[1])
	require.Equal(t, []byte{0x09, 0x04}, buf[2:4])
}
