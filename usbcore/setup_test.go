package usbcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/usbcore/usbcore"
)

func TestParseSetupPacket(t *testing.T) {
	raw := [8]byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x00, 0x12, 0x00}
	s := usbcore.ParseSetupPacket(raw)

	require.Equal(t, uint8(0x80), s.RequestType)
	require.Equal(t, usbcore.RequestGetDescriptor, s.Request)
	require.True(t, s.IsDeviceToHost())
	require.False(t, s.IsHostToDevice())
	require.True(t, s.IsStandard())
	require.Equal(t, usbcore.RecipientDevice, s.Recipient())
	require.Equal(t, uint8(1), s.DescriptorType())
	require.Equal(t, uint8(0), s.DescriptorIndex())
	require.Equal(t, uint16(18), s.Length)
}

func TestSetupPacketEndpointRecipient(t *testing.T) {
	raw := [8]byte{0x02, 0x01, 0x00, 0x00, 0x83, 0x00, 0x00, 0x00}
	s := usbcore.ParseSetupPacket(raw)

	require.Equal(t, usbcore.RecipientEndpoint, s.Recipient())
	require.True(t, s.IsHostToDevice())
	require.Equal(t, uint8(3), s.EndpointNumber())
	require.True(t, s.EndpointIsIn())
}
