package usbcore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ardnew/usbcore/usbcore"
	"github.com/ardnew/usbcore/usberr"
)

func newActiveEndpoint(t *testing.T, maxEndpoints uint8) (*usbcore.Driver, *fakeLLD) {
	t.Helper()
	lld := newFakeLLD()
	d := usbcore.New(lld, usbcore.WithMaxEndpoints(maxEndpoints))
	require.NoError(t, d.Start(usbcore.Config{}))
	require.NoError(t, d.Reset())
	promoteToActive(t, d)
	require.NoError(t, d.InitEndpoint(1, &usbcore.EndpointConfig{}))
	return d, lld
}

func TestStallTransmitRejectsWhileInFlight(t *testing.T) {
	d, _ := newActiveEndpoint(t, 2)
	require.NoError(t, d.StartTransmit(1, []byte("hi")))
	require.ErrorIs(t, d.StallTransmit(1), usberr.ErrBusy)
}

func TestStallTransmitSucceedsWhenIdle(t *testing.T) {
	d, lld := newActiveEndpoint(t, 2)
	require.NoError(t, d.StallTransmit(1))
	require.Equal(t, usbcore.EndpointStatusStalled, lld.statusIn[1])
}

func TestStallReceiveRejectsWhileInFlight(t *testing.T) {
	d, _ := newActiveEndpoint(t, 2)
	require.NoError(t, d.StartReceive(1, make([]byte, 8)))
	require.ErrorIs(t, d.StallReceive(1), usberr.ErrBusy)
}

func TestStallReceiveSucceedsWhenIdle(t *testing.T) {
	d, lld := newActiveEndpoint(t, 2)
	require.NoError(t, d.StallReceive(1))
	require.Equal(t, usbcore.EndpointStatusStalled, lld.statusOut[1])
}

func TestReadPacketRejectsWhileReceiveInFlight(t *testing.T) {
	d, _ := newActiveEndpoint(t, 2)
	require.NoError(t, d.StartReceive(1, make([]byte, 8)))
	_, err := d.ReadPacket(1, make([]byte, 8))
	require.ErrorIs(t, err, usberr.ErrBusy)
}

func TestReadPacketSucceedsWhenIdle(t *testing.T) {
	d, lld := newActiveEndpoint(t, 2)
	lld.lastOut = []byte("data")
	buf := make([]byte, 8)
	n, err := d.ReadPacket(1, buf)
	require.NoError(t, err)
	require.Equal(t, []byte("data"), buf[:n])
}

func TestWritePacketRejectsWhileTransmitInFlight(t *testing.T) {
	d, _ := newActiveEndpoint(t, 2)
	require.NoError(t, d.StartTransmit(1, []byte("hi")))
	require.ErrorIs(t, d.WritePacket(1, []byte("more")), usberr.ErrBusy)
}

func TestWritePacketSucceedsWhenIdle(t *testing.T) {
	d, lld := newActiveEndpoint(t, 2)
	require.NoError(t, d.WritePacket(1, []byte("hi")))
	require.Equal(t, []byte("hi"), lld.lastIn)
}

func TestNonEP0CompleteClearsBusyFlagsAllowingRetry(t *testing.T) {
	d, _ := newActiveEndpoint(t, 2)
	require.NoError(t, d.StartTransmit(1, []byte("hi")))
	require.ErrorIs(t, d.StallTransmit(1), usberr.ErrBusy)

	d.NonEP0InComplete(1, nil)
	require.NoError(t, d.StallTransmit(1))
}
