package link

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clangoi/judotimer/internal/domain"
	"github.com/clangoi/judotimer/internal/errors"
	"github.com/clangoi/judotimer/internal/testutil"
)

type failingTransport struct{}

func (failingTransport) Send(context.Context, domain.Snapshot) error { return testutil.ErrMockTransport }
func (failingTransport) OnReceive(func(domain.Snapshot))             {}

func linkedPair(t *testing.T) (*Manager, *Manager) {
	t.Helper()
	ctx := context.Background()
	hub := NewLoopbackHub()

	a, _ := newTestManager(t)
	b, _ := newTestManager(t)
	a.AttachTransport(hub.Transport())
	b.AttachTransport(hub.Transport())

	code, err := a.GenerateDeviceCode()
	require.NoError(t, err)
	require.NoError(t, a.LinkDevice(ctx, code, "Tablet"))
	require.NoError(t, b.LinkDevice(ctx, code, "Phone-2"))
	return a, b
}

func TestTransport_PushReachesLinkedDevice(t *testing.T) {
	a, b := linkedPair(t)
	b.UpdateRemoteData(domain.SyncDataBag{"volume": 5})

	a.UpdateRemoteData(domain.SyncDataBag{"mode": "countdown"})
	require.NoError(t, a.Push(context.Background()))

	assert.Equal(t, domain.SyncDataBag{"mode": "countdown", "volume": 5}, b.Data())
	assert.Equal(t, domain.SyncDataBag{"mode": "countdown"}, a.Data(), "own echo is dropped")
	assert.NotEqual(t, a.Origin(), b.Origin())
}

func TestTransport_IgnoresOtherCodes(t *testing.T) {
	ctx := context.Background()
	hub := NewLoopbackHub()
	a, _ := newTestManager(t)
	b, _ := newTestManager(t)
	a.AttachTransport(hub.Transport())
	b.AttachTransport(hub.Transport())

	require.NoError(t, a.LinkDevice(ctx, "AAAA11", "Tablet"))
	require.NoError(t, b.LinkDevice(ctx, "BBBB22", "Phone"))

	a.UpdateRemoteData(domain.SyncDataBag{"mode": "stopwatch"})
	require.NoError(t, a.Push(ctx))
	assert.Empty(t, b.Data())
}

func TestTransport_PushErrors(t *testing.T) {
	ctx := context.Background()

	m, _ := newTestManager(t)
	require.ErrorIs(t, m.Push(ctx), errors.ErrNotLinked)

	require.NoError(t, m.LinkDevice(ctx, "AB12CD", "Phone"))
	require.ErrorIs(t, m.Push(ctx), errors.ErrTransportNotAttached)

	m.AttachTransport(failingTransport{})
	require.ErrorIs(t, m.Push(ctx), testutil.ErrMockTransport)
}

func TestTransport_UnlinkedReceiverIgnores(t *testing.T) {
	a, b := linkedPair(t)
	require.NoError(t, b.UnlinkDevice(context.Background()))

	a.UpdateRemoteData(domain.SyncDataBag{"mode": "tabata"})
	require.NoError(t, a.Push(context.Background()))
	assert.Empty(t, b.Data())
}
