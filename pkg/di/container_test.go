package di

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/recordcast/pkg/storage"
)

func TestNewContainer(t *testing.T) {
	c := NewContainer()

	assert.NotNil(t, c.GetServerFactory())
	assert.NotNil(t, c.GetLoaderOpener())
	assert.NotNil(t, c.GetMetrics())
	assert.NotNil(t, c.GetTracker())

	c.GetMetrics().DatagramsSent(2)
	families, err := c.GetRegistry().Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "recordcast_datagrams_sent_total")
	assert.Contains(t, names, "go_goroutines")
}

func TestContainer_SetLoaderOpener(t *testing.T) {
	c := NewContainer()
	want := errors.New("no source")
	c.SetLoaderOpener(func(storage.Options) (storage.Loader, error) { return nil, want })

	_, err := c.GetLoaderOpener()(storage.Options{})
	assert.ErrorIs(t, err, want)
}

func TestContainers_AreIndependent(t *testing.T) {
	// each container owns its registry, so building two must not panic
	a := NewContainer()
	b := NewContainer()
	assert.NotSame(t, a.GetRegistry(), b.GetRegistry())
}
