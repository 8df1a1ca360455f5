package lazy

import (
	"context"
	"testing"

	"browserbase-agent/internal/infrastructure/browser/browsertest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowser_OpensOnFirstUse(t *testing.T) {
	fake := browsertest.New(map[string]browsertest.Page{"https://www.npr.org": {Text: "News"}})
	var opened int
	b := New(fake.Factory(&opened))

	assert.False(t, b.Opened())
	assert.Equal(t, "", b.CurrentURL())
	assert.Zero(t, opened)

	ctx := context.Background()
	require.NoError(t, b.Navigate(ctx, "https://www.npr.org"))
	text, err := b.GetPageText(ctx)
	require.NoError(t, err)

	assert.Equal(t, "News", text)
	assert.Equal(t, "https://www.npr.org", b.CurrentURL())
	assert.Equal(t, 1, opened)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, 1, fake.CloseCalls)

	assert.ErrorIs(t, b.Click(ctx, "#x"), ErrClosed)
	assert.Equal(t, 1, opened)
}

func TestBrowser_CloseWithoutUse(t *testing.T) {
	fake := browsertest.New(nil)
	var opened int
	b := New(fake.Factory(&opened))

	require.NoError(t, b.Close())
	assert.Zero(t, opened)
	assert.Zero(t, fake.CloseCalls)
}
