package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InvalidIndex(t *testing.T) {
	lb := New(3)
	assert.Equal(t, ErrIndexOutOfRange, lb.Open(-1))
	assert.Equal(t, ErrIndexOutOfRange, lb.Open(3))

	_, open := lb.Index()
	assert.False(t, open)
	assert.False(t, lb.ScrollLocked())
}

func TestOpen_EmptyGallery(t *testing.T) {
	lb := New(0)
	assert.Equal(t, ErrIndexOutOfRange, lb.Open(0))
}

func TestNext_WrapsAround(t *testing.T) {
	lb := New(3)
	require.NoError(t, lb.Open(0))

	lb.Next()
	lb.Next()
	lb.Next()

	i, open := lb.Index()
	assert.True(t, open)
	assert.Equal(t, 0, i)
}

func TestPrev_WrapsAround(t *testing.T) {
	lb := New(3)
	require.NoError(t, lb.Open(0))

	lb.Prev()

	i, _ := lb.Index()
	assert.Equal(t, 2, i)
}

func TestNextPrev_NoOpWhileClosed(t *testing.T) {
	lb := New(3)
	lb.Next()
	lb.Prev()

	_, open := lb.Index()
	assert.False(t, open)
}

func TestClose_RestoresScroll(t *testing.T) {
	lb := New(2)
	require.NoError(t, lb.Open(1))
	assert.True(t, lb.ScrollLocked())

	lb.Close()
	assert.False(t, lb.ScrollLocked())
	_, open := lb.Index()
	assert.False(t, open)
}

func TestReopen_AfterClose(t *testing.T) {
	lb := New(4)
	require.NoError(t, lb.Open(2))
	lb.Close()
	require.NoError(t, lb.Open(3))

	i, open := lb.Index()
	assert.True(t, open)
	assert.Equal(t, 3, i)
}

func TestHandleKey(t *testing.T) {
	lb := New(3)
	require.NoError(t, lb.Open(0))

	lb.HandleKey(KeyArrowRight)
	i, _ := lb.Index()
	assert.Equal(t, 1, i)

	lb.HandleKey(KeyArrowLeft)
	i, _ = lb.Index()
	assert.Equal(t, 0, i)

	lb.HandleKey("Enter") // unknown key is ignored
	i, _ = lb.Index()
	assert.Equal(t, 0, i)

	lb.HandleKey(KeyEscape)
	_, open := lb.Index()
	assert.False(t, open)
	assert.False(t, lb.ScrollLocked())
}

func TestHandleKey_InertWhileClosed(t *testing.T) {
	lb := New(3)
	lb.HandleKey(KeyArrowRight)
	_, open := lb.Index()
	assert.False(t, open)
}
