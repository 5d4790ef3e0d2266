package configssession

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	s, err := NewRedisStorage(url, "test-session:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Reset()
		_ = s.Close()
	})

	got, err := s.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("abc", []byte("payload"), time.Minute))
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	require.NoError(t, s.Delete("abc"))
	got, err = s.Get("abc")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set("k1", []byte("1"), time.Minute))
	require.NoError(t, s.Set("k2", []byte("2"), time.Minute))
	require.NoError(t, s.Reset())
	got, err = s.Get("k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewRedisStorageBadURL(t *testing.T) {
	_, err := NewRedisStorage("not a url", "x:")
	assert.Error(t, err)
}
