package configssession

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCookieKey(t *testing.T) {
	key := DeriveCookieKey("s3cret")

	raw, err := base64.StdEncoding.DecodeString(key)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, key, DeriveCookieKey("s3cret"))
	assert.NotEqual(t, key, DeriveCookieKey("other"))
}
