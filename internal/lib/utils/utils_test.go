package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, map[string]int{"users": 2}))
	assert.Equal(t, "{\n\t\"users\": 2\n}\n", buf.String())
}

func TestWriteJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, WriteJSON(&buf, make(chan int)))
	assert.Zero(t, buf.Len())
}
