package console

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerbose(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsVerbose(ctx))
	assert.True(t, IsVerbose(SetVerbose(ctx, true)))
	assert.False(t, IsVerbose(SetVerbose(ctx, false)))
}

func TestExit(t *testing.T) {
	err := Exit(3, "device %s", "missing")
	assert.Equal(t, 3, err.ExitCode())
	assert.EqualError(t, err, "device missing")
}

func TestOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(&bytes.Buffer{}, &bytes.Buffer{})
	Printf("%d dB\n", 42)
	Warnf("clamped to %d", 100)
	assert.Equal(t, "42 dB\n", out.String())
	assert.Contains(t, errOut.String(), "clamped to 100")
}
