package rpcclient

import (
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestNewRequiresPrivateKey(t *testing.T) {
	_, err := New(lgr.NoOp, Config{GasPrice: "1"})
	assert.Error(t, err)
}

func TestNewRejectsInvalidGasPrice(t *testing.T) {
	_, err := New(lgr.NoOp, Config{PrivateKey: testPrivateKey, GasPrice: "not-a-number"})
	assert.Error(t, err)
}

func TestNewAcceptsHexPrefixedKey(t *testing.T) {
	c, err := New(lgr.NoOp, Config{PrivateKey: "0x" + testPrivateKey, GasLimit: 200000, GasPrice: "1000000000"})
	require.NoError(t, err)
	assert.NotNil(t, c.privateKey)
}
