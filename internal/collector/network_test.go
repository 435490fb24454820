package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelta(t *testing.T) {
	assert.Equal(t, uint64(5), delta(15, 10))
	assert.Equal(t, uint64(0), delta(10, 10))
	assert.Equal(t, uint64(0), delta(3, 10))
}

func TestStripPrefix(t *testing.T) {
	assert.Equal(t, "192.168.1.2", stripPrefix("192.168.1.2/24"))
	assert.Equal(t, "fe80::1", stripPrefix("fe80::1/64"))
	assert.Equal(t, "10.0.0.1", stripPrefix("10.0.0.1"))
}
