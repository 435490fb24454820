package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLspci(t *testing.T) {
	out := `00:00.0 "Host bridge" "Intel Corporation" "Xeon E3-1200 v6/7th Gen Core Processor Host Bridge/DRAM Registers" -r02 "Dell" "Device 07a0"
00:02.0 "VGA compatible controller" "Intel Corporation" "HD Graphics 620" -r02 "Dell" "Device 07a0"
01:00.0 "3D controller" "NVIDIA Corporation" "GP108M [GeForce MX150]" -ra1 "Dell" "Device 07a0"
`
	name, err := ParseLspci(out)
	require.NoError(t, err)
	assert.Equal(t, "Intel Corporation HD Graphics 620", name)
}

func TestParseLspci_3DController(t *testing.T) {
	out := `01:00.0 "3D controller" "NVIDIA Corporation" "GA102GL [A10]" -ra1 "NVIDIA Corporation" "Device 1482"`
	name, err := ParseLspci(out)
	require.NoError(t, err)
	assert.Equal(t, "NVIDIA Corporation GA102GL [A10]", name)
}

func TestParseLspci_NoDisplay(t *testing.T) {
	_, err := ParseLspci(`00:1f.3 "Audio device" "Intel Corporation" "Sunrise Point-LP HD Audio"`)
	assert.ErrorIs(t, err, ErrNoDisplayController)

	_, err = ParseLspci("")
	assert.ErrorIs(t, err, ErrNoDisplayController)
}

func TestParseLspci_MalformedLineSkipped(t *testing.T) {
	out := `00:02.0 "VGA compatible controller"
03:00.0 "VGA compatible controller" "Advanced Micro Devices, Inc. [AMD/ATI]" "Navi 31 [Radeon RX 7900 XT/7900 XTX]"`
	name, err := ParseLspci(out)
	require.NoError(t, err)
	assert.Equal(t, "Advanced Micro Devices, Inc. [AMD/ATI] Navi 31 [Radeon RX 7900 XT/7900 XTX]", name)
}

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)
	assert.NotEmpty(t, p.Name())
}
