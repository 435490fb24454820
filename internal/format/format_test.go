package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteSize(t *testing.T) {
	tests := []struct {
		name     string
		bytes    uint64
		decimals int
		expect   string
	}{
		{"zero", 0, 2, "0 Bytes"},
		{"below one kilobyte", 512, 2, "512 Bytes"},
		{"exact kilobyte", 1024, 2, "1 KB"},
		{"one and a half kilobytes", 1536, 1, "1.5 KB"},
		{"rounds up", 2047, 2, "2 KB"},
		{"two decimals", 1288490189, 2, "1.2 GB"},
		{"negative decimals act as zero", 1536, -1, "2 KB"},
		{"terabytes", 3 * 1024 * 1024 * 1024 * 1024, 2, "3 TB"},
		{"max uint64 stays in exabytes", ^uint64(0), 2, "16 EB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ByteSize(tt.bytes, tt.decimals))
		})
	}
}

func TestBytes_DefaultsToTwoDecimals(t *testing.T) {
	assert.Equal(t, "1.33 KB", Bytes(1362))
	assert.Equal(t, ByteSize(123456789, 2), Bytes(123456789))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "0 Bytes/s", Rate(0))
	assert.Equal(t, "1.5 KB/s", Rate(1536))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds uint64
		expect  string
	}{
		{0, "0s"},
		{59, "59s"},
		{60, "1m"},
		{3661, "1h 1m"},
		{90000, "1d 1h"},
		{2*86400 + 3*3600, "2d 3h"},
		{86400 + 60, "1d 1m"},
		{86400 + 3600 + 60 + 5, "1d 1h 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, Duration(tt.seconds))
		})
	}
}

func TestFrequency(t *testing.T) {
	assert.Equal(t, "800 MHz", Frequency(800))
	assert.Equal(t, "3.6 GHz", Frequency(3600))
	assert.Equal(t, "4.25 GHz", Frequency(4250))
	assert.Equal(t, "0 MHz", Frequency(0))
	assert.Equal(t, "0 MHz", Frequency(-5))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "0.0%", Percent(0))
	assert.Equal(t, "92.6%", Percent(92.55555))
}

func TestClassifyGPU(t *testing.T) {
	tests := []struct {
		name   string
		expect GPUKind
	}{
		{"Intel UHD Graphics 630", Integrated},
		{"NVIDIA GeForce RTX 4070", Dedicated},
		{"Intel Arc A770", Dedicated},
		{"Intel Corporation HD Graphics 620", Integrated},
		{"Intel Iris Xe Graphics", Integrated},
		{"Intel Iris Xe MAX Graphics", Dedicated},
		{"Intel Arc Graphics", Integrated},
		{"AMD Radeon(TM) Graphics", Integrated},
		{"Advanced Micro Devices, Inc. [AMD/ATI] Rembrandt", Integrated},
		{"AMD Radeon RX Vega 56", Dedicated},
		{"AMD Radeon RX 7900 XTX", Dedicated},
		{"Apple M2 Pro", Integrated},
		{"Unknown / Integrated", Integrated},
		{"Matrox G200eR2", Dedicated},
		{"", Dedicated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ClassifyGPU(tt.name))
		})
	}
}

func TestGPUKind_String(t *testing.T) {
	assert.Equal(t, "Integrated", Integrated.String())
	assert.Equal(t, "Dedicated", Dedicated.String())
	assert.Equal(t, "Dedicated", GPUKind(42).String())
}
