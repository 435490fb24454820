package format

import "strings"

// GPUKind is a heuristic classification of a graphics adapter.
type GPUKind int

const (
	Dedicated GPUKind = iota
	Integrated
)

// String returns the display label for the kind.
func (k GPUKind) String() string {
	if k == Integrated {
		return "Integrated"
	}
	return "Dedicated"
}

// dedicatedOverrides are discrete parts whose names would otherwise hit an
// integrated keyword (Intel Arc cards, Iris Xe MAX, Radeon RX Vega, ...).
var dedicatedOverrides = []string{
	"arc a", "arc b", "arc pro",
	"iris xe max",
	"geforce", "quadro", "tesla", "nvidia rtx",
	"radeon rx", "radeon pro", "radeon vii",
	"vega 56", "vega 64", "vega frontier",
	"firepro", "instinct",
}

// integratedKeywords match on-die and APU graphics.
var integratedKeywords = []string{
	"integrated",
	"uhd", "iris", "hd graphics", "arc graphics", "intel graphics",
	// AMD APU graphics and codenames
	"radeon graphics", "radeon(tm) graphics", "vega",
	"renoir", "cezanne", "lucienne", "barcelo", "rembrandt", "phoenix",
	"hawk point", "strix point", "raphael", "mendocino", "van gogh",
	"picasso", "raven", "dragon range",
	// SoC GPUs
	"apple m", "adreno", "mali", "powervr", "videocore",
}

// ClassifyGPU guesses whether the named adapter is integrated or dedicated.
// Discrete overrides are checked first; anything unrecognized is Dedicated.
func ClassifyGPU(name string) GPUKind {
	lower := strings.ToLower(name)
	if containsAny(lower, dedicatedOverrides) {
		return Dedicated
	}
	if containsAny(lower, integratedKeywords) {
		return Integrated
	}
	return Dedicated
}

func containsAny(s string, keys []string) bool {
	for _, key := range keys {
		if strings.Contains(s, key) {
			return true
		}
	}
	return false
}
