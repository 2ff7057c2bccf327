package plugin

import "fmt"

// Priority orders plugin initialization within a dependency level: lower
// numeric value initializes earlier and shuts down later. Values fall
// into declared bands; banded constructors panic if n is out of range
// for the band.
type Priority int

const (
	bandKernelLo         = 0
	bandKernelHi         = 10
	bandCoreCriticalLo   = 11
	bandCoreCriticalHi   = 30
	bandCoreLo           = 31
	bandCoreHi           = 50
	bandHighLo           = 51
	bandHighHi           = 70
	bandNormalLo         = 71
	bandNormalHi         = 90
	bandLowLo            = 91
	bandLowHi            = 110
	bandThirdPartyHighLo = 111
	bandThirdPartyHighHi = 130
	bandThirdPartyLo     = 131
	bandThirdPartyHi     = 150
	bandThirdPartyLowLo  = 151
	bandThirdPartyLowHi  = 200
)

func mustInBand(band string, n, lo, hi int) Priority {
	if n < lo || n > hi {
		panic(fmt.Sprintf("plugin: priority %d out of band %s [%d, %d]", n, band, lo, hi))
	}
	return Priority(n)
}

func PriorityKernel(n int) Priority       { return mustInBand("Kernel", n, bandKernelLo, bandKernelHi) }
func PriorityCoreCritical(n int) Priority { return mustInBand("CoreCritical", n, bandCoreCriticalLo, bandCoreCriticalHi) }
func PriorityCore(n int) Priority         { return mustInBand("Core", n, bandCoreLo, bandCoreHi) }
func PriorityHigh(n int) Priority         { return mustInBand("High", n, bandHighLo, bandHighHi) }
func PriorityNormal(n int) Priority       { return mustInBand("Normal", n, bandNormalLo, bandNormalHi) }
func PriorityLow(n int) Priority          { return mustInBand("Low", n, bandLowLo, bandLowHi) }
func PriorityThirdPartyHigh(n int) Priority {
	return mustInBand("ThirdPartyHigh", n, bandThirdPartyHighLo, bandThirdPartyHighHi)
}
func PriorityThirdParty(n int) Priority {
	return mustInBand("ThirdParty", n, bandThirdPartyLo, bandThirdPartyHi)
}
func PriorityThirdPartyLow(n int) Priority {
	return mustInBand("ThirdPartyLow", n, bandThirdPartyLowLo, bandThirdPartyLowHi)
}

// Band names the declared range n falls within, for logging/diagnostics.
func (p Priority) Band() string {
	n := int(p)
	switch {
	case n >= bandKernelLo && n <= bandKernelHi:
		return "Kernel"
	case n >= bandCoreCriticalLo && n <= bandCoreCriticalHi:
		return "CoreCritical"
	case n >= bandCoreLo && n <= bandCoreHi:
		return "Core"
	case n >= bandHighLo && n <= bandHighHi:
		return "High"
	case n >= bandNormalLo && n <= bandNormalHi:
		return "Normal"
	case n >= bandLowLo && n <= bandLowHi:
		return "Low"
	case n >= bandThirdPartyHighLo && n <= bandThirdPartyHighHi:
		return "ThirdPartyHigh"
	case n >= bandThirdPartyLo && n <= bandThirdPartyHi:
		return "ThirdParty"
	case n >= bandThirdPartyLowLo && n <= bandThirdPartyLowHi:
		return "ThirdPartyLow"
	default:
		return "unknown"
	}
}

func (p Priority) String() string {
	return fmt.Sprintf("%s(%d)", p.Band(), int(p))
}
