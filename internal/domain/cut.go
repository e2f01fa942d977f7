package domain

import "strings"

// Medium is the medium indicator used in output file names.
type Medium string

const (
	MediumDust      Medium = "dust"
	MediumElectrons Medium = "elec"
	MediumGas       Medium = "gas"
)

// DensityMedia lists the media probed for density cuts, in plotting order.
var DensityMedia = []Medium{MediumDust, MediumElectrons, MediumGas}

// Cut names a planar slice through the simulated volume, e.g. "xz".
type Cut string

const (
	CutXY Cut = "xy"
	CutXZ Cut = "xz"
	CutYZ Cut = "yz"
)

// AllCuts lists the coordinate planes in plotting order.
var AllCuts = []Cut{CutXY, CutXZ, CutYZ}

// HorizontalAxis returns the name of the horizontal axis ("x" for "xz").
func (c Cut) HorizontalAxis() string {
	if c == "" {
		return ""
	}
	return string(c[:1])
}

// VerticalAxis returns the name of the vertical axis ("z" for "xz").
func (c Cut) VerticalAxis() string {
	if c == "" {
		return ""
	}
	return string(c[len(c)-1:])
}

// Probe type names recognized by the density plot.
const (
	DefaultMediaDensityCutsProbe = "DefaultMediaDensityCutsProbe"
	PlanarMediaDensityCutsProbe  = "PlanarMediaDensityCutsProbe"
)

// IsDensityProbe reports whether a probe type produces media density cuts.
func IsDensityProbe(probeType string) bool {
	return probeType == DefaultMediaDensityCutsProbe || probeType == PlanarMediaDensityCutsProbe
}

// TemperatureProbeTypes lists the probe types producing temperature cuts:
// {Default,Planar}{Dust,Gas,Electron}TemperatureCutsProbe.
var TemperatureProbeTypes = func() []string {
	var types []string
	for _, style := range []string{"Default", "Planar"} {
		for _, medium := range []string{"Dust", "Gas", "Electron"} {
			types = append(types, style+medium+"TemperatureCutsProbe")
		}
	}
	return types
}()

// IsTemperatureProbe reports whether a probe type produces temperature cuts.
func IsTemperatureProbe(probeType string) bool {
	for _, t := range TemperatureProbeTypes {
		if t == probeType {
			return true
		}
	}
	return false
}

// TemperatureMedium returns the medium indicator for a temperature probe type.
func TemperatureMedium(probeType string) Medium {
	medium := MediumDust
	if strings.Contains(probeType, "Gas") {
		medium = MediumGas
	}
	if strings.Contains(probeType, "Electron") {
		medium = MediumElectrons
	}
	return medium
}

// Label formats a quantity name with its unit in square brackets.
// An empty unit yields the bare name.
func Label(name, unit string) string {
	if unit == "" {
		return name
	}
	return name + " [" + unit + "]"
}
