package earth

import "math"

// Atmosphere implements the International Standard Atmosphere (ISA) up to
// 84.852 km in 8 layers (ISO 2533), with an optional cosmetic density
// variation envelope derived from the U.S. Standard Atmosphere.
type Atmosphere struct {
	heightLayers     [8]float64
	lapseRates       [8]float64
	baseTemperatures [8]float64
	basePressures    [8]float64
}

// Conditions is the atmospheric state at one altitude.
type Conditions struct {
	Temperature  float64 // K
	Pressure     float64 // Pa
	Density      float64 // kg/m³
	SpeedOfSound float64 // m/s
}

// NewAtmosphere returns the standard ISA model.
func NewAtmosphere() Atmosphere {
	return Atmosphere{
		heightLayers:     [8]float64{0, 11000, 20000, 32000, 47000, 51000, 71000, 84852},
		lapseRates:       [8]float64{-0.0065, 0, 0.001, 0.0028, 0, -0.0028, -0.002, 0},
		baseTemperatures: [8]float64{288.15, 216.65, 216.65, 228.65, 270.65, 270.65, 214.65, 186.95},
		basePressures:    [8]float64{101325.0, 22632.0, 5474.9, 868.02, 110.91, 66.939, 3.9564, 0.3734},
	}
}

func (a Atmosphere) layer(altitude float64) int {
	for i := 0; i < 7; i++ {
		if altitude < a.heightLayers[i+1] {
			return i
		}
	}
	return 7
}

// Conditions returns temperature, pressure, density, and speed of sound at
// the given geometric altitude. Altitudes above the top layer are clamped
// to it; negative altitudes extrapolate the lowest layer.
func (a Atmosphere) Conditions(altitude float64) Conditions {
	i := a.layer(altitude)
	hBase := a.heightLayers[i]
	tBase := a.baseTemperatures[i]
	pBase := a.basePressures[i]
	lapse := a.lapseRates[i]

	temperature := tBase + lapse*(altitude-hBase)

	var pressure float64
	if math.Abs(lapse) < 1e-10 {
		pressure = pBase * math.Exp(-(StandardGravity/DryAirGasConstant)*(altitude-hBase)/tBase)
	} else {
		pressure = pBase * math.Pow(temperature/tBase, -StandardGravity/(lapse*DryAirGasConstant))
	}

	density := pressure / (DryAirGasConstant * temperature)
	speedOfSound := math.Sqrt(SpecificHeatRatio * DryAirGasConstant * temperature)

	return Conditions{
		Temperature:  temperature,
		Pressure:     pressure,
		Density:      density,
		SpeedOfSound: speedOfSound,
	}
}

// ConditionsWithVariation returns Conditions at altitude with density
// scaled by the cosmetic density-variation envelope for the given
// percentage (-100..100). Temperature and pressure are unaffected.
func (a Atmosphere) ConditionsWithVariation(altitude, variationPercent float64) Conditions {
	c := a.Conditions(altitude)
	c.Density *= 1.0 + densityVariationCoefficient(altitude, variationPercent)
	return c
}

var densityVariationMinusX = [14]float64{
	21.6, 7.4, -1.3, -14.3, -15.9, -18.6, -32.1, -38.6, -50.0, -55.3, -65.0, -68.1, -76.7, -42.2,
}
var densityVariationMinusY = [14]float64{
	1010.0, 4300.0, 8030.0, 10220.0, 16360.0, 20300.0, 26220.0, 29950.0, 40250.0, 50110.0,
	59970.0, 70270.0, 80140.0, 90220.0,
}
var densityVariationPlusX = [14]float64{
	-12.8, -7.9, 1.5, 5.3, 26.7, 20.2, 14.3, 18.2, 33.6, 47.4, 59.5, 72.2, 58.7, 41.4,
}
var densityVariationPlusY = [14]float64{
	1230.0, 4300.0, 8030.0, 10000.0, 16360.0, 20300.0, 26220.0, 29950.0, 40250.0, 50110.0,
	59970.0, 70270.0, 80360.0, 90880.0,
}

func densityVariationCoefficient(altitude, inputPercent float64) float64 {
	if math.Abs(inputPercent) < 1e-10 {
		return 0.0
	}
	var percentWithAltitude float64
	if inputPercent < 0 {
		percentWithAltitude = clampedLinearInterpolate(altitude, densityVariationMinusY[:], densityVariationMinusX[:])
	} else {
		percentWithAltitude = clampedLinearInterpolate(altitude, densityVariationPlusY[:], densityVariationPlusX[:])
	}
	return percentWithAltitude / 100.0 * math.Abs(inputPercent) / 100.0
}

// clampedLinearInterpolate interpolates x as a function of y over the
// ascending table (yArray, xArray), clamping to the endpoints.
func clampedLinearInterpolate(y float64, yArray, xArray []float64) float64 {
	n := len(yArray)
	if y <= yArray[0] {
		return xArray[0]
	}
	if y >= yArray[n-1] {
		return xArray[n-1]
	}
	for i := 0; i < n-1; i++ {
		if y >= yArray[i] && y <= yArray[i+1] {
			t := (y - yArray[i]) / (yArray[i+1] - yArray[i])
			return xArray[i] + t*(xArray[i+1]-xArray[i])
		}
	}
	return xArray[n-1]
}
