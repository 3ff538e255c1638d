// Package coords implements the WGS84 coordinate transforms between LLH,
// ECEF, ECI, NED, and BODY frames used by the flight dynamics engine.
package coords

import (
	"math"

	"github.com/istellartech/OpenTsiolkovsky/earth"
	"github.com/istellartech/OpenTsiolkovsky/linalg"
)

// LLH is a geodetic position: latitude (deg), longitude (deg), ellipsoidal
// height (m).
type LLH struct {
	LatDeg float64
	LonDeg float64
	Alt    float64
}

// DCMEciToEcef returns the ECI->ECEF DCM at time t (s), a rotation by
// ω⊕·t about Z.
func DCMEciToEcef(t float64) linalg.Matrix3 {
	theta := earth.RotationRate * t
	return linalg.RotZ(theta)
}

// PosEciToEcef rotates an ECI position into ECEF at time t.
func PosEciToEcef(posECI linalg.Vector3, t float64) linalg.Vector3 {
	return DCMEciToEcef(t).MulVec(posECI)
}

// PosEcefToLLH converts an ECEF position to LLH using the Bowring closed
// form.
func PosEcefToLLH(posECEF linalg.Vector3) LLH {
	x, y, z := posECEF.X, posECEF.Y, posECEF.Z
	a := earth.SemiMajorAxis
	b := earth.PolarRadius()
	e2 := earth.EccentricitySquared
	ed2 := e2 * a * a / (b * b)

	p := math.Sqrt(x*x + y*y)
	theta := math.Atan2(z*a, p*b)

	latRad := math.Atan2(z+ed2*b*cube(math.Sin(theta)), p-e2*a*cube(math.Cos(theta)))
	lonRad := math.Atan2(y, x)

	n := a / math.Sqrt(1-e2*math.Sin(latRad)*math.Sin(latRad))
	height := p/math.Cos(latRad) - n

	return LLH{
		LatDeg: linalg.RadToDeg(latRad),
		LonDeg: linalg.RadToDeg(lonRad),
		Alt:    height,
	}
}

func cube(x float64) float64 { return x * x * x }

// PosLLHToEcef converts LLH to ECEF position.
func PosLLHToEcef(llh LLH) linalg.Vector3 {
	latRad := linalg.DegToRad(llh.LatDeg)
	lonRad := linalg.DegToRad(llh.LonDeg)
	a := earth.SemiMajorAxis
	e2 := earth.EccentricitySquared

	n := a / math.Sqrt(1-e2*math.Sin(latRad)*math.Sin(latRad))

	return linalg.NewVector3(
		(n+llh.Alt)*math.Cos(latRad)*math.Cos(lonRad),
		(n+llh.Alt)*math.Cos(latRad)*math.Sin(lonRad),
		(n*(1-e2)+llh.Alt)*math.Sin(latRad),
	)
}

// DCMEcefToNed returns the ECEF->NED DCM at the reference LLH position.
func DCMEcefToNed(ref LLH) linalg.Matrix3 {
	lat := linalg.DegToRad(ref.LatDeg)
	lon := linalg.DegToRad(ref.LonDeg)
	sLat, cLat := math.Sincos(lat)
	sLon, cLon := math.Sincos(lon)

	return linalg.NewMatrix3(
		-sLat*cLon, -sLat*sLon, cLat,
		-sLon, cLon, 0,
		-cLat*cLon, -cLat*sLon, -sLat,
	)
}

// DCMEciToNed returns the ECI->NED DCM at the reference LLH position and
// time t.
func DCMEciToNed(ref LLH, t float64) linalg.Matrix3 {
	return DCMEcefToNed(ref).Mul(DCMEciToEcef(t))
}

// VelEciToEcefNedFrame converts an ECI velocity to Earth-relative NED
// velocity, subtracting the Earth-rotation term ω⊕×r before rotating into
// NED with the supplied ECI->NED DCM.
func VelEciToEcefNedFrame(posECI, velECI linalg.Vector3, dcmEciToNed linalg.Matrix3) linalg.Vector3 {
	omegaCrossR := linalg.NewVector3(
		-earth.RotationRate*posECI.Y,
		earth.RotationRate*posECI.X,
		0,
	)
	return dcmEciToNed.MulVec(velECI.Sub(omegaCrossR))
}

// DCMNedToBody returns the NED->BODY DCM for the given azimuth/elevation
// (and optional roll, default 0), all in radians, via a 3-2-1 Euler
// rotation.
func DCMNedToBody(azimuthRad, elevationRad float64, rollRad ...float64) linalg.Matrix3 {
	roll := 0.0
	if len(rollRad) > 0 {
		roll = rollRad[0]
	}
	sa, ca := math.Sincos(azimuthRad)
	se, ce := math.Sincos(elevationRad)
	sr, cr := math.Sincos(roll)

	return linalg.NewMatrix3(
		ca*ce, sa*ce, -se,
		ca*se*sr-sa*cr, sa*se*sr+ca*cr, ce*sr,
		ca*se*cr+sa*sr, sa*se*cr-ca*sr, ce*cr,
	)
}

// VelWindNedFrame returns the NED wind velocity vector for a wind of the
// given speed (m/s) blowing FROM the given direction (deg, meteorological
// convention, 0 = from North).
func VelWindNedFrame(speed, directionDeg float64) linalg.Vector3 {
	dirRad := linalg.DegToRad(directionDeg)
	s, c := math.Sincos(dirRad)
	return linalg.NewVector3(-speed*c, -speed*s, 0)
}

// VelAirBodyFrame rotates the relative-wind NED velocity into the body
// frame.
func VelAirBodyFrame(dcmNedToBody linalg.Matrix3, velEcefNed, velWindNed linalg.Vector3) linalg.Vector3 {
	return dcmNedToBody.MulVec(velEcefNed.Sub(velWindNed))
}

// AngleOfAttack resolves (alpha, beta, gamma) in radians from the
// air-relative body-frame velocity. Returns zero when the velocity is too
// small or too nearly perpendicular to body +X to define a stable angle.
func AngleOfAttack(velAirBody linalg.Vector3) (alpha, beta, gamma float64) {
	if velAirBody.Norm() < 0.01 || math.Abs(velAirBody.X) < 0.001 {
		return 0, 0, 0
	}
	alpha = math.Atan(velAirBody.Z / velAirBody.X)
	beta = math.Atan(velAirBody.Y / velAirBody.X)
	return alpha, beta, 0
}

// PosEciInit returns the ECI position at mission time t=0 for a launch
// point given in LLH (ECI and ECEF coincide at t=0).
func PosEciInit(llh LLH) linalg.Vector3 {
	return PosLLHToEcef(llh)
}

// VelEciInit returns the ECI velocity at mission time t=0 for a launch NED
// velocity at the given LLH position, including the Earth-rotation term.
func VelEciInit(velNED linalg.Vector3, llh LLH) linalg.Vector3 {
	dcmNedToEcef := DCMEcefToNed(llh).Transpose()
	posECEF := PosLLHToEcef(llh)
	velECEF := dcmNedToEcef.MulVec(velNED)

	omegaCrossR := linalg.NewVector3(
		-earth.RotationRate*posECEF.Y,
		earth.RotationRate*posECEF.X,
		0,
	)
	return velECEF.Add(omegaCrossR)
}

// DistanceSurface returns the great-circle surface distance (m) between
// two LLH points, computed as a·acos of the ECEF chord angle.
func DistanceSurface(a, b LLH) float64 {
	pa := PosLLHToEcef(a)
	pb := PosLLHToEcef(b)
	na, nb := pa.Norm(), pb.Norm()
	if na <= 0 || nb <= 0 {
		return 0
	}
	cosTheta := pa.Dot(pb) / (na * nb)
	if cosTheta > 1 {
		cosTheta = 1
	} else if cosTheta < -1 {
		cosTheta = -1
	}
	return earth.SemiMajorAxis * math.Acos(cosTheta)
}
