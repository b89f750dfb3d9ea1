package nscp

import "math"

// NSCP 2015 Material Constants

const (
	// Modulus of elasticity for steel (Section 420.2.2)
	Es = 200000.0 // MPa

	// Concrete modulus coefficient for normalweight concrete (Section 419.2.2.1)
	EcCoefficient = 4700.0

	// Modulus of rupture coefficient (Section 419.2.3.1)
	FrCoefficient = 0.62
)

// Ec calculates the modulus of elasticity of normalweight concrete (MPa)
// NSCP 2015 Section 419.2.2.1: Ec = 4700√f'c
func Ec(fc float64) float64 {
	if fc <= 0 {
		return 0
	}
	return EcCoefficient * math.Sqrt(fc)
}

// ModulusOfRupture calculates fr = 0.62λ√f'c (MPa)
func ModulusOfRupture(fc, lambda float64) float64 {
	if fc <= 0 {
		return 0
	}
	return FrCoefficient * lambda * math.Sqrt(fc)
}

// CrackingMoment calculates Mcr = fr·Ig/yt (kN-m) with Ig in mm⁴ and yt in mm
// NSCP 2015 Section 424.2.3.5
func CrackingMoment(fc, ig, yt float64) float64 {
	if yt <= 0 {
		return 0
	}
	return ModulusOfRupture(fc, 1.0) * ig / yt / 1e6
}

// ToGPa converts a modulus in MPa to the GPa used for beam input
func ToGPa(mpa float64) float64 {
	return mpa / 1000
}
