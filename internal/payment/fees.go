package payment

import "math"

// PlatformFeePercent is the fixed platform commission on every charge.
const PlatformFeePercent = 30

// SplitFee divides a gross kobo amount between the platform and the doctor.
// The platform cut rounds half-up on the kobo; the doctor gets the remainder,
// so platformCut+doctorCut == gross for every positive gross.
func SplitFee(grossKobo int64) (platformCutKobo, doctorCutKobo int64) {
	platformCutKobo = (grossKobo*PlatformFeePercent + 50) / 100
	doctorCutKobo = grossKobo - platformCutKobo
	return platformCutKobo, doctorCutKobo
}

// NairaToKobo converts a major-unit naira amount to kobo. Exact for amounts
// with at most two decimal places, which is all the bank rails can carry.
func NairaToKobo(naira float64) int64 {
	return int64(math.Round(naira * 100))
}

// KoboToNaira converts kobo back to naira for presentation.
func KoboToNaira(kobo int64) float64 {
	return float64(kobo) / 100
}
