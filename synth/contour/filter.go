package contour

import "github.com/cwbudde/algo-synth/synth/core"

// ApplyFilter returns the bandpass amplitude coefficient for a partial
// at currFreq between highpass and lowpass cutoffs. In-band frequencies
// pass at unity; out-of-band frequencies roll off by dbPerOctave per
// octave of distance, capped at maxOctaves octaves of attenuation.
func ApplyFilter(currFreq, highpassF, lowpassF, dbPerOctave, maxOctaves float64) float64 {
	if currFreq >= highpassF && currFreq <= lowpassF {
		return 1
	}

	if dbPerOctave < 0 {
		dbPerOctave = -dbPerOctave
	}
	gain := core.DBToLinear(-dbPerOctave)

	var distance float64
	if currFreq > lowpassF {
		distance = mathLog2(currFreq / lowpassF)
	} else {
		distance = mathLog2(highpassF / currFreq)
	}

	if distance > maxOctaves {
		distance = maxOctaves
	}
	return powf(gain, distance)
}

// ApplyResonance boosts frequencies near resonanceF within a range of
// octaves, attenuating gradually outside it. maxBoostDB caps the gain
// at the center frequency. Invalid frequencies or distances yield 0.
func ApplyResonance(currFreq, resonanceF, octaveRange, maxBoostDB float64) float64 {
	if currFreq <= 0 || resonanceF <= 0 || octaveRange <= 0 {
		return 0
	}

	df := mathLog2(currFreq / resonanceF)
	if df < 0 {
		df = -df
	}
	maxGain := core.DBToLinear(maxBoostDB)

	if df <= octaveRange {
		boost := 1 + (1-df/octaveRange)*(maxGain-1)
		if boost > maxGain {
			return maxGain
		}
		return boost
	}

	atten := (octaveRange/df)*(maxGain-1) + 1
	if atten > 1 {
		return 1
	}
	return atten
}

// powf is gain^x via the package math backend.
func powf(base, x float64) float64 {
	return mathPower2(x * mathLog2(base))
}
