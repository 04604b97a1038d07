// Package analysis extracts frequency content from recorded velocity
// traces, mainly to confirm that a prescribed gait oscillates at the
// frequency its parameters ask for.
package analysis

import (
	"math"
	"math/cmplx"
)

// FFT computes the discrete Fourier transform with a radix-2
// decimation-in-time recursion. The input length must be a power of two;
// callers with arbitrary trace lengths should go through NewSpectrum,
// which truncates for them.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// Spectrum is the one-sided power spectrum of a uniformly sampled signal.
type Spectrum struct {
	Frequencies []float64
	Power       []float64
}

// NewSpectrum builds the spectrum of a velocity trace. The times must be
// uniformly spaced; the sample rate is taken from the first interval. The
// trace is truncated to the largest power-of-two prefix and has its mean
// removed so the DC bin does not swamp the gait frequency.
func NewSpectrum(times, values []float64) *Spectrum {
	n := len(values)
	if len(times) < n {
		n = len(times)
	}
	if n < 2 {
		return &Spectrum{Frequencies: []float64{}, Power: []float64{}}
	}

	pow2 := 1
	for pow2*2 <= n {
		pow2 *= 2
	}

	dt := times[1] - times[0]
	if dt <= 0 {
		return &Spectrum{Frequencies: []float64{}, Power: []float64{}}
	}

	mean := 0.0
	for _, v := range values[:pow2] {
		mean += v
	}
	mean /= float64(pow2)

	signal := make([]float64, pow2)
	for i := range signal {
		signal[i] = values[i] - mean
	}

	fft := FFT(signal)
	half := pow2 / 2

	s := &Spectrum{
		Frequencies: make([]float64, half),
		Power:       make([]float64, half),
	}
	for i := 0; i < half; i++ {
		s.Frequencies[i] = float64(i) / (dt * float64(pow2))
		s.Power[i] = cmplx.Abs(fft[i])
	}
	return s
}

// DominantFrequency returns the frequency of the strongest non-DC bin,
// or zero for an empty spectrum.
func (s *Spectrum) DominantFrequency() float64 {
	best := 0
	for i := 1; i < len(s.Power); i++ {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	if best == 0 {
		return 0
	}
	return s.Frequencies[best]
}
