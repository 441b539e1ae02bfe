//Package tcorr computes time-correlation functions of measurement series
//extracted with the correl package, through the FFT.
package tcorr

import (
	"fmt"
	"math/cmplx"

	correl "github.com/rmera/correl"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

func cmplxMulConj(dst, b []complex128) {
	if len(dst) != len(b) {
		panic(fmt.Sprintf("complex conjugate multiplication of slices: Both slices should have the same len %d, %d", len(dst), len(b)))
	}
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

func cmplxRealScale(dst []complex128, sc float64) []complex128 {
	for i, v := range dst {
		dst[i] = v * complex(sc, sc)
	}
	return dst
}

//CrossCorrMem returns the normalized cross-correlation function of c1
//and c2, which must have the same length. c1pad and c2pad are working
//buffers of twice that length; they are allocated if nil or of the
//wrong size, so the caller can reuse them across calls. If dst is given
//with zero length, the result is appended to it.
func CrossCorrMem(c1, c2 []float64, c1pad, c2pad []complex128, dst ...[]float64) []float64 {
	var ret []float64
	if len(dst) == 0 || len(dst[0]) > 0 { //if you give a slice, you can set the cap, but len must be 0
		ret = make([]float64, 0, 2*len(c1))
	} else {
		ret = dst[0]
	}
	c1mean := stat.Mean(c1, nil)
	c2mean := stat.Mean(c2, nil)
	c1std := stat.StdDev(c1, nil)
	c2std := stat.StdDev(c2, nil)
	if len(c1pad) != 2*len(c1) {
		c1pad = make([]complex128, 2*len(c1))
	}
	if len(c2pad) != 2*len(c2) {
		c2pad = make([]complex128, 2*len(c2))
	}
	for i, v := range c1 {
		c1pad[i] = complex(v-c1mean, 0)
		c2pad[i] = complex(c2[i]-c2mean, 0)
	}
	f := fourier.NewCmplxFFT(len(c1pad))
	f.Coefficients(c1pad, c1pad)
	f.Coefficients(c2pad, c2pad)
	cmplxMulConj(c1pad, c2pad)
	f.Sequence(c1pad, c1pad)
	cmplxRealScale(c1pad, 1.0/float64(len(c1pad))) //normalization of the FFT
	for _, v := range c1pad {
		ret = append(ret, real(v))
	}
	for i, v := range ret {
		ret[i] = v / (c1std * c2std) / float64(len(c1))
	}
	return ret
}

//CrossCorr returns the normalized cross-correlation function of c1 and
//c2, which must have the same length.
func CrossCorr(c1, c2 []float64) []float64 {
	return CrossCorrMem(c1, c2, nil, nil)
}

//AutoCorr returns the normalized autocorrelation function of c.
func AutoCorr(c []float64) []float64 {
	return CrossCorrMem(c, c, nil, nil)
}

//SeriesCorr returns the cross-correlation function between one scalar
//row of a and one of b, both of which must be bound results of the same
//Compute (or at least cover the same number of frames). With a == b and
//the same row twice it gives the autocorrelation of that row.
func SeriesCorr(a *correl.Result, unitA, rowA int, b *correl.Result, unitB, rowB int) ([]float64, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("tcorr: Given a nil Result: compute the collection first")
	}
	if a.Frames() != b.Frames() {
		return nil, fmt.Errorf("tcorr: Results cover %d and %d frames: they cannot be correlated", a.Frames(), b.Frames())
	}
	if a.Frames() == 0 {
		return nil, fmt.Errorf("tcorr: Results cover no frames")
	}
	return CrossCorr(a.Row(unitA, rowA), b.Row(unitB, rowB)), nil
}
