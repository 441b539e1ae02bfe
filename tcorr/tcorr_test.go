package tcorr

import (
	"math"
	"testing"

	correl "github.com/rmera/correl"
	chem "github.com/rmera/gochem"
	"gonum.org/v1/gonum/mat"
)

func TestAutoCorr(Te *testing.T) {
	const n = 64
	c := make([]float64, n)
	for i := range c {
		c[i] = math.Sin(2 * math.Pi * float64(i) / 16)
	}
	ret := AutoCorr(c)
	if len(ret) != 2*n {
		Te.Fatalf("Wrong correlation length: %d", len(ret))
	}
	//with gonum's sample standard deviation, the zero-lag value of the
	//normalized autocorrelation is (n-1)/n.
	want := float64(n-1) / float64(n)
	if math.Abs(ret[0]-want) > 1e-8 {
		Te.Errorf("Wrong zero-lag autocorrelation: %f, %f expected", ret[0], want)
	}
	//the function of a periodic series is itself periodic, so the first
	//maximum after zero lag sits one period in.
	if math.Abs(ret[16]-ret[0]*float64(n-16)/float64(n)) > 0.1 {
		Te.Errorf("Autocorrelation doesn't follow the period of the series: %f vs %f", ret[16], ret[0])
	}
}

func TestCrossCorrMemReuse(Te *testing.T) {
	c1 := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	c2 := []float64{8, 7, 6, 5, 4, 3, 2, 1}
	pad1 := make([]complex128, 2*len(c1))
	pad2 := make([]complex128, 2*len(c2))
	first := CrossCorrMem(c1, c2, pad1, pad2)
	second := CrossCorrMem(c1, c2, pad1, pad2)
	for i, v := range first {
		if math.Abs(v-second[i]) > 1e-12 {
			Te.Fatalf("Reusing the working buffers changed the result at %d: %f vs %f", i, v, second[i])
		}
	}
}

//rampEngine fills every row with a ramp over frames, so the computed
//series correlate perfectly.
type rampEngine struct {
	frames int
}

func (E *rampEngine) Correl(q *correl.Query, start, stop, skip int) (*mat.Dense, error) {
	if q.DataSize == 0 {
		return nil, nil
	}
	data := mat.NewDense(q.DataSize, E.frames, nil)
	for i := 0; i < q.DataSize; i++ {
		for j := 0; j < E.frames; j++ {
			data.Set(i, j, float64(j%8))
		}
	}
	return data, nil
}

func TestSeriesCorr(Te *testing.T) {
	atoms := []*chem.Atom{{Name: "C", ID: 1, Mass: 12.01}, {Name: "C", ID: 2, Mass: 12.01}}
	bond, err := correl.NewBond(atoms)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := SeriesCorr(bond.Data(), 0, 0, bond.Data(), 0, 0); err == nil {
		Te.Error("Correlating an uncomputed series did not fail")
	}
	coll := correl.New()
	coll.Add(bond)
	if err := coll.Compute(&rampEngine{frames: 32}, 0, -1, 1); err != nil {
		Te.Fatal(err)
	}
	ret, err := SeriesCorr(bond.Data(), 0, 0, bond.Data(), 0, 0)
	if err != nil {
		Te.Fatal(err)
	}
	if len(ret) != 64 {
		Te.Fatalf("Wrong correlation length: %d", len(ret))
	}
	want := float64(32-1) / float64(32)
	if math.Abs(ret[0]-want) > 1e-8 {
		Te.Errorf("Wrong zero-lag value: %f, %f expected", ret[0], want)
	}
}
