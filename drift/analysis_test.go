package drift_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/drift"
	"github.com/ldsec/platedrift/leastsquares"
	"github.com/ldsec/platedrift/uncertainty"
)

func TestAnalyzeExactLine(t *testing.T) {
	log.SetDebugVisible(2)

	age := []float64{0, 10, 20, 30, 40}
	dist := make([]float64, len(age))
	for i, a := range age {
		dist[i] = 5 + 2*a
	}

	res, err := drift.Analyze(age, dist, nil)
	require.NoError(t, err)

	s := res.Summary
	require.InDelta(t, 5.0, s.BHatKm, 1e-10)
	require.InDelta(t, 2.0, s.VHatKmPerMyr, 1e-12)
	require.InDelta(t, 0.2, s.VHatCmPerYear, 1e-12)
	require.InDelta(t, 0.0, s.RMSEKm, 1e-10)
	require.InDelta(t, 1.0, s.R2, 1e-12)
	require.InDelta(t, 0.0, s.Sigma2Hat, 1e-18)
	require.True(t, s.LstsqMatches)
	require.Equal(t, 5, s.NSamples)
	require.Equal(t, uncertainty.Z95, s.CIZ)
	require.Equal(t, 0.95, s.CILevel)
	require.Len(t, s.DatasetXXHash, 16)
	require.Len(t, res.Predicted, 5)
	require.Len(t, res.Residuals, 5)
}

func TestAnalyzeNoisy(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	n := 50
	age := make([]float64, n)
	dist := make([]float64, n)
	for i := range age {
		age[i] = 50 * rng.Float64()
		dist[i] = 10 + 80*age[i] + 25*rng.NormFloat64()
	}

	res, err := drift.Analyze(age, dist, drift.NewSettings())
	require.NoError(t, err)

	s := res.Summary
	require.True(t, s.LstsqMatches)
	require.InDelta(t, 80, s.VHatKmPerMyr, 5)
	require.Greater(t, s.R2, 0.99)
	require.Greater(t, s.SEVKmPerMyr, 0.0)
	require.Greater(t, s.SEBKm, 0.0)

	// interval is centred on the slope and converts with the same factor
	require.InDelta(t, s.VHatKmPerMyr, (s.VCIKmPerMyr[0]+s.VCIKmPerMyr[1])/2, 1e-9)
	require.InDelta(t, 2*uncertainty.Z95*s.SEVKmPerMyr, s.VCIKmPerMyr[1]-s.VCIKmPerMyr[0], 1e-9)
	require.InDelta(t, s.VCIKmPerMyr[0]*0.1, s.VCICmPerYear[0], 1e-12)
	require.InDelta(t, s.VCIKmPerMyr[1]*0.1, s.VCICmPerYear[1], 1e-12)

	// residuals of an OLS fit with intercept sum to zero
	require.InDelta(t, 0.0, s.Residuals.Mean, 1e-9)
	require.Equal(t, n, s.Residuals.N)

	var ss float64
	for _, r := range res.Residuals {
		ss += r * r
	}
	require.InDelta(t, ss, res.Reference.ResidualSS, 1e-6)
	require.InDelta(t, ss/float64(n-2), s.Sigma2Hat, 1e-9)
}

func TestAnalyzeCustomZ(t *testing.T) {
	age := []float64{0, 1, 2, 3, 4, 5}
	dist := []float64{0.1, 1.9, 4.2, 5.8, 8.1, 9.9}

	sts := drift.NewSettings()
	sts.Z = 1
	res, err := drift.Analyze(age, dist, sts)
	require.NoError(t, err)
	s := res.Summary
	require.Equal(t, 1.0, s.CIZ)
	require.InDelta(t, 0.6827, s.CILevel, 1e-4)
	require.InDelta(t, 2*s.SEVKmPerMyr, s.VCIKmPerMyr[1]-s.VCIKmPerMyr[0], 1e-12)
}

func TestAnalyzeSingular(t *testing.T) {
	_, err := drift.Analyze([]float64{3, 3, 3, 3}, []float64{1, 2, 3, 4}, nil)
	require.ErrorIs(t, err, leastsquares.ErrLinearAlgebra)

	_, err = drift.Analyze(nil, nil, nil)
	require.ErrorIs(t, err, leastsquares.ErrLinearAlgebra)
}

func TestAnalyzeTooFewSamples(t *testing.T) {
	_, err := drift.Analyze([]float64{1, 2}, []float64{10, 30}, nil)
	require.ErrorIs(t, err, uncertainty.ErrDegreesOfFreedom)
}

func TestAnalyzeLengthMismatch(t *testing.T) {
	_, err := drift.Analyze([]float64{1, 2, 3}, []float64{10, 30}, nil)
	require.ErrorIs(t, err, leastsquares.ErrDimensionMismatch)
}

func TestFingerprint(t *testing.T) {
	a := drift.Fingerprint([]float64{1, 2, 3}, []float64{4, 5, 6})
	require.Equal(t, a, drift.Fingerprint([]float64{1, 2, 3}, []float64{4, 5, 6}))
	require.NotEqual(t, a, drift.Fingerprint([]float64{1, 2, 3}, []float64{4, 5, 7}))
	require.NotEqual(t, a, drift.Fingerprint([]float64{1, 2}, []float64{3, 4, 5, 6}))
}
