// Package drift runs the plate drift analysis: it fits distance against volcano age,
// checks the closed-form solution against the SVD reference, and derives the drift
// velocity with its uncertainty.
package drift

import (
	"fmt"

	"go.dedis.ch/onet/v3/log"
	"gonum.org/v1/gonum/mat"

	"github.com/ldsec/platedrift/leastsquares"
	"github.com/ldsec/platedrift/metrics"
	"github.com/ldsec/platedrift/uncertainty"
)

// Result keeps the fitted values next to the summary, for plotting and export.
type Result struct {
	Age       []float64
	Distance  []float64
	Predicted []float64
	Residuals []float64

	Fit        *leastsquares.Fit
	Reference  *leastsquares.Reference
	Covariance *mat.Dense
	SlopeCI    uncertainty.Interval

	Summary Summary
}

// Analyze fits distance = b + v*age and estimates the uncertainty of b and v.
// A nil sts uses the default settings.
func Analyze(age, distance []float64, sts *Settings) (*Result, error) {
	if sts == nil {
		sts = NewSettings()
	}
	if len(age) != len(distance) {
		return nil, fmt.Errorf("analyze: %d ages for %d distances: %w", len(age), len(distance), leastsquares.ErrDimensionMismatch)
	}
	z, err := sts.ZScore()
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	log.Lvl2("Fitting", len(age), "samples")
	x := leastsquares.DesignMatrix(age)
	fit, err := leastsquares.FitClosedForm(x, distance)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	ref, err := leastsquares.FitReference(x, distance)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	matches := leastsquares.Agree(fit.Coefficients, ref.Coefficients, sts.AgreementTol)
	if !matches {
		log.Warnf("closed-form %v and SVD %v coefficients differ by more than %g",
			fit.Coefficients.RawVector().Data, ref.Coefficients.RawVector().Data, sts.AgreementTol)
	}

	yHat, err := leastsquares.Predict(x, fit.Coefficients)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	predicted := yHat.RawVector().Data

	r, err := metrics.Residuals(distance, predicted)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	r2, err := metrics.R2(distance, predicted)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	rmse := metrics.RMSE(r)

	sigma2, err := uncertainty.Sigma2Hat(r, leastsquares.NumParams)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	cov := uncertainty.Covariance(sigma2, fit.GramInverse)
	se := uncertainty.StandardErrors(cov)

	slope := fit.Slope()
	ci := uncertainty.ConfidenceInterval(slope, se[1], z)
	ciCm := ci.Map(uncertainty.KmMyrToCmYr)

	desc, err := metrics.Describe(r)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	log.Lvlf2("b = %.4f km, v = %.4f km/Myr (%.4f cm/yr), CI [%.4f, %.4f] km/Myr",
		fit.Intercept(), slope, uncertainty.KmMyrToCmYr(slope), ci.Lower, ci.Upper)
	log.Lvlf2("rmse = %.4f km, r2 = %.4f, sigma2 = %.4f", rmse, r2, sigma2)
	log.Lvlf3("residuals: mean %.4f, sd %.4f, median %.4f", desc.Mean, desc.StdDev, desc.Median)

	return &Result{
		Age:        age,
		Distance:   distance,
		Predicted:  predicted,
		Residuals:  r,
		Fit:        fit,
		Reference:  ref,
		Covariance: cov,
		SlopeCI:    ci,
		Summary: Summary{
			BHatKm:        fit.Intercept(),
			VHatKmPerMyr:  slope,
			VHatCmPerYear: uncertainty.KmMyrToCmYr(slope),
			VCIKmPerMyr:   []float64{ci.Lower, ci.Upper},
			VCICmPerYear:  []float64{ciCm.Lower, ciCm.Upper},
			RMSEKm:        rmse,
			R2:            r2,
			Sigma2Hat:     sigma2,
			SEBKm:         se[0],
			SEVKmPerMyr:   se[1],
			LstsqMatches:  matches,
			CILevel:       sts.Level(),
			CIZ:           z,
			NSamples:      len(age),
			DatasetXXHash: Fingerprint(age, distance),
			Residuals:     desc,
		},
	}, nil
}
