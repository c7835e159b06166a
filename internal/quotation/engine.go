// Package quotation prices motor insurance quotations from a fixed rate table.
//
// The rates are indicative only: they produce an estimated premium for a lead
// and are replaced by underwriting after vehicle inspection.
package quotation

import (
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/models"
)

// TrackerPremium is the fixed annual premium for the GPS tracker add-on.
const TrackerPremium int64 = 5000

var (
	perMille = decimal.NewFromInt(1000)

	// base premium rate per 1000 of sum insured
	coverageRates = map[models.CoverageType]decimal.Decimal{
		models.CoverageComprehensive:            decimal.NewFromInt(25),
		models.CoverageThirdPartyTheftTotalLoss: decimal.NewFromInt(18),
		models.CoverageThirdPartyTheft:          decimal.NewFromInt(12),
	}

	// deductible as a fraction of sum insured
	deductibleRates = map[models.CoverageType]decimal.Decimal{
		models.CoverageComprehensive:            decimal.RequireFromString("0.015"),
		models.CoverageThirdPartyTheftTotalLoss: decimal.RequireFromString("0.02"),
		models.CoverageThirdPartyTheft:          decimal.RequireFromString("0.025"),
	}

	ageFactorOver10 = decimal.RequireFromString("1.15")
	ageFactorOver5  = decimal.RequireFromString("1.08")

	paBaseRate      = decimal.RequireFromString("0.001")
	paFactorOver60  = decimal.RequireFromString("1.5")
	paFactorOver50  = decimal.RequireFromString("1.3")
	paFactorUnder25 = decimal.RequireFromString("1.2")
	paFactorMale    = decimal.RequireFromString("1.1")
)

// Engine calculates quotations. The zero value is not usable; use NewEngine.
type Engine struct {
	now func() time.Time
	log *log.Entry
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to derive the vehicle age.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger used to report rate fallbacks.
func WithLogger(entry *log.Entry) Option {
	return func(e *Engine) { e.log = entry }
}

// NewEngine creates a quotation engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
		log: log.WithField("component", "quotation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Calculate prices the input with the default engine.
func Calculate(in models.QuotationInput) models.QuotationResult {
	return defaultEngine.Calculate(in)
}

// Calculate maps an input to a premium breakdown. It never fails: missing or
// invalid optional data prices that component at zero.
func (e *Engine) Calculate(in models.QuotationInput) models.QuotationResult {
	fallback := !models.IsValidCoverageType(in.CoverageType)
	if fallback {
		// Unrecognised tiers are priced as Comprehensive until product decides otherwise.
		e.log.WithField("coverage_type", string(in.CoverageType)).
			Warn("Unrecognized coverage type, falling back to Comprehensive rates")
	}

	base := e.basePremium(in.SumInsured, in.CoverageType, in.ModelYear)
	deductible := Deductible(in.SumInsured, in.CoverageType)

	var pa int64
	if in.PersonalAccident != nil && in.PersonalAccident.Selected {
		pa = PersonalAccidentPremium(in.PersonalAccident.SumInsured, in.PersonalAccident.Age, in.PersonalAccident.Gender)
	}

	var tracker int64
	if in.Tracker != nil && in.Tracker.Selected {
		tracker = TrackerPremium
	}

	return models.QuotationResult{
		BasePremium:             base,
		PersonalAccidentPremium: pa,
		TrackerPremium:          tracker,
		TotalPremium:            base + pa + tracker,
		Deductible:              deductible,
		CoverageType:            in.CoverageType,
		RateFallback:            fallback,
	}
}

func (e *Engine) basePremium(sumInsured int64, coverage models.CoverageType, modelYear int) int64 {
	if sumInsured <= 0 {
		return 0
	}
	vehicleAge := e.now().Year() - modelYear
	premium := decimal.NewFromInt(sumInsured).
		Div(perMille).
		Mul(coverageRate(coverage)).
		Mul(AgeFactor(vehicleAge))
	return roundToInt(premium)
}

// AgeFactor loads the base premium for older vehicles.
func AgeFactor(vehicleAge int) decimal.Decimal {
	switch {
	case vehicleAge > 10:
		return ageFactorOver10
	case vehicleAge > 5:
		return ageFactorOver5
	default:
		return decimal.NewFromInt(1)
	}
}

// Deductible returns the policyholder's share of a claim for the tier.
func Deductible(sumInsured int64, coverage models.CoverageType) int64 {
	if sumInsured <= 0 {
		return 0
	}
	rate, ok := deductibleRates[coverage]
	if !ok {
		rate = deductibleRates[models.CoverageComprehensive]
	}
	return roundToInt(decimal.NewFromInt(sumInsured).Mul(rate))
}

// PersonalAccidentPremium prices the personal accident add-on. Age bands are
// exclusive and checked oldest first; the male loading matches "Male" exactly.
func PersonalAccidentPremium(sumInsured int64, age int, gender models.Gender) int64 {
	if sumInsured <= 0 || age <= 0 {
		return 0
	}

	rate := paBaseRate
	switch {
	case age > 60:
		rate = rate.Mul(paFactorOver60)
	case age > 50:
		rate = rate.Mul(paFactorOver50)
	case age < 25:
		rate = rate.Mul(paFactorUnder25)
	}
	if gender == models.GenderMale {
		rate = rate.Mul(paFactorMale)
	}

	return roundToInt(decimal.NewFromInt(sumInsured).Mul(rate))
}

func coverageRate(coverage models.CoverageType) decimal.Decimal {
	if rate, ok := coverageRates[coverage]; ok {
		return rate
	}
	return coverageRates[models.CoverageComprehensive]
}

// roundToInt rounds half away from zero.
func roundToInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
