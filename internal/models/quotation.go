package models

// PersonalAccidentInput is the personal accident add-on as priced by the quotation engine.
type PersonalAccidentInput struct {
	Selected   bool   `json:"selected"`
	SumInsured int64  `json:"sumInsured,omitempty"`
	Age        int    `json:"age,omitempty"`
	Gender     Gender `json:"gender,omitempty"`
}

// TrackerInput is the GPS tracker add-on selection.
type TrackerInput struct {
	Selected bool `json:"selected"`
}

// QuotationInput is built fresh for every pricing calculation.
type QuotationInput struct {
	SumInsured       int64                  `json:"sumInsured"` // PKR
	CoverageType     CoverageType           `json:"coverageType"`
	ModelYear        int                    `json:"modelYear"`
	PersonalAccident *PersonalAccidentInput `json:"personalAccident,omitempty"`
	Tracker          *TrackerInput          `json:"tracker,omitempty"`
}

// QuotationResult is the premium breakdown for a quotation input.
// TotalPremium always equals BasePremium + PersonalAccidentPremium + TrackerPremium.
type QuotationResult struct {
	BasePremium             int64        `json:"basePremium" bson:"base_premium"`
	PersonalAccidentPremium int64        `json:"personalAccidentPremium" bson:"personal_accident_premium"`
	TrackerPremium          int64        `json:"trackerPremium" bson:"tracker_premium"`
	TotalPremium            int64        `json:"totalPremium" bson:"total_premium"`
	Deductible              int64        `json:"deductible" bson:"deductible"`
	CoverageType            CoverageType `json:"coverageType" bson:"coverage_type"`
	// RateFallback is set when CoverageType was not recognised and Comprehensive rates were used.
	RateFallback bool `json:"rateFallback,omitempty" bson:"rate_fallback,omitempty"`
}
