package models

// CoverageType represents a policy scope offered on the quotation form.
type CoverageType string

const (
	CoverageComprehensive            CoverageType = "Comprehensive"
	CoverageThirdPartyTheftTotalLoss CoverageType = "3T"
	CoverageThirdPartyTheft          CoverageType = "2T"
)

// IsValidCoverageType checks if a coverage type is one of the three offered tiers
func IsValidCoverageType(c CoverageType) bool {
	switch c {
	case CoverageComprehensive, CoverageThirdPartyTheftTotalLoss, CoverageThirdPartyTheft:
		return true
	default:
		return false
	}
}

// Gender is the insured person's gender for personal accident cover.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// CoverageInfo describes what a coverage tier includes and excludes.
type CoverageInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Covered     []string `json:"covered"`
	Excluded    []string `json:"excluded"`
}

// AddOnInfo describes an optional add-on.
type AddOnInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
}

// Coverages holds the tooltip content for each coverage tier.
var Coverages = map[CoverageType]CoverageInfo{
	CoverageComprehensive: {
		Name:        "Comprehensive Cover",
		Description: "Full protection for your vehicle and third-party liability",
		Covered: []string{
			"Own damage to your vehicle (accidents, theft, fire, natural disasters)",
			"Third-party property damage",
			"Third-party bodily injury",
			"Total loss coverage",
			"Theft protection",
			"Natural calamities (flood, earthquake, etc.)",
		},
		Excluded: []string{
			"Wear and tear",
			"Mechanical breakdown",
			"Damage due to driving under influence",
			"Racing or speed contests",
			"Unauthorized driver",
			"War, nuclear risks",
		},
	},
	CoverageThirdPartyTheftTotalLoss: {
		Name:        "Third Party + Theft + Total Loss (3T)",
		Description: "Coverage for third-party liability, theft, and total loss",
		Covered: []string{
			"Third-party property damage",
			"Third-party bodily injury",
			"Theft of vehicle",
			"Total loss (complete destruction)",
		},
		Excluded: []string{
			"Own damage repairs (partial damage)",
			"Wear and tear",
			"Mechanical breakdown",
			"Natural calamities (unless total loss)",
			"Unauthorized driver",
		},
	},
	CoverageThirdPartyTheft: {
		Name:        "Third Party + Theft (2T)",
		Description: "Basic coverage for third-party liability and theft",
		Covered: []string{
			"Third-party property damage",
			"Third-party bodily injury",
			"Theft of vehicle",
		},
		Excluded: []string{
			"Own damage to your vehicle",
			"Total loss (unless theft)",
			"Natural calamities",
			"Fire damage",
			"Wear and tear",
		},
	},
}

// AddOnCatalog holds the tooltip content for the optional add-ons.
var AddOnCatalog = map[string]AddOnInfo{
	"Personal Accident": {
		Name:        "Personal Accident Cover",
		Description: "Financial protection in case of accidental death or disability",
		Benefits: []string{
			"Coverage for driver and passengers",
			"Death benefit up to sum insured",
			"Permanent total disability coverage",
			"Medical expenses reimbursement",
			"24/7 coverage anywhere in Pakistan",
		},
	},
	"Tracker": {
		Name:        "GPS Tracker",
		Description: "Vehicle tracking device for security and premium discounts",
		Benefits: []string{
			"Real-time vehicle location tracking",
			"Theft recovery assistance",
			"Premium discount on insurance",
			"Mobile app access",
			"24/7 monitoring support",
		},
	},
}
