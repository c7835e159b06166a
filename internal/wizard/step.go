package wizard

import "fmt"

// Step is a stage of the quotation wizard.
type Step int

const (
	StepVehicleDetails Step = iota + 1
	StepCustomerInfo
	StepCoverageSelection
	StepAddOns
	StepQuotationSummary
	StepConfirmation
)

var stepNames = map[Step]string{
	StepVehicleDetails:    "VehicleDetails",
	StepCustomerInfo:      "CustomerInfo",
	StepCoverageSelection: "CoverageSelection",
	StepAddOns:            "AddOns",
	StepQuotationSummary:  "QuotationSummary",
	StepConfirmation:      "Confirmation",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// Valid reports whether s is one of the six wizard steps.
func (s Step) Valid() bool {
	return s >= StepVehicleDetails && s <= StepConfirmation
}
