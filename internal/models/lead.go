package models

// LeadStatus is the lifecycle status of a lead.
type LeadStatus string

const (
	LeadStatusNew LeadStatus = "New – Inspection Required"

	// DefaultAssignee is the team every new lead is routed to.
	DefaultAssignee = "Motor Team"
)

// CustomerDetails represents the person requesting the quotation.
type CustomerDetails struct {
	FullName string `json:"fullName"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email,omitempty"`
}

// PersonalAccidentAddOn is the personal accident cover recorded on a lead.
type PersonalAccidentAddOn struct {
	SumInsured int64  `json:"sumInsured"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
}

// AddOns lists the optional covers selected for a lead.
type AddOns struct {
	PersonalAccident *PersonalAccidentAddOn `json:"personalAccident,omitempty"`
	Tracker          bool                   `json:"tracker,omitempty"`
}

// Selected reports whether any add-on was chosen.
func (a AddOns) Selected() bool {
	return a.PersonalAccident != nil || a.Tracker
}

// LeadDraft holds everything a lead carries before the builder stamps its lifecycle fields.
type LeadDraft struct {
	ReferenceNumber string          `json:"referenceNumber"`
	VehicleDetails  VehicleDetails  `json:"vehicleDetails"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	CoverageType    CoverageType    `json:"coverageType"`
	AddOns          AddOns          `json:"addOns"`
	Quotation       QuotationResult `json:"quotation"`
}

// LeadRecord is a single quotation submission. It is created once and never mutated.
type LeadRecord struct {
	ReferenceNumber string          `json:"referenceNumber"`
	VehicleDetails  VehicleDetails  `json:"vehicleDetails"`
	CustomerDetails CustomerDetails `json:"customerDetails"`
	CoverageType    CoverageType    `json:"coverageType"`
	AddOns          AddOns          `json:"addOns"`
	Quotation       QuotationResult `json:"quotation"`
	Status          LeadStatus      `json:"status"`
	AssignedTo      string          `json:"assignedTo"`
	Timestamp       string          `json:"timestamp"` // ISO-8601, UTC
}

// NotificationResults reports the outcome of each notification sent for a lead.
type NotificationResults struct {
	Team     bool `json:"team"`
	Customer bool `json:"customer"`
	WhatsApp bool `json:"whatsapp"`
}
