package wizard

import (
	"strings"
	"time"

	"github.com/ukydev/motor-quotation/internal/models"
)

// DefaultVehicleType is the only vehicle type currently quoted.
const DefaultVehicleType = "Car"

// Form is everything the customer has entered so far. Fields belonging to
// later steps may be empty.
type Form struct {
	VehicleType      string                       `json:"vehicleType"`
	Make             string                       `json:"make"`
	Model            string                       `json:"model"`
	ModelYear        int                          `json:"modelYear"`
	City             string                       `json:"city"`
	SumInsured       int64                        `json:"sumInsured"`
	FullName         string                       `json:"fullName"`
	Mobile           string                       `json:"mobile"`
	Email            string                       `json:"email"`
	CoverageType     models.CoverageType          `json:"coverageType"`
	PersonalAccident models.PersonalAccidentInput `json:"personalAccident"`
	Tracker          models.TrackerInput          `json:"tracker"`
}

func newForm(now time.Time) Form {
	return Form{
		VehicleType: DefaultVehicleType,
		ModelYear:   now.Year(),
	}
}

func (f *Form) normalize() {
	f.VehicleType = strings.TrimSpace(f.VehicleType)
	if f.VehicleType == "" {
		f.VehicleType = DefaultVehicleType
	}
	f.Make = strings.TrimSpace(f.Make)
	f.Model = strings.TrimSpace(f.Model)
	f.City = strings.TrimSpace(f.City)
	f.FullName = strings.TrimSpace(f.FullName)
	f.Mobile = strings.TrimSpace(f.Mobile)
	f.Email = strings.TrimSpace(f.Email)
	f.CoverageType = models.CoverageType(strings.TrimSpace(string(f.CoverageType)))
}

// missingFields returns the JSON names of the fields that keep step from
// being complete, in form order.
func (f Form) missingFields(step Step, now time.Time) []string {
	var missing []string
	require := func(ok bool, field string) {
		if !ok {
			missing = append(missing, field)
		}
	}

	switch step {
	case StepVehicleDetails:
		require(f.Make != "", "make")
		require(f.Model != "", "model")
		require(f.ModelYear >= 1 && f.ModelYear <= now.Year(), "modelYear")
		require(f.City != "", "city")
		require(f.SumInsured > 0, "sumInsured")
	case StepCustomerInfo:
		require(f.FullName != "", "fullName")
		require(f.Mobile != "", "mobile")
	case StepCoverageSelection:
		require(f.CoverageType != "", "coverageType")
	case StepAddOns:
		if pa := f.PersonalAccident; pa.Selected {
			require(pa.SumInsured > 0, "personalAccident.sumInsured")
			require(pa.Age > 0, "personalAccident.age")
			require(pa.Gender != "", "personalAccident.gender")
		}
	}
	return missing
}

func (f Form) quotationInput() models.QuotationInput {
	in := models.QuotationInput{
		SumInsured:   f.SumInsured,
		CoverageType: f.CoverageType,
		ModelYear:    f.ModelYear,
	}
	if f.PersonalAccident.Selected {
		pa := f.PersonalAccident
		in.PersonalAccident = &pa
	}
	if f.Tracker.Selected {
		in.Tracker = &models.TrackerInput{Selected: true}
	}
	return in
}

func (f Form) vehicleDetails() models.VehicleDetails {
	return models.VehicleDetails{
		Make:       f.Make,
		Model:      f.Model,
		ModelYear:  f.ModelYear,
		City:       f.City,
		SumInsured: f.SumInsured,
	}
}

func (f Form) customerDetails() models.CustomerDetails {
	return models.CustomerDetails{
		FullName: f.FullName,
		Mobile:   f.Mobile,
		Email:    f.Email,
	}
}

func (f Form) addOns() models.AddOns {
	var a models.AddOns
	if pa := f.PersonalAccident; pa.Selected {
		a.PersonalAccident = &models.PersonalAccidentAddOn{
			SumInsured: pa.SumInsured,
			Age:        pa.Age,
			Gender:     pa.Gender,
		}
	}
	a.Tracker = f.Tracker.Selected
	return a
}
