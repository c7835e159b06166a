// Package lead assembles lead records from a validated submission.
package lead

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/motor-quotation/internal/logging"
	"github.com/ukydev/motor-quotation/internal/models"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Builder stamps lifecycle metadata onto lead drafts.
type Builder struct {
	now func() time.Time
	log *log.Entry
}

// NewBuilder creates a lead builder. A nil clock means time.Now.
func NewBuilder(now func() time.Time, entry *log.Entry) *Builder {
	if now == nil {
		now = time.Now
	}
	if entry == nil {
		entry = log.WithField("component", "lead")
	}
	return &Builder{now: now, log: entry}
}

// Create builds the lead record. Status and assignee are always the initial
// values; every other field is copied from the draft.
func (b *Builder) Create(draft models.LeadDraft) models.LeadRecord {
	record := models.LeadRecord{
		ReferenceNumber: draft.ReferenceNumber,
		VehicleDetails:  draft.VehicleDetails,
		CustomerDetails: draft.CustomerDetails,
		CoverageType:    draft.CoverageType,
		AddOns:          copyAddOns(draft.AddOns),
		Quotation:       draft.Quotation,
		Status:          models.LeadStatusNew,
		AssignedTo:      models.DefaultAssignee,
		Timestamp:       b.now().UTC().Format(TimestampLayout),
	}

	b.log.WithFields(log.Fields{
		"reference_number": record.ReferenceNumber,
		"coverage_type":    string(record.CoverageType),
		"total_premium":    record.Quotation.TotalPremium,
		"customer":         logging.Fingerprint(record.CustomerDetails.Mobile),
	}).Info("Lead created")

	return record
}

// copyAddOns detaches the personal accident pointer so the record does not
// share memory with the draft.
func copyAddOns(a models.AddOns) models.AddOns {
	if a.PersonalAccident != nil {
		pa := *a.PersonalAccident
		a.PersonalAccident = &pa
	}
	return a
}
