package models

import "strings"

// Incident type values offered by the intake form. Stored as free text;
// the enumeration is advisory, not enforced by the store.
const (
	IncidentMalware            = "Malware"
	IncidentPhishing           = "Phishing"
	IncidentDDoS               = "DDoS"
	IncidentUnauthorizedAccess = "Unauthorized Access"
	IncidentDataBreach         = "Data Breach"
	IncidentOther              = "Other"
)

// IncidentDateFormat is the layout used when server-stamping DateReported.
const IncidentDateFormat = "01/02/2006"

// SecurityIncident is a row of the cyber_incidents table.
type SecurityIncident struct {
	// ID is the store-assigned surrogate identifier used to address the
	// row on update and delete.
	ID int64 `json:"id"`

	// DateReported is stamped by the server at insert time (MM/DD/YYYY).
	DateReported string `json:"date_reported"`

	// IncidentType is one of the incident type constants.
	IncidentType string `json:"incident_type"`

	// Severity is the ordered Low/Medium/High/Critical label.
	Severity string `json:"severity"`

	// Status is conventionally one of Open/Investigating/Resolved/Closed.
	// New incidents start as "Open".
	Status string `json:"status"`

	// Description is optional free text.
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the SecurityIncident model.
func (i SecurityIncident) TableName() string {
	return "cyber_incidents"
}

// SeverityLevel maps a severity label to its integer level, case-insensitively:
// low=1, medium=2, high=3, critical=4. Any other value maps to 0.
func SeverityLevel(severity string) int {
	switch strings.ToLower(severity) {
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	case "critical":
		return 4
	}
	return 0
}

// SeverityLevel returns the integer severity level of the incident.
func (i SecurityIncident) SeverityLevel() int {
	return SeverityLevel(i.Severity)
}

// IncidentUpdate carries the editable incident fields for an update.
// Nil pointers mean "leave unchanged". DateReported is immutable.
type IncidentUpdate struct {
	IncidentType *string `json:"incident_type,omitempty"`
	Severity     *string `json:"severity,omitempty"`
	Status       *string `json:"status,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// IncidentMetrics are the headline numbers of the incident dashboard.
type IncidentMetrics struct {
	// Total is the full row count, independent of any display cap.
	Total int `json:"total"`

	// Open counts incidents whose status is exactly "Open".
	Open int `json:"open"`

	// MediumOrWorse counts incidents with severity level >= 2.
	MediumOrWorse int `json:"medium_or_worse"`
}
