package models

// DatasetDateFormat is the layout used when server-stamping LastUpdated.
const DatasetDateFormat = "2006-01-02"

// DefaultDatasetListLimit caps dataset listings when the caller does not
// supply an explicit limit.
const DefaultDatasetListLimit = 50

// Dataset is a row of the datasets_metadata table describing one
// registered dataset.
type Dataset struct {
	// ID is the store-assigned surrogate identifier used to address the
	// row on update and delete.
	ID int64 `json:"id"`

	// Name is the display key of the dataset. Uniqueness is expected in
	// practice but not enforced by the store.
	Name string `json:"name"`

	// LastUpdated is stamped by the server (YYYY-MM-DD) on every write.
	LastUpdated string `json:"last_updated"`

	// Source names where the dataset came from (free text).
	Source string `json:"source"`

	// Description is optional free text.
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the Dataset model.
func (d Dataset) TableName() string {
	return "datasets_metadata"
}

// DatasetUpdate carries the editable dataset fields for an update.
// Nil pointers mean "leave unchanged"; LastUpdated is always restamped.
type DatasetUpdate struct {
	Name        *string `json:"name,omitempty"`
	Source      *string `json:"source,omitempty"`
	Description *string `json:"description,omitempty"`
}
