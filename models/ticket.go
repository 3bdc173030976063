package models

// Issue type values offered by the ticket intake form.
const (
	TicketDataRecovery     = "Data Recovery"
	TicketHardwareIssue    = "Hardware Issue"
	TicketNetworkIssue     = "Network Issue"
	TicketOSIssue          = "OS Issue"
	TicketPerformanceIssue = "Performance Issue"
	TicketSoftwareIssue    = "Software Issue"
	TicketOtherIssue       = "Other"
)

// TicketDateFormat is the layout used when server-stamping DateCreated.
const TicketDateFormat = "2006-01-02 15:04:05"

// ITTicket is a row of the it_tickets table. Tickets are read-only after
// creation: there is no update or delete path.
type ITTicket struct {
	// ID is the store-assigned auto-incrementing ticket number.
	ID int64 `json:"id"`

	// DateCreated is stamped by the server at insert time.
	DateCreated string `json:"date_created"`

	// Priority is the Low/Medium/High/Critical label.
	Priority string `json:"priority"`

	// Status is conventionally one of Open/In Progress/Resolved/Closed.
	Status string `json:"status"`

	// IssueType categorises the ticket (hardware, network, ...).
	IssueType string `json:"issue_type"`

	// AssignedTo optionally names the person handling the ticket.
	AssignedTo string `json:"assigned_to"`

	// Description is the required free-text body of the ticket.
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the ITTicket model.
func (t ITTicket) TableName() string {
	return "it_tickets"
}

// TicketMetrics are the headline numbers of the IT operations dashboard.
type TicketMetrics struct {
	// Total is the full row count.
	Total int `json:"total"`

	// Open counts tickets whose status is exactly "Open".
	Open int `json:"open"`

	// ByPriority counts tickets per priority label.
	ByPriority map[string]int `json:"by_priority"`
}
