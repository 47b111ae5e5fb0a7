package entity

import (
	"time"
)

// Session state keys. The live cart, budget and selected customer are
// written through to this table after every mutation so a restart resumes
// the sale in progress. A missing key means the default empty/null value.
const (
	SessionKeyCart             = "cart"
	SessionKeyBudget           = "budget"
	SessionKeySelectedCustomer = "selected_customer_id"
)

// SessionState is one durable key/value pair of the terminal session.
type SessionState struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the SessionState model
func (SessionState) TableName() string {
	return "session_state"
}
