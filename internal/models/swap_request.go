package models

import "time"

// SwapStatus represents the status of a swap request.
type SwapStatus string

const (
	// SwapStatusPending indicates a request awaiting a response.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates an accepted, in-progress swap.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusDeclined indicates a declined request. Terminal.
	SwapStatusDeclined SwapStatus = "declined"
	// SwapStatusCompleted indicates a finished swap. Terminal.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusCancelled indicates a request cancelled by moderation. Terminal.
	SwapStatusCancelled SwapStatus = "cancelled"
)

// IsTerminal reports whether no further transition is permitted from the status.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusDeclined, SwapStatusCompleted, SwapStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine permits moving to next.
// pending -> accepted | declined | cancelled; accepted -> completed.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	switch s {
	case SwapStatusPending:
		return next == SwapStatusAccepted || next == SwapStatusDeclined || next == SwapStatusCancelled
	case SwapStatusAccepted:
		return next == SwapStatusCompleted
	}
	return false
}

// SwapRequest represents a proposed exchange of skills between two users.
//
// A partial unique index on (requester_id, requested_id, skill_offered,
// skill_wanted) WHERE status = 'pending' backs the duplicate guard; it is
// created in database.Connect because GORM tags cannot express partial
// indexes.
type SwapRequest struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RequesterID  uint       `gorm:"not null;index" json:"requester_id"`
	RequestedID  uint       `gorm:"not null;index" json:"requested_id"`
	SkillOffered string     `gorm:"size:100;not null" json:"skill_offered"`
	SkillWanted  string     `gorm:"size:100;not null" json:"skill_wanted"`
	Status       SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swap_requests_status" json:"status"`
	Message      string     `gorm:"type:text" json:"message"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Requested User `gorm:"foreignKey:RequestedID" json:"requested,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// OtherParty returns the counterpart of userID on this request.
// The second return value is false when userID is neither party.
func (r *SwapRequest) OtherParty(userID uint) (uint, bool) {
	switch userID {
	case r.RequesterID:
		return r.RequestedID, true
	case r.RequestedID:
		return r.RequesterID, true
	}
	return 0, false
}
