package model

import (
	"errors"
	"strings"
	"time"
)

// ActivityType is open-ended: the admin panel knows a few well-known
// kinds but accepts others.
type ActivityType string

const (
	ActivityTypeApproval    ActivityType = "Approval"
	ActivityTypeCustomerMgn ActivityType = "Customer Management"
	ActivityTypeTransaction ActivityType = "Transaction"
)

// Activity is one entry of the append-only admin audit feed. Entries
// are recorded explicitly; record mutations do not generate them.
type Activity struct {
	ID        string       `json:"id"`
	User      string       `json:"user"`
	Action    string       `json:"action"`
	Timestamp time.Time    `json:"timestamp"`
	Type      ActivityType `json:"type"`
}

type ActivityCreateRequest struct {
	User   string       `json:"user"`
	Action string       `json:"action"`
	Type   ActivityType `json:"type"`
}

func (p ActivityCreateRequest) Validate() error {
	if strings.TrimSpace(p.User) == "" {
		return errors.New("user is required")
	}
	if strings.TrimSpace(p.Action) == "" {
		return errors.New("action is required")
	}
	return nil
}
