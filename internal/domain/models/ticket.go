// internal/domain/models/ticket.go
package models

import "time"

// Ticket states.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// Ticket priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var (
	TicketStatuses   = []string{TicketOpen, TicketInProgress, TicketResolved, TicketClosed}
	TicketPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
)

// SupportTicket is a learner or instructor support request and its thread.
type SupportTicket struct {
	ID          string        `json:"id"`
	Subject     string        `json:"subject"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Priority    string        `json:"priority"`
	Status      string        `json:"status"`
	UserID      string        `json:"userId"`
	UserName    string        `json:"userName"`
	UserEmail   string        `json:"userEmail"`
	Replies     []TicketReply `json:"replies,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TicketReply is one message in a ticket thread.
type TicketReply struct {
	ID         string    `json:"id"`
	Author     string    `json:"author"`
	AuthorRole string    `json:"authorRole"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ReplyInput is the body for answering a ticket.
type ReplyInput struct {
	Message string `json:"message"`
}
