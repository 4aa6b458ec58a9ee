package models

import "strings"

// Agent is a normalized realtor record for the agent directory.
type Agent struct {
	ID     int64
	Name   string
	Email  string
	Phone  string
	Agency string
	City   string
	Sales  int
	RoleID int64
	Role   string
	Avatar string
}

// User is the authenticated account returned by POST /login.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Surname   string `json:"surname"`
	Mail      string `json:"mail"`
	RoleID    int64  `json:"role_id"`
}

// Name returns the display name, falling back to the mail address.
func (u *User) Name() string {
	n := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.Surname))
	if n == "" {
		return u.Mail
	}
	return n
}

// Message is an agent enquiry sent through POST /messages.
// ListingID keeps the listing's string form; the gateway puts numeric
// server IDs on the wire as JSON numbers and synthetic IDs as strings.
type Message struct {
	SenderID   int64
	ReceiverID int64
	ListingID  string
	Content    string
}
