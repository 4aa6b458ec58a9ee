package views

import (
	"context"
	"errors"
	"strings"
	"sync"

	"moonhem/gateway"
	"moonhem/models"
	"moonhem/utils"
)

// Client-side precondition failures for sending an enquiry. These are
// raised before any request goes out.
var (
	ErrNotLoggedIn  = errors.New("Please log in to send a message.")
	ErrNoRealtor    = errors.New("No realtor attached to this listing.")
	ErrEmptyMessage = errors.New("Write a message before sending.")
)

// Session holds the logged-in user for the lifetime of the process.
// Nothing is persisted; closing the app logs out.
type Session struct {
	api    gateway.API
	logger *utils.Logger

	mu   sync.Mutex
	user *models.User
}

// NewSession creates a logged-out session.
func NewSession(api gateway.API, logger *utils.Logger) *Session {
	return &Session{api: api, logger: logger}
}

// Login authenticates against the server and keeps the user in memory.
func (s *Session) Login(ctx context.Context, email, password string) error {
	user, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.logger.Info("[session] logged in as %s", user.Name())
	return nil
}

// Logout discards the current user.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// User returns the authenticated user, or nil.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SendEnquiry posts a message to the agent behind a listing. The
// client-side preconditions (authenticated sender, a listing with a
// resolvable realtor, a non-blank message) are checked first; when one
// fails the enquiry is rejected locally and no request is issued.
func (s *Session) SendEnquiry(ctx context.Context, listing *models.Listing, content string) error {
	user := s.User()
	if user == nil {
		return ErrNotLoggedIn
	}
	if listing == nil || listing.RealtorID == 0 {
		return ErrNoRealtor
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyMessage
	}

	return s.api.SendMessage(ctx, models.Message{
		SenderID:   user.ID,
		ReceiverID: listing.RealtorID,
		ListingID:  listing.ID,
		Content:    content,
	})
}
