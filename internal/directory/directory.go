package directory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/neyron357-boop/spares/internal/catalog"
	"github.com/neyron357-boop/spares/internal/store"
)

// ErrContactNotFound indicates a gallery edit against an absent entry.
var ErrContactNotFound = errors.New("contact not found")

// Service wraps the store with directory-level operations.
type Service struct {
	store *store.Store
}

// NewService creates a directory service over an opened store.
func NewService(s *store.Store) *Service {
	return &Service{store: s}
}

// List returns the whole directory, most recently used first.
func (s *Service) List(ctx context.Context) ([]catalog.Contact, error) {
	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].LastUsedAt.After(contacts[j].LastUsedAt)
	})
	return contacts, nil
}

// Search filters the recency-ordered directory by a case-insensitive
// substring over name, phone, makes and models. An empty query returns
// everything.
func (s *Service) Search(ctx context.Context, query string) ([]catalog.Contact, error) {
	contacts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return contacts, nil
	}

	matched := []catalog.Contact{}
	for _, c := range contacts {
		if matches(c, query) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func matches(c catalog.Contact, query string) bool {
	if strings.Contains(strings.ToLower(c.Name), query) {
		return true
	}
	if strings.Contains(c.Phone, query) {
		return true
	}
	for _, tag := range c.Makes {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	for _, tag := range c.Models {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// Delete removes a directory entry by phone number. This is the only way
// an entry disappears; cascades never reach the directory.
func (s *Service) Delete(ctx context.Context, phone string) error {
	if err := s.store.DeleteContact(ctx, phone); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

// AttachMedia appends business-card photos to a contact's gallery.
func (s *Service) AttachMedia(ctx context.Context, phone string, photos []string) error {
	contact, err := s.store.GetContact(ctx, phone)
	if err != nil {
		return fmt.Errorf("attach media: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("attach media: %w: %s", ErrContactNotFound, catalog.NormalizePhone(phone))
	}
	contact.Media = append(contact.Media, photos...)
	if err := s.store.PutContact(ctx, *contact); err != nil {
		return fmt.Errorf("attach media: %w", err)
	}
	return nil
}

// RemoveMedia drops one photo from a contact's gallery by position.
func (s *Service) RemoveMedia(ctx context.Context, phone string, index int) error {
	contact, err := s.store.GetContact(ctx, phone)
	if err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("remove media: %w: %s", ErrContactNotFound, catalog.NormalizePhone(phone))
	}
	if index < 0 || index >= len(contact.Media) {
		return fmt.Errorf("remove media: index %d out of range", index)
	}
	contact.Media = append(contact.Media[:index], contact.Media[index+1:]...)
	if err := s.store.PutContact(ctx, *contact); err != nil {
		return fmt.Errorf("remove media: %w", err)
	}
	return nil
}
