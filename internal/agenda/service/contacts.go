package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/teyroberto/agenda/internal/agenda/domain"
	"github.com/teyroberto/agenda/internal/agenda/store"
	"github.com/teyroberto/agenda/pkg/idx"
	"github.com/teyroberto/agenda/pkg/slogx"
)

var (
	ErrDuplicateContactName = errors.New("duplicate_contact_name")
	ErrContactNotFound      = errors.New("contact_not_found")
)

// ContactsService owns per-user contact CRUD. Every operation takes the
// authenticated owner's user id, resolved upstream by the identity service,
// and touches only rows belonging to that owner.
type ContactsService struct {
	Store store.Store
}

// List returns all of the owner's contacts.
func (s *ContactsService) List(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	return s.Store.Contacts().ListContactsByOwner(ctx, ownerID)
}

// Create adds a contact for the owner, rejecting names that collide
// case-insensitively with an existing contact of the same owner.
func (s *ContactsService) Create(ctx context.Context, ownerID, name, phone, email string) (domain.Contact, error) {
	name = strings.TrimSpace(name)
	now := time.Now().UTC()
	contact := domain.Contact{
		ID:        idx.New().String(),
		OwnerID:   ownerID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Contacts().GetContactByName(ctx, ownerID, domain.NormalizeContactName(name))
		if err == nil {
			return ErrDuplicateContactName
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Contacts().CreateContact(ctx, contact); err != nil {
			// Concurrent creates past the lookup land on the composite
			// unique index instead.
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateContactName
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.Contact{}, err
	}

	slogx.FromContext(ctx).Info("contact created",
		slog.String("contact_id", contact.ID),
		slog.String("owner_id", ownerID),
	)
	return contact, nil
}

// Get looks up one of the owner's contacts by name, case-insensitively.
func (s *ContactsService) Get(ctx context.Context, ownerID, name string) (domain.Contact, error) {
	contact, err := s.Store.Contacts().GetContactByName(ctx, ownerID, domain.NormalizeContactName(name))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Contact{}, ErrContactNotFound
		}
		return domain.Contact{}, err
	}
	return contact, nil
}

// Update applies the present patch fields to the contact found by the same
// case-insensitive scoped lookup. A rename re-runs the duplicate check
// against the owner's other contacts before persisting.
func (s *ContactsService) Update(ctx context.Context, ownerID, name string, patch domain.ContactPatch) (domain.Contact, error) {
	var updated domain.Contact

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Contacts().GetContactByName(ctx, ownerID, domain.NormalizeContactName(name))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrContactNotFound
			}
			return err
		}

		if patch.Name != nil {
			newName := strings.TrimSpace(*patch.Name)
			newNorm := domain.NormalizeContactName(newName)
			if newNorm != domain.NormalizeContactName(current.Name) {
				other, err := tx.Contacts().GetContactByName(ctx, ownerID, newNorm)
				if err == nil && other.ID != current.ID {
					return ErrDuplicateContactName
				}
				if err != nil && !errors.Is(err, store.ErrNotFound) {
					return err
				}
			}
			current.Name = newName
		}
		if patch.Phone != nil {
			current.Phone = *patch.Phone
		}
		if patch.Email != nil {
			current.Email = *patch.Email
		}
		current.UpdatedAt = time.Now().UTC()

		if err := tx.Contacts().UpdateContact(ctx, current); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrDuplicateContactName
			}
			return err
		}

		updated = current
		return nil
	})
	if err != nil {
		return domain.Contact{}, err
	}

	return updated, nil
}

// Delete removes one of the owner's contacts permanently.
func (s *ContactsService) Delete(ctx context.Context, ownerID, name string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		contact, err := tx.Contacts().GetContactByName(ctx, ownerID, domain.NormalizeContactName(name))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrContactNotFound
			}
			return err
		}
		return tx.Contacts().DeleteContact(ctx, contact.ID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("contact deleted", slog.String("owner_id", ownerID))
	return nil
}
