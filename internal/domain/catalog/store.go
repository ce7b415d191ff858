package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/swiftbasket/backend/internal/domain/shared"
)

// MaxStoreNameLength is the maximum allowed store name length
const MaxStoreNameLength = 200

// Store is a vendor's storefront. Each vendor owns at most one store;
// the owner uniqueness is enforced by the database, not by a
// check-then-act read here.
type Store struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID
	Name        string
	Description string
}

// NewStore creates a store for the given owner
func NewStore(ownerID uuid.UUID, name, description string) (*Store, error) {
	name = strings.TrimSpace(name)
	if err := validateStoreName(name); err != nil {
		return nil, err
	}
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Owner is required")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Description:       strings.TrimSpace(description),
	}, nil
}

// Update changes the store's presentation fields
func (s *Store) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if err := validateStoreName(name); err != nil {
		return err
	}
	s.Name = name
	s.Description = strings.TrimSpace(description)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// IsOwnedBy reports whether the given user owns this store
func (s *Store) IsOwnedBy(userID uuid.UUID) bool {
	return s.OwnerID == userID
}

func validateStoreName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Store name is required")
	}
	if len(name) > MaxStoreNameLength {
		return shared.NewDomainError("INVALID_INPUT", "Store name is too long")
	}
	return nil
}
