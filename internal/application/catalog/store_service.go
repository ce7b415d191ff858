package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/swiftbasket/backend/internal/domain/catalog"
	"github.com/swiftbasket/backend/internal/domain/shared"
	"github.com/swiftbasket/backend/internal/infrastructure/social"
)

// StoreService handles storefront management
type StoreService struct {
	storeRepo catalog.StoreRepository
	publisher social.Publisher
	logger    *zap.Logger
}

// NewStoreService creates a new store service
func NewStoreService(storeRepo catalog.StoreRepository, publisher social.Publisher, logger *zap.Logger) *StoreService {
	return &StoreService{
		storeRepo: storeRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create opens a store for the vendor. The one-store-per-vendor rule
// rides on the unique index over owner_id, so two concurrent creates
// cannot both succeed. A successful create is announced on the social
// platform; posting failures never fail the create.
func (s *StoreService) Create(ctx context.Context, ownerID uuid.UUID, input CreateStoreInput) (*StoreInfo, error) {
	store, err := catalog.NewStore(ownerID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.storeRepo.Save(ctx, store); err != nil {
		if shared.IsAlreadyExists(err) {
			return nil, shared.NewDomainError("STORE_EXISTS", "Vendor already has a store")
		}
		s.logger.Error("Failed to save store", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Store opened",
		zap.String("store_id", store.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("name", store.Name),
	)

	if err := s.publisher.Publish(ctx, social.StoreOpenedPost(store.Name)); err != nil {
		s.logger.Warn("Failed to announce store",
			zap.String("store_id", store.ID.String()),
			zap.Error(err),
		)
	}

	info := storeInfoFromDomain(store)
	return &info, nil
}

// Get returns a store by ID
func (s *StoreService) Get(ctx context.Context, storeID uuid.UUID) (*StoreInfo, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	info := storeInfoFromDomain(store)
	return &info, nil
}

// GetMine returns the authenticated vendor's store
func (s *StoreService) GetMine(ctx context.Context, ownerID uuid.UUID) (*StoreInfo, error) {
	store, err := s.storeRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	info := storeInfoFromDomain(store)
	return &info, nil
}

// List returns stores with pagination
func (s *StoreService) List(ctx context.Context, input ListInput) (*shared.Paginated[StoreInfo], error) {
	filter := input.Filter()

	stores, err := s.storeRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.storeRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	infos := make([]StoreInfo, len(stores))
	for i := range stores {
		infos[i] = storeInfoFromDomain(&stores[i])
	}
	result := shared.NewPaginated(infos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update changes a store's presentation fields. Only the owner may update.
func (s *StoreService) Update(ctx context.Context, ownerID, storeID uuid.UUID, input UpdateStoreInput) (*StoreInfo, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if !store.IsOwnedBy(ownerID) {
		return nil, shared.ErrForbidden
	}

	if err := store.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, store); err != nil {
		s.logger.Error("Failed to update store", zap.Error(err))
		return nil, err
	}

	info := storeInfoFromDomain(store)
	return &info, nil
}

// Delete removes a store and, through cascading deletes, its products.
// Only the owner may delete.
func (s *StoreService) Delete(ctx context.Context, ownerID, storeID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	if !store.IsOwnedBy(ownerID) {
		return shared.ErrForbidden
	}

	if err := s.storeRepo.Delete(ctx, storeID); err != nil {
		s.logger.Error("Failed to delete store", zap.Error(err))
		return err
	}

	s.logger.Info("Store deleted",
		zap.String("store_id", storeID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}
