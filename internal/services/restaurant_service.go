package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/charlesng35/restaurants/internal/authz"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/models"
	"github.com/charlesng35/restaurants/internal/query"
	"github.com/charlesng35/restaurants/internal/store"
	apperrors "github.com/charlesng35/restaurants/pkg/errors"
	"github.com/charlesng35/restaurants/pkg/logger"
)

// RestaurantService orchestrates restaurant reads and owner-gated mutations.
type RestaurantService struct {
	store      RestaurantStore
	principals PrincipalResolver
	mapper     Mapper
	events     events.Publisher
	log        *zap.Logger
}

// NewRestaurantService constructs a RestaurantService. A nil mapper falls back
// to DefaultMapper and a nil publisher discards events.
func NewRestaurantService(restaurants RestaurantStore, principals PrincipalResolver, mapper Mapper, publisher events.Publisher) (*RestaurantService, error) {
	if restaurants == nil {
		return nil, errors.New("restaurant service: store is required")
	}
	if principals == nil {
		return nil, errors.New("restaurant service: principal resolver is required")
	}
	if mapper == nil {
		mapper = DefaultMapper{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &RestaurantService{
		store:      restaurants,
		principals: principals,
		mapper:     mapper,
		events:     publisher,
		log:        logger.WithModule("restaurants"),
	}, nil
}

// GetByID returns a single restaurant.
func (s *RestaurantService) GetByID(ctx context.Context, id int) (*RestaurantDTO, error) {
	restaurant, err := s.load(ensureContext(ctx), id)
	if err != nil {
		return nil, err
	}

	dto := s.mapper.RestaurantToDTO(*restaurant)
	return &dto, nil
}

// GetAll returns one page of restaurants matching spec.
func (s *RestaurantService) GetAll(ctx context.Context, spec query.Spec) (*query.Page[RestaurantDTO], error) {
	page, err := query.Execute(ensureContext(ctx), s.store.Query(), spec)
	if err != nil {
		return nil, fmt.Errorf("restaurant service: list: %w", err)
	}
	return query.MapPage(page, s.mapper.RestaurantToDTO), nil
}

// Create stores a restaurant owned by the caller and returns its id.
func (s *RestaurantService) Create(ctx context.Context, input CreateRestaurantInput) (int, error) {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return 0, err
	}

	principal, ok := s.principals.Principal(ctx)
	if !ok {
		return 0, apperrors.ErrUnauthorized
	}

	restaurant := s.mapper.RestaurantFromInput(input)
	restaurant.CreatedByID = principal.ID()

	if err := s.store.Add(ctx, &restaurant); err != nil {
		return 0, fmt.Errorf("restaurant service: create: %w", err)
	}

	s.log.Info("restaurant created",
		zap.Int("restaurant_id", restaurant.ID),
		zap.Int("owner_id", restaurant.CreatedByID),
	)
	s.publish(ctx, events.RestaurantCreated, restaurant.ID, s.mapper.RestaurantToDTO(restaurant), principal)
	return restaurant.ID, nil
}

// Update changes the name, description and delivery flag of a restaurant the caller owns.
func (s *RestaurantService) Update(ctx context.Context, id int, input UpdateRestaurantInput) error {
	ctx = ensureContext(ctx)

	if err := validateInput(input); err != nil {
		return err
	}

	restaurant, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(ctx, s.principals, s.log, restaurant, authz.OperationUpdate); err != nil {
		return err
	}

	restaurant.Name = input.Name
	restaurant.Description = input.Description
	restaurant.HasDelivery = input.HasDelivery

	if err := s.store.Save(ctx, restaurant); err != nil {
		return fmt.Errorf("restaurant service: update: %w", err)
	}

	principal, _ := s.principals.Principal(ctx)
	s.publish(ctx, events.RestaurantUpdated, restaurant.ID, s.mapper.RestaurantToDTO(*restaurant), principal)
	return nil
}

// Delete removes a restaurant the caller owns together with its address and dishes.
func (s *RestaurantService) Delete(ctx context.Context, id int) error {
	ctx = ensureContext(ctx)

	restaurant, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err := authorize(ctx, s.principals, s.log, restaurant, authz.OperationDelete); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, restaurant); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRestaurantNotFound
		}
		return fmt.Errorf("restaurant service: delete: %w", err)
	}

	s.log.Info("restaurant deleted", zap.Int("restaurant_id", restaurant.ID))
	principal, _ := s.principals.Principal(ctx)
	s.publish(ctx, events.RestaurantDeleted, restaurant.ID, nil, principal)
	return nil
}

func (s *RestaurantService) load(ctx context.Context, id int) (*models.Restaurant, error) {
	restaurant, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("restaurant service: load %d: %w", id, err)
	}
	return restaurant, nil
}

func (s *RestaurantService) publish(ctx context.Context, eventType string, id int, data any, actor authz.Principal) {
	publishEvent(ctx, s.events, s.log, events.New(eventType, id, data).WithMetadata("actorId", fmt.Sprint(actor.ID())))
}
