package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	iauth "github.com/charlesng35/restaurants/internal/auth"
	"github.com/charlesng35/restaurants/internal/authz"
	"github.com/charlesng35/restaurants/internal/database/testutil"
	"github.com/charlesng35/restaurants/internal/events"
	"github.com/charlesng35/restaurants/internal/store"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Topic)
	}
	return out
}

type serviceFixture struct {
	db          *gorm.DB
	restaurants *RestaurantService
	dishes      *DishService
	publisher   *recordingPublisher
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())

	restaurantStore, err := store.NewRestaurantStore(db)
	require.NoError(t, err)
	dishStore, err := store.NewDishStore(db)
	require.NoError(t, err)

	publisher := &recordingPublisher{}
	restaurants, err := NewRestaurantService(restaurantStore, iauth.ContextResolver{}, nil, publisher)
	require.NoError(t, err)
	dishes, err := NewDishService(dishStore, restaurantStore, iauth.ContextResolver{}, nil, publisher)
	require.NoError(t, err)

	return &serviceFixture{
		db:          db,
		restaurants: restaurants,
		dishes:      dishes,
		publisher:   publisher,
	}
}

func asUser(id int, roles ...string) context.Context {
	return iauth.WithPrincipal(context.Background(), authz.NewPrincipal(id, roles, nil))
}

func restaurantInput(name string) CreateRestaurantInput {
	return CreateRestaurantInput{
		Name:         name,
		Description:  "Family run",
		Category:     "Italian",
		HasDelivery:  true,
		ContactEmail: "owner@example.com",
		City:         "Krakow",
		Street:       "Dluga 5",
		PostalCode:   "30-001",
	}
}
