package store

import (
	"context"
	"fmt"
	"sync"

	"marketplace-client/internal/client"
	"marketplace-client/internal/domain"
	"marketplace-client/internal/lifecycle"
)

type DeliveryState struct {
	Deliveries          []domain.Delivery `json:"deliveries"`
	Current             *domain.Delivery  `json:"currentDelivery"`
	AvailableDeliveries []domain.Delivery `json:"availableDeliveries"`
	Loading             bool              `json:"isLoading"`
	Error               string            `json:"error,omitempty"`
	CurrentLocation     *domain.Location  `json:"currentLocation"`
}

type DeliveryStore struct {
	api        DeliveryAPI
	publisher  EventPublisher
	deliveries *Container[domain.Delivery]
	available  *Container[domain.Delivery]

	mu       sync.Mutex
	location *domain.Location
}

// NewDeliveryStore builds the store. publisher may be nil.
func NewDeliveryStore(api DeliveryAPI, publisher EventPublisher) *DeliveryStore {
	idOf := func(d domain.Delivery) int64 { return d.ID }
	return &DeliveryStore{
		api:        api,
		publisher:  publisher,
		deliveries: NewContainer(idOf),
		available:  NewContainer(idOf),
	}
}

func (s *DeliveryStore) Fetch(ctx context.Context, query client.DeliveryQuery) error {
	t := s.deliveries.Begin()
	deliveries, err := s.api.ListDeliveries(ctx, query)
	if err != nil {
		s.deliveries.Fail(t, client.Message(err, "Failed to fetch deliveries"))
		return err
	}
	s.deliveries.ReplaceAll(t, deliveries)
	return nil
}

// FetchAvailable loads unassigned pending deliveries a driver may accept.
func (s *DeliveryStore) FetchAvailable(ctx context.Context) error {
	t := s.available.Begin()
	deliveries, err := s.api.ListDeliveries(ctx, client.DeliveryQuery{Status: domain.DeliveryPending})
	if err != nil {
		s.available.Fail(t, client.Message(err, "Failed to fetch deliveries"))
		return err
	}
	available := make([]domain.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if lifecycle.IsAvailableDelivery(d) {
			available = append(available, d)
		}
	}
	s.available.ReplaceAll(t, available)
	return nil
}

func (s *DeliveryStore) FetchByID(ctx context.Context, id int64) error {
	t := s.deliveries.Begin()
	delivery, err := s.api.GetDelivery(ctx, id)
	if err != nil {
		s.deliveries.Fail(t, client.Message(err, "Failed to fetch delivery"))
		return err
	}
	s.deliveries.SetCurrent(t, *delivery)
	return nil
}

// Track looks a delivery up by its tracking code and selects it.
func (s *DeliveryStore) Track(ctx context.Context, trackingCode string) (*domain.Delivery, error) {
	t := s.deliveries.Begin()
	delivery, err := s.api.TrackDelivery(ctx, trackingCode)
	if err != nil {
		s.deliveries.Fail(t, client.Message(err, "Failed to track delivery"))
		return nil, err
	}
	s.deliveries.SetCurrent(t, *delivery)
	return delivery, nil
}

// Accept claims a delivery: it becomes current, joins the driver's list and
// leaves the available list.
func (s *DeliveryStore) Accept(ctx context.Context, id int64) (*domain.Delivery, error) {
	t := s.deliveries.Begin()
	delivery, err := s.api.AcceptDelivery(ctx, id)
	if err != nil {
		s.deliveries.Fail(t, client.Message(err, "Failed to accept delivery"))
		return nil, err
	}
	accepted := *delivery
	s.deliveries.Update(t, func(items []domain.Delivery, _ *domain.Delivery) ([]domain.Delivery, *domain.Delivery) {
		return append(items, accepted), &accepted
	})
	s.available.Update(s.available.Begin(), func(items []domain.Delivery, current *domain.Delivery) ([]domain.Delivery, *domain.Delivery) {
		kept := make([]domain.Delivery, 0, len(items))
		for _, d := range items {
			if d.ID != accepted.ID {
				kept = append(kept, d)
			}
		}
		return kept, current
	})

	publish(ctx, s.publisher, domain.Event{
		Type:       domain.EventDeliveryAccepted,
		OrderID:    delivery.OrderID,
		DeliveryID: delivery.ID,
		Status:     string(delivery.Status),
	})
	return delivery, nil
}

func (s *DeliveryStore) UpdateStatus(ctx context.Context, id int64, status domain.DeliveryStatus) (*domain.Delivery, error) {
	if current, ok := s.deliveries.Find(id); ok && !lifecycle.CanTransitionDelivery(current.Status, status) {
		s.deliveries.SetError(fmt.Sprintf("Cannot change delivery from %s to %s",
			lifecycle.Label(string(current.Status)), lifecycle.Label(string(status))))
		return nil, fmt.Errorf("delivery %d from %s to %s: %w", id, current.Status, status, lifecycle.ErrInvalidTransition)
	}

	t := s.deliveries.Begin()
	delivery, err := s.api.UpdateDeliveryStatus(ctx, id, status)
	if err != nil {
		s.deliveries.Fail(t, client.Message(err, "Failed to update delivery status"))
		return nil, err
	}
	s.deliveries.Replace(t, *delivery)

	publish(ctx, s.publisher, domain.Event{
		Type:       domain.EventDeliveryStatusChanged,
		OrderID:    delivery.OrderID,
		DeliveryID: delivery.ID,
		Status:     string(delivery.Status),
	})
	return delivery, nil
}

// UpdateLocation reports the driver position for a delivery. It runs in
// the background of the dashboard and never sets the loading flag.
func (s *DeliveryStore) UpdateLocation(ctx context.Context, id int64, location domain.Location) (*domain.Delivery, error) {
	s.deliveries.ClearError()
	delivery, err := s.api.UpdateLocation(ctx, id, location)
	if err != nil {
		s.deliveries.SetError(client.Message(err, "Failed to update location"))
		return nil, err
	}
	s.deliveries.Patch(*delivery)
	return delivery, nil
}

func (s *DeliveryStore) SetCurrentLocation(location domain.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.location = &location
}

func (s *DeliveryStore) CurrentLocation() (domain.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return domain.Location{}, false
	}
	return *s.location, true
}

func (s *DeliveryStore) ClearCurrent() {
	s.deliveries.ClearCurrent()
}

func (s *DeliveryStore) ClearError() {
	s.deliveries.ClearError()
	s.available.ClearError()
}

func (s *DeliveryStore) Deliveries() []domain.Delivery {
	return s.deliveries.Items()
}

func (s *DeliveryStore) Available() []domain.Delivery {
	return s.available.Items()
}

func (s *DeliveryStore) Current() (domain.Delivery, bool) {
	return s.deliveries.Current()
}

func (s *DeliveryStore) Snapshot() DeliveryState {
	deliveries := s.deliveries.Snapshot()
	available := s.available.Snapshot()

	state := DeliveryState{
		Deliveries:          deliveries.Items,
		Current:             deliveries.Current,
		AvailableDeliveries: available.Items,
		Loading:             deliveries.Loading || available.Loading,
		Error:               deliveries.Error,
	}
	if state.Error == "" {
		state.Error = available.Error
	}
	if loc, ok := s.CurrentLocation(); ok {
		state.CurrentLocation = &loc
	}
	return state
}
