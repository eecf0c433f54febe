package store

import (
	"context"
	"sync"

	"github.com/Kevbec/SalonManager/models"
)

// Store holds the authoritative snapshot for one authenticated session and
// serializes its mutations. Dispatch validates the payload, writes through
// the gateway, and only on success applies the pure reducer transition, so
// a failed write leaves the snapshot exactly as it was.
type Store struct {
	mu      sync.Mutex
	gateway Gateway
	ownerID string
	state   AppState
}

// New binds a session store to its gateway and owning user.
func New(gateway Gateway, ownerID string) *Store {
	return &Store{
		gateway: gateway,
		ownerID: ownerID,
		state:   AppState{Loading: true},
	}
}

// State returns the current snapshot. Reduce never mutates slices in
// place, so the returned value is safe to read after later dispatches.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load replaces the collections wholesale from the gateway, creating the
// default settings document when the account has none yet.
func (s *Store) Load(ctx context.Context) error {
	if s.ownerID == "" {
		return ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, SetLoading{Loading: true})
	s.state = Reduce(s.state, SetError{})

	err := s.load(ctx)
	if err != nil {
		s.state = Reduce(s.state, SetError{Message: err.Error()})
	}
	s.state = Reduce(s.state, SetLoading{})
	return err
}

func (s *Store) load(ctx context.Context) error {
	settings, err := s.loadSettings(ctx)
	if err != nil {
		return err
	}
	s.state = Reduce(s.state, SetSettings{Settings: settings})

	records, err := s.gateway.ListByOwner(ctx, CollectionClients, s.ownerID)
	if err != nil {
		return err
	}
	clients := make([]models.Client, 0, len(records))
	for _, rec := range records {
		client, err := ClientFromRecord(rec)
		if err != nil {
			return err
		}
		clients = append(clients, client)
	}
	s.state = Reduce(s.state, SetClients{Clients: clients})

	records, err = s.gateway.ListByOwner(ctx, CollectionServices, s.ownerID)
	if err != nil {
		return err
	}
	services := make([]models.Service, 0, len(records))
	for _, rec := range records {
		service, err := ServiceFromRecord(rec)
		if err != nil {
			return err
		}
		services = append(services, service)
	}
	s.state = Reduce(s.state, SetServices{Services: services})

	return nil
}

func (s *Store) loadSettings(ctx context.Context) (models.SalonSettings, error) {
	records, err := s.gateway.ListByOwner(ctx, CollectionSettings, s.ownerID)
	if err != nil {
		return models.SalonSettings{}, err
	}
	if len(records) > 0 {
		return SettingsFromRecord(records[0])
	}

	settings := models.SalonSettings{Name: "MonSalon"}
	normalizeSettings(&settings, s.ownerID)
	id, err := s.gateway.Create(ctx, CollectionSettings, s.ownerID, settingsDoc(settings))
	if err != nil {
		return models.SalonSettings{}, err
	}
	settings.ID = id
	return settings, nil
}

// Dispatch runs one mutation: validate, persist, then reduce. It returns
// the applied action with generated ids and timestamps filled in. On any
// error the in-memory collections are untouched; gateway failures are
// additionally recorded on the state's error field before being returned.
func (s *Store) Dispatch(ctx context.Context, action Action) (Action, error) {
	if s.ownerID == "" {
		return nil, ErrNotAuthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.persist(ctx, action)
	if err != nil {
		if !IsValidation(err) {
			s.state = Reduce(s.state, SetError{Message: err.Error()})
		}
		return nil, err
	}
	s.state = Reduce(s.state, applied)
	return applied, nil
}

// persist performs the side-effecting half of a dispatch and returns the
// action the reducer should apply. Pure bookkeeping actions (Set*) pass
// through without touching the gateway.
func (s *Store) persist(ctx context.Context, action Action) (Action, error) {
	switch a := action.(type) {
	case AddClient:
		normalizeClient(&a.Client, s.ownerID)
		if err := validateClient(a.Client); err != nil {
			return nil, err
		}
		id, err := s.gateway.Create(ctx, CollectionClients, s.ownerID, clientDoc(a.Client))
		if err != nil {
			return nil, err
		}
		a.Client.ID = id
		return a, nil

	case UpdateClient:
		normalizeClient(&a.Client, s.ownerID)
		if err := validateClient(a.Client); err != nil {
			return nil, err
		}
		if err := s.requireExists(ctx, CollectionClients, a.Client.ID); err != nil {
			return nil, err
		}
		if err := s.gateway.Update(ctx, CollectionClients, a.Client.ID, clientDoc(a.Client)); err != nil {
			return nil, err
		}
		return a, nil

	case DeleteClient:
		if err := s.gateway.Delete(ctx, CollectionClients, a.ID); err != nil {
			return nil, err
		}
		return a, nil

	case AddService:
		normalizeService(&a.Service, s.ownerID)
		if err := validateService(a.Service); err != nil {
			return nil, err
		}
		id, err := s.gateway.Create(ctx, CollectionServices, s.ownerID, serviceDoc(a.Service))
		if err != nil {
			return nil, err
		}
		a.Service.ID = id
		return a, nil

	case UpdateService:
		normalizeService(&a.Service, s.ownerID)
		if err := validateService(a.Service); err != nil {
			return nil, err
		}
		if err := s.requireExists(ctx, CollectionServices, a.Service.ID); err != nil {
			return nil, err
		}
		if err := s.gateway.Update(ctx, CollectionServices, a.Service.ID, serviceDoc(a.Service)); err != nil {
			return nil, err
		}
		return a, nil

	case DeleteService:
		if err := s.gateway.Delete(ctx, CollectionServices, a.ID); err != nil {
			return nil, err
		}
		return a, nil

	case UpdateSettings:
		normalizeSettings(&a.Settings, s.ownerID)
		if err := validateSettings(a.Settings); err != nil {
			return nil, err
		}
		if s.state.Settings != nil && s.state.Settings.ID != "" {
			a.Settings.ID = s.state.Settings.ID
			if err := s.gateway.Update(ctx, CollectionSettings, a.Settings.ID, settingsDoc(a.Settings)); err != nil {
				return nil, err
			}
			return a, nil
		}
		id, err := s.gateway.Create(ctx, CollectionSettings, s.ownerID, settingsDoc(a.Settings))
		if err != nil {
			return nil, err
		}
		a.Settings.ID = id
		return a, nil

	case ToggleFavorite:
		var client *models.Client
		for i := range s.state.Clients {
			if s.state.Clients[i].ID == a.ID {
				client = &s.state.Clients[i]
				break
			}
		}
		if client == nil {
			return nil, ErrNotFound
		}
		toggled := *client
		toggled.IsFavorite = !toggled.IsFavorite
		normalizeClient(&toggled, s.ownerID)
		if err := s.gateway.Update(ctx, CollectionClients, a.ID, clientDoc(toggled)); err != nil {
			return nil, err
		}
		return a, nil
	}

	return action, nil
}

func (s *Store) requireExists(ctx context.Context, collection, id string) error {
	ok, err := s.gateway.Exists(ctx, collection, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
