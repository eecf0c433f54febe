package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Kevbec/SalonManager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "4c2f8f9a-0000-0000-0000-000000000001"

func newLoadedStore(t *testing.T) (*Store, *MemoryStore) {
	t.Helper()
	gw := NewMemoryStore()
	s := New(gw, owner)
	require.NoError(t, s.Load(context.Background()))
	return s, gw
}

func TestDispatchWithoutUserFails(t *testing.T) {
	s := New(NewMemoryStore(), "")

	_, err := s.Dispatch(context.Background(), AddClient{Client: client("", "Alice")})

	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, s.State().Clients)
}

func TestLoadCreatesDefaultSettings(t *testing.T) {
	s, gw := newLoadedStore(t)

	state := s.State()
	require.NotNil(t, state.Settings)
	assert.Equal(t, "MonSalon", state.Settings.Name)
	assert.Equal(t, owner, state.Settings.UserID)
	assert.NotEmpty(t, state.Settings.ID)
	assert.False(t, state.Loading)

	// A second load reuses the stored record instead of creating another.
	s2 := New(gw, owner)
	require.NoError(t, s2.Load(context.Background()))
	assert.Equal(t, state.Settings.ID, s2.State().Settings.ID)
}

func TestAddClientPersistsThenApplies(t *testing.T) {
	s, gw := newLoadedStore(t)

	applied, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "  Alice  ",
		Type: models.ClientTypeFemme,
	}})
	require.NoError(t, err)

	created := applied.(AddClient).Client
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, owner, created.UserID)
	assert.Equal(t, "Alice", created.Name)
	assert.NotEmpty(t, created.CreatedAt)

	state := s.State()
	require.Len(t, state.Clients, 1)
	assert.Equal(t, created.ID, state.Clients[0].ID)

	records, err := gw.ListByOwner(context.Background(), CollectionClients, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Alice", records[0].Data["name"])
}

func TestAddClientGatewayFailureLeavesStateUntouched(t *testing.T) {
	s, gw := newLoadedStore(t)

	gw.FailNext = errors.New("gateway unavailable")
	_, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "Alice",
		Type: models.ClientTypeFemme,
	}})

	require.Error(t, err)
	state := s.State()
	assert.Empty(t, state.Clients)
	assert.Equal(t, "gateway unavailable", state.Err)
}

func TestValidationRejectedBeforeGateway(t *testing.T) {
	s, gw := newLoadedStore(t)
	writes := gw.Writes

	_, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "Alice",
		Type: "martien",
	}})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, writes, gw.Writes)
	// Validation failures are caller errors, not process-wide ones.
	assert.Empty(t, s.State().Err)
}

func TestUpdateClientRequiresExistingDocument(t *testing.T) {
	s, _ := newLoadedStore(t)

	_, err := s.Dispatch(context.Background(), UpdateClient{Client: models.Client{
		ID:   "missing",
		Name: "Alice",
		Type: models.ClientTypeFemme,
	}})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddServiceRecomputesLastVisitAndPersists(t *testing.T) {
	s, gw := newLoadedStore(t)

	applied, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "Alice",
		Type: models.ClientTypeFemme,
	}})
	require.NoError(t, err)
	clientID := applied.(AddClient).Client.ID

	_, err = s.Dispatch(context.Background(), AddService{Service: models.Service{
		ClientID: clientID,
		Types:    []models.ServiceType{models.ServiceCoupe},
		Price:    35,
		Date:     "2024-03-15",
	}})
	require.NoError(t, err)

	state := s.State()
	require.Len(t, state.Services, 1)
	assert.Equal(t, "2024-03-15", state.Clients[0].LastVisit)
	assert.Equal(t, "coupe", state.Services[0].Name)

	records, err := gw.ListByOwner(context.Background(), CollectionServices, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	// Absent optionals are stored as explicit nulls.
	assert.Nil(t, records[0].Data["duration"])
	assert.Nil(t, records[0].Data["products"])
}

func TestAddServiceValidation(t *testing.T) {
	s, _ := newLoadedStore(t)

	cases := []models.Service{
		{Types: []models.ServiceType{models.ServiceCoupe}, Price: 30, Date: "2024-03-15"}, // no client
		{ClientID: "c1", Price: 30, Date: "2024-03-15"},                                   // no types
		{ClientID: "c1", Types: []models.ServiceType{models.ServiceCoupe}, Price: -1, Date: "2024-03-15"},
		{ClientID: "c1", Types: []models.ServiceType{"tatouage"}, Price: 30, Date: "2024-03-15"},
	}
	for _, svc := range cases {
		_, err := s.Dispatch(context.Background(), AddService{Service: svc})
		assert.True(t, IsValidation(err), "expected validation error for %+v", svc)
	}
	assert.Empty(t, s.State().Services)
}

func TestUpdateSettingsReplacesStoredRecord(t *testing.T) {
	s, gw := newLoadedStore(t)
	originalID := s.State().Settings.ID

	applied, err := s.Dispatch(context.Background(), UpdateSettings{Settings: models.SalonSettings{
		Name:       "Salon Lumiere",
		Address:    "3 rue des Fleurs",
		City:       "Lyon",
		PostalCode: "69001",
		Phone:      "0478123456",
	}})
	require.NoError(t, err)

	updated := applied.(UpdateSettings).Settings
	assert.Equal(t, originalID, updated.ID)
	assert.Equal(t, "Salon Lumiere", s.State().Settings.Name)

	records, err := gw.ListByOwner(context.Background(), CollectionSettings, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Salon Lumiere", records[0].Data["name"])
}

func TestUpdateSettingsValidation(t *testing.T) {
	s, _ := newLoadedStore(t)

	_, err := s.Dispatch(context.Background(), UpdateSettings{Settings: models.SalonSettings{
		Name:  "Salon",
		Phone: "04-78-12-34-56",
	}})
	assert.True(t, IsValidation(err))

	_, err = s.Dispatch(context.Background(), UpdateSettings{Settings: models.SalonSettings{
		Name:       "Salon",
		PostalCode: "69 001",
	}})
	assert.True(t, IsValidation(err))
}

func TestToggleFavoritePersists(t *testing.T) {
	s, gw := newLoadedStore(t)

	applied, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "Alice",
		Type: models.ClientTypeFemme,
	}})
	require.NoError(t, err)
	clientID := applied.(AddClient).Client.ID

	_, err = s.Dispatch(context.Background(), ToggleFavorite{ID: clientID})
	require.NoError(t, err)
	assert.True(t, s.State().Clients[0].IsFavorite)

	records, err := gw.ListByOwner(context.Background(), CollectionClients, owner)
	require.NoError(t, err)
	assert.Equal(t, true, records[0].Data["isFavorite"])

	_, err = s.Dispatch(context.Background(), ToggleFavorite{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteClientKeepsOrphanedServices(t *testing.T) {
	s, _ := newLoadedStore(t)

	applied, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name: "Alice",
		Type: models.ClientTypeFemme,
	}})
	require.NoError(t, err)
	clientID := applied.(AddClient).Client.ID

	_, err = s.Dispatch(context.Background(), AddService{Service: models.Service{
		ClientID: clientID,
		Types:    []models.ServiceType{models.ServiceCoupe},
		Price:    35,
		Date:     "2024-03-15",
	}})
	require.NoError(t, err)

	_, err = s.Dispatch(context.Background(), DeleteClient{ID: clientID})
	require.NoError(t, err)

	state := s.State()
	assert.Empty(t, state.Clients)
	require.Len(t, state.Services, 1)
	assert.Equal(t, clientID, state.Services[0].ClientID)
}

func TestLoadRoundTripsDocuments(t *testing.T) {
	s, gw := newLoadedStore(t)

	_, err := s.Dispatch(context.Background(), AddClient{Client: models.Client{
		Name:  "Alice",
		Type:  models.ClientTypeFemme,
		Notes: "cheveux longs",
	}})
	require.NoError(t, err)
	_, err = s.Dispatch(context.Background(), AddService{Service: models.Service{
		ClientID: s.State().Clients[0].ID,
		Types:    []models.ServiceType{models.ServiceCoupe, models.ServiceBrushing},
		Price:    42.5,
		Date:     "2024-03-15",
		Duration: 45,
	}})
	require.NoError(t, err)

	fresh := New(gw, owner)
	require.NoError(t, fresh.Load(context.Background()))

	state := fresh.State()
	require.Len(t, state.Clients, 1)
	assert.Equal(t, "Alice", state.Clients[0].Name)
	assert.Equal(t, "cheveux longs", state.Clients[0].Notes)
	require.Len(t, state.Services, 1)
	assert.Equal(t, 42.5, state.Services[0].Price)
	assert.Equal(t, 45, state.Services[0].Duration)
	assert.Equal(t, []models.ServiceType{models.ServiceCoupe, models.ServiceBrushing}, state.Services[0].Types)
}

func TestManagerSessionLifecycle(t *testing.T) {
	gw := NewMemoryStore()
	m := NewManager(gw)

	_, err := m.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	s1, err := m.Get(context.Background(), owner)
	require.NoError(t, err)
	s2, err := m.Get(context.Background(), owner)
	require.NoError(t, err)
	assert.Same(t, s1, s2)

	m.Drop(owner)
	s3, err := m.Get(context.Background(), owner)
	require.NoError(t, err)
	assert.NotSame(t, s1, s3)
}
