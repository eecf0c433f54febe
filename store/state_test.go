package store

import (
	"testing"

	"github.com/Kevbec/SalonManager/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func client(id, name string) models.Client {
	return models.Client{ID: id, Name: name, Type: models.ClientTypeFemme}
}

func service(id, clientID, date string, price float64) models.Service {
	return models.Service{
		ID:       id,
		ClientID: clientID,
		Types:    []models.ServiceType{models.ServiceCoupe},
		Price:    price,
		Date:     date,
	}
}

func TestReduceAddServiceUpdatesOwningClientLastVisit(t *testing.T) {
	state := AppState{
		Clients: []models.Client{client("c1", "Alice"), client("c2", "Bob")},
	}

	state = Reduce(state, AddService{Service: service("s1", "c1", "2024-03-15", 35)})

	assert.Equal(t, "2024-03-15", state.Clients[0].LastVisit)
	assert.Equal(t, "", state.Clients[1].LastVisit)

	// An older service never regresses the derived date.
	state = Reduce(state, AddService{Service: service("s2", "c1", "2024-01-02", 20)})
	assert.Equal(t, "2024-03-15", state.Clients[0].LastVisit)

	state = Reduce(state, AddService{Service: service("s3", "c1", "2024-06-01", 40)})
	assert.Equal(t, "2024-06-01", state.Clients[0].LastVisit)
}

func TestReduceUpdateServiceRecomputesAllClients(t *testing.T) {
	state := AppState{
		Clients: []models.Client{client("c1", "Alice"), client("c2", "Bob")},
		Services: []models.Service{
			service("s1", "c1", "2024-03-15", 35),
			service("s2", "c2", "2024-02-01", 20),
		},
	}
	state = Reduce(state, SetClients{Clients: recomputeAll(state.Clients, state.Services)})

	updated := service("s1", "c1", "2024-05-20", 35)
	state = Reduce(state, UpdateService{Service: updated})

	assert.Equal(t, "2024-05-20", state.Clients[0].LastVisit)
	assert.Equal(t, "2024-02-01", state.Clients[1].LastVisit)
}

func TestReduceDeleteServiceFallsBackToNextMostRecent(t *testing.T) {
	state := AppState{
		Clients: []models.Client{client("c1", "Alice")},
	}
	state = Reduce(state, AddService{Service: service("s1", "c1", "2024-03-15", 35)})
	state = Reduce(state, AddService{Service: service("s2", "c1", "2024-06-01", 40)})
	require.Equal(t, "2024-06-01", state.Clients[0].LastVisit)

	state = Reduce(state, DeleteService{ID: "s2"})

	assert.Equal(t, "2024-03-15", state.Clients[0].LastVisit)
}

// Regression: once every service is gone the previous lastVisit value
// stays in place. History display depends on this; do not "fix" it.
func TestReduceLastVisitStickyWhenAllServicesRemoved(t *testing.T) {
	state := AppState{
		Clients: []models.Client{client("c1", "Alice")},
	}
	state = Reduce(state, AddService{Service: service("s1", "c1", "2024-03-15", 35)})
	require.Equal(t, "2024-03-15", state.Clients[0].LastVisit)

	state = Reduce(state, DeleteService{ID: "s1"})

	assert.Empty(t, state.Services)
	assert.Equal(t, "2024-03-15", state.Clients[0].LastVisit)
}

func TestReduceDeleteClientLeavesServicesOrphaned(t *testing.T) {
	state := AppState{
		Clients: []models.Client{client("c1", "Alice"), client("c2", "Bob")},
		Services: []models.Service{
			service("s1", "c1", "2024-03-15", 35),
			service("s2", "c2", "2024-02-01", 20),
		},
	}

	state = Reduce(state, DeleteClient{ID: "c1"})

	require.Len(t, state.Clients, 1)
	assert.Equal(t, "c2", state.Clients[0].ID)
	require.Len(t, state.Services, 2)
	assert.Equal(t, "c1", state.Services[0].ClientID)
}

func TestReduceUpdateAndToggle(t *testing.T) {
	state := AppState{Clients: []models.Client{client("c1", "Alice")}}

	renamed := client("c1", "Alicia")
	state = Reduce(state, UpdateClient{Client: renamed})
	assert.Equal(t, "Alicia", state.Clients[0].Name)

	state = Reduce(state, ToggleFavorite{ID: "c1"})
	assert.True(t, state.Clients[0].IsFavorite)
	state = Reduce(state, ToggleFavorite{ID: "c1"})
	assert.False(t, state.Clients[0].IsFavorite)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	original := AppState{
		Clients:  []models.Client{client("c1", "Alice")},
		Services: []models.Service{service("s1", "c1", "2024-03-15", 35)},
	}

	_ = Reduce(original, AddService{Service: service("s2", "c1", "2024-06-01", 40)})
	_ = Reduce(original, ToggleFavorite{ID: "c1"})
	_ = Reduce(original, DeleteService{ID: "s1"})

	assert.Equal(t, "", original.Clients[0].LastVisit)
	assert.False(t, original.Clients[0].IsFavorite)
	require.Len(t, original.Services, 1)
}

func TestLatestVisit(t *testing.T) {
	services := []models.Service{
		service("s1", "c1", "2024-03-15", 35),
		service("s2", "c1", "2024-06-01", 40),
		service("s3", "c2", "2024-07-04", 25),
	}

	assert.Equal(t, "2024-06-01", LatestVisit(services, "c1", ""))
	assert.Equal(t, "2024-07-04", LatestVisit(services, "c2", ""))
	assert.Equal(t, "2020-01-01", LatestVisit(services, "c3", "2020-01-01"))
	assert.Equal(t, "", LatestVisit(nil, "c1", ""))
}
