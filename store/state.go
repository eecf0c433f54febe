package store

import "github.com/Kevbec/SalonManager/models"

// AppState is the in-memory snapshot for one authenticated session.
type AppState struct {
	Clients  []models.Client
	Services []models.Service
	Settings *models.SalonSettings
	Loading  bool
	Err      string
}

// Action is one state transition, applied by Reduce.
type Action interface{ isAction() }

type (
	// SetLoading flips the loading flag.
	SetLoading struct{ Loading bool }
	// SetError records (or clears) the process-wide error message.
	SetError struct{ Message string }
	// SetClients replaces the roster wholesale, after an initial load.
	SetClients struct{ Clients []models.Client }
	// SetServices replaces the service history wholesale.
	SetServices struct{ Services []models.Service }
	// SetSettings replaces the settings record.
	SetSettings struct{ Settings models.SalonSettings }
	// AddClient appends a new client.
	AddClient struct{ Client models.Client }
	// UpdateClient replaces the client with the matching id.
	UpdateClient struct{ Client models.Client }
	// DeleteClient removes the client with the matching id. Services
	// referencing it are left untouched (no cascade).
	DeleteClient struct{ ID string }
	// AddService appends a service and recomputes the owning client's
	// last visit.
	AddService struct{ Service models.Service }
	// UpdateService replaces the service with the matching id and
	// recomputes every client's last visit.
	UpdateService struct{ Service models.Service }
	// DeleteService removes the service with the matching id and
	// recomputes every client's last visit.
	DeleteService struct{ ID string }
	// UpdateSettings replaces the settings record.
	UpdateSettings struct{ Settings models.SalonSettings }
	// ToggleFavorite flips isFavorite on the client with the matching id.
	ToggleFavorite struct{ ID string }
)

func (SetLoading) isAction()     {}
func (SetError) isAction()       {}
func (SetClients) isAction()     {}
func (SetServices) isAction()    {}
func (SetSettings) isAction()    {}
func (AddClient) isAction()      {}
func (UpdateClient) isAction()   {}
func (DeleteClient) isAction()   {}
func (AddService) isAction()     {}
func (UpdateService) isAction()  {}
func (DeleteService) isAction()  {}
func (UpdateSettings) isAction() {}
func (ToggleFavorite) isAction() {}

// Reduce applies one transition and returns the new state. Pure: the input
// state and its slices are never mutated in place, so snapshots handed out
// earlier stay valid.
func Reduce(state AppState, action Action) AppState {
	switch a := action.(type) {
	case SetLoading:
		state.Loading = a.Loading

	case SetError:
		state.Err = a.Message

	case SetClients:
		state.Clients = a.Clients

	case SetServices:
		state.Services = a.Services

	case SetSettings:
		settings := a.Settings
		state.Settings = &settings

	case AddClient:
		state.Clients = append(cloneClients(state.Clients), a.Client)

	case UpdateClient:
		clients := cloneClients(state.Clients)
		for i := range clients {
			if clients[i].ID == a.Client.ID {
				clients[i] = a.Client
			}
		}
		state.Clients = clients

	case DeleteClient:
		clients := make([]models.Client, 0, len(state.Clients))
		for _, c := range state.Clients {
			if c.ID != a.ID {
				clients = append(clients, c)
			}
		}
		state.Clients = clients

	case AddService:
		services := append(cloneServices(state.Services), a.Service)
		clients := cloneClients(state.Clients)
		for i := range clients {
			if clients[i].ID == a.Service.ClientID {
				clients[i].LastVisit = LatestVisit(services, clients[i].ID, clients[i].LastVisit)
			}
		}
		state.Services = services
		state.Clients = clients

	case UpdateService:
		services := cloneServices(state.Services)
		for i := range services {
			if services[i].ID == a.Service.ID {
				services[i] = a.Service
			}
		}
		state.Services = services
		state.Clients = recomputeAll(state.Clients, services)

	case DeleteService:
		services := make([]models.Service, 0, len(state.Services))
		for _, s := range state.Services {
			if s.ID != a.ID {
				services = append(services, s)
			}
		}
		state.Services = services
		state.Clients = recomputeAll(state.Clients, services)

	case UpdateSettings:
		settings := a.Settings
		state.Settings = &settings

	case ToggleFavorite:
		clients := cloneClients(state.Clients)
		for i := range clients {
			if clients[i].ID == a.ID {
				clients[i].IsFavorite = !clients[i].IsFavorite
			}
		}
		state.Clients = clients
	}

	return state
}

// LatestVisit returns the greatest service date for the client, or the
// fallback when the client has no services at all. The fallback keeps a
// client's last visit sticky once every service is gone; that is how the
// application has always displayed history and is pinned by tests.
// Lexicographic comparison is exact for zero-padded ISO dates.
func LatestVisit(services []models.Service, clientID, fallback string) string {
	best := ""
	for _, s := range services {
		if s.ClientID == clientID && s.Date > best {
			best = s.Date
		}
	}
	if best == "" {
		return fallback
	}
	return best
}

// recomputeAll refreshes every client's last visit. Update and delete
// recompute the whole roster rather than just the owning client; the
// visible result is identical since a service never changes owner.
func recomputeAll(clients []models.Client, services []models.Service) []models.Client {
	out := cloneClients(clients)
	for i := range out {
		out[i].LastVisit = LatestVisit(services, out[i].ID, out[i].LastVisit)
	}
	return out
}

func cloneClients(clients []models.Client) []models.Client {
	out := make([]models.Client, len(clients))
	copy(out, clients)
	return out
}

func cloneServices(services []models.Service) []models.Service {
	out := make([]models.Service, len(services))
	copy(out, services)
	return out
}
