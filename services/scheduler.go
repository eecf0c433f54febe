// Package services holds background jobs that run outside the request
// path.
package services

import (
	"context"
	"fmt"
	"strconv"

	"os"
	"time"

	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Scheduler runs the daily maintenance pass over every account: a
// re-engagement digest texted to the salon owner, and a consistency audit
// of the derived last-visit dates.
type Scheduler struct {
	db       *gorm.DB
	gateway  store.Gateway
	client   *twilio.RestClient
	from     string
	idleDays int
}

func NewScheduler(db *gorm.DB, gateway store.Gateway) *Scheduler {
	idleDays := 60
	if env := os.Getenv("REMINDER_IDLE_DAYS"); env != "" {
		if n, err := strconv.Atoi(env); err == nil && n > 0 {
			idleDays = n
		}
	}

	var client *twilio.RestClient
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	if accountSid != "" && authToken != "" {
		client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})
	}

	return &Scheduler{
		db:       db,
		gateway:  gateway,
		client:   client,
		from:     os.Getenv("TWILIO_PHONE_NUMBER"),
		idleDays: idleDays,
	}
}

// Start schedules the daily run at 9 AM.
func (s *Scheduler) Start() {
	c := cron.New()
	c.AddFunc("0 9 * * *", s.RunDaily)
	c.Start()
	log.Info().Int("idle_days", s.idleDays).Msg("Scheduler started")
}

// RunDaily processes every account in turn.
func (s *Scheduler) RunDaily() {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		log.Error().Err(err).Msg("Failed to fetch accounts")
		return
	}

	for _, user := range users {
		s.processAccount(context.Background(), user.ID.String())
	}
	log.Info().Int("accounts", len(users)).Msg("Daily processing completed")
}

func (s *Scheduler) processAccount(ctx context.Context, ownerID string) {
	clients, services, settings, err := s.loadAccount(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("Failed to load account data")
		return
	}

	s.auditLastVisits(ownerID, clients, services)

	idle := s.idleClients(clients)
	if len(idle) == 0 {
		return
	}
	log.Info().Str("owner", ownerID).Int("idle_clients", len(idle)).Msg("Re-engagement candidates found")

	if s.client == nil || s.from == "" || settings == nil || settings.Phone == "" {
		return
	}
	body := fmt.Sprintf("%s: %d client(s) have not visited in over %d days. Time to reach out!",
		settings.Name, len(idle), s.idleDays)
	s.sendSMS(settings.Phone, body, ownerID)
}

func (s *Scheduler) loadAccount(ctx context.Context, ownerID string) ([]models.Client, []models.Service, *models.SalonSettings, error) {
	records, err := s.gateway.ListByOwner(ctx, store.CollectionClients, ownerID)
	if err != nil {
		return nil, nil, nil, err
	}
	clients := make([]models.Client, 0, len(records))
	for _, rec := range records {
		client, err := store.ClientFromRecord(rec)
		if err != nil {
			return nil, nil, nil, err
		}
		clients = append(clients, client)
	}

	records, err = s.gateway.ListByOwner(ctx, store.CollectionServices, ownerID)
	if err != nil {
		return nil, nil, nil, err
	}
	services := make([]models.Service, 0, len(records))
	for _, rec := range records {
		service, err := store.ServiceFromRecord(rec)
		if err != nil {
			return nil, nil, nil, err
		}
		services = append(services, service)
	}

	var settings *models.SalonSettings
	records, err = s.gateway.ListByOwner(ctx, store.CollectionSettings, ownerID)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(records) > 0 {
		st, err := store.SettingsFromRecord(records[0])
		if err != nil {
			return nil, nil, nil, err
		}
		settings = &st
	}

	return clients, services, settings, nil
}

// auditLastVisits recomputes every derived last-visit date from the
// services collection and logs drift. Stored values are never repaired
// here: a stale value is a symptom worth investigating, not overwriting.
func (s *Scheduler) auditLastVisits(ownerID string, clients []models.Client, services []models.Service) {
	for _, client := range clients {
		expected := store.LatestVisit(services, client.ID, client.LastVisit)
		if expected != client.LastVisit {
			log.Warn().
				Str("owner", ownerID).
				Str("client", client.ID).
				Str("stored", client.LastVisit).
				Str("expected", expected).
				Msg("lastVisit drift detected")
		}
	}
}

func (s *Scheduler) idleClients(clients []models.Client) []models.Client {
	cutoff := time.Now().AddDate(0, 0, -s.idleDays).Format("2006-01-02")
	var idle []models.Client
	for _, client := range clients {
		// Clients with no recorded visit at all have no baseline to age.
		if client.LastVisit != "" && client.LastVisit < cutoff {
			idle = append(idle, client)
		}
	}
	return idle
}

func (s *Scheduler) sendSMS(to, body, ownerID string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Error().Err(err).Str("owner", ownerID).Msg("Failed to send digest SMS")
		return
	}
	log.Info().Str("owner", ownerID).Msg("Digest SMS sent")
}
