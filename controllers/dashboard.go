package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Kevbec/SalonManager/config"
	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

const dashboardCacheTTL = 60 * time.Second

// DashboardOverview aggregates revenue and attendance for one time range.
type DashboardOverview struct {
	Range           string               `json:"range"`
	TotalClients    int                  `json:"totalClients"`
	FavoriteClients int                  `json:"favoriteClients"`
	Revenue         PeriodMetric         `json:"revenue"`
	Attendance      PeriodMetric         `json:"attendance"`
	RevenueSeries   []SeriesPoint        `json:"revenueSeries"`
	TopClients      []ClientSummary      `json:"topClients"`
	TopServiceTypes []ServiceTypeSummary `json:"topServiceTypes"`
}

// PeriodMetric compares the current period against the previous one of the
// same length.
type PeriodMetric struct {
	Current  float64 `json:"current"`
	Previous float64 `json:"previous"`
	Growth   float64 `json:"growth"` // percent, 0 when previous is empty
}

type SeriesPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

type ClientSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type ServiceTypeSummary struct {
	Type    string  `json:"type"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// GetDashboardOverview computes the KPI snapshot for the requested range
// (week, month, year or global). Responses are cached in Redis for a
// minute when a cache is configured.
func GetDashboardOverview(c *gin.Context) {
	userID := currentUserID(c)
	rng := c.DefaultQuery("range", "month")
	switch rng {
	case "week", "month", "year", "global":
	default:
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid range: "+rng)
		return
	}

	cacheKey := fmt.Sprintf("dashboard:%s:%s", userID, rng)
	if config.Redis != nil {
		if cached, err := config.Redis.Get(c.Request.Context(), cacheKey).Bytes(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			return
		}
	}

	s, ok := session(c)
	if !ok {
		return
	}

	overview := buildOverview(s.State(), rng, time.Now())

	if config.Redis != nil {
		if payload, err := json.Marshal(overview); err == nil {
			config.Redis.Set(c.Request.Context(), cacheKey, payload, dashboardCacheTTL)
		}
	}

	c.JSON(http.StatusOK, overview)
}

func buildOverview(state store.AppState, rng string, now time.Time) DashboardOverview {
	overview := DashboardOverview{
		Range:        rng,
		TotalClients: len(state.Clients),
	}
	for _, client := range state.Clients {
		if client.IsFavorite {
			overview.FavoriteClients++
		}
	}

	currentStart, previousStart := periodStarts(now, rng)
	nowStr := now.Format("2006-01-02")

	for _, service := range state.Services {
		switch {
		case rng == "global" || (service.Date >= currentStart && service.Date <= nowStr):
			overview.Revenue.Current += service.Price
			overview.Attendance.Current++
		case service.Date >= previousStart && service.Date < currentStart:
			overview.Revenue.Previous += service.Price
			overview.Attendance.Previous++
		}
	}
	overview.Revenue.Growth = growth(overview.Revenue.Current, overview.Revenue.Previous)
	overview.Attendance.Growth = growth(overview.Attendance.Current, overview.Attendance.Previous)

	overview.RevenueSeries = revenueSeries(state.Services, rng, now)
	overview.TopClients = topClients(state)
	overview.TopServiceTypes = topServiceTypes(state.Services)

	return overview
}

// periodStarts returns the ISO start dates of the current period and of
// the equal-length period before it. Comparison stays on date strings.
func periodStarts(now time.Time, rng string) (string, string) {
	today := utils.BeginningOfDay(now)
	switch rng {
	case "week":
		start := today.AddDate(0, 0, -6)
		return start.Format("2006-01-02"), start.AddDate(0, 0, -7).Format("2006-01-02")
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.Format("2006-01-02"), start.AddDate(0, -1, 0).Format("2006-01-02")
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start.Format("2006-01-02"), start.AddDate(-1, 0, 0).Format("2006-01-02")
	}
	// global: everything is "current"
	return "", ""
}

func growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func revenueSeries(services []models.Service, rng string, now time.Time) []SeriesPoint {
	var points []SeriesPoint

	sumPrefix := func(prefix string) float64 {
		var total float64
		for _, s := range services {
			if len(s.Date) >= len(prefix) && s.Date[:len(prefix)] == prefix {
				total += s.Price
			}
		}
		return total
	}

	switch rng {
	case "week":
		for d := 6; d >= 0; d-- {
			day := now.AddDate(0, 0, -d).Format("2006-01-02")
			points = append(points, SeriesPoint{Label: day, Revenue: sumPrefix(day)})
		}
	case "month":
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for day := first; !day.After(now); day = day.AddDate(0, 0, 1) {
			label := day.Format("2006-01-02")
			points = append(points, SeriesPoint{Label: label, Revenue: sumPrefix(label)})
		}
	case "year":
		for month := 1; month <= 12; month++ {
			label := fmt.Sprintf("%04d-%02d", now.Year(), month)
			points = append(points, SeriesPoint{Label: label, Revenue: sumPrefix(label)})
		}
	case "global":
		byYear := make(map[string]float64)
		for _, s := range services {
			if len(s.Date) >= 4 {
				byYear[s.Date[:4]] += s.Price
			}
		}
		years := make([]string, 0, len(byYear))
		for year := range byYear {
			years = append(years, year)
		}
		sort.Strings(years)
		for _, year := range years {
			points = append(points, SeriesPoint{Label: year, Revenue: byYear[year]})
		}
	}

	return points
}

func topClients(state store.AppState) []ClientSummary {
	byClient := make(map[string]*ClientSummary)
	for _, client := range state.Clients {
		byClient[client.ID] = &ClientSummary{ID: client.ID, Name: client.Name}
	}
	for _, service := range state.Services {
		summary, ok := byClient[service.ClientID]
		if !ok {
			continue // orphaned service
		}
		summary.Visits++
		summary.Spent += service.Price
	}

	summaries := make([]ClientSummary, 0, len(byClient))
	for _, s := range byClient {
		if s.Visits > 0 {
			summaries = append(summaries, *s)
		}
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Spent > summaries[j].Spent
	})
	if len(summaries) > 5 {
		summaries = summaries[:5]
	}
	return summaries
}

func topServiceTypes(services []models.Service) []ServiceTypeSummary {
	byType := make(map[string]*ServiceTypeSummary)
	for _, service := range services {
		for _, t := range service.Types {
			summary, ok := byType[string(t)]
			if !ok {
				summary = &ServiceTypeSummary{Type: string(t)}
				byType[string(t)] = summary
			}
			summary.Count++
			summary.Revenue += service.Price
		}
	}

	summaries := make([]ServiceTypeSummary, 0, len(byType))
	for _, s := range byType {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Count > summaries[j].Count
	})
	if len(summaries) > 5 {
		summaries = summaries[:5]
	}
	return summaries
}
