package csvio

import (
	"strconv"
	"strings"

	"github.com/Kevbec/SalonManager/models"
)

// Export headers mirror the import schemas so an exported file can be fed
// straight back through Parse.
var (
	clientExportHeaders  = []string{"id", "nom", "type", "notes", "derniere_visite", "favori"}
	serviceExportHeaders = []string{"id", "client_id", "types", "prix", "date", "duree", "produits", "notes"}
)

// ExportClients renders the roster as CSV: header row plus one
// double-quoted, comma-joined row per client, favorite as oui/non.
func ExportClients(clients []models.Client) string {
	lines := make([]string, 0, len(clients)+1)
	lines = append(lines, strings.Join(clientExportHeaders, ","))
	for _, c := range clients {
		favorite := "non"
		if c.IsFavorite {
			favorite = "oui"
		}
		lines = append(lines, quoteRow([]string{
			c.ID,
			c.Name,
			string(c.Type),
			c.Notes,
			c.LastVisit,
			favorite,
		}))
	}
	return strings.Join(lines, "\n")
}

// ExportServices renders service history as CSV, types comma-joined in a
// single quoted cell and an empty cell for unrecorded durations.
func ExportServices(services []models.Service) string {
	lines := make([]string, 0, len(services)+1)
	lines = append(lines, strings.Join(serviceExportHeaders, ","))
	for _, s := range services {
		duration := ""
		if s.Duration > 0 {
			duration = strconv.Itoa(s.Duration)
		}
		lines = append(lines, quoteRow([]string{
			s.ID,
			s.ClientID,
			models.JoinServiceTypes(s.Types),
			strconv.FormatFloat(s.Price, 'f', -1, 64),
			s.Date,
			duration,
			s.Products,
			s.Notes,
		}))
	}
	return strings.Join(lines, "\n")
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + cell + `"`
	}
	return strings.Join(quoted, ",")
}
