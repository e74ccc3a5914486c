package handlers

import (
	"time"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/timezone"
)

// Datas chegam como "YYYY-MM-DD" e são calendário local da barbearia —
// parse sempre no fuso dela, nunca em UTC.

func locationFromShop(shop *models.Barbershop) *time.Location {
	if shop == nil {
		return timezone.Location("")
	}
	return timezone.Location(shop.Timezone)
}

func parseDateInShop(shop *models.Barbershop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}
