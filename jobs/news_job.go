package jobs

import (
	"log"

	"github.com/athlixir/athlixir_backend/services"
)

// RefreshNewsCache re-warms the trending sports news cache.
func RefreshNewsCache() {
	log.Println("Running job: RefreshNewsCache...")
	services.RefreshTrendingNews()
}
