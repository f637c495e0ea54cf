package services

import (
	"sync"
	"time"

	"github.com/athlixir/athlixir_backend/database"
	"github.com/athlixir/athlixir_backend/models"
)

type AthleteStatsResponse struct {
	TotalAchievements int `json:"total_achievements"`
	GoldMedals        int `json:"gold_medals"`
	SilverMedals      int `json:"silver_medals"`
	BronzeMedals      int `json:"bronze_medals"`
	CareerHighlights  int `json:"career_highlights"`
	PersonalBests     int `json:"personal_bests"`
}

const statsCacheTTL = 5 * time.Minute

type cachedStats struct {
	stats     AthleteStatsResponse
	fetchedAt time.Time
}

var (
	statsCache   = make(map[string]cachedStats)
	statsCacheMu sync.RWMutex
)

// AthleteStats tallies an athlete's achievements, serving repeat requests
// from a per-email cache for up to five minutes.
func AthleteStats(email string) (AthleteStatsResponse, error) {
	statsCacheMu.RLock()
	if entry, ok := statsCache[email]; ok && time.Since(entry.fetchedAt) < statsCacheTTL {
		statsCacheMu.RUnlock()
		return entry.stats, nil
	}
	statsCacheMu.RUnlock()

	var achievements []models.Achievement
	if err := database.DB.Where("athlete_email = ?", email).Find(&achievements).Error; err != nil {
		return AthleteStatsResponse{}, err
	}

	var stats AthleteStatsResponse
	stats.TotalAchievements = len(achievements)
	for _, a := range achievements {
		switch a.MedalType {
		case "gold":
			stats.GoldMedals++
		case "silver":
			stats.SilverMedals++
		case "bronze":
			stats.BronzeMedals++
		}
		if a.IsCareerHighlight {
			stats.CareerHighlights++
		}
		if a.IsPersonalBest {
			stats.PersonalBests++
		}
	}

	statsCacheMu.Lock()
	statsCache[email] = cachedStats{stats: stats, fetchedAt: time.Now()}
	statsCacheMu.Unlock()

	return stats, nil
}

// InvalidateAthleteStats drops the cached tallies after an achievement write.
func InvalidateAthleteStats(email string) {
	statsCacheMu.Lock()
	delete(statsCache, email)
	statsCacheMu.Unlock()
}
