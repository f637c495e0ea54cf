package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	config "github.com/athlixir/athlixir_backend/configs"
)

const newsAPIBase = "https://newsapi.org/v2"

const newsCacheTTL = 10 * time.Minute

// NewsResponse mirrors the NewsAPI envelope the frontend consumes.
type NewsResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []NewsArticle `json:"articles"`
}

type NewsArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      *string `json:"author"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         string  `json:"url"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt string  `json:"publishedAt"`
	Content     *string `json:"content"`
}

type cachedNews struct {
	response  NewsResponse
	fetchedAt time.Time
}

var (
	newsCache   = make(map[string]cachedNews)
	newsCacheMu sync.RWMutex
)

var newsHTTPClient = &http.Client{Timeout: 10 * time.Second}

// SearchNews proxies NewsAPI's /everything endpoint with a short TTL cache
// keyed on the full query.
func SearchNews(query string, page, pageSize int) (NewsResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("page", fmt.Sprint(page))
	params.Set("pageSize", fmt.Sprint(pageSize))
	return fetchNews("/everything", params)
}

// TrendingNews proxies NewsAPI's sports top-headlines.
func TrendingNews(pageSize int) (NewsResponse, error) {
	params := url.Values{}
	params.Set("category", "sports")
	params.Set("language", "en")
	params.Set("pageSize", fmt.Sprint(pageSize))
	return fetchNews("/top-headlines", params)
}

// RefreshTrendingNews warms the trending cache. Wired to a cron schedule so
// the dashboard's first paint never waits on the upstream API.
func RefreshTrendingNews() {
	newsCacheMu.Lock()
	for key := range newsCache {
		delete(newsCache, key)
	}
	newsCacheMu.Unlock()

	if _, err := TrendingNews(5); err != nil {
		log.Printf("Error refreshing trending news cache: %v", err)
		return
	}
	log.Println("Successfully refreshed trending news cache.")
}

func fetchNews(endpoint string, params url.Values) (NewsResponse, error) {
	cacheKey := endpoint + "?" + params.Encode()

	newsCacheMu.RLock()
	if entry, ok := newsCache[cacheKey]; ok && time.Since(entry.fetchedAt) < newsCacheTTL {
		newsCacheMu.RUnlock()
		return entry.response, nil
	}
	newsCacheMu.RUnlock()

	apiKey := config.Config("NEWS_API_KEY")
	if apiKey == "" {
		return NewsResponse{}, fmt.Errorf("news API key not configured")
	}
	params.Set("apiKey", apiKey)

	resp, err := newsHTTPClient.Get(newsAPIBase + endpoint + "?" + params.Encode())
	if err != nil {
		return NewsResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewsResponse{}, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var data NewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return NewsResponse{}, err
	}
	if data.Status != "ok" {
		return NewsResponse{}, fmt.Errorf("news API returned an error")
	}

	newsCacheMu.Lock()
	newsCache[cacheKey] = cachedNews{response: data, fetchedAt: time.Now()}
	newsCacheMu.Unlock()

	return data, nil
}
