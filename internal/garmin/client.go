package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"macrolog/pkg/logging"
)

const (
	// DefaultDomain is the Garmin domain used when none is configured.
	// Chinese accounts use garmin.cn instead.
	DefaultDomain = "garmin.com"

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// userAgent matches the Connect mobile client. The nutrition endpoints
	// reject requests with unknown user agents.
	userAgent = "com.garmin.android.apps.connectmobile"
)

// Connect API paths for the nutrition service.
const (
	pathMealDefinitions = "/nutrition-service/nutrition/mealDefinitions"
	pathDailyLog        = "/nutrition-service/nutrition/log"
	pathSettings        = "/nutrition-service/nutrition/settings"
	pathFoodSearch      = "/nutrition-service/food/search"
	pathRecentFoods     = "/nutrition-service/food/recent"
	pathFavorites       = "/nutrition-service/food/favorites"
	pathCustomFoods     = "/nutrition-service/food/custom"
	pathCustomMeals     = "/nutrition-service/meal/custom"
	pathFoodLog         = "/nutrition-service/foodlog"
	pathQuickAdd        = "/nutrition-service/foodlog/quick"
)

// Config holds the connection settings for the Connect API client.
type Config struct {
	// Domain is the Garmin domain, e.g. "garmin.com" or "garmin.cn".
	Domain string

	// TokenFile is the path of the OAuth2 token file written by the login flow.
	TokenFile string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// Client is a typed REST client for the Garmin Connect nutrition API.
// Every call performs a single attempt; failures surface as errors and
// nothing is cached or retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     oauth2.TokenSource
}

// ClientOption configures the Connect client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTokenSource sets a custom token source. The default reads the
// configured token file.
func WithTokenSource(src oauth2.TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = src
	}
}

// WithBaseURL overrides the API base URL. Intended for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a Connect API client for the given configuration.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	domain := cfg.Domain
	if domain == "" {
		domain = DefaultDomain
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultHTTPTimeout
	}

	c := &Client{
		baseURL:    "https://connectapi." + domain,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     NewFileTokenSource(cfg.TokenFile),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MealDefinitions fetches the user's meal definition list. An empty day
// defaults to today.
func (c *Client) MealDefinitions(ctx context.Context, day string) ([]Meal, error) {
	query := url.Values{"date": {orToday(day)}}

	var meals []Meal
	if err := c.do(ctx, http.MethodGet, pathMealDefinitions, query, nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

// DailyLog fetches the full nutrition log for a day.
func (c *Client) DailyLog(ctx context.Context, day string) (*DailyFoodLog, error) {
	var log DailyFoodLog
	if err := c.do(ctx, http.MethodGet, pathDailyLog+"/"+url.PathEscape(orToday(day)), nil, nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// Settings fetches the user's nutrition settings. An empty day defaults
// to today.
func (c *Client) Settings(ctx context.Context, day string) (*Settings, error) {
	query := url.Values{"date": {orToday(day)}}

	var settings Settings
	if err := c.do(ctx, http.MethodGet, pathSettings, query, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SearchFoods searches the Connect food database.
func (c *Client) SearchFoods(ctx context.Context, query string, start, limit int) (*SearchResults, error) {
	params := pageQuery(query, start, limit)

	var results SearchResults
	if err := c.do(ctx, http.MethodGet, pathFoodSearch, params, nil, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// RecentFoods fetches the frequently and recently logged foods for a meal.
// An empty day defaults to today.
func (c *Client) RecentFoods(ctx context.Context, mealID int, day string) (*RecentFoods, error) {
	query := url.Values{
		"mealId": {strconv.Itoa(mealID)},
		"date":   {orToday(day)},
	}

	var recent RecentFoods
	if err := c.do(ctx, http.MethodGet, pathRecentFoods, query, nil, &recent); err != nil {
		return nil, err
	}
	return &recent, nil
}

// FavoriteFoods lists the user's favorite foods, optionally filtered.
func (c *Client) FavoriteFoods(ctx context.Context, query string, start, limit int) (*FavoriteFoodList, error) {
	params := pageQuery(query, start, limit)

	var favorites FavoriteFoodList
	if err := c.do(ctx, http.MethodGet, pathFavorites, params, nil, &favorites); err != nil {
		return nil, err
	}
	return &favorites, nil
}

// AddFavorite stars a food.
func (c *Client) AddFavorite(ctx context.Context, req FavoriteRequest) error {
	return c.do(ctx, http.MethodPost, pathFavorites, nil, req, nil)
}

// RemoveFavorite unstars a food.
func (c *Client) RemoveFavorite(ctx context.Context, foodID string) error {
	return c.do(ctx, http.MethodDelete, pathFavorites+"/"+url.PathEscape(foodID), nil, nil, nil)
}

// CustomFoods lists the user's custom foods, optionally filtered.
func (c *Client) CustomFoods(ctx context.Context, query string, start, limit int) (*CustomFoodList, error) {
	params := pageQuery(query, start, limit)

	var foods CustomFoodList
	if err := c.do(ctx, http.MethodGet, pathCustomFoods, params, nil, &foods); err != nil {
		return nil, err
	}
	return &foods, nil
}

// CreateCustomFood creates a custom food and returns it as the service
// stored it.
func (c *Client) CreateCustomFood(ctx context.Context, req CustomFoodRequest) (*FoodItem, error) {
	var created FoodItem
	if err := c.do(ctx, http.MethodPost, pathCustomFoods, nil, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteCustomFood deletes a custom food.
func (c *Client) DeleteCustomFood(ctx context.Context, foodID string) error {
	return c.do(ctx, http.MethodDelete, pathCustomFoods+"/"+url.PathEscape(foodID), nil, nil, nil)
}

// CustomMeals lists the user's custom meals, optionally filtered.
func (c *Client) CustomMeals(ctx context.Context, query string, start, limit int) (*CustomMealList, error) {
	params := pageQuery(query, start, limit)

	var meals CustomMealList
	if err := c.do(ctx, http.MethodGet, pathCustomMeals, params, nil, &meals); err != nil {
		return nil, err
	}
	return &meals, nil
}

// CreateCustomMeal creates a custom meal from food entries in the
// service's camelCase format. The entries are sent as provided, without
// reshaping.
func (c *Client) CreateCustomMeal(ctx context.Context, name string, foods []interface{}) (*CustomMealDetail, error) {
	body := map[string]interface{}{
		"name":  name,
		"foods": foods,
	}

	var created CustomMealDetail
	if err := c.do(ctx, http.MethodPost, pathCustomMeals, nil, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// AddFoodLog logs a food to a meal and returns the updated daily log.
func (c *Client) AddFoodLog(ctx context.Context, entry FoodLogEntry) (*DailyFoodLog, error) {
	var log DailyFoodLog
	if err := c.do(ctx, http.MethodPost, pathFoodLog, nil, entry, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// UpdateFoodLog updates an existing food log entry and returns the
// updated daily log.
func (c *Client) UpdateFoodLog(ctx context.Context, entry FoodLogEntry) (*DailyFoodLog, error) {
	path := pathFoodLog + "/" + url.PathEscape(entry.LogID)

	var log DailyFoodLog
	if err := c.do(ctx, http.MethodPut, path, nil, entry, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// RemoveFoodLog removes the given log entries from a day's log.
func (c *Client) RemoveFoodLog(ctx context.Context, day string, logIDs []string) error {
	query := url.Values{"logIds": logIDs}
	return c.do(ctx, http.MethodDelete, pathFoodLog+"/"+url.PathEscape(day), query, nil, nil)
}

// QuickAdd logs a calorie/macro entry without a food database reference
// and returns the updated daily log.
func (c *Client) QuickAdd(ctx context.Context, entry QuickAddEntry) (*DailyFoodLog, error) {
	var log DailyFoodLog
	if err := c.do(ctx, http.MethodPost, pathQuickAdd, nil, entry, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// do performs a single authenticated request against the Connect API and
// decodes the JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}
	token.SetAuthHeader(req)

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("Garmin", "%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// pageQuery builds the shared query/start/limit parameter set of the
// listing endpoints.
func pageQuery(query string, start, limit int) url.Values {
	return url.Values{
		"query": {query},
		"start": {strconv.Itoa(start)},
		"limit": {strconv.Itoa(limit)},
	}
}

// orToday substitutes today's date for an empty day argument, matching
// the Connect app's behavior of defaulting date-scoped reads to today.
func orToday(day string) string {
	if day == "" {
		return time.Now().Format("2006-01-02")
	}
	return day
}
