// Package nasa wraps the NASA POWER daily-point API, the live weather source
// behind the advisor's field conditions.
package nasa

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://power.larc.nasa.gov"
	dateLayout     = "20060102"

	// POWER parameter codes: 2m air temperature, corrected precipitation,
	// 2m relative humidity.
	powerParameters = "T2M,PRECTOTCORR,RH2M"
)

// Client fetches daily weather aggregates for a point.
type Client interface {
	FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*DailyWeather, error)
}

// DailyWeather is the windowed aggregate the advisor consumes.
type DailyWeather struct {
	TempC        float64
	Humidity     float64
	RainfallMM7d float64
}

// APIClient is the resty-backed POWER implementation.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a POWER API client. An empty baseURL uses the public
// endpoint.
func NewClient(baseURL string) *APIClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{httpClient: restyClient}
}

type powerResponse struct {
	Properties struct {
		Parameter struct {
			T2M         map[string]float64 `json:"T2M"`
			PRECTOTCORR map[string]float64 `json:"PRECTOTCORR"`
			RH2M        map[string]float64 `json:"RH2M"`
		} `json:"parameter"`
	} `json:"properties"`
}

type apiError struct {
	Message string `json:"message"`
}

// FetchDailyWeather queries the POWER API for the given window and reduces it
// to the latest temperature/humidity plus the trailing-week rainfall sum.
func (c *APIClient) FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*DailyWeather, error) {
	result := new(powerResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"parameters": powerParameters,
			"community":  "AG",
			"latitude":   fmt.Sprintf("%.4f", lat),
			"longitude":  fmt.Sprintf("%.4f", lon),
			"start":      start.Format(dateLayout),
			"end":        end.Format(dateLayout),
			"format":     "JSON",
		}).
		SetResult(result).
		SetError(apiErr).
		Get("/api/temporal/daily/point")
	if err != nil {
		return nil, fmt.Errorf("fetch power daily point: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("power api error: code=%d, message=%s", resp.StatusCode(), apiErr.Message)
	}

	weather, err := reduce(result)
	if err != nil {
		return nil, err
	}
	return weather, nil
}

// reduce picks the most recent valid temperature/humidity reading and sums
// rainfall over the last 7 available days. POWER uses -999 for missing data.
func reduce(resp *powerResponse) (*DailyWeather, error) {
	temps := resp.Properties.Parameter.T2M
	if len(temps) == 0 {
		return nil, fmt.Errorf("power response contained no temperature data")
	}

	dates := make([]string, 0, len(temps))
	for date := range temps {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	weather := &DailyWeather{}
	valid := false
	for i := len(dates) - 1; i >= 0; i-- {
		if v := temps[dates[i]]; v > -900 {
			weather.TempC = v
			if h, ok := resp.Properties.Parameter.RH2M[dates[i]]; ok && h > -900 {
				weather.Humidity = h
			}
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("power response contained only missing temperature markers")
	}

	rain := resp.Properties.Parameter.PRECTOTCORR
	from := len(dates) - 7
	if from < 0 {
		from = 0
	}
	for _, date := range dates[from:] {
		if v, ok := rain[date]; ok && v > -900 {
			weather.RainfallMM7d += v
		}
	}

	return weather, nil
}
