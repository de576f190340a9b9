package nasa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func powerResp(temps, rain, hum map[string]float64) *powerResponse {
	resp := &powerResponse{}
	resp.Properties.Parameter.T2M = temps
	resp.Properties.Parameter.PRECTOTCORR = rain
	resp.Properties.Parameter.RH2M = hum
	return resp
}

func TestReduce_PicksLatestValidReading(t *testing.T) {
	resp := powerResp(
		map[string]float64{"20260301": 28.5, "20260302": 30.1, "20260303": -999},
		map[string]float64{"20260301": 4, "20260302": 6, "20260303": -999},
		map[string]float64{"20260301": 70, "20260302": 75, "20260303": -999},
	)

	weather, err := reduce(resp)
	require.NoError(t, err)
	assert.Equal(t, 30.1, weather.TempC, "missing trailing marker falls back to the previous day")
	assert.Equal(t, 75.0, weather.Humidity)
	assert.Equal(t, 10.0, weather.RainfallMM7d, "missing rain markers are excluded from the sum")
}

func TestReduce_AllTemperaturesMissing(t *testing.T) {
	resp := powerResp(
		map[string]float64{"20260301": -999, "20260302": -999},
		map[string]float64{"20260301": 4, "20260302": 6},
		nil,
	)

	_, err := reduce(resp)
	assert.Error(t, err, "a window of missing markers must not read as 0°C")
}

func TestReduce_EmptyResponse(t *testing.T) {
	_, err := reduce(powerResp(nil, nil, nil))
	assert.Error(t, err)
}
