package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeatherCurrent_FlatDegradedShape(t *testing.T) {
	raw := `{"temp":28,"feels_like":30,"humidity":65,"weather":[{"main":"Clear","description":"clear sky"}],"wind":{"speed":3.5}}`
	var w WeatherCurrent
	require.NoError(t, json.Unmarshal([]byte(raw), &w))

	require.Equal(t, 28.0, w.TempC())
	require.Equal(t, 30.0, w.FeelsLikeC())
	require.Equal(t, 65.0, w.HumidityPct())
	require.Equal(t, "clear sky", w.Condition())
	require.Equal(t, 3.5, w.Wind.Speed)
}

func TestWeatherCurrent_ProviderNestedShape(t *testing.T) {
	raw := `{"main":{"temp":21.4,"feels_like":20.9,"humidity":71},"weather":[{"main":"Rain","description":"light rain"}],"name":"Delhi"}`
	var w WeatherCurrent
	require.NoError(t, json.Unmarshal([]byte(raw), &w))

	require.Equal(t, 21.4, w.TempC())
	require.Equal(t, 20.9, w.FeelsLikeC())
	require.Equal(t, 71.0, w.HumidityPct())
	require.Equal(t, "light rain", w.Condition())
}

func TestWeatherCurrent_ConditionEmpty(t *testing.T) {
	var w WeatherCurrent
	require.Equal(t, "", w.Condition())
}
