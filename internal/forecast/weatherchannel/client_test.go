package weatherchannel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-forecast-collection/internal/forecast"
)

func TestForecastUnsupported(t *testing.T) {
	f, err := NewClient().Forecast(context.Background(), forecast.Coordinates{Latitude: 1, Longitude: 2})
	require.Nil(t, f)
	require.ErrorIs(t, err, forecast.ErrUnsupported)

	fe, ok := forecast.AsError(err)
	require.True(t, ok)
	require.Equal(t, Name, fe.Provider)
}
