package utils

import (
	"context"
	"fmt"
	"medifinder/src/lib"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newNominatimServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MediFinder/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	lib.NewNominatimClient(&lib.NominatimClient{BaseURL: server.URL, HTTP: server.Client()})
	return server
}

func TestReverseGeocode(t *testing.T) {
	t.Run("assembles address from components", func(t *testing.T) {
		newNominatimServer(t, 200, `{
			"display_name": "ignored when components exist",
			"address": {
				"road": "MG Road",
				"suburb": "Shivaji Nagar",
				"city": "Bengaluru",
				"state": "Karnataka",
				"postcode": "560001",
				"country": "India"
			}
		}`)
		addr := ReverseGeocode(context.Background(), 12.9716, 77.5946)
		assert.Equal(t, "MG Road, Shivaji Nagar, Bengaluru, Karnataka, 560001, India", addr)
	})

	t.Run("falls back to display_name", func(t *testing.T) {
		newNominatimServer(t, 200, `{"display_name": "Somewhere, Bengaluru, India", "address": {}}`)
		addr := ReverseGeocode(context.Background(), 12.9716, 77.5946)
		assert.Equal(t, "Somewhere, Bengaluru, India", addr)
	})

	t.Run("falls back to a coordinate literal on service failure", func(t *testing.T) {
		newNominatimServer(t, 500, "upstream error")
		addr := ReverseGeocode(context.Background(), 12.9716, 77.5946)
		assert.Equal(t, "Location: 12.9716, 77.5946", addr)
	})

	t.Run("treats an in-band error as failure", func(t *testing.T) {
		newNominatimServer(t, 200, `{"error": "Unable to geocode"}`)
		addr := ReverseGeocode(context.Background(), 0, 0)
		assert.Equal(t, "Location: 0.0000, 0.0000", addr)
	})
}

func TestFormatNominatimAddress(t *testing.T) {
	t.Run("prefers road over street and city over town", func(t *testing.T) {
		addr := FormatNominatimAddress(`{"address": {"street": "Back Street", "road": "Front Road", "town": "Smalltown", "city": "Big City"}}`)
		assert.Equal(t, "Front Road, Big City", addr)
	})

	t.Run("uses alternates when the preferred key is missing", func(t *testing.T) {
		addr := FormatNominatimAddress(`{"address": {"neighbourhood": "Old Quarter", "village": "Riverside"}}`)
		assert.Equal(t, "Old Quarter, Riverside", addr)
	})

	t.Run("empty payload yields empty string", func(t *testing.T) {
		assert.Empty(t, FormatNominatimAddress(`{}`))
	})
}

func TestGeocodeAddress(t *testing.T) {
	lat, lon, err := GeocodeAddress(context.Background(), "12 MG Road, Bangalore")
	assert.Nil(t, err)
	assert.Equal(t, 12.9716, lat)
	assert.Equal(t, 77.5946, lon)
}
