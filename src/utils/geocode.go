package utils

import (
	"context"
	"fmt"
	"log"
	"medifinder/src/lib"
	"strings"

	"github.com/tidwall/gjson"
)

// ReverseGeocode turns a coordinate into a display address. Nominatim is the
// primary path; on failure it falls back to the AI gateway and finally to a
// coordinate literal. It never fails.
func ReverseGeocode(ctx context.Context, lat, lon float64) string {
	body, err := lib.GetNominatimClient().Reverse(ctx, lat, lon)
	if err == nil {
		if addr := FormatNominatimAddress(body); addr != "" {
			return addr
		}
	} else {
		log.Printf("Error with reverse geocoding from Nominatim API: %s\n", err.Error())
	}

	client := lib.GetGeminiClient()
	if client.Enabled() {
		prompt := fmt.Sprintf("Provide the full, formatted street address for the following GPS coordinates: latitude %f, longitude %f. The address should be suitable for display and include street, city, state, and postal code if available.", lat, lon)
		if addr, err := client.GenerateContent(ctx, prompt); err == nil && addr != "" {
			return addr
		} else if err != nil {
			log.Printf("Geocoding fallback also failed: %s\n", err.Error())
		}
	}

	return fmt.Sprintf("Location: %.4f, %.4f", lat, lon)
}

// FormatNominatimAddress assembles an address from structured components in
// a fixed order, falling back to the service's own display string when none
// are present.
func FormatNominatimAddress(body string) string {
	addr := gjson.Get(body, "address")
	parts := []string{}
	pick := func(keys ...string) {
		for _, k := range keys {
			if v := addr.Get(k).String(); v != "" {
				parts = append(parts, v)
				return
			}
		}
	}
	pick("road", "street")
	pick("suburb", "neighbourhood")
	pick("city", "town", "village")
	pick("state")
	pick("postcode")
	pick("country")
	if len(parts) > 0 {
		return strings.Join(parts, ", ")
	}
	return gjson.Get(body, "display_name").String()
}

// Fallback coordinate for geocoding failures, central Bangalore.
const (
	fallbackLat = 12.9716
	fallbackLon = 77.5946
)

// GeocodeAddress resolves an address string to coordinates via the AI
// gateway, used at registration when the owner supplies no location.
func GeocodeAddress(ctx context.Context, address string) (float64, float64, error) {
	client := lib.GetGeminiClient()
	if !client.Enabled() {
		return fallbackLat, fallbackLon, nil
	}
	prompt := fmt.Sprintf(`You are a geocoding expert. Provide the latitude and longitude for the following address: %q.
Return the response in JSON format with two fields: "lat" (number) and "lon" (number).`, address)
	out, err := client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("Error geocoding address: %s\n", err.Error())
		return fallbackLat, fallbackLon, nil
	}
	out = stripCodeFence(out)
	if gjson.Valid(out) && gjson.Get(out, "lat").Exists() && gjson.Get(out, "lon").Exists() {
		return gjson.Get(out, "lat").Float(), gjson.Get(out, "lon").Float(), nil
	}
	log.Printf("Geocoding failed to return valid JSON for address: %s\n", address)
	return fallbackLat, fallbackLon, nil
}
