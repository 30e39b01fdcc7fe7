package lib

import (
	"context"
	"fmt"
	"io"
	"medifinder/src/config"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

type NominatimClient struct {
	BaseURL string
	HTTP    *http.Client
}

var nominatimClient *NominatimClient

func GetNominatimClient() *NominatimClient {
	if nominatimClient != nil {
		return nominatimClient
	}
	nominatimClient = &NominatimClient{
		BaseURL: config.NominatimBaseURL(),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
	return nominatimClient
}

// NewNominatimClient replaces the singleton with a custom client implementation
func NewNominatimClient(c *NominatimClient) *NominatimClient {
	nominatimClient = c
	return nominatimClient
}

// Reverse fetches the reverse-geocoding payload for a coordinate and returns
// the raw JSON body. The caller assembles the display address.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	url := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f&addressdetails=1", c.BaseURL, lat, lon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", config.NOMINATIM_USER_AGENT)
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim API error: %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	sbody := string(body)
	if errMsg := gjson.Get(sbody, "error").String(); errMsg != "" {
		return "", fmt.Errorf("nominatim: %s", errMsg)
	}
	return sbody, nil
}
