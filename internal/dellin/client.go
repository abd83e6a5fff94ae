// Package dellin is a self-contained example client for the Dellin
// shipping-cost API (https://dev.dellin.ru). It covers the two calls
// the price toolkit's users need: city lookup and delivery cost
// calculation. Nothing else in the toolkit depends on it.
package dellin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.dellin.ru/v2/"

// Client calls the Dellin API with a static application key.
type Client struct {
	appkey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Dellin client with the given application key.
// An empty baseURL selects the production endpoint.
func NewClient(appkey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Client{
		appkey:  appkey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// City is one hit from the city lookup endpoint. Code is the KLADR
// code used by the calculator.
type City struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type citiesRequest struct {
	Appkey string `json:"appkey"`
	Query  string `json:"q"`
}

type citiesResponse struct {
	Success bool   `json:"success"`
	Cities  []City `json:"cities"`
}

// FindCity looks up a city by name and returns the first hit, or an
// error when nothing matched.
func (c *Client) FindCity(ctx context.Context, name string) (*City, error) {
	var resp citiesResponse
	if err := c.post(ctx, "cities.json", citiesRequest{Appkey: c.appkey, Query: name}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || len(resp.Cities) == 0 {
		return nil, fmt.Errorf("no city found for %q", name)
	}
	return &resp.Cities[0], nil
}

// CalculationRequest describes one shipment for the cost calculator.
// City codes are KLADR codes from FindCity. Dates are YYYY-MM-DD;
// empty dates default to tomorrow (pickup) and five days out
// (delivery). Volume is derived from the dimensions when zero.
type CalculationRequest struct {
	FromCityCode string
	ToCityCode   string
	WeightKg     float64
	LengthCm     float64
	WidthCm      float64
	HeightCm     float64
	VolumeM3     float64
	PickupDate   string
	DeliveryDate string
	TerminalFrom string
	TerminalTo   string
	AddressFrom  string
	AddressTo    string
}

// Calculation is the part of the calculator response the toolkit
// surfaces: the delivery price and estimated days in transit.
type Calculation struct {
	Success bool `json:"success"`
	Price   struct {
		Delivery float64 `json:"delivery"`
	} `json:"price"`
	Time struct {
		Delivery int `json:"delivery"`
	} `json:"time"`
	Errors []interface{} `json:"errors"`
}

type calcEndpoint struct {
	Variant     string `json:"variant"`
	ProduceDate string `json:"produceDate"`
	City        string `json:"city"`
	TerminalID  string `json:"terminalID,omitempty"`
	Address     string `json:"address,omitempty"`
}

type calcPayload struct {
	Appkey   string `json:"appkey"`
	Delivery struct {
		DeliveryType struct {
			Type string `json:"type"`
		} `json:"deliveryType"`
		Arrival calcEndpoint `json:"arrival"`
		Derival calcEndpoint `json:"derival"`
	} `json:"delivery"`
	Cargo struct {
		Quantity    int     `json:"quantity"`
		Weight      float64 `json:"weight"`
		TotalWeight float64 `json:"totalWeight"`
		Length      float64 `json:"length,omitempty"`
		Width       float64 `json:"width,omitempty"`
		Height      float64 `json:"height,omitempty"`
		TotalVolume float64 `json:"totalVolume,omitempty"`
	} `json:"cargo"`
}

// Calculate requests a delivery cost estimate.
func (c *Client) Calculate(ctx context.Context, req CalculationRequest) (*Calculation, error) {
	payload := c.buildPayload(req)

	var result Calculation
	if err := c.post(ctx, "calculator.json", payload, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("calculation failed: %v", result.Errors)
	}
	return &result, nil
}

func (c *Client) buildPayload(req CalculationRequest) calcPayload {
	volume := req.VolumeM3
	if volume == 0 && req.LengthCm > 0 && req.WidthCm > 0 && req.HeightCm > 0 {
		volume = req.LengthCm * req.WidthCm * req.HeightCm / 1_000_000 // cm³ -> m³
	}

	pickup := req.PickupDate
	if pickup == "" {
		pickup = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}
	delivery := req.DeliveryDate
	if delivery == "" {
		delivery = time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	}

	var p calcPayload
	p.Appkey = c.appkey
	p.Delivery.DeliveryType.Type = "auto"

	p.Delivery.Derival = calcEndpoint{
		Variant:     "address",
		ProduceDate: pickup,
		City:        req.FromCityCode,
		Address:     req.AddressFrom,
	}
	if req.TerminalFrom != "" {
		p.Delivery.Derival.Variant = "terminal"
		p.Delivery.Derival.TerminalID = req.TerminalFrom
		p.Delivery.Derival.Address = ""
	}

	p.Delivery.Arrival = calcEndpoint{
		Variant:     "address",
		ProduceDate: delivery,
		City:        req.ToCityCode,
		Address:     req.AddressTo,
	}
	if req.TerminalTo != "" {
		p.Delivery.Arrival.Variant = "terminal"
		p.Delivery.Arrival.TerminalID = req.TerminalTo
		p.Delivery.Arrival.Address = ""
	}

	p.Cargo.Quantity = 1
	p.Cargo.Weight = req.WeightKg
	p.Cargo.TotalWeight = req.WeightKg
	p.Cargo.Length = req.LengthCm
	p.Cargo.Width = req.WidthCm
	p.Cargo.Height = req.HeightCm
	p.Cargo.TotalVolume = volume

	return p
}

func (c *Client) post(ctx context.Context, endpoint string, payload, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("could not marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	return nil
}
