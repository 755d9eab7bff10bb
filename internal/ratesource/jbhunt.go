package ratesource

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultKgToLbs        = 2.205
	defaultLinehaulMarkup = 1.5
)

// JBHunt quotes truckload and drayage through the J.B. Hunt dynamic quote
// API. Live rates are marked up; static rows already carry the markup.
type JBHunt struct {
	cfg     config.JBHuntConfig
	client  *http.Client
	tokens  oauth2.TokenSource
	markup  float64
	kgToLbs float64
	opts    options
}

// JBHuntOption configures pricing constants of the J.B. Hunt adapter.
type JBHuntOption func(*JBHunt)

// WithMarkup sets the multiplier applied to live rates.
func WithMarkup(m float64) JBHuntOption {
	return func(j *JBHunt) {
		if m > 0 {
			j.markup = m
		}
	}
}

// WithKgToLbs sets the weight conversion factor.
func WithKgToLbs(f float64) JBHuntOption {
	return func(j *JBHunt) {
		if f > 0 {
			j.kgToLbs = f
		}
	}
}

// WithJBHuntOptions applies shared adapter options.
func WithJBHuntOptions(opts ...Option) JBHuntOption {
	return func(j *JBHunt) {
		for _, opt := range opts {
			opt(&j.opts)
		}
	}
}

// NewJBHunt creates the adapter. Tokens come from the client-credentials
// grant and are cached until they expire.
func NewJBHunt(cfg config.JBHuntConfig, client *http.Client, opts ...JBHuntOption) *JBHunt {
	if client == nil {
		client = http.DefaultClient
	}
	j := &JBHunt{
		cfg:     cfg,
		client:  client,
		markup:  defaultLinehaulMarkup,
		kgToLbs: defaultKgToLbs,
		opts:    defaultOptions(),
	}
	for _, opt := range opts {
		opt(j)
	}
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	j.tokens = cc.TokenSource(context.WithValue(context.Background(), oauth2.HTTPClient, client))
	return j
}

// Name implements Adapter.
func (j *JBHunt) Name() string { return ProviderJBHunt }

// Stream is the audit stream for J.B. Hunt calls.
func (j *JBHunt) Stream() string { return model.StreamJBHunt }

// AuditFields lists the query parameters recorded per call.
func (j *JBHunt) AuditFields(q Query) map[string]interface{} {
	return map[string]interface{}{
		"origin_zip":      PadZip(q.OriginZip),
		"destination_zip": PadZip(q.DestZip),
		"weight_lbs":      q.Lbs(j.kgToLbs),
		"mode":            string(q.Mode),
	}
}

type jbHuntPlace struct {
	PostalCode  string `json:"postalCode"`
	CountryCode string `json:"countryCode"`
}

type jbHuntRequest struct {
	Origin         jbHuntPlace `json:"origin"`
	Destination    jbHuntPlace `json:"destination"`
	PickupDateTime string      `json:"pickupDateTime"`
	BillToCode     string      `json:"billToCode"`
	ShipmentID     string      `json:"shipmentId"`
	Options        struct {
		TotalWeightInPounds       float64 `json:"totalWeightInPounds"`
		EquipmentType             string  `json:"equipmentType"`
		ContainsHazardousMaterial bool    `json:"containsHazardousMaterial"`
		IsIntermodalLoad          *bool   `json:"isIntermodalLoad"`
		IsLiveLoad                *bool   `json:"isLiveLoad"`
		SCACCode                  *string `json:"scacCode"`
	} `json:"options"`
}

type jbHuntResponse struct {
	Rates []struct {
		TotalCharge *struct {
			Value float64 `json:"value"`
		} `json:"totalCharge"`
		SCACCode           string `json:"scacCode"`
		TransportationMode string `json:"transportationMode"`
	} `json:"rates"`
}

// Quote implements Adapter.
func (j *JBHunt) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	if j.cfg.ClientID == "" || j.cfg.ClientSecret == "" {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonNotConfigured, nil)
	}

	token, err := j.tokens.Token()
	if err != nil {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonAuth, err)
	}

	var payload jbHuntRequest
	payload.Origin = jbHuntPlace{PostalCode: PadZip(q.OriginZip), CountryCode: "USA"}
	payload.Destination = jbHuntPlace{PostalCode: PadZip(q.DestZip), CountryCode: "USA"}
	payload.PickupDateTime = j.opts.now().UTC().AddDate(0, 0, 1).Format("2006-01-02") + "T12:00:00Z"
	payload.BillToCode = j.cfg.BillToCode
	payload.Options.TotalWeightInPounds = q.Lbs(j.kgToLbs)
	payload.Options.EquipmentType = "DryVan"

	body, err := json.Marshal(payload)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonDecode, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.cfg.QuoteURL, bytes.NewReader(body))
	if err != nil {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	token.SetAuthHeader(req)
	if j.cfg.APIKey != "" {
		req.Header.Set("Api-Key", j.cfg.APIKey)
	}

	resp, err := j.client.Do(req)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonAuth, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonStatus, statusError(resp))
	}

	var out jbHuntResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonDecode, err)
	}

	best := model.NoRate()
	for _, r := range out.Rates {
		if r.TotalCharge == nil {
			continue
		}
		carrier := strings.TrimSpace(r.SCACCode)
		if carrier == "" {
			carrier = "Unknown"
		}
		best = model.LowestCandidate(best, model.RateCandidate{
			RateType:        q.Mode,
			Rate:            r.TotalCharge.Value * j.markup,
			RawRate:         r.TotalCharge.Value,
			CarrierName:     carrier,
			ServiceProvider: ProviderJBHunt,
			Source:          model.SourceLiveAPI,
			ValidDate:       j.opts.now().Truncate(24 * time.Hour),
		})
	}
	if !best.Valid() {
		return model.RateCandidate{}, failure(ProviderJBHunt, ReasonNoRates, nil)
	}
	return best, nil
}
