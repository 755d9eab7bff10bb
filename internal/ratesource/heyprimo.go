package ratesource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"golang.org/x/oauth2"
)

// heyPrimoPalletWeightKg is the per-pallet weight sent with every request.
const heyPrimoPalletWeightKg = 660

// heyPrimoCarriers is the SCAC allow-list applied to HeyPrimo results.
var heyPrimoCarriers = map[string]bool{"CNWY": true, "UPGF": true, "EXLA": true, "ABFS": true}

var errHeyPrimoLogin = errors.New("heyprimo login failed")

// HeyPrimo quotes LTL through the HeyPrimo broker API.
type HeyPrimo struct {
	cfg    config.HeyPrimoConfig
	client *http.Client
	opts   options

	mu    sync.Mutex
	token *oauth2.Token
}

// NewHeyPrimo creates the adapter. client supplies the transport and timeout;
// the bearer token from the login endpoint is reused until TokenTTL elapses.
func NewHeyPrimo(cfg config.HeyPrimoConfig, client *http.Client, opts ...Option) *HeyPrimo {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 50 * time.Minute
	}
	return &HeyPrimo{cfg: cfg, client: client, opts: o}
}

// bearer returns the cached token, logging in under ctx when it has expired.
func (h *HeyPrimo) bearer(ctx context.Context) (*oauth2.Token, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	login := &heyPrimoLogin{ctx: ctx, cfg: h.cfg, client: h.client}
	tok, err := oauth2.ReuseTokenSource(h.token, login).Token()
	if err != nil {
		return nil, err
	}
	h.token = tok
	return tok, nil
}

// Name implements Adapter.
func (h *HeyPrimo) Name() string { return ProviderHeyPrimo }

// Stream is the audit stream for HeyPrimo calls.
func (h *HeyPrimo) Stream() string { return model.StreamHeyPrimo }

// AuditFields lists the query parameters recorded per call.
func (h *HeyPrimo) AuditFields(q Query) map[string]interface{} {
	return map[string]interface{}{
		"origin_city":       strings.ToUpper(q.OriginCity),
		"origin_state":      strings.ToUpper(q.OriginState),
		"origin_zip":        PadZip(q.OriginZip),
		"destination_city":  strings.ToUpper(q.DestCity),
		"destination_state": strings.ToUpper(q.DestState),
		"destination_zip":   PadZip(q.DestZip),
		"pallets":           q.Pallets,
	}
}

type heyPrimoFreight struct {
	Qty        int    `json:"qty"`
	Weight     int    `json:"weight"`
	WeightType string `json:"weightType"`
	Length     int    `json:"length"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	DimType    string `json:"dimType"`
	Stack      bool   `json:"stack"`
}

type heyPrimoResponse struct {
	Data *struct {
		Results *struct {
			Rates []heyPrimoRate `json:"rates"`
		} `json:"results"`
	} `json:"data"`
}

type heyPrimoRate struct {
	Name         string  `json:"name"`
	SCAC         string  `json:"SCAC"`
	ServiceLevel string  `json:"serviceLevel"`
	RateType     string  `json:"rateType"`
	Total        float64 `json:"total"`
}

func heyPrimoAccessorials(a Accessorials) []string {
	switch {
	case !a.NonFBA:
		return []string{"APD", "CTO"}
	case a.Liftgate:
		return []string{"LFO", "RSD"}
	case a.Residential:
		return []string{"RSD"}
	default:
		return nil
	}
}

// Quote implements Adapter.
func (h *HeyPrimo) Quote(ctx context.Context, q Query) (model.RateCandidate, error) {
	if h.cfg.Username == "" || h.cfg.Password == "" {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonNotConfigured, nil)
	}

	freight, err := json.Marshal([]heyPrimoFreight{{
		Qty:        q.Pallets,
		Weight:     heyPrimoPalletWeightKg,
		WeightType: "each",
		Length:     palletLengthIn,
		Width:      palletWidthIn,
		Height:     palletHeightIn,
		DimType:    "PLT",
	}})
	if err != nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonDecode, err)
	}

	params := url.Values{}
	params.Set("originCity", strings.ToUpper(strings.TrimSpace(q.OriginCity)))
	params.Set("originState", strings.ToUpper(strings.TrimSpace(q.OriginState)))
	params.Set("originZipcode", PadZip(q.OriginZip))
	params.Set("originCountry", "US")
	params.Set("destinationCity", strings.ToUpper(strings.TrimSpace(q.DestCity)))
	params.Set("destinationState", strings.ToUpper(strings.TrimSpace(q.DestState)))
	params.Set("destinationZipcode", PadZip(q.DestZip))
	params.Set("destinationCountry", "US")
	params["rateTypesList[]"] = []string{"LTL", "Guaranteed"}
	params["accessorialsList[]"] = heyPrimoAccessorials(q.Accessorials)
	params.Set("uom", "METRIC")
	params.Set("pickupDate", h.opts.now().Format("2006-01-02"))
	params.Set("freightInfo", string(freight))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.cfg.RateURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	tok, err := h.bearer(ctx)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonAuth, err)
	}
	tok.SetAuthHeader(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonAuth, statusError(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonStatus, statusError(resp))
	}

	var body heyPrimoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonDecode, err)
	}
	if body.Data == nil || body.Data.Results == nil || len(body.Data.Results.Rates) == 0 {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonNoRates, nil)
	}

	var best *heyPrimoRate
	for i, r := range body.Data.Results.Rates {
		if !heyPrimoCarriers[strings.ToUpper(r.SCAC)] || r.Total <= 0 {
			continue
		}
		if best == nil || r.Total < best.Total {
			best = &body.Data.Results.Rates[i]
		}
	}
	if best == nil {
		return model.RateCandidate{}, failure(ProviderHeyPrimo, ReasonNoAllowedCarrier, nil)
	}

	return model.RateCandidate{
		RateType:        q.Mode,
		Rate:            best.Total,
		RawRate:         best.Total,
		CarrierName:     best.Name,
		ServiceProvider: ProviderHeyPrimo,
		Source:          model.SourceLiveAPI,
		ValidDate:       h.opts.now(),
	}, nil
}

// heyPrimoLogin exchanges the account credentials for a bearer token.
// Expiry is wall-clock time because oauth2.Token.Valid checks time.Now.
type heyPrimoLogin struct {
	ctx    context.Context
	cfg    config.HeyPrimoConfig
	client *http.Client
}

type heyPrimoLoginResponse struct {
	Data struct {
		AccessToken string `json:"accessToken"`
	} `json:"data"`
}

// Token implements oauth2.TokenSource.
func (l *heyPrimoLogin) Token() (*oauth2.Token, error) {
	payload, err := json.Marshal(map[string]string{"username": l.cfg.Username, "password": l.cfg.Password})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errHeyPrimoLogin, err)
	}
	req, err := http.NewRequestWithContext(l.ctx, http.MethodPost, l.cfg.LoginURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errHeyPrimoLogin, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errHeyPrimoLogin, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %v", errHeyPrimoLogin, statusError(resp))
	}
	var body heyPrimoLoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", errHeyPrimoLogin, err)
	}
	if body.Data.AccessToken == "" {
		return nil, fmt.Errorf("%w: access token missing", errHeyPrimoLogin)
	}
	return &oauth2.Token{
		AccessToken: body.Data.AccessToken,
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(l.cfg.TokenTTL),
	}, nil
}

// statusError summarises an unexpected response, keeping a short body excerpt.
func statusError(resp *http.Response) error {
	excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := strings.TrimSpace(string(excerpt))
	if msg == "" {
		return errors.New("HTTP " + strconv.Itoa(resp.StatusCode))
	}
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
}
