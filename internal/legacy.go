package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const DefaultLegacyAPIBase = "https://app.teamleader.eu/api"

// LegacyAPI is the surface of the legacy (form-POST) API that the pipeline
// consumes. Subscriptions only exist there.
type LegacyAPI interface {
	Subscriptions() *Cursor[RawSubscription]
	// InvoicesBySubscription returns the legacy IDs of the invoices
	// generated under a subscription.
	InvoicesBySubscription(subscriptionID string) ([]string, error)
}

// LegacyClient talks to the legacy API. Authentication is an api group +
// secret pair sent with every request.
type LegacyClient struct {
	base      string
	apiGroup  string
	apiSecret string
	http      *http.Client
}

func NewLegacyClient(base, apiGroup, apiSecret string, httpClient *http.Client) *LegacyClient {
	if base == "" {
		base = DefaultLegacyAPIBase
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &LegacyClient{base: base, apiGroup: apiGroup, apiSecret: apiSecret, http: httpClient}
}

func (c *LegacyClient) postForm(method string, form url.Values, out any) error {
	form.Set("api_group", c.apiGroup)
	form.Set("api_secret", c.apiSecret)
	resp, err := c.http.PostForm(c.base+"/"+method+".php", form)
	if err != nil {
		return fmt.Errorf("calling %s: %w", method, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("calling %s: unexpected status %s", method, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", method, err)
	}
	return nil
}

// Legacy wire format. IDs and flags come back as numbers.
type subscriptionWire struct {
	ID             json.Number `json:"id"`
	Active         json.Number `json:"active"`
	Title          string      `json:"title"`
	Repeat         string      `json:"repeat"`
	ClientName     string      `json:"client_name"`
	DepartmentName string      `json:"department_name"`
	DateStart      string      `json:"date_start_formatted"`
	DateEnd        string      `json:"date_end_formatted"`
	NextRenewal    string      `json:"next_renewal_date_formatted"`
	PriceExclVAT   json.Number `json:"total_price_excl_vat"`
	Counterparty   string      `json:"contact_or_company"`
}

// Subscriptions returns a cursor over all subscriptions, in API order.
func (c *LegacyClient) Subscriptions() *Cursor[RawSubscription] {
	return NewCursor(func(page int) ([]RawSubscription, error) {
		var wires []subscriptionWire
		form := url.Values{}
		form.Set("amount", strconv.Itoa(pageSize))
		form.Set("pageno", strconv.Itoa(page-1)) // legacy pages count from 0
		if err := c.postForm("getSubscriptions", form, &wires); err != nil {
			return nil, err
		}
		out := make([]RawSubscription, 0, len(wires))
		for _, w := range wires {
			out = append(out, RawSubscription{
				ID:             w.ID.String(),
				Active:         w.Active.String() == "1",
				Title:          w.Title,
				Repeat:         w.Repeat,
				ClientName:     w.ClientName,
				DepartmentName: w.DepartmentName,
				DateStart:      w.DateStart,
				DateEnd:        w.DateEnd,
				NextRenewal:    w.NextRenewal,
				PriceExclVAT:   w.PriceExclVAT.String(),
				Counterparty:   w.Counterparty,
			})
		}
		return out, nil
	})
}

// InvoicesBySubscription returns the legacy invoice IDs generated under the
// given subscription.
func (c *LegacyClient) InvoicesBySubscription(subscriptionID string) ([]string, error) {
	var resp struct {
		GeneratedInvoiceIDs []json.Number `json:"generated_invoice_ids"`
	}
	form := url.Values{}
	form.Set("subscription_id", subscriptionID)
	if err := c.postForm("getInvoicesBySubscription", form, &resp); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(resp.GeneratedInvoiceIDs))
	for _, id := range resp.GeneratedInvoiceIDs {
		ids = append(ids, id.String())
	}
	return ids, nil
}
