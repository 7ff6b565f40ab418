package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const (
	DefaultAPIBase  = "https://api.focus.teamleader.eu"
	DefaultTokenURL = "https://focus.teamleader.eu/oauth2/access_token"

	pageSize = 100
)

// CurrentAPI is the surface of the current (cursor-paged JSON) API that the
// pipeline consumes.
type CurrentAPI interface {
	Invoices() *Cursor[RawInvoice]
	InvoiceInfo(id string) (InvoiceDetail, error)
	TimeTracking(from, to time.Time) *Cursor[RawTimeEntry]
	Tags() *Cursor[Tag]
	CompaniesByTag(tag string) ([]Company, error)
	// MigrateID maps a legacy record ID to its current API ID.
	// Returns ok=false when the legacy ID has no current equivalent.
	MigrateID(kind, legacyID string) (id string, ok bool, err error)
}

// Credentials holds what is needed to build an authenticated client. When
// RefreshToken and client id/secret are set, tokens auto-refresh; otherwise
// AccessToken is used as-is.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	TokenURL     string
}

// HTTPClient builds an oauth2-backed HTTP client from the credentials.
func (c Credentials) HTTPClient(ctx context.Context) *http.Client {
	tokenURL := c.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if c.RefreshToken != "" && c.ClientID != "" {
		conf := &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		}
		return conf.Client(ctx, &oauth2.Token{
			AccessToken:  c.AccessToken,
			RefreshToken: c.RefreshToken,
		})
	}
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: c.AccessToken,
	}))
}

// Client talks to the current API.
type Client struct {
	base string
	http *http.Client
}

func NewClient(base string, httpClient *http.Client) *Client {
	if base == "" {
		base = DefaultAPIBase
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{base: base, http: httpClient}
}

// post sends a JSON body to an API method and decodes the response into out.
func (c *Client) post(method string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", method, err)
	}
	resp, err := c.http.Post(c.base+"/"+method, "application/json", bytes.NewReader(payload))
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

type pageRequest struct {
	Size   int `json:"size"`
	Number int `json:"number"`
}

type listRequest struct {
	Page        pageRequest    `json:"page"`
	Filter      map[string]any `json:"filter,omitempty"`
	Sideloading string         `json:"sideloading,omitempty"`
}

// Wire formats. Amounts decode as json.Number so the exact source
// representation survives (the transformer compares totals as text).

type invoiceWire struct {
	ID          string `json:"id"`
	InvoiceDate string `json:"invoice_date"`
	PaidAt      string `json:"paid_at"`
	Status      string `json:"status"`
	Invoicee    struct {
		Name     string `json:"name"`
		Customer struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"customer"`
	} `json:"invoicee"`
	Total struct {
		TaxExclusive struct {
			Amount   json.Number `json:"amount"`
			Currency string      `json:"currency"`
		} `json:"tax_exclusive"`
	} `json:"total"`
}

func (w invoiceWire) toRaw() RawInvoice {
	return RawInvoice{
		ID:           w.ID,
		CustomerID:   w.Invoicee.Customer.ID,
		CustomerName: w.Invoicee.Name,
		InvoiceDate:  w.InvoiceDate,
		PaidAt:       w.PaidAt,
		TotalRaw:     w.Total.TaxExclusive.Amount.String(),
		Status:       w.Status,
	}
}

type timeEntryWire struct {
	StartedOn   string  `json:"started_on"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Invoiceable bool    `json:"invoiceable"`
	User        struct {
		FirstName string `json:"first_name"`
	} `json:"user"`
}

type tagWire struct {
	Tag string `json:"tag"`
}

type companyWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type detailWire struct {
	ID           string `json:"id"`
	GroupedLines []struct {
		LineItems []struct {
			Description string `json:"description"`
		} `json:"line_items"`
	} `json:"grouped_lines"`
}

// Invoices returns a cursor over all invoices, in API order.
func (c *Client) Invoices() *Cursor[RawInvoice] {
	return NewCursor(func(page int) ([]RawInvoice, error) {
		var resp struct {
			Data []invoiceWire `json:"data"`
		}
		req := listRequest{Page: pageRequest{Size: pageSize, Number: page}}
		if err := c.post("invoices.list", req, &resp); err != nil {
			return nil, err
		}
		out := make([]RawInvoice, 0, len(resp.Data))
		for _, w := range resp.Data {
			out = append(out, w.toRaw())
		}
		return out, nil
	})
}

// TimeTracking returns a cursor over time entries started in [from, to],
// with the user sideloaded.
func (c *Client) TimeTracking(from, to time.Time) *Cursor[RawTimeEntry] {
	return NewCursor(func(page int) ([]RawTimeEntry, error) {
		var resp struct {
			Data []timeEntryWire `json:"data"`
		}
		req := listRequest{
			Page: pageRequest{Size: pageSize, Number: page},
			Filter: map[string]any{
				"started_after":  from.Format(time.RFC3339),
				"started_before": to.Format(time.RFC3339),
			},
			Sideloading: "user",
		}
		if err := c.post("timeTracking.list", req, &resp); err != nil {
			return nil, err
		}
		out := make([]RawTimeEntry, 0, len(resp.Data))
		for _, w := range resp.Data {
			out = append(out, RawTimeEntry{
				StartedOn:   w.StartedOn,
				Duration:    w.Duration,
				Description: w.Description,
				User:        w.User.FirstName,
				Invoiceable: w.Invoiceable,
			})
		}
		return out, nil
	})
}

// Tags returns a cursor over all tags.
func (c *Client) Tags() *Cursor[Tag] {
	return NewCursor(func(page int) ([]Tag, error) {
		var resp struct {
			Data []tagWire `json:"data"`
		}
		req := listRequest{Page: pageRequest{Size: pageSize, Number: page}}
		if err := c.post("tags.list", req, &resp); err != nil {
			return nil, err
		}
		out := make([]Tag, 0, len(resp.Data))
		for _, w := range resp.Data {
			out = append(out, Tag{Name: w.Tag})
		}
		return out, nil
	})
}

// CompaniesByTag returns the companies carrying the given tag.
func (c *Client) CompaniesByTag(tag string) ([]Company, error) {
	cur := NewCursor(func(page int) ([]Company, error) {
		var resp struct {
			Data []companyWire `json:"data"`
		}
		req := listRequest{
			Page:   pageRequest{Size: pageSize, Number: page},
			Filter: map[string]any{"tags": []string{tag}},
		}
		if err := c.post("companies.list", req, &resp); err != nil {
			return nil, err
		}
		out := make([]Company, 0, len(resp.Data))
		for _, w := range resp.Data {
			if w.ID == "" {
				continue
			}
			out = append(out, Company{ID: w.ID, Name: w.Name})
		}
		return out, nil
	})
	return cur.All()
}

// InvoiceInfo fetches the line-item detail of a single invoice.
func (c *Client) InvoiceInfo(id string) (InvoiceDetail, error) {
	var resp struct {
		Data detailWire `json:"data"`
	}
	if err := c.post("invoices.info", map[string]string{"id": id}, &resp); err != nil {
		return InvoiceDetail{}, err
	}
	detail := InvoiceDetail{ID: resp.Data.ID}
	for _, g := range resp.Data.GroupedLines {
		group := LineGroup{}
		for _, item := range g.LineItems {
			group.Items = append(group.Items, LineItem{Description: item.Description})
		}
		detail.Groups = append(detail.Groups, group)
	}
	return detail, nil
}

// MigrateID maps a legacy ID to its current API equivalent. A response
// without a data.id means the legacy record was never migrated.
func (c *Client) MigrateID(kind, legacyID string) (string, bool, error) {
	var resp struct {
		Data struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"data"`
	}
	req := map[string]string{"type": kind, "id": legacyID}
	if err := c.post("migrate.id", req, &resp); err != nil {
		return "", false, err
	}
	if resp.Data.ID == "" {
		return "", false, nil
	}
	return resp.Data.ID, true, nil
}
