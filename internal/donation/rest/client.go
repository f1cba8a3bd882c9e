// Package rest implements the donation backend ports over its REST API.
//
// Failures are classified at this boundary: a response with a non-success
// status becomes a *donation.RemoteError carrying the backend's message,
// and any failure to get a response at all becomes a
// *donation.TransportError. Callers decide how to present them.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hoperaise/internal/core"
	"hoperaise/internal/donation"
)

// maxErrorBody caps how much of an error response body is kept for display.
const maxErrorBody = 512

// Client talks to the donation backend REST API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a REST client for the backend at baseURL. A zero timeout
// falls back to 10 seconds.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Ensure interface conformance
var _ donation.Backend = (*Client)(nil)

type campaignDTO struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	GoalAmount      float64 `json:"goalAmount"`
	CollectedAmount float64 `json:"collectedAmount"`
	Status          string  `json:"status"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
}

type donorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type donationDTO struct {
	ID           int64        `json:"id"`
	Amount       float64      `json:"amount"`
	Message      string       `json:"message"`
	DonationDate string       `json:"donationDate"`
	Donor        *donorDTO    `json:"donor"`
	Campaign     *campaignDTO `json:"campaign"`
}

// ListCampaigns implements donation.CampaignLister.
func (c *Client) ListCampaigns(ctx context.Context) ([]core.Campaign, error) {
	var dtos []campaignDTO
	if err := c.getJSON(ctx, "/campaign/all", &dtos); err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	campaigns := make([]core.Campaign, len(dtos))
	for i, d := range dtos {
		campaigns[i] = d.toCore()
	}
	return campaigns, nil
}

// FetchCampaignImage implements donation.ImageFetcher.
func (c *Client) FetchCampaignImage(ctx context.Context, campaignID int64) (donation.Image, error) {
	data, contentType, err := c.getBinary(ctx, "/campaign/image/"+strconv.FormatInt(campaignID, 10))
	if err != nil {
		return donation.Image{}, fmt.Errorf("fetch campaign image %d: %w", campaignID, err)
	}
	return donation.Image{Data: data, ContentType: contentType}, nil
}

// CreateDonation implements donation.DonationCreator. Exactly one write
// call is issued; a retry is always a fresh user-initiated submission.
func (c *Client) CreateDonation(ctx context.Context, req donation.CreateRequest) (core.Donation, error) {
	payload := struct {
		DonorID    int64   `json:"donorId"`
		CampaignID int64   `json:"campaignId"`
		Amount     float64 `json:"amount"`
		Message    string  `json:"message"`
	}{
		DonorID:    req.DonorID,
		CampaignID: req.CampaignID,
		Amount:     req.Amount.Rupees(),
		Message:    req.Message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return core.Donation{}, fmt.Errorf("marshal donation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/donation/add", bytes.NewReader(body))
	if err != nil {
		return core.Donation{}, fmt.Errorf("build donation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return core.Donation{}, &donation.TransportError{Op: "POST /donation/add", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.Donation{}, remoteError(resp)
	}

	var dto donationDTO
	if err := json.NewDecoder(resp.Body).Decode(&dto); err != nil {
		return core.Donation{}, fmt.Errorf("decode donation response: %w", err)
	}
	created := dto.toCore()
	slog.InfoContext(ctx, "Donation created",
		"donation_id", created.ID,
		"campaign_id", created.CampaignID,
		"amount_paise", created.Amount.Paise)
	return created, nil
}

// ListByDonor implements donation.DonationLister.
func (c *Client) ListByDonor(ctx context.Context, donorID int64) ([]core.Donation, error) {
	var dtos []donationDTO
	if err := c.getJSON(ctx, "/donation/by-donor/"+strconv.FormatInt(donorID, 10), &dtos); err != nil {
		return nil, fmt.Errorf("list donations for donor %d: %w", donorID, err)
	}
	donations := make([]core.Donation, len(dtos))
	for i, d := range dtos {
		donations[i] = d.toCore()
	}
	return donations, nil
}

// TotalByDonor implements donation.SummaryReader.
func (c *Client) TotalByDonor(ctx context.Context, donorID int64) (core.Money, error) {
	var total float64
	if err := c.getJSON(ctx, "/donation/summary/"+strconv.FormatInt(donorID, 10), &total); err != nil {
		return core.Money{}, fmt.Errorf("donor %d summary: %w", donorID, err)
	}
	return core.Money{Paise: core.PaiseFromRupees(total)}, nil
}

// FetchReceipt implements donation.ReceiptFetcher. A backend 404 means the
// donation has no receipt; a 5xx means the backend failed to generate one.
func (c *Client) FetchReceipt(ctx context.Context, donationID int64) (donation.Receipt, error) {
	data, contentType, err := c.getBinary(ctx, "/donation/receipt/"+strconv.FormatInt(donationID, 10))
	if err != nil {
		return donation.Receipt{}, fmt.Errorf("fetch receipt %d: %w", donationID, err)
	}
	if contentType == "" {
		contentType = "application/pdf"
	}
	return donation.Receipt{Data: data, ContentType: contentType}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &donation.TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remoteError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getBinary(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, "", &donation.TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", remoteError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response body: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// remoteError drains a non-success response into a classified error,
// keeping a bounded slice of the body as the display message.
func remoteError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &donation.RemoteError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}

func (d campaignDTO) toCore() core.Campaign {
	start, _ := core.ParseDate(d.StartDate)
	end, _ := core.ParseDate(d.EndDate)
	return core.Campaign{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Goal:        core.Money{Paise: core.PaiseFromRupees(d.GoalAmount)},
		Collected:   core.Money{Paise: core.PaiseFromRupees(d.CollectedAmount)},
		Status:      d.Status,
		StartDate:   start,
		EndDate:     end,
	}
}

func (d donationDTO) toCore() core.Donation {
	out := core.Donation{
		ID:        d.ID,
		Amount:    core.Money{Paise: core.PaiseFromRupees(d.Amount)},
		Message:   d.Message,
		DonatedAt: parseDonationDate(d.DonationDate),
	}
	if d.Donor != nil {
		out.DonorID = d.Donor.ID
	}
	if d.Campaign != nil {
		out.CampaignID = d.Campaign.ID
		out.CampaignTitle = d.Campaign.Title
		out.CampaignCategory = d.Campaign.Category
	}
	return out
}

// parseDonationDate handles the backend's timestamp shapes: local date-time
// with or without fractional seconds, and RFC 3339. A zero time is returned
// when nothing matches; views render it as a dash.
func parseDonationDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05.999999999",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
