// Package bankclient is a client for an Investec style open banking API:
// OAuth2 client-credentials token, account and transaction listing, and
// transfer execution. Responses are decoded into the ledger types at this
// boundary so the engines never see the wire format.
package bankclient

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bdewet/goalops/pkg/ledger"
)

var (
	// ErrAuthFailure covers rejected credentials and expired tokens.
	ErrAuthFailure = errors.New("bank API authentication failed")
	// ErrUpstreamUnavailable covers network failures and 5xx responses.
	ErrUpstreamUnavailable = errors.New("bank API unavailable")
)

const tokenPath = "/identity/v2/oauth2/token"

type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	apiKey       string
	httpClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func New(endpoint, clientID, clientSecret, apiKey string) *Client {
	return &Client{
		endpoint:     strings.TrimSuffix(endpoint, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		apiKey:       apiKey,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) accessToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequest("POST", c.endpoint+tokenPath, strings.NewReader("grant_type=client_credentials&scope=accounts"))
	if err != nil {
		return "", err
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rs, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: requesting token: %v", ErrUpstreamUnavailable, err)
	}
	defer rs.Body.Close()

	if rs.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token endpoint returned %d", ErrAuthFailure, rs.StatusCode)
	}

	var token tokenResponse

	err = json.NewDecoder(rs.Body).Decode(&token)
	if err != nil || token.AccessToken == "" {
		return "", fmt.Errorf("%w: invalid token response", ErrAuthFailure)
	}

	c.token = token.AccessToken
	// refresh a minute early so in-flight requests don't race the expiry
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - time.Minute)

	return c.token, nil
}

func (c *Client) get(path string, query url.Values, out interface{}) error {
	token, err := c.accessToken()
	if err != nil {
		return err
	}

	req, err := http.NewRequest("GET", c.endpoint+path, nil)
	if err != nil {
		return err
	}

	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.apiKey)

	rs, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer rs.Body.Close()

	switch {
	case rs.StatusCode == http.StatusUnauthorized || rs.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s returned %d", ErrAuthFailure, path, rs.StatusCode)
	case rs.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(rs.Body)
		return fmt.Errorf("%w: %s returned %d: %s", ErrUpstreamUnavailable, path, rs.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(rs.Body).Decode(out)
}

type accountResponse struct {
	Data struct {
		Accounts []ledger.Account `json:"accounts"`
	} `json:"data"`
}

func (c *Client) ListAccounts() ([]ledger.Account, error) {
	var rs accountResponse

	err := c.get("/za/pb/v1/accounts", nil, &rs)
	if err != nil {
		return nil, err
	}

	return rs.Data.Accounts, nil
}

type transactionResponse struct {
	Data struct {
		Transactions []wireTransaction `json:"transactions"`
	} `json:"data"`
}

type wireTransaction struct {
	UUID            string  `json:"uuid"`
	AccountID       string  `json:"accountId"`
	Type            string  `json:"type"`
	TransactionType string  `json:"transactionType"`
	Description     string  `json:"description"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	TransactionDate string  `json:"transactionDate"`
	RunningBalance  float64 `json:"runningBalance"`
	CardNumber      string  `json:"cardNumber"`
	PostedOrder     int     `json:"postedOrder"`
}

// ListTransactions returns the ledger entries for one account in the
// inclusive [from, to] window. An empty result means no activity, not an
// error.
func (c *Client) ListTransactions(accountID string, from, to time.Time) ([]ledger.Transaction, error) {
	query := url.Values{}
	query.Set("fromDate", from.Format(ledger.DateLayout))
	query.Set("toDate", to.Format(ledger.DateLayout))

	var rs transactionResponse

	err := c.get("/za/pb/v1/accounts/"+accountID+"/transactions", query, &rs)
	if err != nil {
		return nil, err
	}

	transactions := make([]ledger.Transaction, 0, len(rs.Data.Transactions))

	for _, wire := range rs.Data.Transactions {
		transactions = append(transactions, ledger.Transaction{
			ID:              wire.UUID,
			AccountID:       wire.AccountID,
			Type:            wire.Type,
			TransactionType: wire.TransactionType,
			Description:     wire.Description,
			Amount:          wire.Amount,
			Currency:        wire.Currency,
			TransactionDate: wire.TransactionDate,
			RunningBalance:  wire.RunningBalance,
			CardNumber:      wire.CardNumber,
			PostedOrder:     wire.PostedOrder,
		})
	}

	return transactions, nil
}

type Beneficiary struct {
	BeneficiaryID string `json:"beneficiaryId"`
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
}

type beneficiaryResponse struct {
	Data []Beneficiary `json:"data"`
}

func (c *Client) ListBeneficiaries() ([]Beneficiary, error) {
	var rs beneficiaryResponse

	err := c.get("/za/pb/v1/accounts/beneficiaries", nil, &rs)
	if err != nil {
		return nil, err
	}

	return rs.Data, nil
}
