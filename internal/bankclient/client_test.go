package bankclient

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *Client) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			fmt.Fprint(w, `{"access_token": "test-token", "expires_in": 1799}`)
			return
		}

		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		handler(w, r)
	}))

	t.Cleanup(server.Close)

	return server, New(server.URL, "id", "secret", "test-key")
}

func TestListAccounts(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/za/pb/v1/accounts", r.URL.Path)
		fmt.Fprint(w, `{"data": {"accounts": [
			{"accountId": "acc1", "accountNumber": "10010206789", "accountName": "Private Bank Account", "referenceName": "savings"}
		]}}`)
	})

	accounts, err := client.ListAccounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "acc1", accounts[0].AccountID)
	assert.Equal(t, "Private Bank Account (10010206789)", accounts[0].DisplayName())
}

func TestListTransactions(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/za/pb/v1/accounts/acc1/transactions", r.URL.Path)
		assert.Equal(t, "2025-08-01", r.URL.Query().Get("fromDate"))
		assert.Equal(t, "2025-08-31", r.URL.Query().Get("toDate"))

		fmt.Fprint(w, `{"data": {"transactions": [
			{"uuid": "t1", "accountId": "acc1", "type": "DEBIT", "transactionType": "CardPurchases",
			 "description": "Woolworths", "amount": 150, "currency": "ZAR", "transactionDate": "2025-08-02",
			 "runningBalance": 12350, "postedOrder": 2}
		]}}`)
	})

	from := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)

	transactions, err := client.ListTransactions("acc1", from, to)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "t1", transactions[0].ID)
	assert.Equal(t, "CardPurchases", transactions[0].TransactionType)
	assert.True(t, transactions[0].IsDebit())
	assert.Equal(t, 150.0, transactions[0].Amount)
}

func TestListTransactionsEmptyIsNotAnError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"transactions": []}}`)
	})

	transactions, err := client.ListTransactions("acc1", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestListBeneficiaries(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/za/pb/v1/accounts/beneficiaries", r.URL.Path)
		fmt.Fprint(w, `{"data": [
			{"beneficiaryId": "ben1", "name": "City of Cape Town", "accountNumber": "4055551234"}
		]}`)
	})

	beneficiaries, err := client.ListBeneficiaries()
	require.NoError(t, err)
	require.Len(t, beneficiaries, 1)
	assert.Equal(t, "ben1", beneficiaries[0].BeneficiaryID)
	assert.Equal(t, "City of Cape Town", beneficiaries[0].Name)
	assert.Equal(t, "4055551234", beneficiaries[0].AccountNumber)
}

func TestAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "id", "bad-secret", "test-key")

	_, err := client.ListAccounts()
	assert.ErrorIs(t, err, ErrAuthFailure)
}

func TestUpstreamUnavailable(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "downstream timeout", http.StatusBadGateway)
	})

	_, err := client.ListAccounts()
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestTokenIsReused(t *testing.T) {
	tokenRequests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == tokenPath {
			tokenRequests++
			fmt.Fprint(w, `{"access_token": "test-token", "expires_in": 1799}`)
			return
		}

		fmt.Fprint(w, `{"data": {"accounts": []}}`)
	}))
	t.Cleanup(server.Close)

	client := New(server.URL, "id", "secret", "test-key")

	_, err := client.ListAccounts()
	require.NoError(t, err)
	_, err = client.ListAccounts()
	require.NoError(t, err)

	assert.Equal(t, 1, tokenRequests)
}

func TestTransferSettled(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/za/pb/v1/accounts/acc1/transfermultiple", r.URL.Path)
		fmt.Fprint(w, `{"data": {"transferResponses": [
			{"Status": "COMPLETED", "Description": "ok", "transferId": "tr1"}
		]}}`)
	})

	result, err := client.Transfer("acc1", "acc2", 40, "my ref", "their ref")
	require.NoError(t, err)
	assert.Equal(t, StatusSettled, result.Status)
	assert.Equal(t, "tr1", result.TransferID)
	assert.Equal(t, "acc1", result.Outcome.SourceAccountID)
	assert.Equal(t, "acc2", result.Outcome.DestinationAccountID)
	assert.Equal(t, 40.0, result.Outcome.Amount)
}

func TestTransferAccepted(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	result, err := client.Transfer("acc1", "acc2", 40, "", "")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, result.Status)
}

func TestTransferFailed(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "insufficient funds", http.StatusBadRequest)
	})

	_, err := client.Transfer("acc1", "acc2", 40, "", "")
	assert.ErrorIs(t, err, ErrTransferFailed)
}

func TestTransferTimedOut(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	_, err := client.Transfer("acc1", "acc2", 40, "", "")
	assert.ErrorIs(t, err, ErrTransferTimedOut)
}

func TestPayBeneficiaryOutcomeHasNoDestination(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/za/pb/v1/accounts/acc1/paymultiple", r.URL.Path)
		fmt.Fprint(w, `{"data": {"transferResponses": []}}`)
	})

	result, err := client.PayBeneficiary("acc1", "ben1", 100, "", "")
	require.NoError(t, err)
	assert.Equal(t, StatusSettled, result.Status)
	assert.Equal(t, "", result.Outcome.DestinationAccountID)
}
