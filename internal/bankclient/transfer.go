package bankclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bdewet/goalops/pkg/ledger"
)

var (
	// ErrTransferFailed means the bank definitively rejected the transfer.
	ErrTransferFailed = errors.New("transfer failed")
	// ErrTransferTimedOut means no definitive answer arrived; the transfer
	// may still have succeeded server-side. Callers must not reconcile goals
	// on this error.
	ErrTransferTimedOut = errors.New("transfer timed out")
)

type TransferStatus string

const (
	// StatusSettled: the bank confirmed the transfer completed.
	StatusSettled TransferStatus = "SETTLED"
	// StatusAccepted: the bank accepted the transfer for async processing.
	// Safe to reconcile against goals, the money is committed.
	StatusAccepted TransferStatus = "ACCEPTED"
)

// TransferResult pairs the outcome handed to the reconciliation engine with
// the settlement status reported by the bank.
type TransferResult struct {
	Outcome    ledger.TransferOutcome
	Status     TransferStatus
	TransferID string
}

type transferRequest struct {
	TransferList []transferInstruction `json:"transferList"`
}

type transferInstruction struct {
	BeneficiaryAccountID string `json:"beneficiaryAccountId"`
	Amount               string `json:"amount"`
	MyReference          string `json:"myReference"`
	TheirReference       string `json:"theirReference"`
}

type paymentRequest struct {
	PaymentList []paymentInstruction `json:"paymentList"`
}

type paymentInstruction struct {
	BeneficiaryID  string `json:"beneficiaryId"`
	Amount         string `json:"amount"`
	MyReference    string `json:"myReference"`
	TheirReference string `json:"theirReference"`
}

type transferResponse struct {
	Data struct {
		TransferResponses []struct {
			Status      string `json:"Status"`
			Description string `json:"Description"`
			TransferID  string `json:"transferId"`
		} `json:"transferResponses"`
	} `json:"data"`
}

// Transfer moves money between two of the caller's own accounts and returns
// the outcome for goal reconciliation.
func (c *Client) Transfer(sourceAccountID, destinationAccountID string, amount float64, myReference, theirReference string) (TransferResult, error) {
	outcome := ledger.TransferOutcome{
		SourceAccountID:      sourceAccountID,
		DestinationAccountID: destinationAccountID,
		Amount:               amount,
		MyReference:          myReference,
		TheirReference:       theirReference,
	}

	body := transferRequest{
		TransferList: []transferInstruction{{
			BeneficiaryAccountID: destinationAccountID,
			Amount:               fmt.Sprintf("%.2f", amount),
			MyReference:          myReference,
			TheirReference:       theirReference,
		}},
	}

	return c.postTransfer("/za/pb/v1/accounts/"+sourceAccountID+"/transfermultiple", body, outcome)
}

// PayBeneficiary pays a saved beneficiary. The outcome has no destination
// account, so a linked goal treats the payment as outgoing.
func (c *Client) PayBeneficiary(sourceAccountID, beneficiaryID string, amount float64, myReference, theirReference string) (TransferResult, error) {
	outcome := ledger.TransferOutcome{
		SourceAccountID: sourceAccountID,
		Amount:          amount,
		MyReference:     myReference,
		TheirReference:  theirReference,
	}

	body := paymentRequest{
		PaymentList: []paymentInstruction{{
			BeneficiaryID:  beneficiaryID,
			Amount:         fmt.Sprintf("%.2f", amount),
			MyReference:    myReference,
			TheirReference: theirReference,
		}},
	}

	return c.postTransfer("/za/pb/v1/accounts/"+sourceAccountID+"/paymultiple", body, outcome)
}

func (c *Client) postTransfer(path string, body interface{}, outcome ledger.TransferOutcome) (TransferResult, error) {
	result := TransferResult{Outcome: outcome}

	token, err := c.accessToken()
	if err != nil {
		return result, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return result, err
	}

	req, err := http.NewRequest("POST", c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return result, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	rs, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("%w: %v", ErrTransferTimedOut, err)
	}
	defer rs.Body.Close()

	switch rs.StatusCode {
	case http.StatusOK:
		result.Status = StatusSettled

		// a 200 with an unparsable body is still a success
		var parsed transferResponse
		if err := json.NewDecoder(rs.Body).Decode(&parsed); err == nil && len(parsed.Data.TransferResponses) > 0 {
			result.TransferID = parsed.Data.TransferResponses[0].TransferID
		}

		return result, nil
	case http.StatusAccepted:
		result.Status = StatusAccepted
		return result, nil
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return result, fmt.Errorf("%w: %s returned %d", ErrTransferTimedOut, path, rs.StatusCode)
	case http.StatusUnauthorized, http.StatusForbidden:
		return result, fmt.Errorf("%w: %s returned %d", ErrAuthFailure, path, rs.StatusCode)
	default:
		detail, _ := io.ReadAll(rs.Body)
		return result, fmt.Errorf("%w: %s returned %d: %s", ErrTransferFailed, path, rs.StatusCode, strings.TrimSpace(string(detail)))
	}
}
