package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"
)

const RouteTransaction = "/api/transactions/%s"

// Response - запись о транзакции в реестре платежей.
type Response struct {
	TransactionID string          `json:"transaction_id"`
	Sender        string          `json:"sender"`
	Amount        decimal.Decimal `json:"amount"`
}

// HTTPClient - реализация интерфейса Client для HTTP запросов к реестру
// транзакций Nagad.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// LookupTransaction ищет транзакцию в реестре по заявленному id. При статусе
// ответа отличном от http.StatusOK возвращает ошибку StatusCodeError.
//
//nolint:nonamedreturns
func (c HTTPClient) LookupTransaction(
	ctx context.Context,
	transactionID string,
) (response *Response, err error) {
	url := c.baseURL + fmt.Sprintf(RouteTransaction, transactionID)

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if reqErr != nil {
		return nil, fmt.Errorf("create request: %s", reqErr.Error())
	}

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, fmt.Errorf("do request: %w", doErr)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		err = NewStatusCodeError(resp.StatusCode)
		return nil, err
	}

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		err = fmt.Errorf("read response: %s", readErr.Error())
		return nil, err
	}

	if jsonErr := json.Unmarshal(body, &response); jsonErr != nil {
		err = fmt.Errorf("parse response: %s", jsonErr.Error())
		return nil, err
	}

	return response, nil
}
