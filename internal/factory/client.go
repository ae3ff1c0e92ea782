// Package factory реализует HTTP-клиент внешней фабрики, которая
// подтверждает заказы, формирует отчет о приготовлении и выдает
// токен выдачи. Вызов синхронный, с ограниченным таймаутом;
// повторных попыток клиент не делает — повторная отправка заказа
// остается за вызывающей стороной.
package factory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// ResponseError описывает отказ фабрики. ReportURL сохраняется,
// если фабрика вернула его даже при отказе.
type ResponseError struct {
	StatusCode int
	ReportURL  string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("factory returned status %d", e.StatusCode)
}

// Client — HTTP-клиент фабрики.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент фабрики с ограниченным таймаутом запроса.
func NewClient(apiURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ConfirmOrder отправляет заказ фабрике и возвращает отчет с токеном выдачи.
// Неуспешный статус, сетевая ошибка или некорректный ответ считаются отказом.
func (c *Client) ConfirmOrder(ctx context.Context, reqParams ConfirmOrderRequest) (*ConfirmOrderResponse, error) {
	const op = "factory.ConfirmOrder"

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(reqParams); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/api/order", &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		// Даже при отказе фабрика может вернуть ссылку на отчет —
		// она нужна операторам для разбора инцидента.
		var failure ConfirmOrderResponse
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return nil, &ResponseError{StatusCode: resp.StatusCode, ReportURL: failure.ReportURL}
	}

	var result ConfirmOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if result.JWT == "" {
		return nil, &ResponseError{StatusCode: resp.StatusCode, ReportURL: result.ReportURL}
	}
	return &result, nil
}
