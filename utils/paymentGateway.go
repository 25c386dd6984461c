package utils

import (
	"easylearn/config"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// GatewayOrder represents an order created on the payment gateway
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// GatewayPayment represents a payment fetched from the gateway
type GatewayPayment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
	Method  string `json:"method"`
}

// CreateGatewayOrder creates a payment order on the gateway. Amount is in
// the smallest currency unit.
func CreateGatewayOrder(amount int64, receipt string) (*GatewayOrder, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.PaymentKeyID, config.AppConfig.PaymentKeySecret).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"amount":   amount,
			"currency": config.AppConfig.PaymentCurrency,
			"receipt":  receipt,
		}).
		Post(config.AppConfig.PaymentApiURL + "/orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway order API error: %s", resp.String())
	}

	var order GatewayOrder
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to parse gateway order response: %v", err)
	}

	return &order, nil
}

// FetchGatewayPayment fetches a payment from the gateway by its reference
func FetchGatewayPayment(paymentRef string) (*GatewayPayment, error) {
	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.PaymentKeyID, config.AppConfig.PaymentKeySecret).
		Get(config.AppConfig.PaymentApiURL + "/payments/" + paymentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gateway payment: %v", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("gateway payment API error: %s", resp.String())
	}

	var payment GatewayPayment
	if err := json.Unmarshal(resp.Body(), &payment); err != nil {
		return nil, fmt.Errorf("failed to parse gateway payment response: %v", err)
	}

	return &payment, nil
}
