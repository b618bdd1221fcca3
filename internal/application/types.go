package application

import (
	"time"

	"github.com/mobivas/vas-platform/internal/domain"
)

type Config struct {
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	DefaultCarrier string
}

type SendOTPRequest struct {
	MSISDN string `json:"msisdn"`
}

type VerifyOTPRequest struct {
	MSISDN string `json:"msisdn"`
	OTP    string `json:"otp"`
}

type VerifyOTPResponse struct {
	Token string `json:"token"`
}

type SubscribeRequest struct {
	ServiceID string `json:"serviceId"`
	Provider  string `json:"telcoProvider"`
}

type SubscribeResponse struct {
	Subscriptions []string              `json:"subscriptions"`
	Billing       domain.BillingReceipt `json:"billing"`
}

type UnsubscribeResponse struct {
	Subscriptions []string `json:"subscriptions"`
}

type BillRequest struct {
	ServiceID string `json:"serviceId"`
	Provider  string `json:"provider"`
}
