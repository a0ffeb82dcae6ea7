package dto

import "time"

type CoinPackageDTO struct {
	Coins int64  `json:"coins" example:"150"`
	Price string `json:"price" example:"10"`
}

type CreateIntentRequestDTO struct {
	PackageIndex int `json:"packageIndex" example:"1"`
}

type CreateIntentResponseDTO struct {
	ClientSecret string `json:"clientSecret,omitempty"`
	Coins        int64  `json:"coins" example:"150"`
	Amount       string `json:"amount" example:"10"`
	Demo         bool   `json:"demo,omitempty"`
}

type ConfirmPaymentRequestDTO struct {
	Coins           int64  `json:"coins" example:"150"`
	Amount          string `json:"amount" example:"10"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
}

type PaymentResponseDTO struct {
	ID          int       `json:"id"`
	UserEmail   string    `json:"user_email"`
	Coins       int64     `json:"coins" example:"150"`
	Amount      string    `json:"amount" example:"10.00"`
	ProviderRef string    `json:"provider_ref"`
	CreatedAt   time.Time `json:"created_at"`
}
