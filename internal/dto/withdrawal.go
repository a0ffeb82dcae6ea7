package dto

import "time"

type CreateWithdrawalRequestDTO struct {
	CoinAmount    int64  `json:"withdrawal_coin" validate:"required" example:"200"`
	PaymentSystem string `json:"payment_system" example:"Stripe"`
	AccountNumber string `json:"account_number" example:"4561261212345467"`
}

type WithdrawalResponseDTO struct {
	ID            int       `json:"id" example:"3"`
	WorkerEmail   string    `json:"worker_email"`
	WorkerName    string    `json:"worker_name"`
	CoinAmount    int64     `json:"withdrawal_coin" example:"200"`
	Amount        string    `json:"withdrawal_amount" example:"10.00"`
	PaymentSystem string    `json:"payment_system" example:"Stripe"`
	AccountNumber string    `json:"account_number"`
	Status        string    `json:"status" example:"pending"`
	CreatedAt     time.Time `json:"withdraw_date"`
}
