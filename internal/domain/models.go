package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleWorker Role = "worker"
	RoleBuyer  Role = "buyer"
	RoleAdmin  Role = "admin"
)

// ParseRole normalizes a stored or submitted role to the closed set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleWorker:
		return RoleWorker, nil
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

const (
	SubmissionPending  string = "pending"
	SubmissionApproved string = "approved"
	SubmissionRejected string = "rejected"
)

const (
	WithdrawalPending  string = "pending"
	WithdrawalApproved string = "approved"
)

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	Name         string    `db:"name"`
	PhotoURL     string    `db:"photo_url"`
	Role         Role      `db:"role"`
	Coin         int64     `db:"coin"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type Task struct {
	ID              int       `db:"id"`
	Title           string    `db:"title"`
	Detail          string    `db:"detail"`
	BuyerEmail      string    `db:"buyer_email"`
	BuyerName       string    `db:"buyer_name"`
	RequiredWorkers int       `db:"required_workers"`
	PayableAmount   int64     `db:"payable_amount"`
	CompletionDate  time.Time `db:"completion_date"`
	SubmissionInfo  string    `db:"submission_info"`
	ImageURL        string    `db:"image_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Submission carries the task title, payable amount and buyer identity
// captured at submit time; later task edits must not change what a worker
// is owed.
type Submission struct {
	ID            int       `db:"id"`
	TaskID        int       `db:"task_id"`
	TaskTitle     string    `db:"task_title"`
	PayableAmount int64     `db:"payable_amount"`
	WorkerEmail   string    `db:"worker_email"`
	WorkerName    string    `db:"worker_name"`
	BuyerEmail    string    `db:"buyer_email"`
	BuyerName     string    `db:"buyer_name"`
	Details       string    `db:"details"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type Withdrawal struct {
	ID            int             `db:"id"`
	WorkerEmail   string          `db:"worker_email"`
	WorkerName    string          `db:"worker_name"`
	CoinAmount    int64           `db:"coin_amount"`
	Amount        decimal.Decimal `db:"amount"`
	PaymentSystem string          `db:"payment_system"`
	AccountNumber string          `db:"account_number"`
	Status        string          `db:"status"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type Payment struct {
	ID          int             `db:"id"`
	UserEmail   string          `db:"user_email"`
	UserName    string          `db:"user_name"`
	Coins       int64           `db:"coins"`
	Amount      decimal.Decimal `db:"amount"`
	ProviderRef string          `db:"provider_ref"`
	CreatedAt   time.Time       `db:"created_at"`
}

type Notification struct {
	ID          int       `db:"id"`
	ToEmail     string    `db:"to_email"`
	Message     string    `db:"message"`
	ActionRoute string    `db:"action_route"`
	CreatedAt   time.Time `db:"created_at"`
}

type Report struct {
	ID           int       `db:"id"`
	SubmissionID int       `db:"submission_id"`
	ReportedBy   string    `db:"reported_by"`
	Reason       string    `db:"reason"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}
