package domain

import "time"

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
	PaymentCancelled  PaymentStatus = "cancelled"
	PaymentRefunded   PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

const (
	MethodCOD   = "cod"
	MethodVNPay = "vnpay"
	MethodMoMo  = "momo"
	MethodBank  = "bank"
)

type Payment struct {
	ID            string        `gorm:"primaryKey;type:varchar(32)" json:"id"`
	OrderID       string        `gorm:"size:32;index;not null" json:"order_id"`
	Method        string        `gorm:"size:16;not null" json:"payment_method"`
	Amount        float64       `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"size:16;index;not null;default:pending" json:"payment_status"`
	TransactionID string        `gorm:"size:128" json:"transaction_id"`
	RefundAmount  float64       `gorm:"not null;default:0" json:"refund_amount"`
	RefundReason  string        `gorm:"size:512" json:"refund_reason"`
	PaidAt        *time.Time    `json:"paid_at"`
	RefundedAt    *time.Time    `json:"refunded_at"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
