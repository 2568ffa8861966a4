package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// 严格模式下的流转表；默认关闭（管理员可任意改状态）
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// CanTransition strict=false 时任意合法状态都可达
func (s OrderStatus) CanTransition(to OrderStatus, strict bool) bool {
	if !to.Valid() {
		return false
	}
	if !strict || s == to {
		return true
	}
	for _, v := range orderTransitions[s] {
		if v == to {
			return true
		}
	}
	return false
}

// OrderPaymentStatus 订单上的支付状态
type OrderPaymentStatus string

const (
	OrderUnpaid   OrderPaymentStatus = "pending"
	OrderPaid     OrderPaymentStatus = "paid"
	OrderPayFail  OrderPaymentStatus = "failed"
	OrderRefunded OrderPaymentStatus = "refunded"
)

func (s OrderPaymentStatus) Valid() bool {
	switch s {
	case OrderUnpaid, OrderPaid, OrderPayFail, OrderRefunded:
		return true
	}
	return false
}

type Order struct {
	ID              string             `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Code            string             `gorm:"size:32;uniqueIndex;not null" json:"code"`
	CustomerName    string             `gorm:"size:128;not null" json:"customerName"`
	CustomerEmail   string             `gorm:"size:191;index" json:"customerEmail"`
	CustomerPhone   string             `gorm:"size:32" json:"customerPhone"`
	ShippingAddress string             `gorm:"size:512" json:"shippingAddress"`
	Note            string             `gorm:"size:512" json:"note"`
	Items           []OrderItem        `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Subtotal        float64            `gorm:"not null;default:0" json:"subtotal"`
	Discount        float64            `gorm:"not null;default:0" json:"discount"`
	ShippingFee     float64            `gorm:"not null;default:0" json:"shippingFee"`
	Total           float64            `gorm:"not null;default:0" json:"total"`
	CouponID        string             `gorm:"size:32" json:"couponId"`
	Status          OrderStatus        `gorm:"size:16;index;not null;default:pending" json:"status"`
	PaymentMethod   string             `gorm:"size:16" json:"paymentMethod"`
	PaymentStatus   OrderPaymentStatus `gorm:"size:16;index;not null;default:pending" json:"paymentStatus"`
	CreatedAt       time.Time          `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt       time.Time          `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID          string  `gorm:"primaryKey;type:varchar(32)" json:"id"`
	OrderID     string  `gorm:"size:32;index;not null" json:"orderId"`
	ProductID   string  `gorm:"size:32;index" json:"productId"`
	ProductName string  `gorm:"size:191" json:"productName"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
}

func (OrderItem) TableName() string { return "order_items" }
