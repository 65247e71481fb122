package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a marketplace order placed by a buyer
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Reference     string         `gorm:"type:varchar(100);uniqueIndex" json:"reference"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TotalAmount   float64        `gorm:"type:decimal(20,2);not null" json:"total_amount"`
	Currency      string         `gorm:"type:varchar(3);not null;default:'SYP'" json:"currency"`
	ShippingCity  string         `gorm:"type:varchar(100)" json:"shipping_city"`
	GovernorateID *uuid.UUID     `gorm:"type:uuid" json:"governorate_id,omitempty"`
	Governorate   *Governorate   `gorm:"foreignKey:GovernorateID" json:"-"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem represents a single product line within an order
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate assigns a UUID if none is set
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// PaymentTransactionStatus represents the status of a payment transaction
type PaymentTransactionStatus string

const (
	PaymentTransactionStatusPending   PaymentTransactionStatus = "pending"
	PaymentTransactionStatusCompleted PaymentTransactionStatus = "completed"
	PaymentTransactionStatusFailed    PaymentTransactionStatus = "failed"
)

// PaymentTransaction represents a captured payment against an order
type PaymentTransaction struct {
	ID        uuid.UUID                `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string                   `gorm:"type:varchar(100);uniqueIndex" json:"reference"`
	OrderID   uuid.UUID                `gorm:"type:uuid;not null;index" json:"order_id"`
	Order     Order                    `gorm:"foreignKey:OrderID" json:"-"`
	Amount    float64                  `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency  string                   `gorm:"type:varchar(3);not null;default:'SYP'" json:"currency"`
	Method    string                   `gorm:"type:varchar(50)" json:"method"`
	Status    PaymentTransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Metadata  JSON                     `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// BeforeCreate assigns a UUID if none is set
func (p *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
