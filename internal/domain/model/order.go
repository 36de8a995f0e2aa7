package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValidOrderStatus vérifie qu'un statut reçu du dashboard est connu.
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	//numéro visible client, unique et immuable une fois attribué
	OrderNumber        string      `gorm:"type:varchar(64);not null;uniqueIndex" json:"orderNumber"`
	CustomerName       string      `gorm:"type:varchar(255)" json:"customerName"`
	CustomerEmail      string      `gorm:"type:varchar(255)" json:"customerEmail"`
	CustomerPhone      string      `gorm:"type:varchar(50)" json:"customerPhone"`
	CustomerStreet     string      `gorm:"type:varchar(255)" json:"customerStreet"`
	CustomerPostalCode string      `gorm:"type:varchar(20)" json:"customerPostalCode"`
	CustomerCity       string      `gorm:"type:varchar(100)" json:"customerCity"`
	CustomerCountry    string      `gorm:"type:varchar(100)" json:"customerCountry"`
	Status             OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	//montants en centimes
	SubtotalAmount int64        `gorm:"not null" json:"subtotalAmount"`
	DiscountType   DiscountType `gorm:"type:varchar(20)" json:"discountType,omitempty"`
	DiscountValue  int64        `gorm:"not null;default:0" json:"discountValue"`
	DiscountAmount int64        `gorm:"not null;default:0" json:"discountAmount"`
	TotalAmount    int64        `gorm:"not null" json:"totalAmount"`
	DiscountCode   string       `gorm:"type:varchar(50)" json:"discountCode,omitempty"`
	Notes          string       `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time    `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time    `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
