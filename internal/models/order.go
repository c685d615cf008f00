package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type PlaceOrderRequest struct {
	OrderItems      []OrderItemInput `json:"orderItems" validate:"required,min=1,dive"`
	ShippingAddress string           `json:"shippingAddress" validate:"required"`
	PaymentMethod   string           `json:"paymentMethod" validate:"required,oneof=card paypal m-pesa cod"`
}

type PlaceOrderResponse struct {
	OrderID string `json:"orderId"`
}

// OrderLine is a denormalized line as the backend reports it on reads.
type OrderLine struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID               string      `json:"id"`
	Status           OrderStatus `json:"status"`
	OrderDate        time.Time   `json:"order_date"`
	TotalAmount      float64     `json:"total_amount"`
	ShippingAddress  string      `json:"shipping_address"`
	CustomerUsername string      `json:"customer_username,omitempty"`
	CustomerEmail    string      `json:"customer_email,omitempty"`
	Items            []OrderLine `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}
