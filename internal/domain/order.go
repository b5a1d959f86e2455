package domain

import "time"

// OrderStatus enumerates order lifecycle states. Valid transitions are
// fetched from the orders service, never computed here.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "PLACED"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus enumerates payment states of an order.
type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
)

// FulfillmentStatus enumerates fulfillment states of an order.
type FulfillmentStatus string

const (
	FulfillmentUnfulfilled    FulfillmentStatus = "UNFULFILLED"
	FulfillmentProcessing     FulfillmentStatus = "PROCESSING"
	FulfillmentPacked         FulfillmentStatus = "PACKED"
	FulfillmentDispatched     FulfillmentStatus = "DISPATCHED"
	FulfillmentInTransit      FulfillmentStatus = "IN_TRANSIT"
	FulfillmentOutForDelivery FulfillmentStatus = "OUT_FOR_DELIVERY"
	FulfillmentDelivered      FulfillmentStatus = "DELIVERED"
	FulfillmentFailedDelivery FulfillmentStatus = "FAILED_DELIVERY"
	FulfillmentReturned       FulfillmentStatus = "RETURNED"
)

// Order is a customer order as reported by the orders service.
type Order struct {
	ID                string            `json:"id"`
	TenantID          string            `json:"tenantId"`
	OrderNumber       string            `json:"orderNumber"`
	CustomerName      string            `json:"customerName"`
	CustomerEmail     string            `json:"customerEmail"`
	CustomerPhone     string            `json:"customerPhone,omitempty"`
	Status            OrderStatus       `json:"status"`
	PaymentStatus     PaymentStatus     `json:"paymentStatus"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus"`

	Currency string  `json:"currency"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`

	Items []OrderItem `json:"items,omitempty"`

	ReceiptURL    string `json:"receiptUrl,omitempty"`
	InvoiceNumber string `json:"invoiceNumber,omitempty"`

	PlacedAt  time.Time `json:"placedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	SKU         string  `json:"sku"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// OrderTransitions is the server-reported set of legal next states for an
// order. The dashboard renders exactly these options.
type OrderTransitions struct {
	OrderID           string   `json:"orderId"`
	Status            []string `json:"status"`
	PaymentStatus     []string `json:"paymentStatus"`
	FulfillmentStatus []string `json:"fulfillmentStatus"`
}
