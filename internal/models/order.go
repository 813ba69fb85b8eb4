package models

// Order is a customer's explicit choice for one delivery date, superseding
// the default preference. At most one row per (customer_phone, delivery_date);
// writes go through an ON CONFLICT upsert. DeliveryDate is YYYY-MM-DD.
type Order struct {
	BaseModel
	CustomerPhone string  `gorm:"uniqueIndex:idx_orders_customer_date" json:"customer_phone"`
	DeliveryDate  string  `gorm:"uniqueIndex:idx_orders_customer_date" json:"delivery_date"`
	Brand         string  `json:"brand"`
	Quantity      float64 `json:"quantity"`
	Notes         string  `json:"notes"`
	Price         float64 `json:"price"`
}

// DeliveryStatusDelivered is the only status a Delivery row carries today;
// absence of a row means not yet delivered.
const DeliveryStatusDelivered = "delivered"

// Delivery records that a given date's delivery happened. Same unique key
// scheme as Order; marking twice re-asserts the same row.
type Delivery struct {
	BaseModel
	CustomerPhone string `gorm:"uniqueIndex:idx_deliveries_customer_date" json:"customer_phone"`
	DeliveryDate  string `gorm:"uniqueIndex:idx_deliveries_customer_date" json:"delivery_date"`
	Status        string `json:"status"`
}
