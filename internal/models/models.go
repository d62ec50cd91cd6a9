package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	OrderStatusNew       = "NEW"
	OrderStatusPending   = "PENDING"
	OrderStatusPayed     = "PAYED"
	OrderStatusCanceled  = "CANCELED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCompleted = "COMPLETED"
)

const (
	DeliveryTypePickup   = "PICKUP"
	DeliveryTypeCourier  = "COURIER"
	DeliveryTypeNovaPost = "NOVA_POST"
)

const (
	PaymentStatusPending  = "PENDING"
	PaymentStatusPayed    = "PAYED"
	PaymentStatusCanceled = "CANCELED"
	PaymentStatusRefunded = "REFUNDED"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"         json:"email"`
	PasswordHash string    `gorm:"not null"                     json:"-"`
	Name         string    `json:"name"`
	Role         string    `gorm:"not null;default:customer"    json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string        `gorm:"not null"                 json:"name"`
	Slug          string        `gorm:"uniqueIndex;not null"     json:"slug"`
	Image         string        `json:"image"`
	Subcategories []Subcategory `gorm:"constraint:OnDelete:CASCADE" json:"subcategories,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type Subcategory struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null"                 json:"name"`
	Slug       string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Image      string    `json:"image"`
	CategoryID uint      `gorm:"index;not null"           json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Brand struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Product struct {
	ID            uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string       `gorm:"not null"                 json:"name"`
	Slug          string       `gorm:"uniqueIndex;not null"     json:"slug"`
	Description   string       `gorm:"not null"                 json:"description"`
	Price         float64      `gorm:"not null"                 json:"price"`
	Images        []string     `gorm:"serializer:json"          json:"images"`
	CategoryID    uint         `gorm:"index;not null"           json:"categoryId"`
	SubcategoryID uint         `gorm:"index;not null"           json:"subcategoryId"`
	BrandID       *uint        `gorm:"index"                    json:"brandId"`
	Category      *Category    `json:"category,omitempty"`
	Subcategory   *Subcategory `json:"subcategory,omitempty"`
	Brand         *Brand       `json:"brand,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type Attribute struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AttributeValue struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Value       string     `gorm:"not null"                 json:"value"`
	AttributeID uint       `gorm:"index;not null"           json:"attributeId"`
	Attribute   *Attribute `json:"attribute,omitempty"`
}

type ProductAttribute struct {
	ID               uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID        uint            `gorm:"not null;uniqueIndex:idx_product_attr_value" json:"productId"`
	AttributeValueID uint            `gorm:"not null;uniqueIndex:idx_product_attr_value" json:"attributeValueId"`
	AttributeValue   *AttributeValue `json:"attributeValue,omitempty"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	Status          string      `gorm:"not null;default:NEW"      json:"status"`
	UserID          *uint       `gorm:"index"                     json:"userId"`
	CustomerEmail   string      `gorm:"not null"                  json:"customerEmail"`
	CustomerPhone   string      `gorm:"not null"                  json:"customerPhone"`
	DeliveryType    string      `gorm:"not null;default:PICKUP"   json:"deliveryType"`
	DeliveryAddress string      `gorm:"not null"                  json:"deliveryAddress"`
	Comments        string      `json:"comments"`
	OrderItems      []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"orderItems,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID   uint     `gorm:"index;not null"             json:"orderId"`
	ProductID uint     `gorm:"index;not null"             json:"productId"`
	Quantity  uint     `gorm:"not null;check:quantity>0"  json:"quantity"`
	Price     float64  `gorm:"not null"                   json:"price"`
	Product   *Product `json:"product,omitempty"`
}

type Payment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Amount    float64   `gorm:"not null"                 json:"amount"`
	Status    string    `gorm:"not null;default:PENDING" json:"status"`
	OrderID   uint      `gorm:"index;not null"           json:"orderId"`
	UserID    *uint     `gorm:"index"                    json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text      string    `json:"text"`
	ProductID uint      `gorm:"index;not null"           json:"productId"`
	UserID    uint      `gorm:"index;not null"           json:"userId"`
	User      *User     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
