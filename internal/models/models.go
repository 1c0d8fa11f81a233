package models

import (
	"time"
)

const (
	OrderStatusPending   = "Pending"
	OrderStatusShipped   = "Shipped"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zip_code,omitempty"`
}

type User struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"         json:"id"`
	Name                string    `gorm:"not null"                         json:"name"`
	Email               string    `gorm:"uniqueIndex;not null"             json:"email"`
	PasswordHash        string    `gorm:"not null"                         json:"-"`
	PhoneNumber         string    `gorm:"not null"                         json:"phone_number"`
	IsAdmin             bool      `gorm:"default:false"                    json:"is_admin"`
	IsVerified          bool      `gorm:"default:false"                    json:"is_verified"`
	Address             Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ResetPasswordToken  string    `gorm:"index"                            json:"-"`
	ResetPasswordExpire int64     `json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint             `gorm:"primaryKey;autoIncrement"            json:"id"`
	Name        string           `gorm:"not null;index"                      json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Description string           `gorm:"not null"                            json:"description"`
	Price       float64          `gorm:"not null;check:price >= 0"           json:"price"`
	Category    string           `gorm:"not null;index"                      json:"category"`
	Stock       int              `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Sold        int              `gorm:"not null;default:0"                  json:"sold"`
	ImageURL    string           `gorm:"not null"                            json:"image_url"`
	IsFeatured  bool             `gorm:"default:false"                       json:"is_featured"`
	Rating      float64          `gorm:"default:0"                           json:"rating"`
	Reviews     []Review         `gorm:"constraint:OnDelete:CASCADE"         json:"reviews,omitempty"`
	Variants    []ProductVariant `gorm:"constraint:OnDelete:CASCADE"         json:"variants,omitempty"`
	CreatedAt   time.Time        `gorm:"index"                               json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	ProductID uint      `gorm:"index;not null"  json:"product_id"`
	UserID    uint      `gorm:"not null"        json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"not null"        json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductVariant struct {
	ID        uint    `gorm:"primaryKey"     json:"id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Stock     int     `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Price     float64 `json:"price,omitempty"`
}

// CartItem is one line of a user's cart. One row per (user, product);
// adding the same product again bumps Quantity instead of inserting.
type CartItem struct {
	ID        uint     `gorm:"primaryKey"                                  json:"id"`
	UserID    uint     `gorm:"index:idx_cart_user_product,unique;not null" json:"user_id"`
	ProductID uint     `gorm:"index:idx_cart_user_product,unique;not null" json:"product_id"`
	Quantity  uint     `gorm:"not null;default:1;check:quantity > 0"       json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID"                        json:"product,omitempty"`
}

type WishlistItem struct {
	ID        uint `gorm:"primaryKey"                                      json:"id"`
	UserID    uint `gorm:"index:idx_wishlist_user_product,unique;not null" json:"user_id"`
	ProductID uint `gorm:"index:idx_wishlist_user_product,unique;not null" json:"product_id"`
}

// Order is an immutable snapshot of a cart at placement time. Only Status
// changes after creation.
type Order struct {
	ID         uint        `gorm:"primaryKey"     json:"id"`
	UserID     uint        `gorm:"index;not null" json:"user_id"`
	TotalPrice float64     `gorm:"not null"       json:"total_price"`
	Status     string      `gorm:"not null"       json:"status"`
	Items      []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID              uint    `gorm:"primaryKey"     json:"id"`
	OrderID         uint    `gorm:"index;not null" json:"order_id"`
	ProductID       uint    `gorm:"not null"       json:"product_id"`
	Quantity        uint    `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceAtPurchase float64 `gorm:"not null"       json:"price_at_purchase"`
}
