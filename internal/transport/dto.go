package transport

import "github.com/hairlyf/backend/internal/models"

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	IsAdmin     bool   `json:"is_admin"`
	Token       string `json:"token"`
}

type UpdateProfileRequest struct {
	Name        *string         `json:"name"`
	Email       *string         `json:"email"`
	PhoneNumber *string         `json:"phone_number"`
	Password    *string         `json:"password"`
	Address     *models.Address `json:"address"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	IsFeatured  bool    `json:"is_featured"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	ImageURL    *string  `json:"image_url"`
	IsFeatured  *bool    `json:"is_featured"`
}

type SetStockRequest struct {
	Quantity *int `json:"quantity"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UpdateCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type WishlistRequest struct {
	ProductID uint `json:"product_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
