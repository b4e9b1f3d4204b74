package transport

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AdminCode string `json:"admin_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type ItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
}

type PlaceOrderLine struct {
	ItemID       string `json:"item_id"`
	Quantity     int64  `json:"quantity"`
	Requirements string `json:"requirements"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderLine `json:"items"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
