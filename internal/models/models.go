package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Role is the closed set of capability tiers. Never compare raw strings
// at call sites, go through Admin().
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Admin() bool { return r == RoleAdmin }

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Username     string    `gorm:"uniqueIndex;not null"  json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"  json:"email"`
	PasswordHash string    `gorm:"not null"              json:"-"`
	Role         Role      `gorm:"not null"              json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type InventoryItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"          json:"id"`
	Name        string          `gorm:"not null;index"                json:"name"`
	Category    string          `gorm:"index"                         json:"category"`
	Quantity    int64           `gorm:"not null;check:quantity >= 0"  json:"quantity"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"   json:"price"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
	AddedByID   uuid.UUID       `gorm:"type:uuid;not null"            json:"added_by"`
	UpdatedByID *uuid.UUID      `gorm:"type:uuid"                     json:"updated_by,omitempty"`
	Version     int64           `gorm:"not null;default:1"            json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Order struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey"      json:"id"`
	UserID        uuid.UUID     `gorm:"type:uuid;index;not null"  json:"user_id"`
	Items         []OrderItem   `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	Status        OrderStatus   `gorm:"not null;default:pending"  json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:pending"  json:"payment_status"`
	Version       int64         `gorm:"not null;default:1"        json:"-"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem lines are fixed at order creation, Position keeps the
// submission order stable across reloads.
type OrderItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"        json:"id"`
	OrderID      uuid.UUID      `gorm:"type:uuid;index;not null"    json:"order_id"`
	ItemID       uuid.UUID      `gorm:"type:uuid;not null"          json:"item_id"`
	Item         *InventoryItem `gorm:"foreignKey:ItemID"           json:"item,omitempty"`
	Quantity     int64          `gorm:"not null;check:quantity > 0" json:"quantity"`
	Requirements string         `json:"requirements"`
	Position     int            `gorm:"not null"                    json:"-"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionView     Action = "view"
	ActionLogin    Action = "login"
	ActionRegister Action = "register"
)

type Entity string

const (
	EntityInventory Entity = "inventory"
	EntityUser      Entity = "user"
	EntityAuth      Entity = "auth"
	EntityOrder     Entity = "order"
)

// ActivityLog rows are append-only, nothing updates or deletes them.
type ActivityLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"      json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null"  json:"user_id"`
	Action    Action     `gorm:"not null"                  json:"action"`
	Entity    Entity     `gorm:"not null"                  json:"entity"`
	EntityID  *uuid.UUID `gorm:"type:uuid"                 json:"entity_id,omitempty"`
	Details   string     `json:"details"`
	Timestamp time.Time  `gorm:"index;not null"            json:"timestamp"`
}

func (l *ActivityLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"  json:"token"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt int64     `gorm:"not null"              json:"expires_at"`
	Revoked   bool      `gorm:"default:false"         json:"revoked"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
