package models

import (
	"time"
)

type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	EventName   string    `json:"event_name" gorm:"not null"`
	Description string    `json:"description"`
	Date        string    `json:"date" gorm:"not null"`
	Time        string    `json:"time" gorm:"not null"`
	Location    string    `json:"location" gorm:"not null"`
	Address     string    `json:"address" gorm:"not null"`
	Organizer   string    `json:"organizer" gorm:"not null"`
	SaleTime    string    `json:"sale_time" gorm:"not null"`
	OnSale      bool      `json:"on_sale" gorm:"not null;default:false"`
	Price       string    `json:"price" gorm:"not null"`
	Pic         *string   `json:"pic"`
	Category    string    `json:"category" gorm:"not null"`
	IsDeleted   bool      `json:"-" gorm:"not null;default:false;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EventSummary is the list projection of an event.
type EventSummary struct {
	ID        uint    `json:"id"`
	EventName string  `json:"event_name"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Location  string  `json:"location"`
	Pic       *string `json:"pic"`
}

type EventRequest struct {
	EventName   string  `json:"event_name" validate:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" validate:"required"`
	Time        string  `json:"time" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Organizer   string  `json:"organizer" validate:"required"`
	SaleTime    string  `json:"sale_time" validate:"required"`
	OnSale      bool    `json:"on_sale"`
	Price       string  `json:"price" validate:"required"`
	Pic         *string `json:"pic"`
	Category    string  `json:"category" validate:"required"`
}

// ToEvent builds a new, not yet persisted event.
func (r EventRequest) ToEvent() *Event {
	return &Event{
		EventName:   r.EventName,
		Description: r.Description,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Address:     r.Address,
		Organizer:   r.Organizer,
		SaleTime:    r.SaleTime,
		OnSale:      r.OnSale,
		Price:       r.Price,
		Pic:         r.Pic,
		Category:    r.Category,
	}
}

type EventListQuery struct {
	SortBy  string `query:"sort_by" validate:"omitempty,oneof=created_at updated_at"`
	OrderBy string `query:"order_by" validate:"omitempty,oneof=asc desc"`
}

type PictureResponse struct {
	Pic string `json:"pic"`
}

// MaxPictureSize bounds uploaded event pictures (5 MiB).
const MaxPictureSize = 5 << 20

type PictureUpload struct {
	ContentType string `validate:"required,supported_image"`
	Size        int64  `validate:"gt=0,lte=5242880"`
}
