package model

import (
	"hotel/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldGuestName      = "guest_name"
	FieldGender         = "gender"
	FieldIdentityNumber = "identity_number"
	FieldRoomType       = "room_type"
	FieldNightlyRate    = "nightly_rate"
	FieldCheckInDate    = "check_in_date"
	FieldNights         = "nights"
	FieldBreakfast      = "include_breakfast"
	FieldTotalDue       = "total_due"
	FieldCreatedAt      = "created_at"
)

// SortableFields are the columns a listing may be ordered by.
var SortableFields = []string{
	FieldCreatedAt,
	FieldCheckInDate,
	FieldGuestName,
	FieldRoomType,
	FieldNights,
	FieldTotalDue,
}

type Booking struct {
	ID             string    `db:"id"                gorm:"column:id;primaryKey;size:36"`
	GuestName      string    `db:"guest_name"        gorm:"column:guest_name;not null"`
	Gender         string    `db:"gender"            gorm:"column:gender;not null"`
	IdentityNumber string    `db:"identity_number"   gorm:"column:identity_number;size:16;not null;uniqueIndex:bookings_identity_number_key"`
	RoomType       string    `db:"room_type"         gorm:"column:room_type;not null"`
	NightlyRate    int64     `db:"nightly_rate"      gorm:"column:nightly_rate;not null"`
	CheckInDate    time.Time `db:"check_in_date"     gorm:"column:check_in_date;not null"`
	Nights         int       `db:"nights"            gorm:"column:nights;not null"`
	Breakfast      bool      `db:"include_breakfast" gorm:"column:include_breakfast;not null;default:false"`
	TotalDue       int64     `db:"total_due"         gorm:"column:total_due;not null"`
	model.Metadata
}

// TableName implements gorm's tabler.
func (Booking) TableName() string {
	return TableName
}

// Stats aggregates a set of bookings.
type Stats struct {
	TotalBookings int
	TotalRevenue  int64
	PerRoomType   map[string]int
}
