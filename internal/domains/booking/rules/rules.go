// Package rules holds the booking validation and pricing rules. Every function is
// pure: no I/O, no clock, no shared state.
package rules

import (
	"fmt"
	"hotel/shared/failure"
	"hotel/shared/validator"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	GenderMale   = "Laki-laki"
	GenderFemale = "Perempuan"

	RoomStandard = "STANDAR"
	RoomDeluxe   = "DELUXE"
	RoomFamily   = "FAMILY"
)

const (
	// BreakfastRate is charged per night and is never discounted.
	BreakfastRate int64 = 80000
	// LongStayThreshold is the number of nights a stay must exceed to be discounted.
	LongStayThreshold = 3
	// LongStayDiscountPercent is taken off the room subtotal of a long stay.
	LongStayDiscountPercent int64 = 10

	// MaxNights bounds a single stay. It keeps every price well inside int64 and
	// the nights column inside int32.
	MaxNights = 365

	IdentityNumberLength = 16
)

// maxAmount is the largest subtotal that can still be multiplied by a percentage.
const maxAmount = math.MaxInt64 / 100

const (
	FieldGuestName      = "namaPemesan"
	FieldGender         = "jenisKelamin"
	FieldIdentityNumber = "nomorIdentitas"
	FieldRoomType       = "tipeKamar"
	FieldCheckInDate    = "tanggalPesan"
	FieldNights         = "durasiMenginap"
)

// RoomType is a catalogue entry: code and nightly rate.
type RoomType struct {
	Code        string `json:"kode"`
	NightlyRate int64  `json:"harga"`
}

var catalogue = []RoomType{
	{Code: RoomStandard, NightlyRate: 500000},
	{Code: RoomDeluxe, NightlyRate: 750000},
	{Code: RoomFamily, NightlyRate: 1000000},
}

// Input is the raw guest submission as seen by the rules. A nil CheckInDate or
// Nights means the field was absent.
type Input struct {
	GuestName      string     `json:"namaPemesan"    validate:"notblank"`
	Gender         string     `json:"jenisKelamin"   validate:"required,oneof=Laki-laki Perempuan"`
	IdentityNumber string     `json:"nomorIdentitas" validate:"notblank,len=16,digits"`
	RoomType       string     `json:"tipeKamar"`
	CheckInDate    *time.Time `json:"tanggalPesan"   validate:"required"`
	Nights         *int64     `json:"durasiMenginap" validate:"required,gt=0,lte=365"`
	Breakfast      bool       `json:"termasukBreakfast"`
}

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ValidationErrors is the full set of failed rules of an input, empty when valid.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, fieldErr := range v {
		messages[i] = fieldErr.Message
	}

	return strings.Join(messages, "; ")
}

// Has reports whether field failed with kind.
func (v ValidationErrors) Has(field, kind string) bool {
	for _, fieldErr := range v {
		if fieldErr.Field == field && fieldErr.Kind == kind {
			return true
		}
	}

	return false
}

// Failure converts the set into a 400 failure carrying every field in details.
func (v ValidationErrors) Failure() error {
	return failure.Validation("invalid booking request", []FieldError(v))
}

func kindOf(field, tag string) string {
	switch {
	case field == FieldNights:
		return failure.KindInvalidValue
	case tag == "len" || tag == "digits":
		return failure.KindInvalidFormat
	case tag == "oneof":
		return failure.KindInvalidValue
	default:
		return failure.KindMissingField
	}
}

func messageOf(field, kind string) string {
	switch {
	case field == FieldGuestName:
		return "guest name is required"
	case field == FieldIdentityNumber && kind == failure.KindMissingField:
		return "identity number is required"
	case field == FieldIdentityNumber:
		return fmt.Sprintf("identity number must be exactly %d digits", IdentityNumberLength)
	case field == FieldCheckInDate:
		return "check-in date is required"
	case field == FieldNights:
		return fmt.Sprintf("duration must be between 1 and %d nights", MaxNights)
	case field == FieldGender && kind == failure.KindMissingField:
		return "gender is required"
	case field == FieldGender:
		return fmt.Sprintf("gender must be %s or %s", GenderMale, GenderFemale)
	default:
		return field + " is invalid"
	}
}

// Validate checks input and returns every failed rule, in field order.
func Validate(input Input) ValidationErrors {
	violations := validator.Violations(&input)
	if len(violations) == 0 {
		return nil
	}

	errs := make(ValidationErrors, 0, len(violations))
	for _, violation := range violations {
		kind := kindOf(violation.Field, violation.Tag)

		errs = append(errs, FieldError{
			Field:   violation.Field,
			Kind:    kind,
			Message: messageOf(violation.Field, kind),
		})
	}

	return errs
}

// RoomRate returns the nightly rate of a room type.
func RoomRate(roomType string) (int64, error) {
	for _, room := range catalogue {
		if room.Code == roomType {
			return room.NightlyRate, nil
		}
	}

	return 0, &failure.Failure{
		Code:    http.StatusBadRequest,
		Kind:    failure.KindUnknownRoomType,
		Message: fmt.Sprintf("unknown room type %q", roomType),
	}
}

// RoomTypes returns a copy of the room catalogue.
func RoomTypes() []RoomType {
	rooms := make([]RoomType, len(catalogue))
	copy(rooms, catalogue)

	return rooms
}

// Breakdown itemises a price.
type Breakdown struct {
	NightlyRate     int64 `json:"harga"`
	Nights          int64 `json:"durasiMenginap"`
	RoomSubtotal    int64 `json:"subtotalKamar"`
	Discount        int64 `json:"diskon"`
	BreakfastCharge int64 `json:"biayaBreakfast"`
	Total           int64 `json:"totalBayar"`
}

// Quote prices a stay. The room subtotal of a stay longer than LongStayThreshold
// nights is discounted and rounded half-up to the whole Rupiah. Nights <= 0 prices
// to zero, and so does any stay whose amounts would overflow.
func Quote(nightlyRate, nights int64, breakfast bool) Breakdown {
	breakdown := Breakdown{NightlyRate: nightlyRate, Nights: nights}
	if nights <= 0 || nightlyRate < 0 || overflows(nightlyRate, nights) || overflows(BreakfastRate, nights) {
		return breakdown
	}

	breakdown.RoomSubtotal = nightlyRate * nights

	discounted := breakdown.RoomSubtotal
	if nights > LongStayThreshold {
		discounted = (breakdown.RoomSubtotal*(100-LongStayDiscountPercent) + 50) / 100
	}

	breakdown.Discount = breakdown.RoomSubtotal - discounted

	if breakfast {
		breakdown.BreakfastCharge = BreakfastRate * nights
	}

	breakdown.Total = discounted + breakdown.BreakfastCharge

	return breakdown
}

func overflows(amount, nights int64) bool {
	return amount > 0 && nights > maxAmount/amount
}

// Price is the total due of a stay.
func Price(nightlyRate, nights int64, breakfast bool) int64 {
	return Quote(nightlyRate, nights, breakfast).Total
}

// Evaluate validates input, derives the nightly rate from the room type and prices
// the stay. All field failures, including an unknown room type, are returned together.
func Evaluate(input Input) (Breakdown, ValidationErrors) {
	errs := Validate(input)

	rate, err := RoomRate(input.RoomType)
	if err != nil {
		errs = append(errs, FieldError{
			Field:   FieldRoomType,
			Kind:    failure.KindUnknownRoomType,
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return Breakdown{}, errs
	}

	return Quote(rate, *input.Nights, input.Breakfast), nil
}
