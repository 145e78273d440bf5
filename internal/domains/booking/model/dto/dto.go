package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/rules"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the raw create/update payload. Numeric fields accept JSON
// numbers or numeric strings. Harga and TotalBayar are advisory: the server
// derives both.
type BookingRequest struct {
	NamaPemesan       string        `json:"namaPemesan"`
	JenisKelamin      string        `json:"jenisKelamin"`
	NomorIdentitas    string        `json:"nomorIdentitas"`
	TipeKamar         string        `json:"tipeKamar"`
	Harga             gDto.LooseInt `json:"harga"             swaggertype:"integer"`
	TanggalPesan      string        `json:"tanggalPesan"`
	DurasiMenginap    gDto.LooseInt `json:"durasiMenginap"    swaggertype:"integer"`
	TermasukBreakfast bool          `json:"termasukBreakfast"`
	TotalBayar        gDto.LooseInt `json:"totalBayar"        swaggertype:"integer"`
}

const (
	FieldNightlyRate = "harga"
	FieldTotalDue    = "totalBayar"
)

// ParseDate accepts a calendar day (2006-01-02) or an RFC 3339 timestamp. Either
// way the result is in the app timezone.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if parsed, err := timezone.Parse(constant.DayFormat, value); err == nil {
		return parsed, nil
	}

	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return parsed, err //nolint:wrapcheck
	}

	return parsed.In(timezone.GetLocation()), nil
}

// ToInput maps the payload onto the rule input. An unparseable check-in date and
// numeric fields that are not whole numbers are reported as field errors of
// their own.
func (r *BookingRequest) ToInput() (rules.Input, rules.ValidationErrors) {
	input := rules.Input{
		GuestName:      r.NamaPemesan,
		Gender:         r.JenisKelamin,
		IdentityNumber: strings.TrimSpace(r.NomorIdentitas),
		RoomType:       r.TipeKamar,
		Nights:         r.DurasiMenginap.Ptr(),
		Breakfast:      r.TermasukBreakfast,
	}

	var errs rules.ValidationErrors

	for _, field := range []struct {
		name  string
		value gDto.LooseInt
	}{
		{rules.FieldNights, r.DurasiMenginap},
		{FieldNightlyRate, r.Harga},
		{FieldTotalDue, r.TotalBayar},
	} {
		if field.value.Invalid {
			errs = append(errs, rules.FieldError{
				Field:   field.name,
				Kind:    failure.KindInvalidValue,
				Message: field.name + " must be a whole number",
			})
		}
	}

	if strings.TrimSpace(r.TanggalPesan) == constant.Empty {
		return input, errs
	}

	checkIn, err := ParseDate(r.TanggalPesan)
	if err != nil {
		return input, append(errs, rules.FieldError{
			Field:   rules.FieldCheckInDate,
			Kind:    failure.KindInvalidFormat,
			Message: "check-in date must be a date (YYYY-MM-DD) or an RFC 3339 timestamp",
		})
	}

	input.CheckInDate = &checkIn

	return input, errs
}

func (r *BookingRequest) ToModel(input rules.Input, price rules.Breakdown, user string) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:             uuid.NewString(),
		GuestName:      strings.TrimSpace(input.GuestName),
		Gender:         input.Gender,
		IdentityNumber: input.IdentityNumber,
		RoomType:       input.RoomType,
		NightlyRate:    price.NightlyRate,
		CheckInDate:    *input.CheckInDate,
		Nights:         int(price.Nights),
		Breakfast:      input.Breakfast,
		TotalDue:       price.Total,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateBooking is the full set of mutable columns written by an update.
type UpdateBooking struct {
	GuestName      string    `db:"guest_name"`
	Gender         string    `db:"gender"`
	IdentityNumber string    `db:"identity_number"`
	RoomType       string    `db:"room_type"`
	NightlyRate    int64     `db:"nightly_rate"`
	CheckInDate    time.Time `db:"check_in_date"`
	Nights         int       `db:"nights"`
	Breakfast      bool      `db:"include_breakfast"`
	TotalDue       int64     `db:"total_due"`
}

func (r *BookingRequest) ToUpdate(input rules.Input, price rules.Breakdown) UpdateBooking {
	return UpdateBooking{
		GuestName:      strings.TrimSpace(input.GuestName),
		Gender:         input.Gender,
		IdentityNumber: input.IdentityNumber,
		RoomType:       input.RoomType,
		NightlyRate:    price.NightlyRate,
		CheckInDate:    *input.CheckInDate,
		Nights:         int(price.Nights),
		Breakfast:      input.Breakfast,
		TotalDue:       price.Total,
	}
}

// Apply returns current with the update written over it.
func (u UpdateBooking) Apply(current model.Booking, user string) model.Booking {
	current.GuestName = u.GuestName
	current.Gender = u.Gender
	current.IdentityNumber = u.IdentityNumber
	current.RoomType = u.RoomType
	current.NightlyRate = u.NightlyRate
	current.CheckInDate = u.CheckInDate
	current.Nights = u.Nights
	current.Breakfast = u.Breakfast
	current.TotalDue = u.TotalDue
	current.ModifiedAt = timezone.Now()
	current.ModifiedBy = user

	return current
}

type BookingResponse struct {
	ID                string `json:"id"`
	NamaPemesan       string `json:"namaPemesan"`
	JenisKelamin      string `json:"jenisKelamin"`
	NomorIdentitas    string `json:"nomorIdentitas"`
	TipeKamar         string `json:"tipeKamar"`
	Harga             int64  `json:"harga"`
	TanggalPesan      string `json:"tanggalPesan"`
	DurasiMenginap    int    `json:"durasiMenginap"`
	TermasukBreakfast bool   `json:"termasukBreakfast"`
	TotalBayar        int64  `json:"totalBayar"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.NamaPemesan = model.GuestName
	r.JenisKelamin = model.Gender
	r.NomorIdentitas = model.IdentityNumber
	r.TipeKamar = model.RoomType
	r.Harga = model.NightlyRate
	r.TanggalPesan = timezone.Format(model.CheckInDate, constant.DateFormat)
	r.DurasiMenginap = model.Nights
	r.TermasukBreakfast = model.Breakfast
	r.TotalBayar = model.TotalDue
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type QuoteResponse struct {
	TipeKamar         string `json:"tipeKamar"`
	TermasukBreakfast bool   `json:"termasukBreakfast"`
	rules.Breakdown
}

type RoomTypeResponse struct {
	Kode  string `json:"kode"`
	Harga int64  `json:"harga"`
}

type RoomTypesResponse struct {
	RoomTypes     []RoomTypeResponse `json:"roomTypes"`
	BreakfastRate int64              `json:"hargaBreakfast"`
}

func (r *RoomTypesResponse) FromRules(rooms []rules.RoomType) {
	r.BreakfastRate = rules.BreakfastRate
	r.RoomTypes = make([]RoomTypeResponse, len(rooms))

	for i, room := range rooms {
		r.RoomTypes[i] = RoomTypeResponse{Kode: room.Code, Harga: room.NightlyRate}
	}
}

type StatsResponse struct {
	TotalBookings int            `json:"totalPemesanan"`
	TotalRevenue  int64          `json:"totalPendapatan"`
	PerRoomType   map[string]int `json:"perTipeKamar"`
}

func (r *StatsResponse) FromModel(stats model.Stats) {
	r.TotalBookings = stats.TotalBookings
	r.TotalRevenue = stats.TotalRevenue
	r.PerRoomType = map[string]int{}

	for _, room := range rules.RoomTypes() {
		r.PerRoomType[room.Code] = stats.PerRoomType[room.Code]
	}
}

type ExportResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}
