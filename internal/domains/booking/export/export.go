// Package export renders booking listings as downloadable spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	sheetName = "Bookings"
)

var header = []string{
	"ID",
	"Nama",
	"Jenis Kelamin",
	"No. Identitas",
	"Tipe Kamar",
	"Tanggal",
	"Durasi",
	"Breakfast",
	"Total",
}

type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// ParseFormat defaults to CSV and rejects anything but csv or xlsx.
func ParseFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case constant.Empty, FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return constant.Empty, failure.BadRequestFromString(fmt.Sprintf("unsupported export format %q", value)) //nolint:wrapcheck
	}
}

// FileName is bookings_YYYY-MM-DD.<format> for the given day in app time.
func FileName(format string, at time.Time) string {
	return fmt.Sprintf("bookings_%s.%s", timezone.Format(at, constant.DayFormat), format)
}

func breakfast(included bool) string {
	if included {
		return "Ya"
	}

	return "Tidak"
}

func row(booking model.Booking) []string {
	return []string{
		booking.ID,
		booking.GuestName,
		booking.Gender,
		booking.IdentityNumber,
		booking.RoomType,
		timezone.Format(booking.CheckInDate, constant.DisplayFormat),
		strconv.Itoa(booking.Nights),
		breakfast(booking.Breakfast),
		strconv.FormatInt(booking.TotalDue, 10),
	}
}

func Render(bookings []model.Booking, format string, at time.Time) (File, error) {
	var (
		content     []byte
		contentType string
		err         error
	)

	switch format {
	case FormatCSV:
		content, err = CSV(bookings)
		contentType = constant.ContentTypeCSV
	case FormatXLSX:
		content, err = XLSX(bookings)
		contentType = constant.ContentTypeXLSX
	default:
		_, err = ParseFormat(format)
	}

	if err != nil {
		return File{}, err
	}

	return File{
		Name:        FileName(format, at),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func CSV(bookings []model.Booking) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, booking := range bookings {
		if err := writer.Write(row(booking)); err != nil {
			return nil, fmt.Errorf("failed to write csv row %s: %w", booking.ID, err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

// XLSX writes one sheet. Durasi and Total are numeric cells.
func XLSX(bookings []model.Booking) (_ []byte, err error) {
	file := excelize.NewFile()
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", closeErr)
		}
	}()

	if err = file.SetSheetName(file.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, title := range header {
		headerRow[i] = title
	}

	if err = setRow(file, 1, headerRow); err != nil {
		return nil, err
	}

	for i, booking := range bookings {
		values := row(booking)
		cells := []any{
			values[0], values[1], values[2], values[3], values[4], values[5],
			booking.Nights,
			values[7],
			booking.TotalDue,
		}

		if err = setRow(file, i+2, cells); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func setRow(file *excelize.File, rowNumber int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}

	if err := file.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNumber, err)
	}

	return nil
}
