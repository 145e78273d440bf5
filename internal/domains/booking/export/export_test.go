package export_test

import (
	"bytes"
	"encoding/csv"
	"hotel/internal/domains/booking/export"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func fixtures() []model.Booking {
	loc := timezone.GetLocation()

	return []model.Booking{
		{
			ID:             "b-1",
			GuestName:      "Budi Santoso",
			Gender:         "Laki-laki",
			IdentityNumber: "3171000000000001",
			RoomType:       "DELUXE",
			NightlyRate:    750000,
			CheckInDate:    time.Date(2024, time.March, 5, 0, 0, 0, 0, loc),
			Nights:         4,
			Breakfast:      true,
			TotalDue:       3020000,
		},
		{
			ID:             "b-2",
			GuestName:      "Siti, Aminah",
			Gender:         "Perempuan",
			IdentityNumber: "3171000000000002",
			RoomType:       "STANDAR",
			NightlyRate:    500000,
			CheckInDate:    time.Date(2024, time.December, 25, 0, 0, 0, 0, loc),
			Nights:         1,
			TotalDue:       500000,
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: export.FormatCSV},
		{in: "csv", want: export.FormatCSV},
		{in: " XLSX ", want: export.FormatXLSX},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := export.ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported export format")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileName(t *testing.T) {
	at := time.Date(2024, time.July, 9, 10, 0, 0, 0, timezone.GetLocation())

	assert.Equal(t, "bookings_2024-07-09.csv", export.FileName(export.FormatCSV, at))
	assert.Equal(t, "bookings_2024-07-09.xlsx", export.FileName(export.FormatXLSX, at))
}

func TestCSV(t *testing.T) {
	content, err := export.CSV(fixtures())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Nama", "Jenis Kelamin", "No. Identitas", "Tipe Kamar", "Tanggal", "Durasi", "Breakfast", "Total"}, records[0])
	assert.Equal(t, []string{"b-1", "Budi Santoso", "Laki-laki", "3171000000000001", "DELUXE", "5/3/2024", "4", "Ya", "3020000"}, records[1])
	assert.Equal(t, []string{"b-2", "Siti, Aminah", "Perempuan", "3171000000000002", "STANDAR", "25/12/2024", "1", "Tidak", "500000"}, records[2])
}

func TestCSVEmpty(t *testing.T) {
	content, err := export.CSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestXLSX(t *testing.T) {
	content, err := export.XLSX(fixtures())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "No. Identitas", rows[0][3])
	assert.Equal(t, []string{"b-1", "Budi Santoso", "Laki-laki", "3171000000000001", "DELUXE", "5/3/2024", "4", "Ya", "3020000"}, rows[1])
	assert.Equal(t, "Tidak", rows[2][7])
}

func TestRender(t *testing.T) {
	at := time.Date(2024, time.July, 9, 10, 0, 0, 0, timezone.GetLocation())

	t.Run("csv", func(t *testing.T) {
		file, err := export.Render(fixtures(), export.FormatCSV, at)
		require.NoError(t, err)

		assert.Equal(t, "bookings_2024-07-09.csv", file.Name)
		assert.Equal(t, constant.ContentTypeCSV, file.ContentType)
		assert.NotEmpty(t, file.Content)
	})

	t.Run("xlsx", func(t *testing.T) {
		file, err := export.Render(fixtures(), export.FormatXLSX, at)
		require.NoError(t, err)

		assert.Equal(t, "bookings_2024-07-09.xlsx", file.Name)
		assert.Equal(t, constant.ContentTypeXLSX, file.ContentType)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := export.Render(fixtures(), "pdf", at)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pdf")
	})
}

func TestRenderUnknownFormatIsBadRequest(t *testing.T) {
	_, err := export.Render(nil, "doc", time.Now())

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
