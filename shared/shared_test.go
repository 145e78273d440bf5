package shared_test

import (
	"context"
	"errors"
	"hotel/shared"
	"hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/dto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty value is unset", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "false", input: "false", expected: boolPtr(false)},
		{name: "numeric true", input: "1", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "garbage is unset", input: "sarapan", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no rows still has one page", total: 0, limit: 10, expected: 1},
		{name: "exact fit", total: 20, limit: 10, expected: 2},
		{name: "partial last page", total: 21, limit: 10, expected: 3},
		{name: "fewer rows than limit", total: 3, limit: 10, expected: 1},
		{name: "zero limit", total: 5, limit: 0, expected: 1},
		{name: "negative limit", total: 5, limit: -1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

type bookingRow struct {
	ID               string `db:"id"`
	GuestName        string `db:"nama_pemesan"`
	IncludeBreakfast bool   `db:"include_breakfast"`
	Nights           int64  `db:"durasi_menginap"`
	Discount         *int64 `db:"diskon"`
	Note             string
	Ignored          string `db:"-"`
}

func TestTransformAllFields(t *testing.T) {
	t.Run("zero values are kept", func(t *testing.T) {
		before := time.Now().Add(-time.Second)

		fields := shared.TransformAllFields(bookingRow{ID: "b-1", GuestName: "Budi Santoso"}, "admin")

		assert.Equal(t, "b-1", fields["id"])
		assert.Equal(t, "Budi Santoso", fields["nama_pemesan"])
		assert.Equal(t, false, fields["include_breakfast"])
		assert.Equal(t, int64(0), fields["durasi_menginap"])
		assert.Contains(t, fields, "diskon")
		assert.Nil(t, fields["diskon"])
		assert.Equal(t, "admin", fields[constant.FieldModifiedBy])

		modifiedAt, ok := fields[constant.FieldModifiedAt].(time.Time)
		require.True(t, ok)
		assert.True(t, modifiedAt.After(before))
	})

	t.Run("untagged and ignored fields are skipped", func(t *testing.T) {
		fields := shared.TransformAllFields(bookingRow{Note: "late arrival", Ignored: "x"}, "admin")

		assert.Len(t, fields, 7)
		assert.NotContains(t, fields, "Note")
		assert.NotContains(t, fields, "-")
	})

	t.Run("pointer input", func(t *testing.T) {
		discount := int64(10)

		fields := shared.TransformAllFields(&bookingRow{IncludeBreakfast: true, Discount: &discount}, "system")

		assert.Equal(t, true, fields["include_breakfast"])
		assert.Equal(t, &discount, fields["diskon"])
		assert.Equal(t, "system", fields[constant.FieldModifiedBy])
	})
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("b-1", "id", "bookings")

	require.Len(t, group.Filters, 1)
	assert.Equal(t, dto.Filter{
		Field:    "id",
		Value:    "b-1",
		Operator: dto.FilterOperatorEq,
		Table:    "bookings",
	}, group.Filters[0])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "booking:get:b-1", shared.BuildCacheKey("booking:get", "b-1"))
	assert.Equal(t, "booking:stats", shared.BuildCacheKey("booking:stats"))
	assert.Equal(t, "booking:gets:a:b", shared.BuildCacheKey("booking:gets", "a", "b"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	query := dto.QueryParams{Page: 1, Limit: 10, SortBy: "created_at", SortDir: dto.SortDirDesc}
	byGuest := func(name string) dto.FilterGroup {
		return dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "nama_pemesan", Value: name, Operator: dto.FilterOperatorLike},
		}}
	}

	key := shared.BuildCacheKeyWithQuery("booking:gets", query, byGuest("budi"))

	t.Run("prefixed digest", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(key, "booking:gets:"))
		assert.Len(t, strings.TrimPrefix(key, "booking:gets:"), 32)
	})

	t.Run("stable for equal input", func(t *testing.T) {
		assert.Equal(t, key, shared.BuildCacheKeyWithQuery("booking:gets", query, byGuest("budi")))
	})

	t.Run("filter value changes the key", func(t *testing.T) {
		assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("booking:gets", query, byGuest("siti")))
	})

	t.Run("paging changes the key", func(t *testing.T) {
		next := query
		next.Page = 2

		assert.NotEqual(t, key, shared.BuildCacheKeyWithQuery("booking:gets", next, byGuest("budi")))
	})

	t.Run("prefix separates listings from counts", func(t *testing.T) {
		count := shared.BuildCacheKeyWithQuery("booking:count", query, byGuest("budi"))

		assert.Equal(t, strings.TrimPrefix(key, "booking:gets:"), strings.TrimPrefix(count, "booking:count:"))
		assert.NotEqual(t, key, count)
	})
}

func TestInvalidateCaches(t *testing.T) {
	t.Run("clears by prefix pattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)

		shared.InvalidateCaches(context.Background(), redisCache, "booking:gets")
	})

	t.Run("failure is swallowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := mocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("connection refused"))

		assert.NotPanics(t, func() {
			shared.InvalidateCaches(context.Background(), redisCache, "booking:count")
		})
	})
}

func boolPtr(v bool) *bool {
	return &v
}
