package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	s3Mocks "hotel/infras/s3/mocks"
	"hotel/internal/domains/booking/event"
	eventMocks "hotel/internal/domains/booking/event/mocks"
	"hotel/internal/domains/booking/export"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/rules"
	"hotel/internal/domains/booking/service"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errCacheMiss = errors.New("cache miss")

type fixture struct {
	repo      *bookingMocks.MockBooking
	cache     *cacheMocks.MockRedisCache
	s3        *s3Mocks.MockS3
	publisher *eventMocks.MockPublisher
	events    chan event.Event
	svc       service.Booking
}

// newFixture wires the service with a cold cache. Background cache writes and
// event publishing are always allowed; published events are sent to events.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		s3:        s3Mocks.NewMockS3(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		events:    make(chan event.Event, 4),
	}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errCacheMiss).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, evt event.Event) error {
		f.events <- evt

		return nil
	}).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), f.s3, f.publisher)

	return f
}

func (f *fixture) nextEvent(t *testing.T) event.Event {
	t.Helper()

	select {
	case evt := <-f.events:
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("no booking event published")

		return event.Event{}
	}
}

func validRequest() dto.BookingRequest {
	return dto.BookingRequest{
		NamaPemesan:       "Budi Santoso",
		JenisKelamin:      rules.GenderMale,
		NomorIdentitas:    "3171000000000001",
		TipeKamar:         rules.RoomStandard,
		TanggalPesan:      "2024-03-05",
		DurasiMenginap:    gDto.NewLooseInt(4),
		TermasukBreakfast: true,
	}
}

func storedBooking() model.Booking {
	return model.Booking{
		ID:             "b-1",
		GuestName:      "Budi Santoso",
		Gender:         rules.GenderMale,
		IdentityNumber: "3171000000000001",
		RoomType:       rules.RoomStandard,
		NightlyRate:    500000,
		CheckInDate:    time.Date(2024, time.March, 5, 0, 0, 0, 0, timezone.GetLocation()),
		Nights:         4,
		Breakfast:      true,
		TotalDue:       2120000,
	}
}

func fieldErrors(t *testing.T, err error) rules.ValidationErrors {
	t.Helper()

	details, ok := failure.GetDetails(err).([]rules.FieldError)
	require.True(t, ok, "validation failure carries field errors")

	return rules.ValidationErrors(details)
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "frontdesk")

	t.Run("stores a priced booking and publishes it", func(t *testing.T) {
		f := newFixture(t)

		var inserted model.Booking

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = booking

			return nil
		})

		res, err := f.svc.Create(ctx, validRequest())
		require.NoError(t, err)

		assert.NotEmpty(t, res.ID)
		assert.Equal(t, inserted.ID, res.ID)
		assert.Equal(t, int64(500000), res.Harga)
		assert.Equal(t, int64(2120000), res.TotalBayar)
		assert.Equal(t, int64(2120000), inserted.TotalDue)
		assert.Equal(t, "frontdesk", inserted.CreatedBy)

		evt := f.nextEvent(t)
		assert.Equal(t, event.TypeCreated, evt.Type)
		assert.Equal(t, res.ID, evt.BookingID)
		assert.Equal(t, "frontdesk", evt.Actor)
	})

	t.Run("ignores client supplied rate and total", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.Harga = gDto.NewLooseInt(1)
		req.TotalBayar = gDto.NewLooseInt(1)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, int64(500000), res.Harga)
		assert.Equal(t, int64(2120000), res.TotalBayar)
	})

	t.Run("collects every invalid field without touching storage", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, dto.BookingRequest{JenisKelamin: rules.GenderFemale, TipeKamar: rules.RoomDeluxe})
		require.Error(t, err)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, failure.KindValidation, failure.GetKind(err))

		errs := fieldErrors(t, err)
		assert.True(t, errs.Has(rules.FieldGuestName, failure.KindMissingField))
		assert.True(t, errs.Has(rules.FieldIdentityNumber, failure.KindMissingField))
		assert.True(t, errs.Has(rules.FieldCheckInDate, failure.KindMissingField))
		assert.True(t, errs.Has(rules.FieldNights, failure.KindInvalidValue))
	})

	t.Run("reports an unparseable date once as invalid format", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.TanggalPesan = "05/03/2024"

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)

		errs := fieldErrors(t, err)
		require.Len(t, errs, 1)
		assert.True(t, errs.Has(rules.FieldCheckInDate, failure.KindInvalidFormat))
	})

	t.Run("reports a non-numeric duration with the other field errors", func(t *testing.T) {
		f := newFixture(t)

		var req dto.BookingRequest
		require.NoError(t, json.Unmarshal([]byte(`{
			"namaPemesan": "",
			"jenisKelamin": "Laki-laki",
			"nomorIdentitas": "3171000000000001",
			"tipeKamar": "STANDAR",
			"tanggalPesan": "2024-03-05",
			"durasiMenginap": "abc"
		}`), &req))

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)

		assert.Equal(t, failure.KindValidation, failure.GetKind(err))

		errs := fieldErrors(t, err)
		require.Len(t, errs, 2)
		assert.True(t, errs.Has(rules.FieldNights, failure.KindInvalidValue))
		assert.True(t, errs.Has(rules.FieldGuestName, failure.KindMissingField))
	})

	t.Run("rejects an unknown room type", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.TipeKamar = "SUITE"

		_, err := f.svc.Create(ctx, req)
		require.Error(t, err)

		assert.True(t, fieldErrors(t, err).Has(rules.FieldRoomType, failure.KindUnknownRoomType))
	})

	t.Run("rejects an identity number that is already booked", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(ctx, validRequest())
		require.Error(t, err)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, failure.KindDuplicate, failure.GetKind(err))
	})

	t.Run("maps a unique index violation to a duplicate", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: unique violation", repository.ErrDuplicateIdentity))

		_, err := f.svc.Create(ctx, validRequest())

		assert.Equal(t, failure.KindDuplicate, failure.GetKind(err))
	})

	t.Run("hides storage errors", func(t *testing.T) {
		f := newFixture(t)

		dbErr := errors.New("connection reset by peer")
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(dbErr)

		_, err := f.svc.Create(ctx, validRequest())
		require.Error(t, err)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, failure.KindStorageFailure, failure.GetKind(err))
		assert.NotContains(t, err.Error(), "connection reset")
		assert.ErrorIs(t, err, dbErr)
	})
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Quote(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, rules.RoomStandard, res.TipeKamar)
	assert.Equal(t, int64(2000000), res.RoomSubtotal)
	assert.Equal(t, int64(200000), res.Discount)
	assert.Equal(t, int64(320000), res.BreakfastCharge)
	assert.Equal(t, int64(2120000), res.Total)
}

func TestBookingService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)

		res, err := f.svc.Get(context.Background(), "b-1")
		require.NoError(t, err)

		assert.Equal(t, "b-1", res.ID)
		assert.Equal(t, "Budi Santoso", res.NamaPemesan)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("served from cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		cache := cacheMocks.NewMockRedisCache(ctrl)

		cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*dto.BookingResponse) = dto.BookingResponse{ID: "b-1", NamaPemesan: "Cached"}

				return nil
			})

		svc := service.New(repo, &config.Config{}, cache, otelMocks.NewOtel(), nil, nil)

		res, err := svc.Get(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "Cached", res.NamaPemesan)
	})
}

func TestBookingService_Update(t *testing.T) {
	t.Run("overwrites every field and reprices", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.TipeKamar = rules.RoomFamily
		req.DurasiMenginap = gDto.NewLooseInt(2)
		req.TermasukBreakfast = false
		req.NomorIdentitas = "3171000000000009"

		var fields map[string]any

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ gDto.FilterGroup) error {
				fields = req

				return nil
			})

		res, err := f.svc.Update(context.Background(), "b-1", req)
		require.NoError(t, err)

		assert.Equal(t, "b-1", res.ID)
		assert.Equal(t, "3171000000000009", res.NomorIdentitas)
		assert.Equal(t, int64(2000000), res.TotalBayar)
		assert.False(t, res.TermasukBreakfast)

		assert.Equal(t, false, fields[model.FieldBreakfast])
		assert.Equal(t, int64(2000000), fields[model.FieldTotalDue])
		assert.Equal(t, constant.ContextGuest, fields[constant.FieldModifiedBy])

		evt := f.nextEvent(t)
		assert.Equal(t, event.TypeUpdated, evt.Type)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Update(context.Background(), "missing", validRequest())

		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("identity held by another booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.id !=")

				return true, nil
			})

		_, err := f.svc.Update(context.Background(), "b-1", validRequest())

		assert.Equal(t, failure.KindDuplicate, failure.GetKind(err))
	})

	t.Run("validation runs before lookup", func(t *testing.T) {
		f := newFixture(t)

		req := validRequest()
		req.NomorIdentitas = "12345"

		_, err := f.svc.Update(context.Background(), "b-1", req)

		assert.True(t, fieldErrors(t, err).Has(rules.FieldIdentityNumber, failure.KindInvalidFormat))
	})
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("deletes and publishes", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(context.Background(), "b-1"))

		evt := f.nextEvent(t)
		assert.Equal(t, event.TypeDeleted, evt.Type)
		assert.Nil(t, evt.Booking)
	})

	t.Run("missing booking is never a silent success", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

		err := f.svc.Delete(context.Background(), "b-1")

		assert.Equal(t, failure.KindStorageFailure, failure.GetKind(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	t.Run("defaults to newest first without paging", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)
				assert.Equal(t, constant.DefaultValueSortDir, params.SortDir)
				assert.Zero(t, params.Limit)

				return []model.Booking{storedBooking()}, nil
			})

		res, err := f.svc.GetAll(context.Background(), dto.ListQuery{})
		require.NoError(t, err)

		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, 1, res.TotalPage)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "b-1", res.Bookings[0].ID)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("timeout"))

		_, err := f.svc.GetAll(context.Background(), dto.ListQuery{})

		assert.Equal(t, failure.KindStorageFailure, failure.GetKind(err))
	})
}

func TestBookingService_Stats(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Stats(gomock.Any(), gomock.Any()).Return(model.Stats{
		TotalBookings: 3,
		TotalRevenue:  4500000,
		PerRoomType:   map[string]int{rules.RoomStandard: 2, rules.RoomFamily: 1},
	}, nil)

	res, err := f.svc.Stats(context.Background(), dto.ListQuery{RoomType: rules.RoomStandard})
	require.NoError(t, err)

	assert.Equal(t, 3, res.TotalBookings)
	assert.Equal(t, int64(4500000), res.TotalRevenue)
	assert.Equal(t, map[string]int{rules.RoomStandard: 2, rules.RoomDeluxe: 0, rules.RoomFamily: 1}, res.PerRoomType)
}

func TestBookingService_Export(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{storedBooking()}, nil)

		file, err := f.svc.Export(context.Background(), dto.ListQuery{}, "")
		require.NoError(t, err)

		assert.Equal(t, constant.ContentTypeCSV, file.ContentType)
		assert.True(t, strings.HasPrefix(file.Name, "bookings_"))
		assert.Contains(t, string(file.Content), "3171000000000001")
	})

	t.Run("unsupported format", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Export(context.Background(), dto.ListQuery{}, "pdf")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("archive uploads to object storage", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{storedBooking()}, nil)
		f.s3.EXPECT().
			Upload(gomock.Any(), "exports", gomock.Any(), constant.ContentTypeXLSX, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, fileName, _ string, _ []byte) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, "."+export.FormatXLSX))

				return "https://cdn.example.com/exports/" + fileName, nil
			})

		res, err := f.svc.ArchiveExport(context.Background(), dto.ListQuery{}, export.FormatXLSX)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/exports/"))
		assert.True(t, strings.HasPrefix(res.FileName, "bookings_"))
	})

	t.Run("archive upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.s3.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("access denied"))

		_, err := f.svc.ArchiveExport(context.Background(), dto.ListQuery{}, export.FormatCSV)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, "failed to archive booking export", err.Error())
		assert.NotContains(t, err.Error(), "access denied")
		assert.ErrorContains(t, errors.Unwrap(err), "access denied")
	})
}

func TestBookingService_RoomTypes(t *testing.T) {
	f := newFixture(t)

	res := f.svc.RoomTypes()

	assert.Equal(t, rules.BreakfastRate, res.BreakfastRate)
	assert.Len(t, res.RoomTypes, 3)
}

func TestBookingService_CacheFollowsWrites(t *testing.T) {
	newService := func(t *testing.T) (*bookingMocks.MockBooking, *memoryCache, service.Booking) {
		t.Helper()

		ctrl := gomock.NewController(t)
		repo := bookingMocks.NewMockBooking(ctrl)
		publisher := eventMocks.NewMockPublisher(ctrl)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		memory := newMemoryCache()
		cfg := &config.Config{}
		cfg.Cache.TTL = 60

		return repo, memory, service.New(repo, cfg, memory, otelMocks.NewOtel(), nil, publisher)
	}

	t.Run("deleted booking is not served from cache", func(t *testing.T) {
		repo, memory, svc := newService(t)

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil),
		)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Get(context.Background(), "b-1")
		require.NoError(t, err)
		assert.True(t, memory.has("booking:get:b-1"))

		require.NoError(t, svc.Delete(context.Background(), "b-1"))
		assert.False(t, memory.has("booking:get:b-1"))

		_, err = svc.Get(context.Background(), "b-1")
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})

	t.Run("updated booking replaces the cached copy", func(t *testing.T) {
		repo, _, svc := newService(t)

		updated := storedBooking()
		updated.GuestName = "Siti Aminah"

		gomock.InOrder(
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedBooking(), nil),
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(updated, nil),
		)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Get(context.Background(), "b-1")
		require.NoError(t, err)

		req := validRequest()
		req.NamaPemesan = "Siti Aminah"

		_, err = svc.Update(context.Background(), "b-1", req)
		require.NoError(t, err)

		res, err := svc.Get(context.Background(), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "Siti Aminah", res.NamaPemesan)
	})

	t.Run("listings are dropped by a create", func(t *testing.T) {
		repo, memory, svc := newService(t)

		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil).Times(2)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{storedBooking()}, nil).Times(2)
		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.GetAll(context.Background(), dto.ListQuery{})
		require.NoError(t, err)
		require.NotEmpty(t, memory.entries)

		_, err = svc.Create(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Empty(t, memory.entries)

		_, err = svc.GetAll(context.Background(), dto.ListQuery{})
		require.NoError(t, err)
	})
}
