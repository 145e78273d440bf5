package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/s3"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/export"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/rules"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheStatsBooking  = "booking:stats"

	exportDirectory = "exports"
)

const (
	msgNotFound      = "booking not found"
	msgDuplicate     = "identity number already has a booking"
	msgStorage       = "failed to access booking storage"
	msgRenderExport  = "failed to render booking export"
	msgArchiveExport = "failed to archive booking export"
)

type Booking interface {
	Quote(ctx context.Context, req dto.BookingRequest) (dto.QuoteResponse, error)
	Create(ctx context.Context, req dto.BookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, query dto.ListQuery) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, query dto.ListQuery) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, id string, req dto.BookingRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, query dto.ListQuery) (dto.StatsResponse, error)
	Export(ctx context.Context, query dto.ListQuery, format string) (export.File, error)
	ArchiveExport(ctx context.Context, query dto.ListQuery, format string) (dto.ExportResponse, error)
	RoomTypes() dto.RoomTypesResponse
}

type serviceImpl struct {
	repo      repository.Booking
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
	publisher event.Publisher
}

func New(repo repository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3, publisher event.Publisher) Booking {
	return &serviceImpl{
		repo:      repo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
		publisher: publisher,
	}
}

func userFrom(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != constant.Empty {
		return user
	}

	return constant.ContextGuest
}

func identityFilter(identityNumber string) gDto.FilterGroup {
	return shared.FilterByID(identityNumber, model.FieldIdentityNumber, model.TableName)
}

// evaluate validates the request and prices it. A field the payload mapping already
// rejected is reported once, with the mapping's kind.
func evaluate(req dto.BookingRequest) (rules.Input, rules.Breakdown, error) {
	input, errs := req.ToInput()

	reported := make(map[string]bool, len(errs))
	for _, fieldErr := range errs {
		reported[fieldErr.Field] = true
	}

	price, ruleErrs := rules.Evaluate(input)
	for _, fieldErr := range ruleErrs {
		if reported[fieldErr.Field] {
			continue
		}

		errs = append(errs, fieldErr)
	}

	if len(errs) > 0 {
		return input, price, errs.Failure()
	}

	if req.Harga.Present && req.Harga.Value != price.NightlyRate {
		log.Warn().Int64("client", req.Harga.Value).Int64("server", price.NightlyRate).Msg("client nightly rate ignored")
	}

	if req.TotalBayar.Present && req.TotalBayar.Value != price.Total {
		log.Warn().Int64("client", req.TotalBayar.Value).Int64("server", price.Total).Msg("client total ignored")
	}

	return input, price, nil
}

func storageFailure(err error) error {
	return failure.StorageFailure(msgStorage, err) //nolint:wrapcheck
}

// afterWrite drops the cached copy of the booking and every cached listing before
// the write is acknowledged, then publishes evt without blocking the caller.
func (s *serviceImpl) afterWrite(ctx context.Context, id string, evt event.Event) {
	c := context.WithoutCancel(ctx)

	if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking from cache")
	}

	shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	shared.InvalidateCaches(c, s.cache, cacheStatsBooking)

	go func() {
		if err := s.publisher.Publish(c, evt); err != nil {
			log.Error().Err(err).Str("type", string(evt.Type)).Str("id", id).Msg("failed to publish booking event")
		}
	}()
}

// saveCache stores value before the read returns, so a later write always
// invalidates it.
func (s *serviceImpl) saveCache(ctx context.Context, key string, value any) {
	if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to save booking data to cache")
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.BookingRequest) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	input, price, err := evaluate(req)
	if err != nil {
		return res, err
	}

	res.TipeKamar = input.RoomType
	res.TermasukBreakfast = input.Breakfast
	res.Breakdown = price

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	input, price, err := evaluate(req)
	if err != nil {
		return res, err
	}

	exist, err := s.repo.Exist(ctx, identityFilter(input.IdentityNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to check identity number")

		return res, storageFailure(err)
	}

	if exist {
		return res, failure.Duplicate(msgDuplicate) //nolint:wrapcheck
	}

	user := userFrom(ctx)
	booking := req.ToModel(input, price, user)

	if err = s.repo.Insert(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return res, failure.Duplicate(msgDuplicate) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, storageFailure(err)
	}

	res.FromModel(booking)
	scope.SetAttribute("booking.id", booking.ID)

	s.afterWrite(ctx, booking.ID, event.New(event.TypeCreated, booking.ID, user, &res))

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, query dto.ListQuery) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query.Normalize()
	filter := query.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, query.QueryParams, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, query)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, query.QueryParams, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, storageFailure(err)
	}

	res.FromModels(models, total, query.Limit)

	s.saveCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, query dto.ListQuery) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := query.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, storageFailure(err)
	}

	s.saveCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, storageFailure(err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound(msgNotFound) //nolint:wrapcheck
	}

	res.FromModel(booking)

	s.saveCache(ctx, cacheKey, res)

	return res, nil
}

// Update overwrites every mutable field. The identity number may change as long
// as no other booking holds it.
func (s *serviceImpl) Update(ctx context.Context, id string, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	input, price, err := evaluate(req)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, storageFailure(err)
	}

	if current.ID == constant.Empty {
		return res, failure.NotFound(msgNotFound) //nolint:wrapcheck
	}

	taken, err := s.repo.Exist(ctx, dto.ExcludeID(identityFilter(input.IdentityNumber), id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check identity number")

		return res, storageFailure(err)
	}

	if taken {
		return res, failure.Duplicate(msgDuplicate) //nolint:wrapcheck
	}

	user := userFrom(ctx)
	update := req.ToUpdate(input, price)

	if err = s.repo.Update(ctx, shared.TransformAllFields(update, user), filter); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdentity) {
			return res, failure.Duplicate(msgDuplicate) //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to update booking")

		return res, storageFailure(err)
	}

	res.FromModel(update.Apply(current, user))

	s.afterWrite(ctx, id, event.New(event.TypeUpdated, id, user, &res))

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return storageFailure(err)
	}

	if !exist {
		return failure.NotFound(msgNotFound) //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return storageFailure(err)
	}

	s.afterWrite(ctx, id, event.New(event.TypeDeleted, id, userFrom(ctx), nil))

	return nil
}

func (s *serviceImpl) Stats(ctx context.Context, query dto.ListQuery) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := query.Filter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheStatsBooking, gDto.QueryParams{}, filter)

	if s.cache.Get(ctx, cacheKey, &res) == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking stats")

		return res, nil
	}

	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute booking stats")

		return res, storageFailure(err)
	}

	res.FromModel(stats)

	s.saveCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Export(ctx context.Context, query dto.ListQuery, format string) (file export.File, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	format, err = export.ParseFormat(format)
	if err != nil {
		return file, err //nolint:wrapcheck
	}

	query.Normalize()

	models, err := s.repo.GetAll(ctx, query.QueryParams, query.Filter())
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return file, storageFailure(err)
	}

	file, err = export.Render(models, format, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to render booking export")

		return file, failure.InternalError(msgRenderExport, err) //nolint:wrapcheck
	}

	scope.SetAttribute("export.rows", len(models))

	return file, nil
}

// ArchiveExport renders the export and stores it in object storage under a
// unique name.
func (s *serviceImpl) ArchiveExport(ctx context.Context, query dto.ListQuery, format string) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ArchiveExport")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	file, err := s.Export(ctx, query, format)
	if err != nil {
		return res, err
	}

	objectName := fmt.Sprintf("%s_%s", uuid.NewString(), file.Name)

	url, err := s.s3.Upload(ctx, exportDirectory, objectName, file.ContentType, file.Content)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload booking export")

		return res, failure.InternalError(msgArchiveExport, fmt.Errorf("failed to upload export: %w", err)) //nolint:wrapcheck
	}

	res.URL = url
	res.FileName = file.Name

	return res, nil
}

func (s *serviceImpl) RoomTypes() (res dto.RoomTypesResponse) {
	res.FromRules(rules.RoomTypes())

	return res
}
