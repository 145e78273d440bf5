package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/lib/pq"
)

// ErrDuplicateIdentity is returned when a write collides with the unique
// identity number index.
var ErrDuplicateIdentity = errors.New("identity number already booked")

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Stats(ctx context.Context, filter gDto.FilterGroup) (model.Stats, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}

func (r *repositoryImpl) Insert(ctx context.Context, booking model.Booking) error {
	err := r.Repository.Insert(ctx, booking)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	err := r.Repository.Update(ctx, req, filter)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) Stats(ctx context.Context, filter gDto.FilterGroup) (stats model.Stats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if stats.TotalBookings, err = r.Count(ctx, filter); err != nil {
		return stats, err //nolint:wrapcheck
	}

	if stats.TotalRevenue, err = r.Sum(ctx, model.FieldTotalDue, filter); err != nil {
		return stats, err //nolint:wrapcheck
	}

	if stats.PerRoomType, err = r.CountBy(ctx, model.FieldRoomType, filter); err != nil {
		return stats, err //nolint:wrapcheck
	}

	return stats, nil
}
