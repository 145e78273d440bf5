package repository

import (
	"context"
	"errors"
	"fmt"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"slices"
	"strings"

	"gorm.io/gorm"
)

var errRequiredFilter = errors.New("required filter")

type gormRepository struct {
	db   *gorm.DB
	otel otel.Otel
}

// NewGorm returns the Booking store backed by GORM. Filters are rendered with
// gorm's "@name" named arguments.
func NewGorm(db *gorm.DB, otel otel.Otel) Booking {
	return &gormRepository{
		db:   db,
		otel: otel,
	}
}

func isDuplicatedKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || (err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed"))
}

func (r *gormRepository) scoped(ctx context.Context, filter gDto.FilterGroup) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Booking{})

	where, args := filter.WhereClause(gDto.BindAt)
	if where != constant.Empty {
		query = query.Where(where, args)
	}

	return query
}

func (r *gormRepository) Insert(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.db.WithContext(ctx).Create(&booking).Error; err != nil {
		if isDuplicatedKey(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
		}

		return fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (r *gormRepository) Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (booking model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := r.scoped(ctx, filter)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	err = query.Take(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Booking{}, nil
	}

	if err != nil {
		return booking, fmt.Errorf("failed to get data (%s): %w", model.EntityName, err)
	}

	return booking, nil
}

func (r *gormRepository) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := r.scoped(ctx, filter)
	if len(columns) > 0 {
		query = query.Select(columns)
	}

	if slices.Contains(model.SortableFields, params.SortBy) {
		dir := gDto.SortDirDesc
		if strings.EqualFold(params.SortDir, gDto.SortDirAsc) {
			dir = gDto.SortDirAsc
		}

		query = query.Order(fmt.Sprintf("%s.%s %s", model.TableName, params.SortBy, dir))
	}

	if params.Limit > 0 {
		query = query.Limit(params.Limit)

		if params.Page > 0 {
			query = query.Offset((params.Page - 1) * params.Limit)
		}
	}

	if err = query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to get all data (%s): %w", model.EntityName, err)
	}

	return bookings, nil
}

func (r *gormRepository) Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error) {
	if where, _ := filter.WhereClause(gDto.BindAt); where == constant.Empty {
		return false, errRequiredFilter
	}

	count, err := r.Count(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check exist data (%s): %w", model.EntityName, err)
	}

	return count > 0, nil
}

func (r *gormRepository) Count(ctx context.Context, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var count int64
	if err = r.scoped(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count data (%s): %w", model.EntityName, err)
	}

	return int(count), nil
}

func (r *gormRepository) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if where, _ := filter.WhereClause(gDto.BindAt); where == constant.Empty {
		return errRequiredFilter
	}

	if err = r.scoped(ctx, filter).Updates(req).Error; err != nil {
		if isDuplicatedKey(err) {
			return fmt.Errorf("%w: %w", ErrDuplicateIdentity, err)
		}

		return fmt.Errorf("failed to update data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (r *gormRepository) Delete(ctx context.Context, filter gDto.FilterGroup) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	where, args := filter.WhereClause(gDto.BindAt)
	if where == constant.Empty {
		return errRequiredFilter
	}

	if err = r.db.WithContext(ctx).Where(where, args).Delete(&model.Booking{}).Error; err != nil {
		return fmt.Errorf("failed to delete data (%s): %w", model.EntityName, err)
	}

	return nil
}

func (r *gormRepository) Stats(ctx context.Context, filter gDto.FilterGroup) (stats model.Stats, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.gorm.Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var totals struct {
		Total   int
		Revenue int64
	}

	err = r.scoped(ctx, filter).
		Select(fmt.Sprintf("COUNT(*) AS total, COALESCE(SUM(%s.%s), 0) AS revenue", model.TableName, model.FieldTotalDue)).
		Scan(&totals).Error
	if err != nil {
		return stats, fmt.Errorf("failed to sum data (%s): %w", model.EntityName, err)
	}

	var groups []struct {
		RoomType string
		Total    int
	}

	err = r.scoped(ctx, filter).
		Select(fmt.Sprintf("%s.%s AS room_type, COUNT(*) AS total", model.TableName, model.FieldRoomType)).
		Group(fmt.Sprintf("%s.%s", model.TableName, model.FieldRoomType)).
		Scan(&groups).Error
	if err != nil {
		return stats, fmt.Errorf("failed to count data by room type (%s): %w", model.EntityName, err)
	}

	stats.TotalBookings = totals.Total
	stats.TotalRevenue = totals.Revenue
	stats.PerRoomType = make(map[string]int, len(groups))

	for _, group := range groups {
		stats.PerRoomType[group.RoomType] = group.Total
	}

	return stats, nil
}
