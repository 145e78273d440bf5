package dto

import (
	"hotel/internal/domains/booking/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	QueryParamRoomType    = "tipeKamar"
	QueryParamCheckInDate = "tanggalPesan"
	QueryParamBreakfast   = "termasukBreakfast"

	argCheckInFrom = "check_in_date_from"
	argCheckInTo   = "check_in_date_to"
)

// ListQuery is the search, filter and paging state of a booking listing. Without
// page and limit the whole result set is returned.
type ListQuery struct {
	gDto.QueryParams
	Search      string     `json:"search"`
	RoomType    string     `json:"tipeKamar"`
	CheckInDate *time.Time `json:"tanggalPesan"`
	Breakfast   *bool      `json:"termasukBreakfast"`
}

func (q *ListQuery) FromRequest(r *http.Request) {
	q.QueryParams.FromRequest(r, false)

	values := r.URL.Query()

	q.Search = strings.TrimSpace(values.Get(constant.RequestParamSearch))
	q.RoomType = strings.ToUpper(strings.TrimSpace(values.Get(QueryParamRoomType)))
	q.Breakfast = shared.ConvertStringToBool(values.Get(QueryParamBreakfast))

	if day := values.Get(QueryParamCheckInDate); day != constant.Empty {
		if parsed, err := ParseDate(day); err == nil {
			q.CheckInDate = &parsed
		}
	}

	q.Normalize()
}

// Normalize defaults the ordering to newest first and drops unknown sort columns.
func (q *ListQuery) Normalize() {
	if !slices.Contains(model.SortableFields, q.SortBy) {
		q.SortBy = constant.DefaultValueSortBy
	}

	if q.SortDir == constant.Empty {
		q.SortDir = constant.DefaultValueSortDir
	}
}

// Filter builds the AND of every populated criterion.
func (q *ListQuery) Filter() gDto.FilterGroup {
	filters := []any{}

	if q.Search != constant.Empty {
		filters = append(filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldGuestName,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Search,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldIdentityNumber,
					Operator: gDto.FilterOperatorLike,
					Value:    q.Search,
					Table:    model.TableName,
				},
			},
		})
	}

	if q.RoomType != constant.Empty {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldRoomType,
			Operator: gDto.FilterOperatorEq,
			Value:    q.RoomType,
			Table:    model.TableName,
		})
	}

	if q.CheckInDate != nil {
		from, to := timezone.DayRange(*q.CheckInDate)

		filters = append(filters,
			gDto.Filter{
				ArgName:  argCheckInFrom,
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  argCheckInTo,
				Field:    model.FieldCheckInDate,
				Operator: gDto.FilterOperatorLess,
				Value:    to,
				Table:    model.TableName,
			},
		)
	}

	if q.Breakfast != nil {
		filters = append(filters, gDto.Filter{
			Field:    model.FieldBreakfast,
			Operator: gDto.FilterOperatorEq,
			Value:    *q.Breakfast,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

// ExcludeID narrows filter to every booking but id.
func ExcludeID(filter gDto.FilterGroup, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			filter,
			gDto.Filter{
				ArgName:  "exclude_id",
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    id,
				Table:    model.TableName,
			},
		},
	}
}
