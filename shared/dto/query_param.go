package dto

import (
	"net/http"
	"slices"
	"staysync/shared/constant"
	"staysync/shared/failure"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

// QueryParams carries paging and ordering for list endpoints (sync runs, housekeeping tasks).
type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string. Page and limit
// that are missing or not positive fall back to the defaults when withDefaults is set; a
// malformed number is reported instead of silently ignored.
func (q *QueryParams) FromRequest(r *http.Request, withDefaults bool) error {
	query := r.URL.Query()

	if page := query.Get(constant.RequestParamPage); page != "" {
		pageInt, err := strconv.Atoi(page)
		if err != nil || pageInt < 0 {
			return failure.InvalidPageParam
		}

		q.Page = pageInt
	}

	if limit := query.Get(constant.RequestParamLimit); limit != "" {
		limitInt, err := strconv.Atoi(limit)
		if err != nil || limitInt < 0 {
			return failure.InvalidLimitParam
		}

		q.Limit = min(limitInt, constant.MaxValueLimit)
	}

	q.SortBy = strings.ToLower(query.Get(constant.RequestParamSortBy))

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if withDefaults {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}

	return nil
}

// Order fills in the default ordering and rejects sort columns outside allowed.
// The default field is always allowed.
func (q *QueryParams) Order(defaultField, defaultDir string, allowed ...string) error {
	if q.SortBy == "" {
		q.SortBy = defaultField
	}

	if q.SortBy != defaultField && !slices.Contains(allowed, q.SortBy) {
		return failure.BadRequestFromString("unsupported sort field: " + q.SortBy) // nolint:wrapcheck
	}

	if q.SortDir == "" {
		q.SortDir = defaultDir
	}

	return nil
}

// Offset is the number of rows skipped before the current page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}
