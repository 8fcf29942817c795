package shared

import (
	"context"
	"reflect"
	"slices"
	"staysync/shared/cache"
	"staysync/shared/constant"
	"staysync/shared/dto"
	"staysync/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

// CalculateTotalPage is never below one so an empty list still reports a page.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns the non-zero db-tagged fields of data into an update map stamped
// with the modifying actor. data may be a struct or a pointer to one.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.Indirect(reflect.ValueOf(data))
	typ := val.Type()

	updatedFields := make(map[string]any, val.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		if field := val.Field(index); !field.IsZero() {
			updatedFields[column] = field.Interface()
		}
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

	return updatedFields
}

// FilterByID matches a single row by its key column.
func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return FilterByFields(table, map[string]any{fieldID: id})
}

// FilterByFields builds an AND group of equality filters, one per field.
func FilterByFields(table string, fields map[string]any) dto.FilterGroup {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, key := range keys {
		group.Filters = append(group.Filters, dto.Filter{
			Field:    key,
			Value:    fields[key],
			Operator: dto.FilterOperatorEq,
			Table:    table,
		})
	}

	return group
}

func BuildCacheKey(prefix string, parts ...string) string {
	key := []string{prefix}

	for _, part := range parts {
		if part == "" {
			continue
		}

		key = append(key, part)
	}

	return strings.Join(key, ":")
}

// InvalidateCaches clears every key under prefix. Failures are logged and swallowed.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
