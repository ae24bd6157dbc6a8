package internal

import "strconv"

// ContextValue reads a typed value stored with c.Set.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// QueryInt returns the query parameter as an int, or def when it is
// missing or not a number.
func QueryInt(c Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// ParamInt64 returns the path parameter as an int64.
func ParamInt64(c Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
