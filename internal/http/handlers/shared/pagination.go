package shared

import "strconv"

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// NormalizeLimit 归一化列表数量参数。
func NormalizeLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
