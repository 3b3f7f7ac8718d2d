package web

import "github.com/kyoungmook/claude-dashboard/internal/cli"

// Template funcs accept any integer kind since view structs mix int and
// int64 counters.

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case int32:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func fmtTokens(v any) string {
	return cli.FormatTokens(asInt64(v))
}

func fmtNumber(v any) string {
	return cli.FormatNumber(asInt64(v))
}

func fmtCost(v float64) string {
	return cli.FormatCost(v)
}

// sliceTime extracts the HH:MM:SS portion of an ISO-8601 timestamp.
func sliceTime(ts string) string {
	if len(ts) >= 19 {
		return ts[11:19]
	}
	return ts
}
