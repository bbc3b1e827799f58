package console

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// splitArgs 按空白切分，支持双引号包裹含空格的值
// splitArgs splits on whitespace; double quotes group a value containing spaces
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case unicode.IsSpace(r) && !inQuote:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if started {
		args = append(args, current.String())
	}
	return args, nil
}

// parseFields 解析 key=value 参数；不含 = 的参数按顺序放入 rest
// parseFields parses key=value arguments; bare arguments are returned in order as rest
func parseFields(args []string) (map[string]string, []string) {
	fields := make(map[string]string, len(args))
	var rest []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			rest = append(rest, arg)
			continue
		}
		fields[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return fields, rest
}

// parseIndex 将 1 起始的序号转为下标
// parseIndex converts a 1-based position to a slice index
func parseIndex(raw string, length int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > length {
		return 0, false
	}
	return n - 1, true
}

// parseNumber 拒绝 NaN/Inf，避免 JSON 编码失败
// parseNumber rejects NaN and Inf, which cannot be JSON-encoded
func parseNumber(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}

// formatAmount 原样输出浮点数，不做货币舍入
// formatAmount prints the float as-is with no currency rounding
func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
