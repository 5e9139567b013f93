package pdfdoc

import (
	"fmt"
	"strconv"
)

// FormatAmount renders paise as rupees with Indian digit grouping,
// e.g. 12345600 -> "Rs. 1,23,456.00". Zero renders as "FREE".
func FormatAmount(paise int64) string {
	if paise == 0 {
		return "FREE"
	}
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%sRs. %s.%02d", sign, groupIndian(paise/100), paise%100)
}

func groupIndian(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	out := tail
	for len(head) > 2 {
		out = head[len(head)-2:] + "," + out
		head = head[:len(head)-2]
	}
	return head + "," + out
}
