package utils

import (
	"strconv"
)

// StringToInt 将字符串转换为整数，出错时返回默认值0
func StringToInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return i
}
