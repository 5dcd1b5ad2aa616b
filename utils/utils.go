package utils

import (
	"os"
	"strings"
)

// DeriveParticipantID возвращает локальную часть email (всё до первого '@').
// Email без '@' возвращается целиком, пустая строка остаётся пустой.
// Разные адреса с одинаковой локальной частью дают один и тот же ID.
func DeriveParticipantID(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// ParseIntPrefix разбирает целое число в начале строки так же, как это делает
// parseInt в браузерном клиенте: пробелы в начале пропускаются, допускается знак,
// затем читаются десятичные цифры до первого нецифрового символа.
// ok == false, если ни одной цифры не найдено.
func ParseIntPrefix(s string) (n int64, ok bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		// saturate instead of overflowing on absurdly long inputs
		if n < (1<<63-1)/10 {
			n = n*10 + int64(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
