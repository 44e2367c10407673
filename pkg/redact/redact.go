// redact — маскирование чувствительных значений перед логированием.
// Токены и пароли в логи не попадают никогда; e-mail и телефон (MSISDN
// для M-PESA) маскируются частично, чтобы записи оставались пригодными
// для трассировки.
package redact

import "strings"

func Email(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if r := []rune(local); len(r) > 2 {
		local = string(r[:2]) + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

// Phone маскирует MSISDN, оставляя последние три цифры (2547***456).
func Phone(s string) string {
	r := []rune(s)
	if len(r) <= 3 {
		return "***"
	}

	keep := 4
	if len(r) < keep+3 {
		keep = len(r) - 3
	}

	return string(r[:keep]) + "***" + string(r[len(r)-3:])
}

func Token() string    { return "[REDACTED_TOKEN]" }
func Password() string { return "[REDACTED_PASSWORD]" }
