package auth

import "unicode"

// Политика пароля при регистрации. Проверяется локально, до
// какого-либо запроса к серверу; порядок правил фиксирован и
// сообщается первое нарушенное.

// PasswordMinLen — минимальная длина пароля.
const PasswordMinLen = 6

// ValidatePassword возвращает текст нарушенного правила или пустую строку.
func ValidatePassword(pwd string) string {
	if len([]rune(pwd)) < PasswordMinLen {
		return "Password must be at least 6 characters."
	}
	hasLetter := false
	hasOther := false
	for _, r := range pwd {
		if unicode.IsLetter(r) {
			hasLetter = true
		} else {
			hasOther = true
		}
	}
	if !hasLetter {
		return "Password must contain at least one letter."
	}
	if !hasOther {
		return "Password must contain at least one number or special character."
	}
	return ""
}
