package entities

import (
	"net/url"
	"strings"
)

const chatBaseURL = "https://wa.me/"

// ContactLink собирает ссылку на чат с заранее заполненным сообщением.
// wa.me принимает номер только цифрами, поэтому ведущий "+" отбрасывается.
func ContactLink(phone, message string) string {
	link := chatBaseURL + strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if message == "" {
		return link
	}
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return link + "?text=" + text
}
