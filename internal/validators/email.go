package validators

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}
