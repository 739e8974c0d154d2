package respond

import (
	"regexp"
)

// dbPasswordPattern matches the credential section of a DSN so connection
// errors can be logged without exposing the password.
var dbPasswordPattern = regexp.MustCompile(`://([^:]+):([^@]+)@`)

// SanitizeError は機密情報をマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return dbPasswordPattern.ReplaceAllString(err.Error(), "://$1:****@")
}
