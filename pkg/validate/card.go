package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

// IsCardNumber reports whether s passes the Luhn check.
func IsCardNumber(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}
