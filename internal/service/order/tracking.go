package order

import (
	"math/rand/v2"
	"strings"
)

const (
	trackingPrefix = "VN"
	trackingDigits = 10
)

// NewTrackingNumber: "VN" + 10 случайных цифр + контрольная цифра Луна.
func NewTrackingNumber() string {
	digits := make([]byte, trackingDigits, trackingDigits+1)
	digits[0] = byte('1' + rand.IntN(9))
	for i := 1; i < trackingDigits; i++ {
		digits[i] = byte('0' + rand.IntN(10))
	}
	digits = append(digits, luhnCheckDigit(digits))
	return trackingPrefix + string(digits)
}

func ValidTrackingNumber(s string) bool {
	body, ok := strings.CutPrefix(s, trackingPrefix)
	if !ok || len(body) != trackingDigits+1 {
		return false
	}
	for i := range len(body) {
		if body[i] < '0' || body[i] > '9' {
			return false
		}
	}
	return luhnCheckDigit([]byte(body[:trackingDigits])) == body[trackingDigits]
}

func luhnCheckDigit(digits []byte) byte {
	sum := 0
	double := true
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return byte('0' + (10-sum%10)%10)
}
