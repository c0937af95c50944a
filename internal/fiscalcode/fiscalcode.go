// Package fiscalcode validates and decodes the Italian codice fiscale,
// the 16-character personal fiscal identifier with an embedded checksum.
package fiscalcode

import (
	"strings"
	"time"
)

// Sex is the subject's sex as encoded in the fiscal code
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Decoded holds the personal data embedded in a valid fiscal code
type Decoded struct {
	Sex       Sex
	Year      int
	Month     time.Month
	Day       int
	BirthDate time.Time
}

// Per-character checksum values for characters in odd 1-indexed positions,
// indexed by digit value 0-9 then letter A-Z. Fixed by the national standard.
var oddValues = map[byte]int{
	'0': 1, '1': 0, '2': 5, '3': 7, '4': 9, '5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'B': 0, 'C': 5, 'D': 7, 'E': 9, 'F': 13, 'G': 15, 'H': 17, 'I': 19, 'J': 21,
	'K': 2, 'L': 4, 'M': 18, 'N': 20, 'O': 11, 'P': 3, 'Q': 6, 'R': 8, 'S': 12, 'T': 14,
	'U': 16, 'V': 10, 'W': 22, 'X': 25, 'Y': 24, 'Z': 23,
}

// monthLetters maps the birth-month letter to months 1-12. The alphabet is
// fixed by the standard and is not sequential.
const monthLetters = "ABCDEHLMPRST"

// yearPivot: two-digit years above this are 1900s, the rest 2000s. A lossy
// heuristic inherent to the 2-digit encoding.
const yearPivot = 50

// Validate reports whether s is a well-formed fiscal code with a correct
// check character. Malformed input is an expected case and never panics.
func Validate(s string) bool {
	code, ok := normalize(s)
	if !ok {
		return false
	}
	return code[15] == checkChar(code)
}

// Decode extracts sex and birth date from a fiscal code. The second return
// is false when the code does not validate; decoding is never attempted on
// an invalid code.
func Decode(s string) (Decoded, bool) {
	code, ok := normalize(s)
	if !ok || code[15] != checkChar(code) {
		return Decoded{}, false
	}

	year := int(code[6]-'0')*10 + int(code[7]-'0')
	if year > yearPivot {
		year += 1900
	} else {
		year += 2000
	}

	month := time.Month(strings.IndexByte(monthLetters, code[8]) + 1)

	day := int(code[9]-'0')*10 + int(code[10]-'0')
	sex := SexMale
	if day > 40 {
		sex = SexFemale
		day -= 40
	}

	return Decoded{
		Sex:       sex,
		Year:      year,
		Month:     month,
		Day:       day,
		BirthDate: time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
	}, true
}

// normalize upper-cases s and checks length and character shape:
// 6 letters, 2 digits, 1 month letter, 2 digits, 1 letter, 3 digits, 1 letter.
func normalize(s string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if len(code) != 16 {
		return "", false
	}
	for i := 0; i < 16; i++ {
		c := code[i]
		switch i {
		case 6, 7, 9, 10, 12, 13, 14:
			if !isDigit(c) {
				return "", false
			}
		case 8:
			if strings.IndexByte(monthLetters, c) < 0 {
				return "", false
			}
		default:
			if !isLetter(c) {
				return "", false
			}
		}
	}
	return code, true
}

// checkChar computes the expected check character from the first 15
// characters: odd 1-indexed positions use the odd table, even positions use
// the character's ordinal value, sum taken modulo 26 into A-Z.
func checkChar(code string) byte {
	sum := 0
	for i := 0; i < 15; i++ {
		c := code[i]
		if i%2 == 0 { // 0-indexed even = 1-indexed odd position
			sum += oddValues[c]
		} else {
			sum += evenValue(c)
		}
	}
	return byte('A' + sum%26)
}

func evenValue(c byte) int {
	if isDigit(c) {
		return int(c - '0')
	}
	return int(c - 'A')
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
