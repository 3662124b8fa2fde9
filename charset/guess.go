package charset

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Decode converts data in the named character set to a UTF-8 string. Names
// that x/text cannot resolve fall back to ISO-8859-1, which maps every
// byte to a code point.
func Decode(data []byte, name string) string {
	enc := lookup(name)
	if enc == nil {
		return string(data)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

func lookup(name string) encoding.Encoding {
	if e := ByName(name); e != nil {
		name = e.Name
	}
	switch strings.ToUpper(name) {
	case "UTF-8", "US-ASCII":
		return nil
	case "UTF-16":
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return charmap.ISO8859_1
	}
	return enc
}

// Guess picks a likely character set for bytes that arrived without an
// ECI. A non-empty hint wins. Otherwise the bytes are checked against
// UTF-8, Shift_JIS and ISO-8859-1 and the most plausible name is returned.
func Guess(data []byte, hint string) string {
	if hint != "" {
		return hint
	}
	if len(data) > 2 && (data[0] == 0xFE && data[1] == 0xFF || data[0] == 0xFF && data[1] == 0xFE) {
		return "UTF-16"
	}

	isUTF8 := utf8.Valid(data)
	multiByte := false
	for _, b := range data {
		if b >= 0x80 {
			multiByte = true
			break
		}
	}
	if isUTF8 && multiByte {
		return "UTF-8"
	}

	sj := scanShiftJIS(data)
	latin1 := true
	highOther := 0
	for _, b := range data {
		switch {
		case b > 0x7F && b < 0xA0:
			latin1 = false
		case b > 0x9F && (b < 0xC0 || b == 0xD7 || b == 0xF7):
			highOther++
		}
	}

	if sj.valid && (sj.maxKatakanaRun >= 3 || sj.maxDoubleByteRun >= 3) {
		return "Shift_JIS"
	}
	if latin1 && sj.valid {
		if sj.maxKatakanaRun == 2 && sj.katakana == 2 || highOther*10 >= len(data) {
			return "Shift_JIS"
		}
		return "ISO-8859-1"
	}
	switch {
	case latin1:
		return "ISO-8859-1"
	case sj.valid:
		return "Shift_JIS"
	}
	return "UTF-8"
}

type shiftJISScan struct {
	valid            bool
	katakana         int
	maxKatakanaRun   int
	maxDoubleByteRun int
}

func scanShiftJIS(data []byte) shiftJISScan {
	s := shiftJISScan{valid: true}
	trail := false
	katakanaRun, doubleRun := 0, 0
	for _, b := range data {
		if trail {
			if b < 0x40 || b == 0x7F || b > 0xFC {
				s.valid = false
				return s
			}
			trail = false
			continue
		}
		switch {
		case b == 0x80 || b == 0xA0 || b > 0xEF:
			s.valid = false
			return s
		case b > 0xA0 && b < 0xE0:
			s.katakana++
			doubleRun = 0
			katakanaRun++
			s.maxKatakanaRun = max(s.maxKatakanaRun, katakanaRun)
		case b > 0x7F:
			trail = true
			katakanaRun = 0
			doubleRun++
			s.maxDoubleByteRun = max(s.maxDoubleByteRun, doubleRun)
		default:
			katakanaRun, doubleRun = 0, 0
		}
	}
	if trail {
		s.valid = false
	}
	return s
}
