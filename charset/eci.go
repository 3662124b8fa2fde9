// Package charset maps Extended Channel Interpretation (ECI) values to
// character sets and converts decoded bytes to UTF-8.
package charset

import (
	"errors"
	"strings"
)

// ErrUnknownECI is returned for ECI values with no known character set.
var ErrUnknownECI = errors.New("charset: unknown ECI value")

// ECI is one character set designation. Name is the IANA name understood
// by Decode.
type ECI struct {
	Values  []int
	Name    string
	Aliases []string
}

var ecis = []ECI{
	{[]int{0, 2}, "IBM437", []string{"Cp437"}},
	{[]int{1, 3}, "ISO-8859-1", []string{"ISO8859_1", "Latin1"}},
	{[]int{4}, "ISO-8859-2", []string{"ISO8859_2"}},
	{[]int{5}, "ISO-8859-3", []string{"ISO8859_3"}},
	{[]int{6}, "ISO-8859-4", []string{"ISO8859_4"}},
	{[]int{7}, "ISO-8859-5", []string{"ISO8859_5"}},
	{[]int{8}, "ISO-8859-6", []string{"ISO8859_6"}},
	{[]int{9}, "ISO-8859-7", []string{"ISO8859_7"}},
	{[]int{10}, "ISO-8859-8", []string{"ISO8859_8"}},
	{[]int{11}, "ISO-8859-9", []string{"ISO8859_9"}},
	{[]int{12}, "ISO-8859-10", []string{"ISO8859_10"}},
	{[]int{13}, "TIS-620", []string{"ISO8859_11", "ISO-8859-11"}},
	{[]int{15}, "ISO-8859-13", []string{"ISO8859_13"}},
	{[]int{16}, "ISO-8859-14", []string{"ISO8859_14"}},
	{[]int{17}, "ISO-8859-15", []string{"ISO8859_15"}},
	{[]int{18}, "ISO-8859-16", []string{"ISO8859_16"}},
	{[]int{20}, "Shift_JIS", []string{"SJIS"}},
	{[]int{21}, "windows-1250", []string{"Cp1250"}},
	{[]int{22}, "windows-1251", []string{"Cp1251"}},
	{[]int{23}, "windows-1252", []string{"Cp1252"}},
	{[]int{24}, "windows-1256", []string{"Cp1256"}},
	{[]int{25}, "UTF-16BE", []string{"UnicodeBig", "UnicodeBigUnmarked"}},
	{[]int{26}, "UTF-8", []string{"UTF8"}},
	{[]int{27, 170}, "US-ASCII", []string{"ASCII"}},
	{[]int{28}, "Big5", nil},
	{[]int{29}, "GB18030", []string{"GB2312", "EUC_CN", "GBK"}},
	{[]int{30}, "EUC-KR", []string{"EUC_KR"}},
}

var (
	byValue = make(map[int]*ECI)
	byName  = make(map[string]*ECI)
)

func init() {
	for i := range ecis {
		e := &ecis[i]
		for _, v := range e.Values {
			byValue[v] = e
		}
		byName[strings.ToLower(e.Name)] = e
		for _, a := range e.Aliases {
			byName[strings.ToLower(a)] = e
		}
	}
}

// ByValue returns the character set designated by an ECI value.
func ByValue(value int) (*ECI, error) {
	if e, ok := byValue[value]; ok {
		return e, nil
	}
	return nil, ErrUnknownECI
}

// ByName looks up a character set by its IANA name or a common alias,
// ignoring case. It returns nil when the name is unknown.
func ByName(name string) *ECI {
	return byName[strings.ToLower(name)]
}
