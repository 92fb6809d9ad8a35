// Package obfuscate implements the reversible XOR transform applied to save
// text before it is written and after it is read.
//
// This is obfuscation, not encryption. Anyone holding the binary or a known
// plaintext can recover the key in seconds; it only keeps casual edits out of
// save files.
//
// The transform works on UTF-16 code units, so files written by other
// implementations of the same scheme stay readable. XOR can turn a code unit
// into half of a surrogate pair, which UTF-8 cannot carry, so transformed text
// is represented as WTF-8: UTF-8 extended to encode lone surrogates as plain
// three-byte sequences. Every valid UTF-8 string is valid WTF-8, which keeps
// Transform its own inverse for every string it produces or accepts.
package obfuscate

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Transform XORs every UTF-16 code unit of text with the low 16 bits of key.
// Applying it twice with the same key returns the original text.
//
// A key whose low 16 bits are zero leaves text unchanged, but callers are
// expected to skip the call entirely when the key is 0.
func Transform(text string, key int32) string {
	units := decodeUnits(text)
	k := uint16(key)
	for i := range units {
		units[i] ^= k
	}
	return encodeUnits(units)
}

// decodeUnits splits WTF-8 text into UTF-16 code units. Bytes that do not form
// a valid sequence decode to U+FFFD one byte at a time.
func decodeUnits(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		b0 := s[i]
		switch {
		case b0 < utf8.RuneSelf:
			units = append(units, uint16(b0))
			i++
			continue

		case b0&0xE0 == 0xC0 && i+1 < len(s) && isCont(s[i+1]):
			cp := rune(b0&0x1F)<<6 | rune(s[i+1]&0x3F)
			if cp >= 0x80 {
				units = append(units, uint16(cp))
				i += 2
				continue
			}

		case b0&0xF0 == 0xE0 && i+2 < len(s) && isCont(s[i+1]) && isCont(s[i+2]):
			cp := rune(b0&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F)
			if cp >= 0x800 {
				units = append(units, uint16(cp))
				i += 3
				continue
			}

		case b0&0xF8 == 0xF0 && i+3 < len(s) && isCont(s[i+1]) && isCont(s[i+2]) && isCont(s[i+3]):
			cp := rune(b0&0x07)<<18 | rune(s[i+1]&0x3F)<<12 | rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)
			if cp >= 0x10000 && cp <= utf8.MaxRune {
				hi, lo := utf16.EncodeRune(cp)
				units = append(units, uint16(hi), uint16(lo))
				i += 4
				continue
			}
		}

		units = append(units, uint16(utf8.RuneError))
		i++
	}
	return units
}

// encodeUnits is the inverse of decodeUnits. Well-formed surrogate pairs are
// joined into one four-byte sequence; lone surrogates get three bytes.
func encodeUnits(units []uint16) string {
	buf := make([]byte, 0, len(units)*3)
	for i := 0; i < len(units); i++ {
		u := units[i]
		if isHighSurrogate(u) && i+1 < len(units) && isLowSurrogate(units[i+1]) {
			buf = utf8.AppendRune(buf, utf16.DecodeRune(rune(u), rune(units[i+1])))
			i++
			continue
		}

		switch {
		case u < 0x80:
			buf = append(buf, byte(u))
		case u < 0x800:
			buf = append(buf, 0xC0|byte(u>>6), 0x80|byte(u&0x3F))
		default:
			buf = append(buf, 0xE0|byte(u>>12), 0x80|byte((u>>6)&0x3F), 0x80|byte(u&0x3F))
		}
	}
	return string(buf)
}

func isCont(b byte) bool { return b&0xC0 == 0x80 }

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u < 0xDC00 }

func isLowSurrogate(u uint16) bool { return u >= 0xDC00 && u < 0xE000 }
