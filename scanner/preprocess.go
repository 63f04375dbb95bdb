package scanner

import (
	"io"

	"golang.org/x/text/transform"
)

// replacement is the UTF-8 encoding of U+FFFD REPLACEMENT CHARACTER.
const replacement = "\uFFFD"

// normalize preprocesses the input stream. (§3.3)
// CR, CRLF, and FF become LF; NULL becomes U+FFFD.
type normalize struct {
	prev byte
}

func (n *normalize) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		switch c {
		case '\r', '\f':
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
		case '\n':
			// An LF directly after a CR was already written as the CR's LF.
			if n.prev == '\r' {
				n.prev = c
				nSrc++
				continue
			}
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = '\n'
			nDst++
		case 0:
			if nDst+len(replacement) > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], replacement)
		default:
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
		}
		n.prev = c
		nSrc++
	}
	return nDst, nSrc, nil
}

func (n *normalize) Reset() {
	n.prev = 0
}

// transformReader wraps r so that reads come out preprocessed.
func transformReader(r io.Reader) io.Reader {
	return transform.NewReader(r, &normalize{})
}

// Preprocess normalizes a raw source string into the code point buffer the
// tokenizer consumes. Invalid UTF-8 sequences decode to U+FFFD.
func Preprocess(src string) []rune {
	b, _, err := transform.String(&normalize{}, src)
	if err != nil {
		b = src
	}
	return []rune(b)
}
