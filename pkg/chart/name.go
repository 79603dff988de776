package chart

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/Sumatoshi-tech/contribplot/pkg/contrib"
	"github.com/Sumatoshi-tech/contribplot/pkg/safeconv"
)

const (
	chartExt        = ".svg"
	safeReplacement = '_'
	keySeparator    = "\x00"
)

// FileName returns the chart file name for an author in a window. Every
// non-alphanumeric rune is replaced so the name is filesystem safe, and a
// short hash of the raw author and window names keeps pairs that sanitize
// to the same text apart.
func FileName(author string, window contrib.Window) string {
	pairHash := safeconv.Low32(xxhash.Sum64String(author + keySeparator + window.Name))

	return fmt.Sprintf("%s_%08x_%s%s", sanitize(author), pairHash, sanitize(window.Name), chartExt)
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if isASCIIAlnum(r) {
			return r
		}

		return safeReplacement
	}, s)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
