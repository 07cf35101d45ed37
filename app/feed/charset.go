package feed

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"
)

// decodeCharset is installed as the XML decoder's charset hook so feeds
// declaring legacy encodings (windows-1251, iso-8859-1, ...) are
// transcoded to UTF-8 before tree construction.
func decodeCharset(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
