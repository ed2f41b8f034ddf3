// Copyright (c) 2026 The psdf authors.

package pdf

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/rduggan/psdf/logger"
)

// inflate decompresses a ZLIB-format (RFC 1950) FlateDecode stream. The
// output buffer grows adaptively via io.ReadAll rather than being
// pre-sized from a heuristic, since compress/zlib's Reader does not need
// a size hint up front.
func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		logger.Errorf("FlateDecode: failed to open zlib stream", "err", err)
		return nil, newError(KindFilterError, "zlib: "+err.Error())
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		logger.Errorf("FlateDecode: inflate failed", "err", err)
		return nil, newError(KindFilterError, "zlib: "+err.Error())
	}
	return out, nil
}

// decodeStream applies the filter(s) named in a stream's /Filter entry.
// Only FlateDecode is supported (§6); anything else is a FilterError.
func decodeStream(st *Stream) ([]byte, error) {
	filter, ok := st.Dict["Filter"]
	if !ok {
		return st.Data, nil
	}
	switch f := filter.(type) {
	case Name:
		return applyNamedFilter(string(f), st.Data)
	case Array:
		data := st.Data
		for _, nameObj := range f {
			n, ok := nameObj.(Name)
			if !ok {
				return nil, newError(KindFilterError, "non-name entry in Filter array")
			}
			var err error
			data, err = applyNamedFilter(string(n), data)
			if err != nil {
				return nil, err
			}
		}
		return data, nil
	default:
		return nil, newError(KindFilterError, "unsupported Filter entry shape")
	}
}

func applyNamedFilter(name string, data []byte) ([]byte, error) {
	if name != "FlateDecode" {
		return nil, newError(KindFilterError, "unsupported filter: "+name)
	}
	return inflate(data)
}
