package thesaurus

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/poiesic/cilin/logger"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Encoding names the character encoding of a taxonomy file.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingGBK     Encoding = "gbk"
	EncodingGB18030 Encoding = "gb18030"
)

// ParseEncoding normalizes an encoding name. The empty string means UTF-8.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "gbk", "cp936":
		return EncodingGBK, nil
	case "gb18030":
		return EncodingGB18030, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
}

// NewReader wraps r so that it yields UTF-8 text.
func NewReader(r io.Reader, enc Encoding) (io.Reader, error) {
	switch enc {
	case EncodingUTF8, "":
		return r, nil
	case EncodingGBK:
		return transform.NewReader(r, simplifiedchinese.GBK.NewDecoder()), nil
	case EncodingGB18030:
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, enc)
	}
}

// LoadFile reads and indexes a taxonomy file in the given encoding.
func LoadFile(path string, enc Encoding) (*Index, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening taxonomy %s: %w", path, err)
	}
	defer f.Close()

	r, err := NewReader(f, enc)
	if err != nil {
		return nil, err
	}

	idx, err := Build(r)
	if err != nil {
		return nil, fmt.Errorf("loading taxonomy %s: %w", path, err)
	}
	if len(idx.codes) == 0 {
		return nil, fmt.Errorf("loading taxonomy %s: %w", path, ErrEmptyTaxonomy)
	}

	logger.WithComponent("thesaurus").Info("taxonomy loaded",
		"path", path,
		"encoding", string(enc),
		"codes", len(idx.codes),
		"vocabulary", idx.VocabularySize(),
		"total_words", idx.total,
		"elapsed", time.Since(start),
	)
	return idx, nil
}
