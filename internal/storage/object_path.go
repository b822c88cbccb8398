package storage

import (
	"cannedreply/internal/utils"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultCategory    = "misc"
	defaultExtension   = "bin"
	defaultContentType = "application/octet-stream"
)

// objectKey 描述一次写入的对象位置，布局为 <prefix>/<category>/<yyyy>/<mm>/<dd>/<base>.<ext>
type objectKey struct {
	prefix   string
	category string
	base     string
	ext      string
	at       time.Time
}

func newObjectKey(prefix string, opts SaveOptions, at time.Time) objectKey {
	key := objectKey{
		prefix:   trimPrefix(prefix),
		category: utils.Slugify(opts.Category),
		base:     utils.Slugify(opts.BaseName),
		ext:      normalizeExtension(opts.Extension),
		at:       at.UTC(),
	}
	if key.category == "" {
		key.category = defaultCategory
	}
	if key.base == "" {
		key.base = strconv.FormatInt(key.at.UnixNano(), 10)
	}
	return key
}

func (k objectKey) String() string {
	dated := path.Join(k.category, k.at.Format("2006/01/02"), k.base+"."+k.ext)
	if k.prefix == "" {
		return dated
	}
	return path.Join(k.prefix, dated)
}

// ContentType 按扩展名推断，未知时返回 octet-stream
func (k objectKey) ContentType() string {
	if typeName := mime.TypeByExtension("." + k.ext); typeName != "" {
		return typeName
	}
	return defaultContentType
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	ext = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, ext)
	if ext == "" {
		return defaultExtension
	}
	return ext
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}
