// Package storage writes uploaded files to object storage and returns the
// public URL stored in content rows.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"io"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Store saves an object under key and returns its public URL.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Folder prefixes accepted for uploads.
const (
	PrefixImages   = "images"
	PrefixGallery  = "gallery"
	Prefix3DModels = "3d-models"
	PrefixShowreel = "showreel"
	PrefixBlog     = "blog"
	PrefixTeam     = "team"
	PrefixPartners = "partners"
)

// Prefixes lists every accepted folder prefix.
var Prefixes = []string{PrefixImages, PrefixGallery, Prefix3DModels, PrefixShowreel, PrefixBlog, PrefixTeam, PrefixPartners}

// ValidPrefix reports whether p names an upload folder.
func ValidPrefix(p string) bool {
	for _, v := range Prefixes {
		if v == p {
			return true
		}
	}
	return false
}

var (
	imageTypes = map[string]string{
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"webp": "image/webp",
		"gif":  "image/gif",
	}
	modelTypes = map[string]string{
		"glb":  "model/gltf-binary",
		"gltf": "model/gltf+json",
	}
	videoTypes = map[string]string{
		"mp4":  "video/mp4",
		"webm": "video/webm",
	}
)

// allowedTypes maps each folder to the file extensions it accepts and the
// content type each is stored with. Markup and script types are never listed.
var allowedTypes = map[string]map[string]string{
	PrefixImages:   imageTypes,
	PrefixGallery:  imageTypes,
	PrefixBlog:     imageTypes,
	PrefixTeam:     imageTypes,
	PrefixPartners: imageTypes,
	Prefix3DModels: modelTypes,
	PrefixShowreel: videoTypes,
}

// Ext returns the lowercased extension of filename without the dot.
func Ext(filename string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
}

// ContentType returns the content type stored for filename in prefix, and
// false when the folder does not accept that extension.
func ContentType(prefix, filename string) (string, bool) {
	ct, ok := allowedTypes[prefix][Ext(filename)]
	return ct, ok
}

// AllowedExtensions lists the extensions prefix accepts, sorted.
func AllowedExtensions(prefix string) []string {
	exts := make([]string, 0, len(allowedTypes[prefix]))
	for ext := range allowedTypes[prefix] {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// ObjectKey builds "<prefix>/<unix-ms>-<random>.<ext>" for a file originally
// named filename. The extension is lowercased; names without one get none.
func ObjectKey(prefix, filename string, now time.Time) string {
	var b [6]byte
	_, _ = rand.Read(b[:])
	name := strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b[:])
	if ext := Ext(filename); ext != "" && !strings.ContainsAny(ext, "/\\") {
		name += "." + ext
	}
	return prefix + "/" + name
}
