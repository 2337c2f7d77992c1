package ui

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

func formString(values map[string][]string, key string) string {
	if values == nil {
		return ""
	}
	return strings.TrimSpace(first(values[key]))
}

func formOptionalString(values map[string][]string, key string) *string {
	v := formString(values, key)
	if v == "" {
		return nil
	}
	return &v
}

func formBool(values map[string][]string, key string) bool {
	v := strings.ToLower(formString(values, key))
	return v == "true" || v == "1" || v == "on" || v == "yes"
}

func formOptionalInt(values map[string][]string, key string) (*int, error) {
	v := formString(values, key)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// formLines splits a textarea into trimmed non-empty lines.
func formLines(values map[string][]string, key string) []string {
	var out []string
	for _, l := range strings.Split(formString(values, key), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func formCSV(values map[string][]string, key string) []string {
	raw := formString(values, key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// uploadField stores the file posted in field under prefix and returns its
// public URL. It returns current when no file was chosen.
func (h *Handler) uploadField(r *http.Request, field, prefix, current string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return current, nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close() //nolint:errcheck
	if header.Size == 0 {
		return current, nil
	}
	return h.Media.Upload(r.Context(), prefix, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
}

// parseForm parses urlencoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// uploadFiles stores every file posted in field under prefix.
func (h *Handler) uploadFiles(r *http.Request, field, prefix string) ([]string, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	var urls []string
	for _, fh := range r.MultipartForm.File[field] {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			return urls, err
		}
		u, err := h.Media.Upload(r.Context(), prefix, fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
		_ = f.Close()
		if err != nil {
			return urls, err
		}
		urls = append(urls, u)
	}
	return urls, nil
}

func csvValues(values []string) string {
	return strings.Join(values, ", ")
}

func linesValue(values []string) string {
	return strings.Join(values, "\n")
}
