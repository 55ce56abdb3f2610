package rules

import "strings"

// FileSchema validates an upload's {filename, size, mimeType} metadata
// triple. File bytes never reach the engine; transport is an external
// collaborator.
type FileSchema struct {
	required bool
	maxBytes int64
	accept   []string
}

// File returns an unconstrained file-metadata schema.
func File() *FileSchema { return &FileSchema{} }

func (s *FileSchema) Required() *FileSchema { s.required = true; return s }

// MaxBytes sets the byte-size ceiling.
func (s *FileSchema) MaxBytes(n int64) *FileSchema { s.maxBytes = n; return s }

// Accept sets the allowed mime types.
func (s *FileSchema) Accept(mimeTypes ...string) *FileSchema {
	s.accept = append(s.accept, mimeTypes...)
	return s
}

func (s *FileSchema) Validate(value any, _ Document) Result {
	if result, done := presence(value, s.required); done {
		return result
	}
	meta, okMap := asStringMap(value)
	if !okMap {
		return fail(Issue{Kind: KindFileBase})
	}
	filename, _ := meta["filename"].(string)
	if strings.TrimSpace(filename) == "" {
		return fail(Issue{Kind: KindFileBase})
	}
	size, okSize := toFloat(meta["size"])
	if !okSize || size < 0 {
		return fail(Issue{Kind: KindFileBase})
	}
	mimeType, _ := meta["mimeType"].(string)

	if s.maxBytes > 0 && int64(size) > s.maxBytes {
		return fail(Issue{Kind: KindFileMaxSize})
	}
	if len(s.accept) > 0 && !acceptsMIME(s.accept, mimeType) {
		return fail(Issue{Kind: KindFileType})
	}
	return ok(map[string]any{
		"filename": strings.TrimSpace(filename),
		"size":     int64(size),
		"mimeType": strings.TrimSpace(mimeType),
	})
}

func acceptsMIME(allowed []string, mimeType string) bool {
	candidate := strings.ToLower(strings.TrimSpace(mimeType))
	for _, item := range allowed {
		if strings.ToLower(item) == candidate {
			return true
		}
	}
	return false
}
