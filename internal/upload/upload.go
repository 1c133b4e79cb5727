package upload

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// maxUploadSize caps multipart form memory at 10MB.
const maxUploadSize = 10 << 20

// Saver writes uploaded images into a local directory and hands back the
// relative URL path callers store alongside listings and store profiles.
type Saver struct {
	dir string
}

func NewSaver(dir string) *Saver {
	return &Saver{dir: dir}
}

// SaveImage extracts the named file field from a multipart request and writes
// it under the upload directory with a fresh uuid name, keeping the original
// extension. It returns "" with no error when the field is absent.
func (s *Saver) SaveImage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// ParseForm parses the request as a multipart form when its content type says
// so, falling back to a regular form parse. Handlers call this before reading
// fields so plain JSON-less POSTs and uploads share one code path.
func ParseForm(r *http.Request) error {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return r.ParseForm()
		}
		return err
	}
	return nil
}

// FileServer serves the upload directory at /uploads/.
func (s *Saver) FileServer() http.Handler {
	return http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.dir)))
}
