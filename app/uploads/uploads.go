// Package uploads serves user uploaded files from a fixed directory.
// Requested paths are resolved against the upload root, symlinks included, and anything escaping it is rejected.
package uploads

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/jobsrc/app/enums"
)

// CacheControl is sent with every served file
const CacheControl = "public, max-age=31536000, immutable"

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Server resolves and reads files under Root
type Server struct {
	root string
}

// File is a fully read upload
type File struct {
	Path         string
	Data         []byte
	ContentType  string
	CacheControl string
}

// Error is a failure to serve a file
type Error struct {
	Kind enums.ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("can't serve %s, %s: %v", e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New makes Server for the root directory. Root made absolute and cleaned.
func New(root string) (*Server, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload root %s: %w", root, err)
	}
	return &Server{root: abs}, nil
}

// Root returns absolute upload directory
func (s *Server) Root() string { return s.root }

// Serve reads the file addressed by path segments relative to the upload root
func (s *Server) Serve(segments []string) (res File, err error) {
	defer func() {
		if x := recover(); x != nil {
			err = &Error{Kind: enums.ErrorKindUnexpected, Path: strings.Join(segments, "/"), Err: fmt.Errorf("panic: %v", x)}
		}
	}()

	fullPath, realRoot, err := s.resolve(segments)
	if err != nil {
		return File{}, err
	}
	rel, err := filepath.Rel(realRoot, fullPath)
	if err != nil {
		return File{}, &Error{Kind: enums.ErrorKindUnexpected, Path: fullPath, Err: err}
	}

	// read through os.Root, a symlink swapped in after resolve still can't leave the root
	root, err := os.OpenRoot(realRoot)
	if err != nil {
		return File{}, &Error{Kind: enums.ErrorKindUnexpected, Path: realRoot, Err: err}
	}
	defer root.Close()

	fh, err := root.Open(rel)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, &Error{Kind: enums.ErrorKindNotFound, Path: fullPath, Err: err}
		}
		return File{}, &Error{Kind: enums.ErrorKindUnexpected, Path: fullPath, Err: err}
	}
	defer fh.Close()

	st, err := fh.Stat()
	if err != nil {
		return File{}, &Error{Kind: enums.ErrorKindUnexpected, Path: fullPath, Err: err}
	}
	if !st.Mode().IsRegular() {
		return File{}, &Error{Kind: enums.ErrorKindValidation, Path: fullPath, Err: errors.New("not a file")}
	}

	data, err := io.ReadAll(fh)
	if err != nil {
		return File{}, &Error{Kind: enums.ErrorKindUnexpected, Path: fullPath, Err: err}
	}

	return File{Path: fullPath, Data: data, ContentType: ContentType(fullPath), CacheControl: CacheControl}, nil
}

// resolve joins segments to the root and makes sure the result stays inside of it, first lexically
// and then with symlinks evaluated. Returns the real file path and the real root.
func (s *Server) resolve(segments []string) (fullPath, realRoot string, err error) {
	escapes := func() error {
		return &Error{Kind: enums.ErrorKindPathSecurity, Path: strings.Join(segments, "/"),
			Err: errors.New("path escapes upload root")}
	}

	fullPath = filepath.Clean(filepath.Join(append([]string{s.root}, segments...)...))
	if !within(s.root, fullPath) {
		return "", "", escapes()
	}

	if realRoot, err = filepath.EvalSymlinks(s.root); err != nil {
		return "", "", s.statError(s.root, err)
	}
	if fullPath, err = filepath.EvalSymlinks(fullPath); err != nil {
		return "", "", s.statError(strings.Join(segments, "/"), err)
	}
	if !within(realRoot, fullPath) {
		return "", "", escapes()
	}
	return fullPath, realRoot, nil
}

func (s *Server) statError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &Error{Kind: enums.ErrorKindNotFound, Path: path, Err: err}
	}
	return &Error{Kind: enums.ErrorKindUnexpected, Path: path, Err: err}
}

// within checks if path is dir itself or located under it, both cleaned and absolute
func within(dir, path string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}

// ContentType returns mime type by file extension, application/octet-stream for unknown
func ContentType(path string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Handler serves GET requests with wildcard "path" value, i.e. mounted as "GET /uploads/{path...}"
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var segments []string
		if p := r.PathValue("path"); p != "" {
			segments = strings.Split(p, "/")
		}

		file, err := s.Serve(segments)
		if err != nil {
			status, msg := errorResponse(err)
			if status == http.StatusInternalServerError {
				log.Printf("[ERROR] error serving file: %v", err)
			} else {
				log.Printf("[DEBUG] %v", err)
			}
			writeJSONError(w, status, msg)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Cache-Control", file.CacheControl)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Data); err != nil {
			log.Printf("[WARN] failed to write %s: %v", file.Path, err)
		}
	})
}

// errorResponse maps serve error to http status and the message returned to the client
func errorResponse(err error) (status int, msg string) {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, "Failed to serve file"
	}
	switch e.Kind {
	case enums.ErrorKindPathSecurity:
		return http.StatusForbidden, "Invalid path"
	case enums.ErrorKindNotFound:
		return http.StatusNotFound, "File not found"
	case enums.ErrorKindValidation:
		return http.StatusBadRequest, "Not a file"
	default:
		return http.StatusInternalServerError, "Failed to serve file"
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
