package formskema

import (
	"mime/multipart"
)

// File is the file-like value a form produces: the metadata of an upload,
// independent of where its bytes live.
type File struct {
	Name        string `json:"name"`
	Size        int64  `json:"size"`
	ContentType string `json:"type,omitempty"`
	// Header is set when the file came from a multipart form.
	Header *multipart.FileHeader `json:"-"`
}

// ByteSize returns the declared size in bytes.
func (f File) ByteSize() int64 { return f.Size }

// FileFromHeader converts a multipart header into a File.
func FileFromHeader(fh *multipart.FileHeader) File {
	f := File{Name: fh.Filename, Size: fh.Size, Header: fh}
	if fh.Header != nil {
		f.ContentType = fh.Header.Get("Content-Type")
	}
	return f
}
