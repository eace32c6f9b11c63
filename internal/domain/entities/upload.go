package entities

import "io"

// Upload is a file received from a client and destined for object storage
type Upload struct {
	FieldName   string
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}
