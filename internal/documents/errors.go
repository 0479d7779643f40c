package documents

import "errors"

var (
	// ErrNotFound covers both a missing document and a document owned by
	// someone else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("document not found")
	// ErrNoFile means the request carried no file part.
	ErrNoFile = errors.New("no file in request")
	// ErrEmptyFileName means a file part was present but unnamed.
	ErrEmptyFileName = errors.New("no file selected")
	// ErrNotPDF means the file name does not end in .pdf.
	ErrNotPDF = errors.New("file must be a pdf")
	// ErrInvalidID means the document id is not a positive integer.
	ErrInvalidID = errors.New("invalid document id")
	// ErrInvalidInput is a catch-all for bad arguments.
	ErrInvalidInput = errors.New("invalid input")
)
