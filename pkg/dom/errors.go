package dom

import "errors"

var (
	ErrParseMarkup   = errors.New("failed to parse markup")
	ErrNotFound      = errors.New("element not found")
	ErrForeignField  = errors.New("field does not belong to this document")
	ErrNotBindable   = errors.New("engine target is not a document element")
	ErrRenderElement = errors.New("failed to render element")
)
