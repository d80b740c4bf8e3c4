package catalog

import "errors"

var (
	ErrParsingCancelled  = errors.New("catalog parsing cancelled")
	ErrCatalogParse      = errors.New("failed to parse message catalog")
	ErrEmptyCatalog      = errors.New("message catalog has no languages")
	ErrFailedToReadFile  = errors.New("failed to read message catalog")
	ErrLanguageNotFound  = errors.New("language not found in message catalog")
	ErrFailedToWatchFile = errors.New("failed to watch message catalog")
)
