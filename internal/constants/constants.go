// Package constants holds application-wide default values.
package constants

import "time"

const (
	DefaultPort          = "8080"
	DefaultDBPath        = "lyricspider.sqlite"
	DefaultGeniusBaseURL = "https://genius.com/api"
	DefaultUserAgent     = "lyricspider/1.0"

	DefaultSearchWorkers = 4
	DefaultFetchWorkers  = 4
	DefaultSearchDelay   = 100 * time.Millisecond
	DefaultFetchDelay    = 100 * time.Millisecond

	DefaultHTTPTimeout = 10 * time.Second
	DefaultRetryCount  = 5
	DefaultRetryBase   = 250 * time.Millisecond
	DefaultRetryCap    = 8 * time.Second

	DefaultSearchPerPage = 20
	DefaultSyncPageSize  = 25

	DefaultHighlightOpen  = "<b>"
	DefaultHighlightClose = "</b>"
)
