package adjobs

import "errors"

var (
	// ErrNoProductData means scraping yielded no usable product or images; no
	// job is created in this case.
	ErrNoProductData = errors.New("failed to scrape product data or images")

	// ErrNoAdCopy means copy generation yielded no usable lines; the job is
	// already marked failed when this is returned.
	ErrNoAdCopy = errors.New("failed to generate ad copy")

	ErrVideoUnavailable = errors.New("video not found or is in an invalid state")
)
