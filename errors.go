package tex2site

import "errors"

// Sentinel errors for library operations.
var (
	ErrSourceNotFound = errors.New("source document not found")
	ErrEmptyTitle     = errors.New("title cannot be empty")
	ErrInvalidSlug    = errors.New("invalid slug")
	ErrInvalidDate    = errors.New("invalid date")

	// Category errors.
	ErrInvalidCategory = errors.New("invalid category")

	// Conversion engine errors.
	ErrEngineNotFound = errors.New("conversion engine not found")
	ErrEngineFailed   = errors.New("conversion engine failed")
	ErrEngineTimeout  = errors.New("conversion engine timed out")
	ErrNoArtifact     = errors.New("conversion engine produced no output")

	// Output errors.
	ErrReadArtifact = errors.New("failed to read conversion artifact")
	ErrWriteOutput  = errors.New("failed to write output HTML")
	ErrPageRender   = errors.New("page template rendering failed")

	// Site integration errors. These are reported as warnings by the pipeline.
	ErrListingNotFound = errors.New("listing file not found")
	ErrListingWrite    = errors.New("failed to write listing file")
	ErrInvalidGraphFmt = errors.New("invalid graph format")
)
