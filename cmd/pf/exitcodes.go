package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no data directory, missing API key)
	ExitDataError   = 3 // Data error (required document missing or malformed)

	// Scholar exit codes
	ExitScholarAPIError = 4 // SerpApi error (rate limit, network, bad response)
)
