package constant

const (
	DEFAULT_LIMIT = 20
	MAX_LIMIT     = 50

	MAX_FILE_SIZE = 5 * 1024 * 1024

	LATEST_ANNOUNCEMENT_LIMIT = 5
	FOUNDER_CANDIDATE_LIMIT   = 50
)
