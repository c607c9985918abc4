package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Extract errors
	ArchiveOpenError
	ArchiveMemberNotFoundError
	SourceReadError
	MissingColumnsError
	PreparedWriteError

	// Validate errors
	PreparedReadError
	DuplicateSpeciesError

	// Classification errors
	UnknownClimateError
	UnclassifiedLifeformError

	// Emit errors
	SeedWriteError
	SeedCheckError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBMissingTableError
	DBLoadError

	// Pipeline errors
	CancelledError
)
