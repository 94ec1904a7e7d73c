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
	RemoveDirError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBTableExistsCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaSeedError
	SchemaCollationError

	// Store errors
	StoreOpenError
	StoreClearError
	StoreConstraintError
	StoreApplyError

	// Ingest errors
	IngestCorpusError
	IngestIdentifierError
	IngestParseError
	IngestCacheError
	IngestReportError
	IngestItemsFailedError
	IngestCancelledError

	// Load errors
	LoadSnapshotNotFoundError
	LoadSchemaMissingError
	LoadSnapshotReadError
	LoadClearError
	LoadCopyError
)
