package models

const (
	SourceSample    = "sample"
	SourceFile      = "file"
	SourceHTTP      = "http"
	SourcePostgres  = "postgres"
	SourceOSM       = "osm"
	SourceSynthetic = "synthetic"

	OutputConsole  = "console"
	OutputJSON     = "json"
	OutputCSV      = "csv"
	OutputParquet  = "parquet"
	OutputPostgres = "postgres"

	DestinationLocal = "local"
	DestinationS3    = "s3"
)
