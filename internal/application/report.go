package application

// Report summarises a completed or interrupted run. FilesProcessed counts
// every regular file attempted, including the ones counted in FilesFailed.
type Report struct {
	OutputDir      string
	FilesProcessed int
	FilesModified  int
	FilesRenamed   int
	FilesFailed    int
	Substitutions  int
}
