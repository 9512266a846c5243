package dto

// ReportFile is a rendered export ready to be sent as a download. Warnings
// are also printed in the document itself.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Warnings    []string
}
