// Package types provides type definitions for structured data used throughout the pdf-scanner system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// ScanSettings is the effective configuration a scan ran with
type ScanSettings struct {
	Root           string `json:"root"`
	Term           string `json:"term"`
	OutputFile     string `json:"output_file"`
	ErrorLog       string `json:"error_log"`
	MaxWorkers     int    `json:"max_workers"`
	ReportInterval int    `json:"report_interval"`
	ChunkSize      int    `json:"chunk_size"`
}

// ScanReport is the machine-readable summary of one scan run
type ScanReport struct {
	RunID          uuid.UUID    `json:"run_id"`
	StartedAt      time.Time    `json:"started_at"`
	Settings       ScanSettings `json:"settings"`
	TotalFiles     int          `json:"total_files"`
	Matches        []string     `json:"matches"`
	FileErrors     int          `json:"file_errors"`
	FailedChunks   int          `json:"failed_chunks"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	FilesPerSecond float64      `json:"files_per_second"`
}
