package scan

import (
	"encoding/json"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"github.com/jonathan/pdf-scanner/internal/schemas"
	"github.com/jonathan/pdf-scanner/internal/types"
)

// WriteReport writes report as indented JSON to path. The document is checked
// against the scan report schema when the schema can be found; a mismatch is
// logged and the report is still written.
func WriteReport(fsys billy.Filesystem, path string, report *types.ScanReport, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal scan report: %w", err)
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.ScanReportSchema); schemaPath != "" {
		if err := schemas.ValidateJSONBytes(schemaPath, data); err != nil {
			logger.Warn("scan report does not match schema", zap.String("schema", schemaPath), zap.Error(err))
		}
	} else {
		logger.Debug("scan report schema not found, skipping validation")
	}

	if err := util.WriteFile(fsys, path, data, 0o644); err != nil {
		return &OutputError{Path: path, Op: "write report", Cause: err}
	}
	return nil
}
