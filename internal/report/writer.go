package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/trade-analyzer/internal/types"
	"github.com/rxtech-lab/trade-analyzer/pkg/errors"
)

// Format is an output file format for a report.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the output format from the file extension.
// Files without an extension are written as text.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".log":
		return FormatText, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported report format %q", filepath.Ext(path))
	}
}

// Write saves the analysis to path in the format implied by its extension,
// creating the parent directory when needed.
func Write(path string, analysis types.TradeAnalysis) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to create report directory", err)
		}
	}

	switch format {
	case FormatYAML:
		err = types.WriteTradeAnalysis(path, analysis)
	case FormatJSON:
		err = writeJSON(path, analysis)
	case FormatXLSX:
		err = WriteXLSX(path, analysis)
	default:
		err = os.WriteFile(path, []byte(RenderText(analysis)), 0644)
	}

	if err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write %s report to %s", format, path)
	}

	return nil
}

func writeJSON(path string, analysis types.TradeAnalysis) error {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
