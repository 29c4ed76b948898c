// Package converter turns a promotions spreadsheet export into the JSON
// dataset file served by the API.
package converter

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	"github.com/Manakin-Wraith/Cheap-Cheap/models"
	"github.com/xuri/excelize/v2"
)

// Options configures a conversion run.
type Options struct {
	// Sheet selects the sheet to read. Empty means the first sheet of the workbook.
	Sheet string
	// SkipHeader discards the first non-empty row instead of treating it as data.
	SkipHeader bool
	// TruncateExtraColumns drops cells past the fifth column. When false a row
	// with a non-empty cell past the fifth column fails the conversion.
	TruncateExtraColumns bool
}

// Result describes a finished conversion.
type Result struct {
	Sheet   string
	Records int
}

// Convert reads the promotions sheet at sourcePath and writes it as a JSON
// array to targetPath, replacing any existing file. On error targetPath is left
// as it was.
func Convert(sourcePath, targetPath string, opts Options) (*Result, error) {
	dataset, sheet, err := ReadWorkbook(sourcePath, opts)
	if err != nil {
		return nil, err
	}

	data, err := Encode(dataset)
	if err != nil {
		return nil, apperrors.IOFailure("encode", targetPath, err)
	}

	if err := writeFileAtomic(targetPath, data); err != nil {
		return nil, err
	}

	return &Result{Sheet: sheet, Records: len(dataset)}, nil
}

// ReadWorkbook loads the selected sheet of the workbook at path and maps each
// non-empty row to a PromotionRecord. It returns the dataset and the name of
// the sheet that was read.
func ReadWorkbook(path string, opts Options) (models.PromotionDataset, string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, "", apperrors.ClassifyRead("stat", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrPermission) {
			return nil, "", apperrors.IOFailure("open", path, err)
		}
		return nil, "", apperrors.ParseFailure("open", path, err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", apperrors.ParseFailure("open", path, fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", apperrors.ParseFailure("read sheet "+sheet, path, err)
	}

	dataset := make(models.PromotionDataset, 0, len(rows))
	headerSkipped := !opts.SkipHeader
	for rowIdx, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if !headerSkipped {
			headerSkipped = true
			continue
		}

		rowNum := rowIdx + 1
		if len(row) > models.FieldCount && !opts.TruncateExtraColumns {
			if col := firstNonEmpty(row[models.FieldCount:]); col >= 0 {
				cellName, _ := excelize.CoordinatesToCellName(models.FieldCount+col+1, rowNum)
				return nil, "", apperrors.ParseFailure("read sheet "+sheet, path,
					fmt.Errorf("row %d has a value in %s, only %d columns are mapped", rowNum, cellName, models.FieldCount))
			}
		}

		values := make([]any, models.FieldCount)
		for colIdx := 0; colIdx < models.FieldCount && colIdx < len(row); colIdx++ {
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, "", apperrors.ParseFailure("read sheet "+sheet, path, err)
			}
			cellType, err := f.GetCellType(sheet, cellName)
			if err != nil {
				return nil, "", apperrors.ParseFailure("read cell "+cellName, path, err)
			}
			values[colIdx] = cellValue(cellType, row[colIdx])
		}
		dataset = append(dataset, models.NewPromotionRecord(values))
	}

	return dataset, sheet, nil
}

// Encode serializes the dataset as a compact JSON array. An empty dataset
// encodes as [].
func Encode(dataset models.PromotionDataset) ([]byte, error) {
	if dataset == nil {
		dataset = models.PromotionDataset{}
	}
	return json.Marshal(dataset)
}

func isEmptyRow(row []string) bool {
	return firstNonEmpty(row) < 0
}

func firstNonEmpty(cells []string) int {
	for i, c := range cells {
		if c != "" {
			return i
		}
	}
	return -1
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return apperrors.IOFailure("create", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return apperrors.IOFailure("write", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return apperrors.IOFailure("chmod", path, err)
	}
	if err = tmp.Close(); err != nil {
		return apperrors.IOFailure("write", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return apperrors.IOFailure("rename", path, err)
	}
	return nil
}
