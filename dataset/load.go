package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/linreg/pkg/errors"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// Load は2列（x, y）の CSV ファイルを読み込んで Dataset を返す
//
// 1行目はヘッダとして読み飛ばす。列名は問わない。
//
// 戻り値のエラー:
//   - CouldNotOpenFile: ファイルを開けない場合
//   - InvalidFormat: 列数が2でない行、数値でない値がある場合
//   - IsEmpty: データ行が1行もない場合
func Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("Dataset.Load", errors.CouldNotOpenFile, err)
	}
	defer file.Close()

	d, err := read("Dataset.Load", file)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Debug("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
		log.SamplesKey, d.Len(),
	)
	return d, nil
}

// Read は r から Load と同じ形式の CSV を読み込む
func Read(r io.Reader) (*Dataset, error) {
	return read("Dataset.Read", r)
}

func read(op string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = 2
	cr.ReuseRecord = true

	if _, err := cr.Read(); err == io.EOF {
		return nil, errors.NewIOErrorf(op, errors.IsEmpty, "")
	} else if err != nil {
		return nil, errors.NewIOError(op, errors.InvalidFormat, err)
	}

	d := New()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewIOError(op, errors.InvalidFormat, err)
		}

		line, _ := cr.FieldPos(0)
		x, err := parseField(record[0])
		if err != nil {
			return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "line %d, column 1: %v", line, err)
		}
		y, err := parseField(record[1])
		if err != nil {
			return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "line %d, column 2: %v", line, err)
		}
		d.Push(x, y)
	}

	if d.IsEmpty() {
		return nil, errors.NewIOErrorf(op, errors.IsEmpty, "")
	}
	return d, nil
}

func parseField(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
