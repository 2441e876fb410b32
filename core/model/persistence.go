package model

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/linreg/pkg/errors"
)

// SaveRecord はヘッダ行と1行の数値レコードを CSV ファイルに保存する
//
// パラメータ:
//   - op: エラーメッセージに使う操作名（例: "LinearModel.Save"）
//   - filename: 保存先のファイルパス
//   - header: 列名
//   - values: header と同じ長さの値
//
// 戻り値:
//   - error: ファイル作成・書き込みの失敗は CouldNotSaveFile、
//     エンコードの失敗は CouldNotSerialize
//
// 使用例:
//
//	err := model.SaveRecord("LinearModel.Save", "linear_model.csv",
//	    []string{"a", "b", "learning_rate"}, []float64{2, 1, 0.01})
func SaveRecord(op, filename string, header []string, values []float64) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewIOError(op, errors.CouldNotSaveFile, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.NewIOError(op, errors.CouldNotSaveFile, cerr)
		}
	}()

	return WriteRecord(op, file, header, values)
}

// WriteRecord はヘッダ行と1行の数値レコードを w に CSV で書き込む
//
// 値は strconv の最短表現で書き出すため、ReadRecord で読み戻すと
// ビット単位で同じ値になる。
func WriteRecord(op string, w io.Writer, header []string, values []float64) error {
	if len(header) != len(values) {
		return errors.NewIOErrorf(op, errors.CouldNotSerialize,
			"%d columns but %d values", len(header), len(values))
	}

	row := make([]string, len(values))
	for i, v := range values {
		row[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.NewIOError(op, errors.CouldNotSerialize, err)
	}
	if err := cw.Write(row); err != nil {
		return errors.NewIOError(op, errors.CouldNotSerialize, err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewIOError(op, errors.CouldNotSaveFile, err)
	}
	return nil
}

// LoadRecord は CSV ファイルから header に挙げた列の値を読み込む
//
// 戻り値:
//   - []float64: header の順に並べた値
//   - error: ファイルを開けない場合は CouldNotOpenFile、
//     列やレコードの欠落・数値でない値は InvalidFormat
func LoadRecord(op, filename string, header []string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.NewIOError(op, errors.CouldNotOpenFile, err)
	}
	defer file.Close()

	return ReadRecord(op, file, header)
}

// ReadRecord は r から最初のデータ行を読み、header に挙げた列の値を返す
//
// 列は名前で照合するため、ファイル内の列順は問わない。
// 2行目以降のデータ行は無視する。
func ReadRecord(op string, r io.Reader, header []string) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "missing header")
	}
	if err != nil {
		return nil, errors.NewIOError(op, errors.InvalidFormat, err)
	}

	columns := make(map[string]int, len(head))
	for i, name := range head {
		columns[strings.TrimSpace(name)] = i
	}

	record, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "missing record")
	}
	if err != nil {
		return nil, errors.NewIOError(op, errors.InvalidFormat, err)
	}

	values := make([]float64, len(header))
	for i, name := range header {
		col, ok := columns[name]
		if !ok {
			return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "missing column %q", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil {
			return nil, errors.NewIOErrorf(op, errors.InvalidFormat, "column %q: %v", name, err)
		}
		values[i] = v
	}
	return values, nil
}
