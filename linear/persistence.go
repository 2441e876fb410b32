package linear

import (
	"io"

	"github.com/YuminosukeSato/linreg/core/model"
	"github.com/YuminosukeSato/linreg/pkg/log"
)

// header はモデルファイルの列名
var header = []string{"a", "b", "learning_rate"}

// Load はモデルファイルを読み込む
//
// ファイルはヘッダ a,b,learning_rate と1行のレコードを持つ CSV。
// 読み込んだモデルは元のスケールの係数として扱う。
//
// 戻り値のエラー:
//   - CouldNotOpenFile: ファイルを開けない場合
//   - InvalidFormat: レコードや列の欠落、数値でない値がある場合
func Load(path string) (*LinearModel, error) {
	values, err := model.LoadRecord("LinearModel.Load", path, header)
	if err != nil {
		return nil, err
	}
	m := fromRecord(values)
	log.GetLogger().Debug("Model loaded",
		log.ModelNameKey, "LinearModel",
		log.OperationKey, log.OperationLoad,
		log.PathKey, path,
	)
	return m, nil
}

// Read は r から Load と同じ形式のモデルを読み込む
func Read(r io.Reader) (*LinearModel, error) {
	values, err := model.ReadRecord("LinearModel.Read", r, header)
	if err != nil {
		return nil, err
	}
	return fromRecord(values), nil
}

// Save はモデルを CSV ファイルに保存する
//
// 値は最短の往復可能な表現で書くため、Load で同じビット列に戻る。
//
// 戻り値のエラー:
//   - CouldNotSaveFile: ファイルの作成・書き込みに失敗した場合
//   - CouldNotSerialize: レコードのエンコードに失敗した場合
func (m *LinearModel) Save(path string) error {
	if err := model.SaveRecord("LinearModel.Save", path, header, m.record()); err != nil {
		return err
	}
	m.log().Debug("Model saved",
		log.ModelNameKey, "LinearModel",
		log.OperationKey, log.OperationSave,
		log.PathKey, path,
		log.ScaleKey, m.scale.String(),
	)
	return nil
}

// Write はモデルを w に CSV で書き込む
func (m *LinearModel) Write(w io.Writer) error {
	return model.WriteRecord("LinearModel.Write", w, header, m.record())
}

func (m *LinearModel) record() []float64 {
	return []float64{m.A, m.B, m.LearningRate}
}

func fromRecord(values []float64) *LinearModel {
	m := New(values[2])
	m.A, m.B = values[0], values[1]
	m.scale = OriginalScale
	m.SetFitted()
	return m
}
