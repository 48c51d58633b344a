// Package dataset loads tabular training data into tensor.Table values.
//
// LoadCSV reads a CSV file whose first row names the columns, selects the
// feature and label columns by name, optionally shuffles rows with a fixed
// seed, and optionally holds out the leading rows as a test set.
package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/gradlearn/core/tensor"
	"github.com/YuminosukeSato/gradlearn/pkg/errors"
	"github.com/YuminosukeSato/gradlearn/pkg/log"
)

// HalfSplit を SplitTest に指定すると、行数の半分（切り捨て）をテストセットにする
const HalfSplit = -1

// Converter はセルの文字列を数値へ変換する
type Converter func(cell string) (float64, error)

// Options は LoadCSV の読み込み設定
type Options struct {
	// DataColumns は特徴量として取り出す列名（この順で並ぶ）
	DataColumns []string
	// LabelColumns はラベルとして取り出す列名
	LabelColumns []string
	// Converters は列名ごとの変換関数。未登録の列は float64 として解析する。
	Converters map[string]Converter
	// Shuffle が true なら Seed で行を並べ替える。特徴量とラベルは同じ順序になる。
	Shuffle bool
	Seed    uint64
	// SplitTest は先頭から何行をテストセットにするか。0 なら分割しない。
	SplitTest int
}

// Split は LoadCSV の結果。SplitTest が 0 のときテスト側は空。
type Split struct {
	Features     tensor.Table
	Labels       tensor.Table
	TestFeatures tensor.Table
	TestLabels   tensor.Table
}

// LoadCSV は path の CSV を読み込み、Options に従って特徴量とラベルに分ける
func LoadCSV(path string, opts Options) (Split, error) {
	f, err := os.Open(path)
	if err != nil {
		return Split{}, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	split, err := Read(f, opts)
	if err != nil {
		return Split{}, errors.Wrapf(err, "dataset: load %s", path)
	}
	return split, nil
}

// Read は r から CSV を読み込む。LoadCSV のファイル以外の入力版。
func Read(r io.Reader, opts Options) (Split, error) {
	if len(opts.DataColumns) == 0 {
		return Split{}, errors.NewValidationError("data_columns", "at least one column is required", opts.DataColumns)
	}

	reader := csv.NewReader(bufio.NewReader(r))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return Split{}, errors.NewEmptyDataError("dataset.Read")
	}
	if err != nil {
		return Split{}, errors.Wrap(err, "dataset: read header")
	}

	dataIdx, err := indexes(header, opts.DataColumns, "data_columns")
	if err != nil {
		return Split{}, err
	}
	labelIdx, err := indexes(header, opts.LabelColumns, "label_columns")
	if err != nil {
		return Split{}, err
	}

	var data, labels [][]float64
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Split{}, errors.Wrapf(err, "dataset: read line %d", line)
		}
		if isBlank(record) {
			continue
		}

		row, err := extract(record, header, dataIdx, opts.Converters, line)
		if err != nil {
			return Split{}, err
		}
		data = append(data, row)

		if len(labelIdx) > 0 {
			label, err := extract(record, header, labelIdx, opts.Converters, line)
			if err != nil {
				return Split{}, err
			}
			labels = append(labels, label)
		}
	}

	if len(data) == 0 {
		return Split{}, errors.NewEmptyDataError("dataset.Read")
	}

	if opts.Shuffle {
		shuffle(data, labels, opts.Seed)
	}

	return split(data, labels, opts.SplitTest)
}

func indexes(header, names []string, param string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			return nil, errors.NewValidationError(param, "column not found in header", name)
		}
	}
	return idx, nil
}

func extract(record, header []string, idx []int, converters map[string]Converter, line int) ([]float64, error) {
	row := make([]float64, len(idx))
	for i, j := range idx {
		if j >= len(record) {
			return nil, errors.NewIndexError("dataset.Read", j, len(record), 1)
		}
		cell := strings.Trim(strings.TrimSpace(record[j]), `"`)
		name := strings.TrimSpace(header[j])

		var (
			v   float64
			err error
		)
		if conv, ok := converters[name]; ok {
			v, err = conv(cell)
		} else {
			v, err = strconv.ParseFloat(cell, 64)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: line %d column %q", line, name)
		}
		row[i] = v
	}
	return row, nil
}

func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}

// shuffle は特徴量とラベルに同じ置換を適用する
func shuffle(data, labels [][]float64, seed uint64) {
	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(data), func(i, j int) {
		data[i], data[j] = data[j], data[i]
		if labels != nil {
			labels[i], labels[j] = labels[j], labels[i]
		}
	})
}

func split(data, labels [][]float64, testSize int) (Split, error) {
	if testSize == HalfSplit {
		testSize = len(data) / 2
	}
	if testSize < 0 || testSize >= len(data) {
		return Split{}, errors.NewValidationError("split_test", "must leave at least one training row", testSize)
	}

	var out Split
	var err error
	if out.Features, err = table(data[testSize:]); err != nil {
		return Split{}, err
	}
	if out.Labels, err = table(labels[min(testSize, len(labels)):]); err != nil {
		return Split{}, err
	}
	if testSize > 0 {
		if out.TestFeatures, err = table(data[:testSize]); err != nil {
			return Split{}, err
		}
		if out.TestLabels, err = table(labels[:min(testSize, len(labels))]); err != nil {
			return Split{}, err
		}
	}

	log.GetLoggerWithName("dataset").Debug("Loaded CSV",
		log.SamplesKey, len(data),
		log.FeaturesKey, out.Features.Cols(),
		log.TargetsKey, out.Labels.Cols(),
	)
	return out, nil
}

// table は空のときにゼロ値の Table を返す
func table(rows [][]float64) (tensor.Table, error) {
	if len(rows) == 0 {
		return tensor.Table{}, nil
	}
	return tensor.New(rows)
}
