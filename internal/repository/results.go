package repository

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// EncodeResults сериализует метки в одну CSV-запись для колонки results_csv.
// csv.Reader превращает \r\n внутри поля в \n, поэтому метки с \r отсекает wheel.Validate
func EncodeResults(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(labels); err != nil {
		return "", err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeResults обратная операция к EncodeResults. Пустая строка => нет результатов
func DecodeResults(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(s))
	r.FieldsPerRecord = -1
	record, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
