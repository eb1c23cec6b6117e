package importer

import (
	"strings"
)

// Record is one data row keyed by normalized header.
type Record struct {
	RowNumber int
	Values    map[string]string
}

// Get returns the first non-missing value among the header aliases.
func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		if value, ok := r.Values[normalizeHeader(key)]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func (r Record) empty() bool {
	for _, value := range r.Values {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

var headerReplacer = strings.NewReplacer(
	"_", "", "-", "", " ", "", ".", "",
	"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
	"\ufeff", "",
)

func normalizeHeader(input string) string {
	return headerReplacer.Replace(strings.TrimSpace(strings.ToLower(input)))
}

func recordFromRow(rowNumber int, headers, row []string) Record {
	values := make(map[string]string, len(headers))
	for i, header := range headers {
		if header == "" {
			continue
		}
		if i < len(row) {
			values[header] = row[i]
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

func normalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, header := range headers {
		out[i] = normalizeHeader(header)
	}
	return out
}
