package importer

import (
	"bufio"
	"strings"
	"testing"

	"golang.org/x/text/encoding/unicode"
)

func TestCSVReader_DecodesUTF16TabSeparated(t *testing.T) {
	t.Parallel()

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	content, err := encoder.String("Name\tDatum\tAnfang\tEnde\tBemerkung\r\nJürgen\t02.03.2026\t08:00\t12:00\tKühlraum\r\n")
	if err != nil {
		t.Fatalf("encode utf-16: %v", err)
	}
	path := writeFile(t, "unicode.txt", content)

	records, err := (&CSVReader{}).Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].Get("name"); got != "Jürgen" {
		t.Fatalf("expected decoded name, got %q", got)
	}
	if got := records[0].Get("bemerkung"); got != "Kühlraum" {
		t.Fatalf("expected decoded comment, got %q", got)
	}
}

func TestSniffSeparator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   rune
	}{
		{header: "name,date,start,end\n", want: ','},
		{header: "Name;Datum;Anfang;Ende\n", want: ';'},
		{header: "Name\tDatum\tAnfang\tEnde\n", want: '\t'},
		{header: "name\n", want: ','},
	}
	for _, tt := range tests {
		got, err := sniffSeparator(bufio.NewReader(strings.NewReader(tt.header)))
		if err != nil {
			t.Fatalf("sniff %q: %v", tt.header, err)
		}
		if got != tt.want {
			t.Fatalf("sniff %q: expected %q, got %q", tt.header, tt.want, got)
		}
	}
}
