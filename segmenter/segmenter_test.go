package segmenter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/teatak/cntext/dictionary"
)

func testIndex(t *testing.T) *dictionary.Index {
	t.Helper()
	dict := "" +
		"1\t東家\t\\N\tdōng jiā\teast house\n" +
		"2\t西家\t\\N\txī jiā\twest house\n" +
		"3\t南京市\t\\N\tnán jīng shì\tNanjing city\n" +
		"4\t南京\t\\N\tnán jīng\tNanjing\n" +
		"5\t市長\t\\N\tshì zhǎng\tmayor\n" +
		"6\t長江大橋\t\\N\tcháng jiāng dà qiáo\tYangtze River Bridge\n" +
		"7\t長江\t\\N\tcháng jiāng\tYangtze\n"
	idx, err := dictionary.Parse(strings.NewReader(dict), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return idx
}

func TestSegment(t *testing.T) {
	seg := New(testIndex(t))

	tests := []struct {
		text     string
		expected []string
	}{
		// 助哀 is not in the dictionary, so it splits into characters.
		{"東家人死。西家人助哀。", []string{"東家", "人", "死", "。", "西家", "人", "助", "哀", "。"}},
		// Longest match wins over shorter entries at the same position.
		{"南京市長江大橋", []string{"南京市", "長江大橋"}},
		// Punctuation and whitespace come out as single-character tokens.
		{"南京 市長!", []string{"南京", " ", "市長", "!"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := seg.Segment(tt.text)
		if len(tt.expected) == 0 && len(got) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Segment(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestSegmentRoundTrip(t *testing.T) {
	seg := New(testIndex(t))
	inputs := []string{
		"東家人死。西家人助哀。",
		"南京市長江大橋",
		"abc 南京 123",
		"。。。",
		"x",
	}
	for _, text := range inputs {
		tokens := seg.Segment(text)
		if joined := strings.Join(tokens, ""); joined != text {
			t.Errorf("round trip of %q produced %q", text, joined)
		}
	}
}

func TestSegmentDeterministic(t *testing.T) {
	seg := New(testIndex(t))
	text := "東家人死。西家人助哀。"
	first := seg.Segment(text)
	for i := 0; i < 10; i++ {
		if got := seg.Segment(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differed: %v vs %v", i, got, first)
		}
	}
}
