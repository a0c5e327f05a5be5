package marker

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  []Span
		diags []DiagnosticKind
		tags  []string
	}{
		{
			name: "empty",
			in:   "",
		},
		{
			name: "no markers",
			in:   "int main(void) { return 0; }\n",
		},
		{
			name: "one pair",
			in:   "a/* USER CODE BEGIN 1 */x/* USER CODE END 1 */b",
			want: []Span{{Tag: "1", Start: 1, End: 46}},
		},
		{
			name: "tight spacing",
			in:   "/*USER CODE BEGIN Init*/\n/*USER CODE END Init*/",
			want: []Span{{Tag: "Init", Start: 0, End: 47}},
		},
		{
			name: "tag with inner spaces",
			in:   "/*  USER CODE BEGIN  Private defines  */ /* USER CODE END Private defines */",
			want: []Span{{Tag: "Private defines", Start: 0, End: 76}},
		},
		{
			name: "empty tag",
			in:   "/* USER CODE BEGIN */x/* USER CODE END */",
			want: []Span{{Tag: "", Start: 0, End: 41}},
		},
		{
			name: "two pairs",
			in:   "/*USER CODE BEGIN A*/1/*USER CODE END A*/ /*USER CODE BEGIN B*/2/*USER CODE END B*/",
			want: []Span{{Tag: "A", Start: 0, End: 41}, {Tag: "B", Start: 42, End: 83}},
		},
		{
			name:  "unmatched begin",
			in:    "/*USER CODE BEGIN A*/x/*USER CODE BEGIN B*/y/*USER CODE END B*/",
			want:  []Span{{Tag: "B", Start: 22, End: 63}},
			diags: []DiagnosticKind{UnmatchedBegin},
			tags:  []string{"A"},
		},
		{
			name:  "unmatched end alone",
			in:    "/*USER CODE END X*/",
			diags: []DiagnosticKind{UnmatchedEnd},
			tags:  []string{"X"},
		},
		{
			name:  "unmatched end then pair",
			in:    "/*USER CODE END X*//*USER CODE BEGIN Y*/y/*USER CODE END Y*/",
			want:  []Span{{Tag: "Y", Start: 19, End: 60}},
			diags: []DiagnosticKind{UnmatchedEnd},
			tags:  []string{"X"},
		},
		{
			name:  "end with other tag keeps open begin",
			in:    "/*USER CODE BEGIN A*/x/*USER CODE END B*/y/*USER CODE END A*/",
			want:  []Span{{Tag: "A", Start: 0, End: 61}},
			diags: []DiagnosticKind{UnmatchedEnd},
			tags:  []string{"B"},
		},
		{
			name: "trailing open begin dropped silently",
			in:   "/*USER CODE BEGIN A*/x/*USER CODE END A*//*USER CODE BEGIN B*/y",
			want: []Span{{Tag: "A", Start: 0, End: 41}},
		},
		{
			name: "star in tag is not a marker",
			in:   "/* USER CODE BEGIN a*b */",
		},
		{
			name: "lower case is not a marker",
			in:   "/* user code begin 1 */ /* user code end 1 */",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var diags []Diagnostic
			got, err := All([]byte(tt.in), CollectDiagnostics(&diags))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
			var kinds []DiagnosticKind
			var tags []string
			for _, d := range diags {
				kinds = append(kinds, d.Kind)
				tags = append(tags, d.Tag)
			}
			if diff := cmp.Diff(tt.diags, kinds); diff != "" {
				t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.tags, tags); diff != "" {
				t.Errorf("diagnostic tags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanUnmatchedBeginSpan(t *testing.T) {
	in := []byte("/*USER CODE BEGIN A*/x/*USER CODE BEGIN B*/y/*USER CODE END B*/")
	var diags []Diagnostic
	spans, err := All(in, CollectDiagnostics(&diags), ScanFilename("main.c"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Span{{Tag: "B", Start: 22, End: 63}}, spans); diff != "" {
		t.Errorf("spans (-want +got):\n%s", diff)
	}
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics want 1", len(diags))
	}
	d := diags[0]
	if d.Span == nil {
		t.Fatal("missing malformed span")
	}
	if diff := cmp.Diff(Span{Tag: "A", Start: 0, End: 22}, *d.Span); diff != "" {
		t.Errorf("malformed span (-want +got):\n%s", diff)
	}
	if d.Text != "/*USER CODE BEGIN A*/" {
		t.Errorf("got text %q", d.Text)
	}
	if got := d.Pos.String(); got != "main.c:1:1" {
		t.Errorf("got pos %q", got)
	}
}

func TestScanDeterministic(t *testing.T) {
	in := []byte("/*USER CODE BEGIN 1*/\n/*USER CODE END 1*/\n/*USER CODE END 2*/\n/*USER CODE BEGIN 3*/\n/*USER CODE END 3*/\n")
	a, err := All(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := All(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("rescan differs:\n%s", diff)
	}
	for i := 1; i < len(a); i++ {
		if a[i].Start < a[i-1].End {
			t.Errorf("span %d overlaps or is out of order: %v %v", i, a[i-1], a[i])
		}
	}
}

func TestScanLazy(t *testing.T) {
	in := []byte("/*USER CODE BEGIN 1*/\n/*USER CODE END 1*/\n/*USER CODE BEGIN 2*/\n/*USER CODE END 2*/\n")
	n := 0
	for sp, err := range Scan(in) {
		if err != nil {
			t.Fatal(err)
		}
		n++
		if sp.Tag != "1" {
			t.Errorf("got tag %q want 1", sp.Tag)
		}
		break
	}
	if n != 1 {
		t.Errorf("got %d spans want 1", n)
	}
}

func TestScanBadUTF8(t *testing.T) {
	in := []byte("/*USER CODE BEGIN 1*/x/*USER CODE END 1*/\n/*USER CODE BEGIN \xff\xfe*/")
	var spans []Span
	var gotErr error
	for sp, err := range Scan(in, ScanFilename("bad.c")) {
		if err != nil {
			gotErr = err
			break
		}
		spans = append(spans, sp)
	}
	if len(spans) != 1 {
		t.Errorf("got %d spans before the error want 1", len(spans))
	}
	if !errors.Is(gotErr, ErrBadUTF8) {
		t.Fatalf("got %v want ErrBadUTF8", gotErr)
	}
	var tde *TagDecodeError
	if !errors.As(gotErr, &tde) {
		t.Fatalf("got %T want *TagDecodeError", gotErr)
	}
	if got := tde.Pos.String(); got != "bad.c:2:18" {
		t.Errorf("got pos %s", got)
	}
}

func TestScanKeyword(t *testing.T) {
	in := []byte("/* USER CODE BEGIN 1 */a/* USER CODE END 1 */ /* KEEP (x) BEGIN 2 */b/* KEEP (x) END 2 */")
	got, err := All(in, ScanKeyword("KEEP (x)"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Span{{Tag: "2", Start: 46, End: 89}}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMarkers(t *testing.T) {
	in := []byte("/*USER CODE END X*/ /* USER CODE BEGIN Y */")
	var got []Marker
	for m, err := range Markers(in) {
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, m)
	}
	want := []Marker{
		{Kind: End, Tag: "X", Start: 0, End: 19},
		{Kind: Begin, Tag: "Y", Start: 20, End: 43},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
