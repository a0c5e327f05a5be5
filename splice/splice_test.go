package splice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/grovel/marker"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		target string
		rws    []Rewrite
		want   string
	}{
		{
			name:   "none",
			target: "abcdef",
			want:   "abcdef",
		},
		{
			name:   "middle",
			target: "abcdef",
			rws:    []Rewrite{{Start: 2, End: 4, With: []byte("XYZ")}},
			want:   "abXYZef",
		},
		{
			name:   "edges",
			target: "abcdef",
			rws: []Rewrite{
				{Start: 0, End: 1, With: []byte("<")},
				{Start: 5, End: 6, With: []byte(">")},
			},
			want: "<bcde>",
		},
		{
			name:   "adjacent and empty",
			target: "abcdef",
			rws: []Rewrite{
				{Start: 1, End: 3, With: nil},
				{Start: 3, End: 3, With: []byte("-")},
				{Start: 3, End: 6, With: []byte("!")},
			},
			want: "a-!",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply([]byte(tt.target), tt.rws)
			if string(got) != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestApplyNoRewritesIsIdentity(t *testing.T) {
	target := []byte("unchanged")
	got := Apply(target, nil)
	if &got[0] != &target[0] {
		t.Error("expected the target slice to be returned as is")
	}
}

func mustScan(t *testing.T, b []byte) []marker.Span {
	t.Helper()
	spans, err := marker.All(b)
	if err != nil {
		t.Fatal(err)
	}
	return spans
}

const twoRegions = "#include \"main.h\"\r\n" +
	"/* USER CODE BEGIN Includes */\r\n#include <string.h>\r\n/* USER CODE END Includes */\r\n" +
	"int main(void)\r\n{\r\n" +
	"  /* USER CODE BEGIN 1 */\r\n  int x = 1;\n  /* USER CODE END 1 */\r\n" +
	"  return 0;\r\n}\r\n"

func TestRebaseRoundTrip(t *testing.T) {
	src := []byte(twoRegions)
	donor := bytes.Clone(src)
	got, res, err := Rebase(src, donor, mustScan(t, donor))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("round trip changed the buffer:\n%s", cmp.Diff(string(src), string(got)))
	}
	if diff := cmp.Diff([]string{"Includes", "1"}, res.Replaced); diff != "" {
		t.Errorf("replaced (-want +got):\n%s", diff)
	}
}

func TestRebaseSelective(t *testing.T) {
	target := []byte("head\n/*USER CODE BEGIN A*/old a/*USER CODE END A*/\nmid\n/*USER CODE BEGIN B*/old b/*USER CODE END B*/\ntail\n")
	donor := []byte("/*USER CODE BEGIN A*/new a\nmore/*USER CODE END A*/\n")
	got, res, err := Rebase(target, donor, mustScan(t, donor))
	if err != nil {
		t.Fatal(err)
	}
	want := "head\n/*USER CODE BEGIN A*/new a\nmore/*USER CODE END A*/\nmid\n/*USER CODE BEGIN B*/old b/*USER CODE END B*/\ntail\n"
	if string(got) != want {
		t.Errorf("(-want +got):\n%s", cmp.Diff(want, string(got)))
	}
	if diff := cmp.Diff(&Result{Replaced: []string{"A"}, Kept: []string{"B"}}, res); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
}

func TestRebaseDuplicateDonorTagLastWins(t *testing.T) {
	donor := []byte("/*USER CODE BEGIN T*/first/*USER CODE END T*/\n/*USER CODE BEGIN T*/second/*USER CODE END T*/\n")
	target := []byte("x/*USER CODE BEGIN T*/orig/*USER CODE END T*/y")
	got, _, err := Rebase(target, donor, mustScan(t, donor))
	if err != nil {
		t.Fatal(err)
	}
	want := "x/*USER CODE BEGIN T*/second/*USER CODE END T*/y"
	if string(got) != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestRebaseNoOverlap(t *testing.T) {
	target := []byte("/*USER CODE BEGIN A*/a/*USER CODE END A*/")
	donor := []byte("/*USER CODE BEGIN Z*/z/*USER CODE END Z*/")
	got, res, err := Rebase(target, donor, mustScan(t, donor))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, target) {
		t.Errorf("got %q want %q", got, target)
	}
	if res.Changed() {
		t.Error("expected no change")
	}
}

func TestRebaseTargetBadTag(t *testing.T) {
	target := []byte("/*USER CODE BEGIN \xc3*/a/*USER CODE END \xc3*/")
	donor := []byte("/*USER CODE BEGIN A*/a/*USER CODE END A*/")
	_, _, err := Rebase(target, donor, mustScan(t, donor))
	if !errors.Is(err, marker.ErrBadUTF8) {
		t.Fatalf("got %v want ErrBadUTF8", err)
	}
}

func TestDonorMap(t *testing.T) {
	donor := []byte("/*USER CODE BEGIN 1*/a/*USER CODE END 1*/\n/*USER CODE BEGIN 2*/b/*USER CODE END 2*/")
	got := DonorMap(donor, mustScan(t, donor))
	want := map[string][]byte{
		"1": []byte("/*USER CODE BEGIN 1*/a/*USER CODE END 1*/"),
		"2": []byte("/*USER CODE BEGIN 2*/b/*USER CODE END 2*/"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
