package grid

import "testing"

func TestGetGridCoords(t *testing.T) {
	tests := []struct {
		index int
		cols  int
		wantX int
		wantY int
	}{
		{0, 64, 0, 0},
		{1, 64, 1, 0},
		{63, 64, 63, 0},
		{64, 64, 0, 1},
		{65, 64, 1, 1},
		{127, 64, 63, 1},
		{128, 64, 0, 2},

		{0, 32, 0, 0},
		{31, 32, 31, 0},
		{32, 32, 0, 1},
		{63, 32, 31, 1},
	}

	for _, tc := range tests {
		gotX, gotY := GetGridCoords(tc.index, tc.cols)
		if gotX != tc.wantX || gotY != tc.wantY {
			t.Errorf("GetGridCoords(%d, %d) = (%d, %d); want (%d, %d)", tc.index, tc.cols, gotX, gotY, tc.wantX, tc.wantY)
		}
	}
}

func TestWrapLine(t *testing.T) {
	tests := []struct {
		line string
		cols int
		want []string
	}{
		{"", 8, []string{""}},
		{"short", 8, []string{"short"}},
		{"exactly8", 8, []string{"exactly8"}},
		{"exactly8x", 8, []string{"exactly8", "x"}},
		{"abcdefghijklmnop", 4, []string{"abcd", "efgh", "ijkl", "mnop"}},
	}

	for _, tc := range tests {
		got := WrapLine(tc.line, tc.cols)
		if len(got) != len(tc.want) {
			t.Fatalf("WrapLine(%q, %d) = %v; want %v", tc.line, tc.cols, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("WrapLine(%q, %d)[%d] = %q; want %q", tc.line, tc.cols, i, got[i], tc.want[i])
			}
		}
	}
}
