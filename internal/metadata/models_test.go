package metadata

import "testing"

func TestModelForMode(t *testing.T) {
	cases := []struct {
		mode   string
		wantID string
		wantOK bool
	}{
		{mode: ModeFast, wantID: "gemini-2.5-flash", wantOK: true},
		{mode: ModePrecise, wantID: "gemini-3-pro-preview", wantOK: true},
		{mode: "", wantID: DefaultModel.ID, wantOK: false},
		{mode: "TURBO", wantID: DefaultModel.ID, wantOK: false},
	}
	for _, tc := range cases {
		m, ok := ModelForMode(tc.mode)
		if ok != tc.wantOK || m.ID != tc.wantID {
			t.Fatalf("ModelForMode(%q) = (%q, %v), want (%q, %v)", tc.mode, m.ID, ok, tc.wantID, tc.wantOK)
		}
	}
}

func TestGeminiModelIDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range GeminiModelIDs() {
		if seen[id] {
			t.Fatalf("duplicate model id %q", id)
		}
		seen[id] = true
	}
}
