package assets

import "testing"

func TestLevenshtein(t *testing.T) {

	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"ABC12345", "ABC-12345", 1},
		{"5CD1234XYZ", "5CD1234XYZ ", 1},
	}

	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		/* DISTANCE IS SYMMETRIC */
		if got := Levenshtein(tt.b, tt.a); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

/* EDIT DISTANCE IS A METRIC; THE TRIANGLE INEQUALITY HOLDS */
func TestLevenshteinTriangle(t *testing.T) {

	strs := []string{"", "a", "abc", "ABC12345", "ABC-12345", "kitten", "sitting", "5CD1234XYZ"}

	for _, a := range strs {
		for _, b := range strs {
			for _, c := range strs {
				ac := Levenshtein(a, c)
				ab := Levenshtein(a, b)
				bc := Levenshtein(b, c)
				if ac > ab+bc {
					t.Errorf("triangle inequality violated: d(%q,%q)=%d > d(%q,%q)+d(%q,%q)=%d",
						a, c, ac, a, b, b, c, ab+bc)
				}
			}
		}
	}
}

func TestFuzzyMatchSerial(t *testing.T) {

	tests := []struct {
		a    string
		b    string
		want bool
	}{
		{"", "", false},
		{"ABC12345", "", false},
		{"ABC12345", "ABC12345", true},
		{"abc12345", "ABC 12345", true},
		{"ABC12345", "ABC-12345", true},
		{"ABC12345", "XYZ98765", false},

		/* ONE SERIAL EMBEDDED IN THE OTHER */
		{"5CD1234XYZ", "S5CD1234XYZB", true},

		/* LENGTH DIFFERENCE BEYOND 2 AND NO SUBSTRING */
		{"AB12", "AB12345", false},
	}

	for _, tt := range tests {
		if got := FuzzyMatchSerial(tt.a, tt.b); got != tt.want {
			t.Errorf("FuzzyMatchSerial(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := FuzzyMatchSerial(tt.b, tt.a); got != tt.want {
			t.Errorf("FuzzyMatchSerial(%q, %q) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestFindPotentialDuplicates(t *testing.T) {

	corpus := []Asset{
		{AstID: 1, AstGlobalID: "AS-2026-000001", AstSerial: "ABC-12345", AstTag: "CALG3-ENDUS-00001"},
		{AstID: 2, AstGlobalID: "AS-2026-000002", AstSerial: "XYZ98765", AstTag: "CALG3-ENDUS-00002",
			AstGUIDs: []AssetGUID{{AGuidSource: "mdm", AGuidGUID: "guid-22"}}},
		{AstID: 3, AstGlobalID: "AS-2026-000003", AstSerial: "", AstTag: ""},
	}

	/* FUZZY SERIAL: PUNCTUATION STRIPPED BY A SOURCE */
	cand := Asset{AstGlobalID: "AS-2026-000099", AstSerial: "ABC12345"}
	dups := FindPotentialDuplicates(&cand, corpus)
	if len(dups) != 1 || dups[0].AstID != 1 {
		t.Errorf("serial match: got %d dups %+v, want asset 1", len(dups), dups)
	}

	/* EXACT TAG */
	cand = Asset{AstGlobalID: "AS-2026-000099", AstTag: "CALG3-ENDUS-00002"}
	dups = FindPotentialDuplicates(&cand, corpus)
	if len(dups) != 1 || dups[0].AstID != 2 {
		t.Errorf("tag match: got %d dups %+v, want asset 2", len(dups), dups)
	}

	/* SHARED DEVICE GUID FROM THE SAME SOURCE */
	cand = Asset{AstGlobalID: "AS-2026-000099",
		AstGUIDs: []AssetGUID{{AGuidSource: "mdm", AGuidGUID: "guid-22"}}}
	dups = FindPotentialDuplicates(&cand, corpus)
	if len(dups) != 1 || dups[0].AstID != 2 {
		t.Errorf("guid match: got %d dups %+v, want asset 2", len(dups), dups)
	}

	/* SAME GUID FROM A DIFFERENT SOURCE IS NOT A SIGNAL */
	cand = Asset{AstGlobalID: "AS-2026-000099",
		AstGUIDs: []AssetGUID{{AGuidSource: "edr", AGuidGUID: "guid-22"}}}
	if dups = FindPotentialDuplicates(&cand, corpus); len(dups) != 0 {
		t.Errorf("cross-source guid: got %d dups %+v, want none", len(dups), dups)
	}

	/* A RECORD NEVER MATCHES ITSELF */
	self := corpus[0]
	if dups = FindPotentialDuplicates(&self, corpus); len(dups) != 0 {
		t.Errorf("self match: got %d dups %+v, want none", len(dups), dups)
	}

	/* SERIAL-LESS RECORDS DO NOT MATCH EACH OTHER */
	cand = Asset{AstGlobalID: "AS-2026-000099"}
	if dups = FindPotentialDuplicates(&cand, corpus); len(dups) != 0 {
		t.Errorf("empty candidate: got %d dups %+v, want none", len(dups), dups)
	}
}
