package assets

import "testing"

/* A SOURCE RE-SIGHTING AN ASSET WITH A NEW GUID REPLACES ITS ROW, NEVER ADDS ONE */
func TestMergeGUID(t *testing.T) {

	ast := Asset{
		AstID:    7,
		AstGUIDs: []AssetGUID{{AGuidAssetID: 7, AGuidSource: "mdm", AGuidGUID: "g1"}},
	}

	ast.MergeGUID("mdm", "g2")
	if len(ast.AstGUIDs) != 1 {
		t.Fatalf("re-sighted source grew the mapping: %+v", ast.AstGUIDs)
	}
	if got := ast.GUIDMap()["mdm"]; got != "g2" {
		t.Errorf("GUIDMap()[mdm] = %q, want %q", got, "g2")
	}

	/* A NEW SOURCE ADDS ITS OWN ROW */
	ag := ast.MergeGUID("edr", "e1")
	if len(ast.AstGUIDs) != 2 {
		t.Fatalf("new source did not add a row: %+v", ast.AstGUIDs)
	}
	if ag.AGuidAssetID != 7 {
		t.Errorf("new row AGuidAssetID = %d, want 7", ag.AGuidAssetID)
	}
	if got := ast.GUIDMap()["edr"]; got != "e1" {
		t.Errorf("GUIDMap()[edr] = %q, want %q", got, "e1")
	}

	/* UNCHANGED GUID IS A NO-OP */
	ast.MergeGUID("mdm", "g2")
	if len(ast.AstGUIDs) != 2 {
		t.Errorf("unchanged sighting grew the mapping: %+v", ast.AstGUIDs)
	}
}
