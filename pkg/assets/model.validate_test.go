package assets

import (
	"fmt"
	"testing"
	"time"
)

func hasFieldError(vr ValidationResult, field string) bool {
	for _, fe := range vr.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func hasWarning(vr ValidationResult, warning string) bool {
	for _, w := range vr.Warnings {
		if w == warning {
			return true
		}
	}
	return false
}

func TestValidateAssetEmpty(t *testing.T) {

	vr := ValidateAsset(&Asset{})
	if vr.Valid {
		t.Fatal("empty asset passed validation")
	}

	for _, field := range []string{"globalAssetId", "class", "model", "state"} {
		if !hasFieldError(vr, field) {
			t.Errorf("missing error for field %q:\n%+v", field, vr.Errors)
		}
	}
}

func TestValidateAssetComplete(t *testing.T) {

	ast := Asset{
		AstGlobalID:     "AS-2026-000042",
		AstClass:        CLASS_LAPTOP,
		AstState:        STATE_IN_SERVICE,
		AstMfr:          "Dell",
		AstModel:        "Dell Latitude 7420",
		AstSerial:       "ABC12345",
		AstTag:          "CALG3-ENDUS-00042",
		AstOwnerUPN:     "jsmith@datacan.ca",
		AstEDR:          "healthy",
		AstPurchaseCost: 1899.00,
		AstWarrantyEnd:  time.Now().UTC().AddDate(2, 0, 0).Unix(),
	}

	vr := ValidateAsset(&ast)
	if !vr.Valid {
		t.Fatalf("complete asset failed validation:\n%+v", vr.Errors)
	}
	if len(vr.Warnings) != 0 {
		t.Errorf("complete asset drew warnings:\n%+v", vr.Warnings)
	}
}

func TestValidateAssetFormats(t *testing.T) {

	tests := []struct {
		name  string
		mut   func(ast *Asset)
		field string
	}{
		{"malformed global id", func(ast *Asset) { ast.AstGlobalID = "ASSET-42" }, "globalAssetId"},
		{"unknown class", func(ast *Asset) { ast.AstClass = "Hoverboard" }, "class"},
		{"unknown state", func(ast *Asset) { ast.AstState = "Vaporized" }, "state"},
		{"serial too short", func(ast *Asset) { ast.AstSerial = "AB1" }, "serialNumber"},
		{"serial bad chars", func(ast *Asset) { ast.AstSerial = "ABC_12345!" }, "serialNumber"},
		{"malformed tag", func(ast *Asset) { ast.AstTag = "CALGARY-ENDUSER-1" }, "assetTag"},
		{"malformed upn", func(ast *Asset) { ast.AstOwnerUPN = "jsmith" }, "owner.upn"},
	}

	for _, tt := range tests {
		ast := Asset{
			AstGlobalID: "AS-2026-000042",
			AstClass:    CLASS_LAPTOP,
			AstState:    STATE_IN_STAGING,
			AstMfr:      "Dell",
			AstModel:    "Dell Latitude 7420",
			AstSerial:   "ABC12345",
		}
		tt.mut(&ast)

		vr := ValidateAsset(&ast)
		if vr.Valid {
			t.Errorf("%s: asset passed validation", tt.name)
			continue
		}
		if !hasFieldError(vr, tt.field) {
			t.Errorf("%s: missing error for field %q:\n%+v", tt.name, tt.field, vr.Errors)
		}
	}
}

/* END-USER CLASSES REQUIRE MANUFACTURER AND SERIAL; PERIPHERALS ONLY MANUFACTURER */
func TestValidateAssetCategoryCompleteness(t *testing.T) {

	ast := Asset{
		AstGlobalID: "AS-2026-000042",
		AstClass:    CLASS_LAPTOP,
		AstState:    STATE_ORDERED,
		AstModel:    "Latitude 7420",
	}
	vr := ValidateAsset(&ast)
	if vr.Valid {
		t.Error("end-user asset with no manufacturer or serial passed validation")
	}
	if !hasFieldError(vr, "manufacturer") || !hasFieldError(vr, "serialNumber") {
		t.Errorf("missing category errors:\n%+v", vr.Errors)
	}

	ast.AstClass = CLASS_MONITOR
	vr = ValidateAsset(&ast)
	if hasFieldError(vr, "serialNumber") {
		t.Errorf("peripheral class demanded a serial number:\n%+v", vr.Errors)
	}
	if !hasFieldError(vr, "manufacturer") {
		t.Errorf("peripheral class missing manufacturer error:\n%+v", vr.Errors)
	}
	if !hasWarning(vr, "no serial number on record") {
		t.Errorf("peripheral with no serial drew no warning:\n%+v", vr.Warnings)
	}

	ast.AstClass = CLASS_SAAS
	ast.AstMfr = ""
	vr = ValidateAsset(&ast)
	if hasFieldError(vr, "manufacturer") || hasFieldError(vr, "serialNumber") {
		t.Errorf("other-category class demanded hardware fields:\n%+v", vr.Errors)
	}
}

func TestValidateAssetWarnings(t *testing.T) {

	ast := Asset{
		AstGlobalID: "AS-2026-000042",
		AstClass:    CLASS_LAPTOP,
		AstState:    STATE_IN_SERVICE,
		AstMfr:      "Dell",
		AstModel:    "Dell Latitude 7420",
		AstSerial:   "ABC12345",
	}

	vr := ValidateAsset(&ast)
	if !vr.Valid {
		t.Fatalf("asset failed validation:\n%+v", vr.Errors)
	}
	for _, w := range []string{
		"no purchase unit cost on record",
		"no warranty end date on record",
		"asset is In Service with no owner",
		"asset is In Service with no EDR status",
	} {
		if !hasWarning(vr, w) {
			t.Errorf("missing warning %q:\n%+v", w, vr.Warnings)
		}
	}
}

func TestGenerateGlobalAssetID(t *testing.T) {

	want := fmt.Sprintf("AS-%d-000007", time.Now().UTC().Year())
	if got := GenerateGlobalAssetID(7); got != want {
		t.Errorf("GenerateGlobalAssetID(7) = %q, want %q", got, want)
	}
	if got := GenerateGlobalAssetID(123456); !rxGlobalAssetID.MatchString(got) {
		t.Errorf("GenerateGlobalAssetID(123456) = %q, fails format contract", got)
	}
}

/* SEQUENCE ALLOCATION PARSES THE HIGHEST ISSUED ID, NOT A ROW COUNT */
func TestGlobalAssetIDSequence(t *testing.T) {

	tests := []struct {
		id   string
		want int64
	}{
		{"", 0},
		{"ASSET-42", 0},
		{"AS-2026-000007", 7},
		{"AS-2026-123456", 123456},
		{GenerateGlobalAssetID(99), 99},
	}

	for _, tt := range tests {
		if got := GlobalAssetIDSequence(tt.id); got != tt.want {
			t.Errorf("GlobalAssetIDSequence(%q) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestAssetTagSequence(t *testing.T) {

	tests := []struct {
		tag  string
		want int64
	}{
		{"", 0},
		{"NOTATAG", 0},
		{"PHILA-ENGIN-00123", 123},
		{"NYC-IT-00001", 1},
		{GenerateAssetTag("Calgary", "End User", 42), 42},
	}

	for _, tt := range tests {
		if got := AssetTagSequence(tt.tag); got != tt.want {
			t.Errorf("AssetTagSequence(%q) = %d, want %d", tt.tag, got, tt.want)
		}
	}
}

func TestGenerateAssetTag(t *testing.T) {

	tests := []struct {
		site     string
		category string
		seq      int64
		want     string
	}{
		{"Philadelphia", "Engineering", 123, "PHILA-ENGIN-00123"},
		{"NYC", "IT", 1, "NYC-IT-00001"},
		{"calgary  3", "End User", 42, "CALGA-ENDUS-00042"},
	}

	for _, tt := range tests {
		got := GenerateAssetTag(tt.site, tt.category, tt.seq)
		if got != tt.want {
			t.Errorf("GenerateAssetTag(%q, %q, %d) = %q, want %q", tt.site, tt.category, tt.seq, got, tt.want)
		}
	}
}
