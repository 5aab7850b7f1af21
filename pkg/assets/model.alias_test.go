package assets

import "testing"

func TestNormalizeManufacturer(t *testing.T) {

	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"HP", "HP"},
		{"hp", "HP"},
		{"Hewlett-Packard", "HP"},
		{"  hewlett packard  ", "HP"},
		{"DELL INC.", "Dell"},
		{"MSFT", "Microsoft"},
		{"Some Startup", "Some Startup"},
	}

	for _, tt := range tests {
		if got := NormalizeManufacturer(tt.raw); got != tt.want {
			t.Errorf("NormalizeManufacturer(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeModel(t *testing.T) {

	tests := []struct {
		raw  string
		mfr  string
		want string
	}{
		{"", "Lenovo", ""},
		{"TP X1C6", "Lenovo", "ThinkPad X1 Carbon Gen 6"},
		{"mbp14", "Apple", "MacBook Pro 14"},
		{"Latitude 7420", "dell inc.", "Dell Latitude 7420"},
		{"Dell Latitude 7420", "dell inc.", "Dell Latitude 7420"},
		{"Latitude 7420", "", "Latitude 7420"},
	}

	for _, tt := range tests {
		if got := NormalizeModel(tt.raw, tt.mfr); got != tt.want {
			t.Errorf("NormalizeModel(%q, %q) = %q, want %q", tt.raw, tt.mfr, got, tt.want)
		}
	}
}

func TestNormalizeSerialNumber(t *testing.T) {

	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"abc12345", "ABC12345"},
		{"  abc 123 45  ", "ABC12345"},
		{"ABC-12345", "ABC-12345"},
	}

	for _, tt := range tests {
		if got := NormalizeSerialNumber(tt.raw); got != tt.want {
			t.Errorf("NormalizeSerialNumber(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

/* NORMALIZATION MUST BE IDEMPOTENT; A SECOND PASS CHANGES NOTHING */
func TestNormalizeAssetIdempotent(t *testing.T) {

	ast := Asset{
		AstMfr:      "hewlett-packard",
		AstModel:    "elitebook 840 g8",
		AstSerial:   " 5cd 1234 xyz ",
		AstTag:      " phila-engin-00123 ",
		AstOwnerUPN: " JSmith@Datacan.CA ",
	}

	NormalizeAsset(&ast)
	once := ast

	NormalizeAsset(&ast)
	if ast.AstMfr != once.AstMfr ||
		ast.AstModel != once.AstModel ||
		ast.AstSerial != once.AstSerial ||
		ast.AstTag != once.AstTag ||
		ast.AstOwnerUPN != once.AstOwnerUPN {
		t.Errorf("NormalizeAsset(...) not idempotent:\nfirst:  %+v\nsecond: %+v", once, ast)
	}

	if ast.AstMfr != "HP" {
		t.Errorf("AstMfr = %q, want %q", ast.AstMfr, "HP")
	}
	if ast.AstModel != "EliteBook 840 G8" {
		t.Errorf("AstModel = %q, want %q", ast.AstModel, "EliteBook 840 G8")
	}
	if ast.AstSerial != "5CD1234XYZ" {
		t.Errorf("AstSerial = %q, want %q", ast.AstSerial, "5CD1234XYZ")
	}
	if ast.AstTag != "PHILA-ENGIN-00123" {
		t.Errorf("AstTag = %q, want %q", ast.AstTag, "PHILA-ENGIN-00123")
	}
	if ast.AstOwnerUPN != "jsmith@datacan.ca" {
		t.Errorf("AstOwnerUPN = %q, want %q", ast.AstOwnerUPN, "jsmith@datacan.ca")
	}
}
