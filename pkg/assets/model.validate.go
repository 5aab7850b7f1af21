/* Asset Lifecycle Server (ALS) is a component of the Datacan Data2Desk (D2D) Platform.
License:

	[PROPER LEGALESE HERE...]

	INTERIM LICENSE DESCRIPTION:
	In spirit, this license:
	1. Allows <Third Party> to use, modify, and / or distributre this software in perpetuity so long as <Third Party> understands:
		a. The software is porvided as is without guarantee of additional support from DataCan in any form.
		b. The software is porvided as is without guarantee of exclusivity.

	2. Prohibits <Third Party> from taking any action which might interfere with DataCan's right to use, modify and / or distributre this software in perpetuity.
*/

package assets

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

/* FIELD-SCOPED BLOCKING ERROR */
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors"`
	Warnings []string     `json:"warnings"`
}

/* FORMAT CONTRACTS */
var rxGlobalAssetID = regexp.MustCompile(`^AS-\d{4}-\d{6}$`)
var rxSerialNumber = regexp.MustCompile(`^[A-Za-z0-9-]{6,20}$`)
var rxAssetTag = regexp.MustCompile(`^[A-Z0-9]{2,5}-[A-Z0-9]{2,5}-\d{5}$`)
var rxOwnerUPN = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

/*
REQUIRED FIELDS PER CLASS CATEGORY, LOOKED UP BY DOT-PATH

THE UNIVERSAL SET ( globalAssetId, class, model, state ) IS CHECKED FIRST
*/
var requiredFieldsByCategory = map[string][]string{
	CATEGORY_END_USER:   {"manufacturer", "serialNumber"},
	CATEGORY_PERIPHERAL: {"manufacturer"},
	CATEGORY_OTHER:      {},
}

/* DOT-PATH RESOLVER FOR REQUIRED-FIELD LOOKUPS */
var fieldByPath = map[string]func(ast *Asset) string{
	"manufacturer": func(ast *Asset) string { return ast.AstMfr },
	"model":        func(ast *Asset) string { return ast.AstModel },
	"serialNumber": func(ast *Asset) string { return ast.AstSerial },
	"assetTag":     func(ast *Asset) string { return ast.AstTag },
	"owner.upn":    func(ast *Asset) string { return ast.AstOwnerUPN },
}

func categoryRequires(category, path string) bool {
	for _, p := range requiredFieldsByCategory[category] {
		if p == path {
			return true
		}
	}
	return false
}

/*
VALIDATES STRUCTURAL COMPLETENESS AND FIELD FORMATS

ERRORS BLOCK A SAVE; WARNINGS NEVER DO
FORMAT CHECKS EXPECT CANONICAL ( NORMALIZED ) INPUT
*/
func ValidateAsset(ast *Asset) (vr ValidationResult) {

	/* UNIVERSAL COMPLETENESS */
	if ast.AstGlobalID == "" {
		vr.Errors = append(vr.Errors, FieldError{"globalAssetId", "missing global asset ID"})
	} else if !rxGlobalAssetID.MatchString(ast.AstGlobalID) {
		vr.Errors = append(vr.Errors, FieldError{"globalAssetId", fmt.Sprintf("malformed global asset ID: %s", ast.AstGlobalID)})
	}

	if ast.AstClass == "" {
		vr.Errors = append(vr.Errors, FieldError{"class", "missing asset class"})
	} else if !ValidAssetClass(ast.AstClass) {
		vr.Errors = append(vr.Errors, FieldError{"class", fmt.Sprintf("unknown asset class: %s", ast.AstClass)})
	}

	if ast.AstModel == "" {
		vr.Errors = append(vr.Errors, FieldError{"model", "missing model"})
	}

	if ast.AstState == "" {
		vr.Errors = append(vr.Errors, FieldError{"state", "missing lifecycle state"})
	} else if !ValidLifecycleState(ast.AstState) {
		vr.Errors = append(vr.Errors, FieldError{"state", fmt.Sprintf("unknown lifecycle state: %s", ast.AstState)})
	}

	/* FORMAT CHECKS ON OPTIONAL FIELDS */
	if ast.AstSerial != "" && !rxSerialNumber.MatchString(ast.AstSerial) {
		vr.Errors = append(vr.Errors, FieldError{"serialNumber", fmt.Sprintf("malformed serial number: %s", ast.AstSerial)})
	}
	if ast.AstTag != "" && !rxAssetTag.MatchString(ast.AstTag) {
		vr.Errors = append(vr.Errors, FieldError{"assetTag", fmt.Sprintf("malformed asset tag: %s", ast.AstTag)})
	}
	if ast.AstOwnerUPN != "" && !rxOwnerUPN.MatchString(ast.AstOwnerUPN) {
		vr.Errors = append(vr.Errors, FieldError{"owner.upn", fmt.Sprintf("malformed owner UPN: %s", ast.AstOwnerUPN)})
	}

	/* CLASS-CATEGORY COMPLETENESS */
	category := AssetClassCategory(ast.AstClass)
	for _, path := range requiredFieldsByCategory[category] {
		get, ok := fieldByPath[path]
		if !ok {
			continue
		}
		if get(ast) == "" {
			vr.Errors = append(vr.Errors, FieldError{path, fmt.Sprintf("required for %s assets", category)})
		}
	}

	/* ADVISORY WARNINGS */
	if ast.AstSerial == "" && !categoryRequires(category, "serialNumber") {
		vr.Warnings = append(vr.Warnings, "no serial number on record")
	}
	if ast.AstPurchaseCost == 0 {
		vr.Warnings = append(vr.Warnings, "no purchase unit cost on record")
	}
	if ast.AstWarrantyEnd == 0 {
		vr.Warnings = append(vr.Warnings, "no warranty end date on record")
	}
	if ast.AstState == STATE_IN_SERVICE && !ast.HasOwner() {
		vr.Warnings = append(vr.Warnings, "asset is In Service with no owner")
	}
	if ast.AstState == STATE_IN_SERVICE && ast.AstEDR == "" {
		vr.Warnings = append(vr.Warnings, "asset is In Service with no EDR status")
	}

	vr.Valid = len(vr.Errors) == 0
	return
}

/* AS-<CURRENT UTC YEAR>-<SEQUENCE ZERO-PADDED TO 6 DIGITS> */
func GenerateGlobalAssetID(sequence int64) string {
	return fmt.Sprintf("AS-%d-%06d", time.Now().UTC().Year(), sequence)
}

/* SEQUENCE COMPONENT OF A CANONICAL GLOBAL ASSET ID; 0 WHERE MALFORMED */
func GlobalAssetIDSequence(id string) int64 {
	if !rxGlobalAssetID.MatchString(id) {
		return 0
	}
	seq, _ := strconv.ParseInt(id[len("AS-YYYY-"):], 10, 64)
	return seq
}

/* TRAILING SEQUENCE COMPONENT OF AN ASSET TAG; 0 WHERE MALFORMED */
func AssetTagSequence(tag string) int64 {
	i := strings.LastIndex(tag, "-")
	if i < 0 {
		return 0
	}
	seq, err := strconv.ParseInt(tag[i+1:], 10, 64)
	if err != nil {
		return 0
	}
	return seq
}

/*
<SITE:5>-<CATEGORY:5>-<SEQUENCE:5>

SEGMENTS ARE WHITESPACE-STRIPPED, UPPERCASED, TRUNCATED TO 5 CHARS
*/
func GenerateAssetTag(site, category string, sequence int64) string {
	return fmt.Sprintf("%s-%s-%05d", tagSegment(site), tagSegment(category), sequence)
}

func tagSegment(s string) string {
	seg := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if len(seg) > 5 {
		seg = seg[:5]
	}
	return seg
}
