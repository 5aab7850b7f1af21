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
	"strings"
	"time"

	"github.com/leehayford/als/pkg"
)

/*
ASSET CONTROLLER

RUNS THE IDENTITY & LIFECYCLE PIPELINE AGAINST INBOUND RECORDS:
NORMALIZE -> VALIDATE -> ( TRANSITION CHECK ) -> DUPLICATE SCAN -> PERSIST
BLOCKING ERRORS ABORT; WARNINGS AND DUPLICATE HINTS PASS THROUGH
*/

type RegisterAssetInput struct {
	Class    string `json:"class" validate:"required"`
	Mfr      string `json:"mfr"`
	Model    string `json:"model" validate:"required"`
	Serial   string `json:"serial"`
	Tag      string `json:"tag"`
	State    string `json:"state"`
	OwnerUPN string `json:"owner_upn"`

	WarrantyStart int64 `json:"warranty_start"`
	WarrantyEnd   int64 `json:"warranty_end"`

	PurchaseCost  float64 `json:"purchase_cost"`
	PurchaseOrder string  `json:"purchase_order"`
	PurchaseTime  int64   `json:"purchase_time"`

	EDR string `json:"edr"`

	/* OPTIONAL TAG GENERATION ( SITE5-CATEGORY5-SEQ5 ) */
	GenerateTag bool   `json:"generate_tag"`
	Site        string `json:"site"`
	TagCategory string `json:"tag_category"`
}

type UpdateAssetInput struct {
	GlobalID string `json:"global_id" validate:"required"`
	Mfr      string `json:"mfr"`
	Model    string `json:"model"`
	Serial   string `json:"serial"`
	Tag      string `json:"tag"`
	State    string `json:"state"`
	OwnerUPN string `json:"owner_upn"`

	WarrantyStart int64 `json:"warranty_start"`
	WarrantyEnd   int64 `json:"warranty_end"`

	PurchaseCost  float64 `json:"purchase_cost"`
	PurchaseOrder string  `json:"purchase_order"`
	PurchaseTime  int64   `json:"purchase_time"`

	EDR string `json:"edr"`
}

/*
NEXT GLOBAL ASSET ID SEQUENCE FOR THE CURRENT YEAR

MAX-BASED SO OUT-OF-BAND ROW DELETIONS NEVER RE-ISSUE A TAKEN SEQUENCE;
THE PERSISTENCE LAYER OWNS CONCURRENCY CONTROL ( A UNIQUE INDEX ON
ast_global_id REJECTS THE LOSER OF A RACING PAIR )
*/
func GetNextAssetSequence() (seq int64, err error) {

	prefix := fmt.Sprintf("AS-%d-%%", time.Now().UTC().Year())
	var last string
	res := pkg.ALS.DB.Model(&Asset{}).
		Where("ast_global_id LIKE ?", prefix).
		Select("COALESCE(MAX(ast_global_id), '')").
		Scan(&last)
	return GlobalAssetIDSequence(last) + 1, res.Error
}

func GetNextTagSequence(prefix string) (seq int64, err error) {

	var last string
	res := pkg.ALS.DB.Model(&Asset{}).
		Where("ast_tag LIKE ?", prefix+"-%").
		Select("COALESCE(MAX(ast_tag), '')").
		Scan(&last)
	return AssetTagSequence(last) + 1, res.Error
}

/*
ADVISORY DUPLICATE SCAN

THE CORPUS IS PRE-FILTERED BY CLASS BEFORE THE O(N*L^2) SCAN
*/
func ScanForDuplicates(candidate *Asset) (dups []Asset, err error) {

	corpus := []Asset{}
	if err = GetAssetsByClass(candidate.AstClass, &corpus); err != nil {
		return nil, pkg.LogErr(err)
	}
	return FindPotentialDuplicates(candidate, corpus), nil
}

func RegisterAsset(input RegisterAssetInput, userID string) (ast Asset, vr ValidationResult, dups []Asset, err error) {

	ast = Asset{
		AstClass:    input.Class,
		AstState:    input.State,
		AstMfr:      input.Mfr,
		AstModel:    input.Model,
		AstSerial:   input.Serial,
		AstTag:      input.Tag,
		AstOwnerUPN: input.OwnerUPN,

		AstWarrantyStart: input.WarrantyStart,
		AstWarrantyEnd:   input.WarrantyEnd,

		AstPurchaseCost:  input.PurchaseCost,
		AstPurchaseOrder: input.PurchaseOrder,
		AstPurchaseTime:  input.PurchaseTime,

		AstEDR: input.EDR,
	}

	/* CREATED IN Ordered UNLESS INGESTED DIRECTLY INTO A VALID STATE */
	if ast.AstState == "" {
		ast.AstState = STATE_ORDERED
	}

	NormalizeAsset(&ast)

	seq, err := GetNextAssetSequence()
	if err != nil {
		return
	}
	ast.AstGlobalID = GenerateGlobalAssetID(seq)

	if input.GenerateTag && ast.AstTag == "" {
		cat := input.TagCategory
		if cat == "" {
			cat = ast.AstClass
		}
		prefix := fmt.Sprintf("%s-%s", tagSegment(input.Site), tagSegment(cat))
		tseq, terr := GetNextTagSequence(prefix)
		if terr != nil {
			err = terr
			return
		}
		ast.AstTag = GenerateAssetTag(input.Site, cat, tseq)
	}

	if vr = ValidateAsset(&ast); !vr.Valid {
		return
	}

	if dups, err = ScanForDuplicates(&ast); err != nil {
		return
	}

	if err = WriteAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_REGISTERED,
		fmt.Sprintf("%s %s registered as %s", ast.AstMfr, ast.AstModel, ast.AstState)))

	flagDuplicates(&ast, userID, dups)
	return
}

func UpdateAsset(input UpdateAssetInput, userID string) (ast Asset, vr ValidationResult, dups []Asset, err error) {

	if err = GetAssetByGlobalID(input.GlobalID, &ast); err != nil {
		return
	}
	from := ast.AstState

	/* AstGlobalID AND AstClass ARE IMMUTABLE; EVERYTHING ELSE FOLLOWS THE REQUEST */
	ast.AstMfr = input.Mfr
	ast.AstModel = input.Model
	ast.AstSerial = input.Serial
	ast.AstTag = input.Tag
	ast.AstOwnerUPN = input.OwnerUPN
	ast.AstWarrantyStart = input.WarrantyStart
	ast.AstWarrantyEnd = input.WarrantyEnd
	ast.AstPurchaseCost = input.PurchaseCost
	ast.AstPurchaseOrder = input.PurchaseOrder
	ast.AstPurchaseTime = input.PurchaseTime
	ast.AstEDR = input.EDR
	if input.State != "" {
		ast.AstState = input.State
	}

	NormalizeAsset(&ast)

	if vr = ValidateAsset(&ast); !vr.Valid {
		return
	}

	/* A REQUESTED STATE CHANGE MUST PASS THE STATE MACHINE */
	if ast.AstState != from {
		if ok, reason := IsValidTransition(from, ast.AstState, &ast); !ok {
			vr.Valid = false
			vr.Errors = append(vr.Errors, FieldError{"state", reason})
			return
		}
	}

	if dups, err = ScanForDuplicates(&ast); err != nil {
		return
	}

	if err = SaveAsset(&ast); err != nil {
		return
	}

	msg := "record updated"
	if ast.AstState != from {
		msg = fmt.Sprintf("record updated; %s -> %s", from, ast.AstState)
	}
	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_UPDATED, msg))

	flagDuplicates(&ast, userID, dups)
	return
}

/* GUARDED STATE CHANGE; ok=false CARRIES THE FIRST FAILING REASON */
func TransitionAsset(globalID, target, userID string) (ast Asset, ok bool, reason string, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	if !ValidLifecycleState(target) {
		return ast, false, fmt.Sprintf("unknown lifecycle state: %s", target), nil
	}

	if ok, reason = IsValidTransition(ast.AstState, target, &ast); !ok {
		return
	}

	if ast.AstState == target {
		/* NO-OP */
		return
	}

	from := ast.AstState
	ast.AstState = target
	if err = SaveAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_TRANSITION,
		fmt.Sprintf("%s -> %s", from, target)))
	return
}

func AssignAsset(globalID, upn, userID string) (ast Asset, ok bool, reason string, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	if ok, reason = CanAssign(&ast); !ok {
		return
	}

	upn = strings.ToLower(strings.TrimSpace(upn))
	if !rxOwnerUPN.MatchString(upn) {
		return ast, false, fmt.Sprintf("malformed owner UPN: %s", upn), nil
	}

	ast.AstOwnerUPN = upn
	if err = SaveAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_UPDATED,
		fmt.Sprintf("assigned to %s", upn)))
	return
}

func UnassignAsset(globalID, userID string) (ast Asset, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	was := ast.AstOwnerUPN
	ast.AstOwnerUPN = ""
	if err = SaveAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_UPDATED,
		fmt.Sprintf("unassigned from %s", was)))
	return
}

/* LOANER CHECKOUT; THE BORROWER BECOMES THE OWNER FOR THE LOAN PERIOD */
func CheckoutLoaner(globalID, borrowerUPN, userID string) (ast Asset, ok bool, reason string, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	if ok, reason = CanCheckoutAsLoaner(&ast); !ok {
		return
	}

	borrowerUPN = strings.ToLower(strings.TrimSpace(borrowerUPN))
	if !rxOwnerUPN.MatchString(borrowerUPN) {
		return ast, false, fmt.Sprintf("malformed borrower UPN: %s", borrowerUPN), nil
	}

	from := ast.AstState
	ast.AstState = STATE_IN_LOANER
	ast.AstOwnerUPN = borrowerUPN
	if err = SaveAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_TRANSITION,
		fmt.Sprintf("%s -> %s; loaned to %s", from, STATE_IN_LOANER, borrowerUPN)))
	return
}

/* DISPOSAL; BOTH CanDispose AND THE Retired -> Disposed EDGE MUST PASS */
func DisposeAsset(globalID, userID string) (ast Asset, ok bool, reason string, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	if ok, reason = CanDispose(&ast); !ok {
		return
	}

	if ok, reason = IsValidTransition(ast.AstState, STATE_DISPOSED, &ast); !ok {
		return
	}

	from := ast.AstState
	ast.AstState = STATE_DISPOSED
	if err = SaveAsset(&ast); err != nil {
		return
	}

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_TRANSITION,
		fmt.Sprintf("%s -> %s", from, STATE_DISPOSED)))
	return
}

func AttachAssetDoc(globalID, docType, name, url, userID string) (ast Asset, err error) {

	if err = GetAssetByGlobalID(globalID, &ast); err != nil {
		return
	}

	doc := AssetDoc{
		ADocAssetID: ast.AstID,
		ADocType:    docType,
		ADocName:    name,
		ADocURL:     url,
	}
	if err = WriteAssetDoc(&doc); err != nil {
		return
	}
	ast.AstDocs = append(ast.AstDocs, doc)

	WriteAssetEvent(MakeAssetEvent(&ast, userID, EVT_CODE_DOC_ATTACHED,
		fmt.Sprintf("%s: %s", docType, name)))
	return
}

/* RECORD AN ADVISORY EVENT FOR EACH FLAGGED CANDIDATE; NEVER BLOCKS */
func flagDuplicates(ast *Asset, userID string, dups []Asset) {

	if len(dups) == 0 {
		return
	}

	ids := make([]string, len(dups))
	for i := range dups {
		ids[i] = dups[i].AstGlobalID
	}
	WriteAssetEvent(MakeAssetEvent(ast, userID, EVT_CODE_DUP_FLAGGED,
		fmt.Sprintf("possible duplicate of: %s", strings.Join(ids, ", "))))
}
