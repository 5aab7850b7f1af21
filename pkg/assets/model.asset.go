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
	"github.com/leehayford/als/pkg"
)

/*
ASSET RECORD

THE CENTRAL ENTITY OF THE ALS; AstGlobalID IS ASSIGNED ONCE AT
REGISTRATION ( AS-YYYY-NNNNNN ) AND NEVER CHANGES
*/
type Asset struct {
	AstID int64 `gorm:"unique; primaryKey" json:"ast_id"`

	AstGlobalID string `gorm:"not null; uniqueIndex; varchar(14)" json:"ast_global_id"`
	AstClass    string `gorm:"not null; varchar(24)" json:"ast_class"`
	AstState    string `gorm:"not null; varchar(12)" json:"ast_state"`

	AstMfr    string `gorm:"varchar(64)" json:"ast_mfr"`
	AstModel  string `gorm:"varchar(64)" json:"ast_model"`
	AstSerial string `gorm:"varchar(20)" json:"ast_serial"`
	AstTag    string `gorm:"varchar(17)" json:"ast_tag"`

	AstOwnerUPN string `gorm:"varchar(100)" json:"ast_owner_upn"`

	AstWarrantyStart int64 `json:"ast_warranty_start"`
	AstWarrantyEnd   int64 `json:"ast_warranty_end"`

	AstPurchaseCost  float64 `json:"ast_purchase_cost"`
	AstPurchaseOrder string  `gorm:"varchar(36)" json:"ast_purchase_order"`
	AstPurchaseTime  int64   `json:"ast_purchase_time"`

	/* SECURITY TELEMETRY ( EDR AGENT STATUS AS REPORTED BY SYNC SOURCES ) */
	AstEDR string `gorm:"varchar(24)" json:"ast_edr"`

	AstGUIDs []AssetGUID `gorm:"foreignKey:AGuidAssetID" json:"ast_guids"`
	AstDocs  []AssetDoc  `gorm:"foreignKey:ADocAssetID" json:"ast_docs"`

	AstCreatedAt int64 `gorm:"autoCreateTime:milli" json:"ast_created_at"`
	AstUpdatedAt int64 `gorm:"autoUpdateTime:milli" json:"ast_updated_at"`
}

/* DISCOVERY-SOURCE GUID; ONE ROW PER ( ASSET, SOURCE ) */
type AssetGUID struct {
	AGuidID int64 `gorm:"unique; primaryKey" json:"-"`

	AGuidAssetID int64  `gorm:"not null; uniqueIndex:idx_aguid_asset_source" json:"aguid_asset_id"`
	AGuidSource  string `gorm:"not null; uniqueIndex:idx_aguid_asset_source; varchar(36)" json:"aguid_source"`
	AGuidGUID    string `gorm:"not null; varchar(64)" json:"aguid_guid"`
}

/* ATTACHED DOCUMENT RECORD; STORAGE OF THE DOCUMENT ITSELF IS EXTERNAL */
type AssetDoc struct {
	ADocID int64 `gorm:"unique; primaryKey" json:"-"`

	ADocAssetID int64  `gorm:"not null" json:"adoc_asset_id"`
	ADocType    string `gorm:"not null; varchar(24)" json:"adoc_type"`
	ADocName    string `gorm:"varchar(100)" json:"adoc_name"`
	ADocURL     string `gorm:"varchar(256)" json:"adoc_url"`
	ADocTime    int64  `gorm:"autoCreateTime:milli" json:"adoc_time"`
}

const DOC_TYPE_WIPE_CERT = "WipeCert"
const DOC_TYPE_INVOICE = "Invoice"
const DOC_TYPE_RMA = "RMA"

/* ASSET CLASSES */
const (
	CLASS_LAPTOP    = "Laptop"
	CLASS_DESKTOP   = "Desktop"
	CLASS_PHONE     = "Phone"
	CLASS_TABLET    = "Tablet"
	CLASS_MONITOR   = "Monitor"
	CLASS_DOCK      = "Dock"
	CLASS_KEYBOARD  = "Keyboard"
	CLASS_MOUSE     = "Mouse"
	CLASS_HEADSET   = "Headset"
	CLASS_WEBCAM    = "Webcam"
	CLASS_ACCESSORY = "Accessory"
	CLASS_SAAS      = "SaaS License"
)

var AssetClasses = []string{
	CLASS_LAPTOP, CLASS_DESKTOP, CLASS_PHONE, CLASS_TABLET,
	CLASS_MONITOR, CLASS_DOCK, CLASS_KEYBOARD, CLASS_MOUSE,
	CLASS_HEADSET, CLASS_WEBCAM, CLASS_ACCESSORY, CLASS_SAAS,
}

func ValidAssetClass(class string) bool {
	for _, c := range AssetClasses {
		if c == class {
			return true
		}
	}
	return false
}

/* CLASS CATEGORIES; EACH CARRIES ITS OWN REQUIRED-FIELD LIST ( SEE model.validate.go ) */
const (
	CATEGORY_END_USER   = "end_user_device"
	CATEGORY_PERIPHERAL = "peripheral"
	CATEGORY_OTHER      = "other"
)

func AssetClassCategory(class string) string {
	switch class {
	case CLASS_LAPTOP, CLASS_DESKTOP, CLASS_PHONE, CLASS_TABLET:
		return CATEGORY_END_USER
	case CLASS_MONITOR, CLASS_DOCK, CLASS_KEYBOARD, CLASS_MOUSE,
		CLASS_HEADSET, CLASS_WEBCAM, CLASS_ACCESSORY:
		return CATEGORY_PERIPHERAL
	default:
		return CATEGORY_OTHER
	}
}

/*
APPLIES ONE ( SOURCE -> GUID ) SIGHTING TO THE IN-MEMORY RECORD

A SOURCE RE-SIGHTING AN ASSET WITH A NEW GUID REPLACES ITS PRIOR
VALUE; THE MAPPING NEVER GROWS A SECOND ROW FOR THE SAME SOURCE
*/
func (ast *Asset) MergeGUID(source, guid string) *AssetGUID {

	for i := range ast.AstGUIDs {
		if ast.AstGUIDs[i].AGuidSource == source {
			ast.AstGUIDs[i].AGuidGUID = guid
			return &ast.AstGUIDs[i]
		}
	}
	ast.AstGUIDs = append(ast.AstGUIDs, AssetGUID{
		AGuidAssetID: ast.AstID,
		AGuidSource:  source,
		AGuidGUID:    guid,
	})
	return &ast.AstGUIDs[len(ast.AstGUIDs)-1]
}

/* RETURNS THE deviceGuids MAPPING ( SOURCE NAME -> GUID ) */
func (ast *Asset) GUIDMap() map[string]string {
	m := make(map[string]string)
	for _, g := range ast.AstGUIDs {
		m[g.AGuidSource] = g.AGuidGUID
	}
	return m
}

/* TRUE WHERE ast.AstDocs CONTAINS AN ENTRY OF THE GIVEN TYPE */
func (ast *Asset) HasDocType(docType string) bool {
	for _, doc := range ast.AstDocs {
		if doc.ADocType == docType {
			return true
		}
	}
	return false
}

func (ast *Asset) HasOwner() bool {
	return ast.AstOwnerUPN != ""
}

func (ast *Asset) HasWarranty() bool {
	return ast.AstWarrantyStart != 0 || ast.AstWarrantyEnd != 0
}

/* DATABASE *********************************************************************************/

/* CREATE OR MIGRATE THE ASSET TABLES IN THE ALS DATABASE */
func CreateAssetTables() (err error) {

	if err = pkg.ALS.DB.AutoMigrate(
		&Asset{},
		&AssetGUID{},
		&AssetDoc{},
		&AssetEvent{},
	); err != nil {
		return pkg.LogErr(err)
	}
	return
}

func WriteAsset(ast *Asset) (err error) {

	pkg.ALS.WG.Add(1)
	res := pkg.ALS.DB.Create(ast)
	pkg.ALS.WG.Done()
	return res.Error
}

func SaveAsset(ast *Asset) (err error) {

	pkg.ALS.WG.Add(1)
	res := pkg.ALS.DB.Save(ast)
	pkg.ALS.WG.Done()
	return res.Error
}

/* PERSISTS A ( SOURCE -> GUID ) SIGHTING; Save UPDATES THE ROW WHERE ONE EXISTS */
func UpsertAssetGUID(ast *Asset, source, guid string) (err error) {

	ag := ast.MergeGUID(source, guid)

	pkg.ALS.WG.Add(1)
	res := pkg.ALS.DB.Save(ag)
	pkg.ALS.WG.Done()
	return res.Error
}

func WriteAssetDoc(doc *AssetDoc) (err error) {

	pkg.ALS.WG.Add(1)
	res := pkg.ALS.DB.Create(doc)
	pkg.ALS.WG.Done()
	return res.Error
}

/* RETURNS ALL ASSET RECORDS WITH GUIDS & DOCS PRELOADED */
func GetAssetList(assets *[]Asset) (err error) {

	res := pkg.ALS.DB.
		Preload("AstGUIDs").
		Preload("AstDocs").
		Order("ast_global_id ASC").
		Find(assets)
	return res.Error
}

/* RETURNS ALL ASSET RECORDS OF ONE CLASS; USED TO PRE-FILTER THE DUPLICATE SCAN CORPUS */
func GetAssetsByClass(class string, assets *[]Asset) (err error) {

	res := pkg.ALS.DB.
		Preload("AstGUIDs").
		Preload("AstDocs").
		Where("ast_class = ?", class).
		Find(assets)
	return res.Error
}

func GetAssetByGlobalID(globalID string, ast *Asset) (err error) {

	res := pkg.ALS.DB.
		Preload("AstGUIDs").
		Preload("AstDocs").
		First(ast, "ast_global_id = ?", globalID)
	return res.Error
}

func GetAssetBySerial(serial string, ast *Asset) (err error) {

	res := pkg.ALS.DB.
		Preload("AstGUIDs").
		Preload("AstDocs").
		First(ast, "ast_serial = ?", serial)
	return res.Error
}

func GetAssetByTag(tag string, ast *Asset) (err error) {

	res := pkg.ALS.DB.
		Preload("AstGUIDs").
		Preload("AstDocs").
		First(ast, "ast_tag = ?", tag)
	return res.Error
}
