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
	"time"

	"github.com/leehayford/als/pkg"
)

/*
ASSET EVENT

ONE ROW PER REGISTRATION / UPDATE / TRANSITION / SYNC / DUPLICATE FLAG
*/
type AssetEvent struct {
	AEvtID int64 `gorm:"unique; primaryKey" json:"-"`

	AEvtTime     int64  `gorm:"not null" json:"aevt_time"`
	AEvtUserID   string `gorm:"varchar(36)" json:"aevt_user_id"`
	AEvtAssetID  int64  `gorm:"not null" json:"aevt_asset_id"`
	AEvtGlobalID string `gorm:"not null; varchar(14)" json:"aevt_global_id"`

	AEvtCode  int32  `json:"aevt_code"`
	AEvtTitle string `gorm:"varchar(36)" json:"aevt_title"`
	AEvtMsg   string `gorm:"varchar(512)" json:"aevt_msg"`
}

const (
	EVT_CODE_REGISTERED   int32 = 1
	EVT_CODE_UPDATED      int32 = 2
	EVT_CODE_TRANSITION   int32 = 3
	EVT_CODE_SYNC_REPORT  int32 = 4
	EVT_CODE_DUP_FLAGGED  int32 = 5
	EVT_CODE_DOC_ATTACHED int32 = 6
)

var eventTitles = map[int32]string{
	EVT_CODE_REGISTERED:   "ASSET REGISTERED",
	EVT_CODE_UPDATED:      "ASSET UPDATED",
	EVT_CODE_TRANSITION:   "STATE TRANSITION",
	EVT_CODE_SYNC_REPORT:  "SYNC REPORT",
	EVT_CODE_DUP_FLAGGED:  "POTENTIAL DUPLICATE",
	EVT_CODE_DOC_ATTACHED: "DOCUMENT ATTACHED",
}

func GetEventTitleByCode(code int32) string {
	if title, ok := eventTitles[code]; ok {
		return title
	}
	return "EVENT"
}

func MakeAssetEvent(ast *Asset, userID string, code int32, msg string) AssetEvent {

	evt := AssetEvent{
		AEvtTime:     time.Now().UTC().UnixMilli(),
		AEvtUserID:   pkg.ValidateStringLength(userID, 36),
		AEvtAssetID:  ast.AstID,
		AEvtGlobalID: ast.AstGlobalID,
		AEvtCode:     code,
		AEvtTitle:    GetEventTitleByCode(code),
		AEvtMsg:      pkg.ValidateStringLength(msg, 512),
	}
	return evt
}

func WriteAssetEvent(evt AssetEvent) (err error) {

	pkg.ALS.WG.Add(1)
	res := pkg.ALS.DB.Create(&evt)
	pkg.ALS.WG.Done()

	if res.Error != nil {
		return res.Error
	}

	/* ALERT ANY CONNECTED FEED CLIENTS */
	BroadcastAssetEvent(evt)
	return
}

func GetAssetEvents(assetID int64, evts *[]AssetEvent) (err error) {

	res := pkg.ALS.DB.
		Where("a_evt_asset_id = ?", assetID).
		Order("a_evt_time DESC").
		Find(evts)
	return res.Error
}
