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
	"encoding/json"
	"fmt"
	"strings"

	phao "github.com/eclipse/paho.mqtt.golang"

	"github.com/leehayford/als/pkg"
)

/*
DISCOVERY SOURCE SYNC

EACH CONFIGURED SOURCE ( MDM, EDR, NETWORK SCANNER... ) PUBLISHES SIGHTING
REPORTS TO als/sync/<source>/report; EACH REPORT IS MATCHED AGAINST THE
REGISTRY BY SERIAL, THEN BY TAG. MATCHES ACCRUE THE SOURCE'S DEVICE GUID;
MISSES BECOME NEW REGISTRATIONS
*/

type SyncSource struct {
	SrcName string
	pkg.ALSMQTTClient
}

/* SIGHTING REPORT PAYLOAD AS PUBLISHED BY A DISCOVERY SOURCE */
type SyncReport struct {
	Source string `json:"source"`
	GUID   string `json:"guid"`
	Class  string `json:"class"`
	State  string `json:"state"`
	Mfr    string `json:"mfr"`
	Model  string `json:"model"`
	Serial string `json:"serial"`
	Tag    string `json:"tag"`
	UPN    string `json:"upn"`
	EDR    string `json:"edr"`
}

/* INGEST OUTCOME PUBLISHED BACK TO THE REPORTING SOURCE */
type SyncAck struct {
	GlobalID   string   `json:"global_id"`
	Matched    bool     `json:"matched"`
	Duplicates []string `json:"duplicates"`
}

func (src *SyncSource) SyncTopic_Report() (topic string) {
	return fmt.Sprintf("als/sync/%s/report", src.SrcName)
}
func (src *SyncSource) SyncTopic_Ack() (topic string) {
	return fmt.Sprintf("als/sync/%s/ack", src.SrcName)
}

const SYNC_USER_ID = "als_sync"

func SyncSourceClient_Connect(name string) (err error) {

	pkg.TraceFunc(fmt.Sprintf("Connecting sync source: %s", name))

	src := SyncSource{SrcName: name}
	src.MQTTUser = pkg.ALS_CFG.MQTTUser
	src.MQTTPW = pkg.ALS_CFG.MQTTPW
	src.MQTTClientID = fmt.Sprintf("ALS-SYNC-%s", strings.ToUpper(name))

	if err = src.ALSMQTTClient_Connect(); err != nil {
		return pkg.LogErr(err)
	}

	src.MQTTSubscription_SyncReport().Sub(src.ALSMQTTClient)
	pkg.MQTTSyncClients[name] = src.ALSMQTTClient

	return err
}

func SyncSourceClient_ConnectAll() (err error) {

	for _, name := range pkg.ALS_CFG.SyncSources {
		if err = SyncSourceClient_Connect(name); err != nil {
			return err
		}
	}
	return err
}

func SyncSourceClient_DisconnectAll() {

	for name, client := range pkg.MQTTSyncClients {
		src := SyncSource{SrcName: name, ALSMQTTClient: client}
		src.MQTTSubscription_SyncReport().UnSub(src.ALSMQTTClient)
		client.ALSMQTTClient_Disconnect()
		delete(pkg.MQTTSyncClients, name)
	}
}

/* SUBSCRIPTION -> als/sync/<source>/report */
func (src *SyncSource) MQTTSubscription_SyncReport() pkg.MQTTSubscription {
	return pkg.MQTTSubscription{

		Topic: src.SyncTopic_Report(),
		Qos:   0,

		Handler: func(c phao.Client, msg phao.Message) {

			rep := SyncReport{}
			if err := json.Unmarshal(msg.Payload(), &rep); err != nil {
				pkg.LogErr(err)
				return
			}
			if rep.Source == "" {
				rep.Source = src.SrcName
			}

			ack, err := IngestSyncReport(rep)
			if err != nil {
				pkg.LogErr(err)
				return
			}

			/* REPORT THE OUTCOME BACK TO THE SOURCE */
			pkg.MQTTPublication{
				Topic:   src.SyncTopic_Ack(),
				Qos:     0,
				Message: pkg.MakeMQTTMessage(ack),
			}.Pub(src.ALSMQTTClient)
		},
	}
}

/*
APPLY ONE SIGHTING REPORT TO THE REGISTRY

MATCH ORDER: NORMALIZED SERIAL, THEN NORMALIZED TAG. A MATCHED ASSET
ACCRUES THE SOURCE'S DEVICE GUID AND ANY FRESHER EDR STATUS; AN
UNMATCHED REPORT IS REGISTERED AS A NEW ASSET IN THE DEFAULT STATE
*/
func IngestSyncReport(rep SyncReport) (ack SyncAck, err error) {

	ast := Asset{}
	serial := NormalizeSerialNumber(rep.Serial)
	tag := NormalizeAssetTag(rep.Tag)

	matched := false
	if serial != "" {
		if err = GetAssetBySerial(serial, &ast); err == nil && ast.AstID > 0 {
			matched = true
		}
	}
	if !matched && tag != "" {
		ast = Asset{}
		if err = GetAssetByTag(tag, &ast); err == nil && ast.AstID > 0 {
			matched = true
		}
	}

	if !matched {
		class := rep.Class
		if class == "" {
			class = CLASS_LAPTOP
		}
		/* A SOURCE MAY INGEST DIRECTLY INTO ANY VALID STATE; DEFAULT IS Ordered */
		ast, _, _, err = RegisterAsset(RegisterAssetInput{
			Class:    class,
			State:    rep.State,
			Mfr:      rep.Mfr,
			Model:    rep.Model,
			Serial:   rep.Serial,
			Tag:      rep.Tag,
			OwnerUPN: rep.UPN,
			EDR:      rep.EDR,
		}, SYNC_USER_ID)
		if err != nil {
			return ack, pkg.LogErr(err)
		}
		if ast.AstID == 0 {
			/* BLOCKED BY VALIDATION; NOTHING WAS WRITTEN */
			return ack, fmt.Errorf("sync report from %s rejected by validation", rep.Source)
		}
		if rep.GUID != "" {
			if err = UpsertAssetGUID(&ast, rep.Source, rep.GUID); err != nil {
				return ack, pkg.LogErr(err)
			}
		}
	} else {
		ack.Matched = true

		/* ONE ROW PER ( ASSET, SOURCE ); A CHANGED GUID REPLACES THE PRIOR VALUE */
		if rep.GUID != "" && ast.GUIDMap()[rep.Source] != rep.GUID {
			if err = UpsertAssetGUID(&ast, rep.Source, rep.GUID); err != nil {
				return ack, pkg.LogErr(err)
			}
		}

		if rep.EDR != "" && rep.EDR != ast.AstEDR {
			ast.AstEDR = rep.EDR
			if err = SaveAsset(&ast); err != nil {
				return ack, pkg.LogErr(err)
			}
		}

		evt := MakeAssetEvent(&ast, SYNC_USER_ID, EVT_CODE_SYNC_REPORT,
			fmt.Sprintf("Sighted by %s as %s.", rep.Source, rep.GUID),
		)
		WriteAssetEvent(evt)
	}
	ack.GlobalID = ast.AstGlobalID

	/* ADVISORY SCAN; A SHARED GUID FROM ANOTHER RECORD SURFACES HERE */
	dups, err := ScanForDuplicates(&ast)
	if err != nil {
		return ack, pkg.LogErr(err)
	}
	if len(dups) > 0 {
		flagDuplicates(&ast, SYNC_USER_ID, dups)
		for i := range dups {
			ack.Duplicates = append(ack.Duplicates, dups[i].AstGlobalID)
		}
	}

	return ack, nil
}
