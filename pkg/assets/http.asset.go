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
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/leehayford/als/pkg"
)

func SetupAssetRoutes(api fiber.Router) {

	api.Route("/asset", func(router fiber.Router) {

		/* OPERATOR-LEVEL OPERATIONS */
		router.Post("/register", pkg.ALSAuth, HandleRegisterAsset)
		router.Post("/update", pkg.ALSAuth, HandleUpdateAsset)
		router.Post("/transition", pkg.ALSAuth, HandleTransitionAsset)
		router.Post("/assign", pkg.ALSAuth, HandleAssignAsset)
		router.Post("/unassign", pkg.ALSAuth, HandleUnassignAsset)
		router.Post("/loaner", pkg.ALSAuth, HandleCheckoutLoaner)
		router.Post("/doc", pkg.ALSAuth, HandleAttachAssetDoc)

		/* ADMIN-LEVEL OPERATIONS */
		router.Post("/dispose", pkg.ALSAuth, HandleDisposeAsset)

		/* VIEWER-LEVEL OPERATIONS */
		router.Get("/list", pkg.ALSAuth, HandleGetAssetList)
		router.Get("/next_states", pkg.ALSAuth, HandleGetValidNextStates)
		router.Post("/duplicates", pkg.ALSAuth, HandleScanForDuplicates)
		router.Get("/report", pkg.ALSAuth, HandleGetFleetReport)
		router.Get("/events", pkg.ALSAuth, HandleGetAssetEvents)

		router.Use("/ws", pkg.HandleWSUpgrade)
		router.Get("/ws", pkg.ALSAuth, websocket.New(HandleAssetFeed_Connect))
	})
}

func HandleRegisterAsset(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to register assets",
		})
	}

	/* PARSE AND VALIDATE REQUEST DATA */
	input := RegisterAssetInput{}
	if err = c.BodyParser(&input); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(input); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, vr, dups, err := RegisterAsset(input, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("RegisterAsset(...) failed:\n%s\n", err),
		})
	}
	if !vr.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": "fail",
			"data":   fiber.Map{"validation": vr},
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"asset":      ast,
			"warnings":   vr.Warnings,
			"duplicates": dups,
		},
	})
}

func HandleUpdateAsset(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to update assets",
		})
	}

	input := UpdateAssetInput{}
	if err = c.BodyParser(&input); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(input); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, vr, dups, err := UpdateAsset(input, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("UpdateAsset(...) failed:\n%s\n", err),
		})
	}
	if !vr.Valid {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": "fail",
			"data":   fiber.Map{"validation": vr},
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"asset":      ast,
			"warnings":   vr.Warnings,
			"duplicates": dups,
		},
	})
}

type TransitionRequest struct {
	GlobalID string `json:"global_id" validate:"required"`
	State    string `json:"state" validate:"required"`
	UPN      string `json:"upn"`
}

func HandleTransitionAsset(c *fiber.Ctx) (err error) {

	/* CHECK USER PERMISSION */
	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to transition assets",
		})
	}

	req := TransitionRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(req); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, ok, reason, err := TransitionAsset(req.GlobalID, req.State, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("TransitionAsset(...) failed:\n%s\n", err),
		})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

func HandleAssignAsset(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to assign assets",
		})
	}

	req := TransitionRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, ok, reason, err := AssignAsset(req.GlobalID, req.UPN, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("AssignAsset(...) failed:\n%s\n", err),
		})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

func HandleUnassignAsset(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to unassign assets",
		})
	}

	req := TransitionRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, err := UnassignAsset(req.GlobalID, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("UnassignAsset(...) failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

func HandleCheckoutLoaner(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to check out loaners",
		})
	}

	req := TransitionRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, ok, reason, err := CheckoutLoaner(req.GlobalID, req.UPN, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("CheckoutLoaner(...) failed:\n%s\n", err),
		})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

func HandleDisposeAsset(c *fiber.Ctx) (err error) {

	/* DISPOSAL IS DESTRUCTIVE; ADMINS ONLY */
	if !pkg.UserRole_Admin(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an administrator to dispose assets",
		})
	}

	req := TransitionRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, ok, reason, err := DisposeAsset(req.GlobalID, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("DisposeAsset(...) failed:\n%s\n", err),
		})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "fail",
			"message": reason,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

type AttachDocRequest struct {
	GlobalID string `json:"global_id" validate:"required"`
	DocType  string `json:"doc_type" validate:"required"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

func HandleAttachAssetDoc(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Operator(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be an operator to attach documents",
		})
	}

	req := AttachDocRequest{}
	if err = c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	if errors := pkg.ValidateStruct(req); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "fail",
			"errors": errors,
		})
	}

	userID := fmt.Sprintf("%v", c.Locals("sub"))
	ast, err := AttachAssetDoc(req.GlobalID, req.DocType, req.Name, req.URL, userID)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("AttachAssetDoc(...) failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"asset": ast},
	})
}

func HandleGetAssetList(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list assets",
		})
	}

	assets := []Asset{}
	if err = GetAssetList(&assets); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("GetAssetList(...) -> query failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"assets": assets},
	})
}

func HandleGetValidNextStates(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to query next states",
		})
	}

	ast := Asset{}
	if err = GetAssetByGlobalID(c.Query("global_id"), &ast); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("No asset with global ID: %s", c.Query("global_id")),
		})
	}

	states := GetValidNextStates(ast.AstState, &ast)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"state":       ast.AstState,
			"next_states": states,
		},
	})
}

/*
ADVISORY DUPLICATE QUERY

THE CANDIDATE NEED NOT BE A SAVED RECORD; THE BODY IS NORMALIZED
AND SCANNED AGAINST THE CLASS-FILTERED CORPUS
*/
func HandleScanForDuplicates(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to scan for duplicates",
		})
	}

	cand := Asset{}
	if err = c.BodyParser(&cand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": err.Error(),
		})
	}
	NormalizeAsset(&cand)

	dups, err := ScanForDuplicates(&cand)
	if err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("ScanForDuplicates(...) failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"duplicates": dups},
	})
}

func HandleGetFleetReport(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to view the fleet report",
		})
	}

	assets := []Asset{}
	if err = GetAssetList(&assets); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("GetAssetList(...) -> query failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"report": BuildFleetReport(assets)},
	})
}

func HandleGetAssetEvents(c *fiber.Ctx) (err error) {

	if !pkg.UserRole_Viewer(c.Locals("role")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You must be a viewer to list asset events",
		})
	}

	ast := Asset{}
	if err = GetAssetByGlobalID(c.Query("global_id"), &ast); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("No asset with global ID: %s", c.Query("global_id")),
		})
	}

	evts := []AssetEvent{}
	if err = GetAssetEvents(ast.AstID, &evts); err != nil {
		pkg.LogErr(err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "fail",
			"message": fmt.Sprintf("GetAssetEvents(...) -> query failed:\n%s\n", err),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
		"data":   fiber.Map{"events": evts},
	})
}

/* LIVE EVENT FEED **************************************************************************/

type AssetFeedClient struct {
	ClientID string
	DataOut  chan string
	Open     bool
}

var assetFeedClients = make(map[string]*AssetFeedClient)
var assetFeedRWMutex = sync.RWMutex{}

/* PUSH AN EVENT TO EVERY CONNECTED FEED CLIENT; NON-BLOCKING */
func BroadcastAssetEvent(evt AssetEvent) {

	js, err := pkg.ModelToJSONString(evt)
	if err != nil {
		return
	}

	assetFeedRWMutex.RLock()
	defer assetFeedRWMutex.RUnlock()
	for _, afc := range assetFeedClients {
		if !afc.Open {
			continue
		}
		select {
		case afc.DataOut <- js:
		default:
			/* SLOW CLIENT; DROP THE MESSAGE RATHER THAN THE WRITE PATH */
		}
	}
}

func HandleAssetFeed_Connect(ws *websocket.Conn) {

	/* ONE ENTRY PER CONNECTION; A USER MAY HOLD SEVERAL */
	afc := &AssetFeedClient{
		ClientID: fmt.Sprintf("%v-%s", ws.Locals("sub"), uuid.NewString()),
		DataOut:  make(chan string, 32),
		Open:     true,
	}

	assetFeedRWMutex.Lock()
	assetFeedClients[afc.ClientID] = afc
	assetFeedRWMutex.Unlock()

	/* WRITE LOOP */
	done := make(chan struct{})
	go func() {
		for msg := range afc.DataOut {
			if err := ws.WriteJSON(msg); err != nil {
				break
			}
		}
		close(done)
	}()

	/* READ LOOP; HOLDS THE CONNECTION OPEN UNTIL THE CLIENT LEAVES */
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	assetFeedRWMutex.Lock()
	afc.Open = false
	delete(assetFeedClients, afc.ClientID)
	assetFeedRWMutex.Unlock()
	close(afc.DataOut)
	<-done
}
