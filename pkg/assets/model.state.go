package assets

import "fmt"

/*
LIFECYCLE STATES

EVERY STATE CHANGE MUST MATCH AN EDGE IN TransitionTable
*/
const (
	STATE_ORDERED    = "Ordered"
	STATE_RECEIVED   = "Received"
	STATE_IN_STAGING = "In Staging"
	STATE_IN_SERVICE = "In Service"
	STATE_IN_REPAIR  = "In Repair"
	STATE_IN_LOANER  = "In Loaner"
	STATE_LOST       = "Lost"
	STATE_RETIRED    = "Retired"
	STATE_DISPOSED   = "Disposed"
)

var LifecycleStates = []string{
	STATE_ORDERED, STATE_RECEIVED, STATE_IN_STAGING,
	STATE_IN_SERVICE, STATE_IN_REPAIR, STATE_IN_LOANER,
	STATE_LOST, STATE_RETIRED, STATE_DISPOSED,
}

func ValidLifecycleState(state string) bool {
	for _, s := range LifecycleStates {
		if s == state {
			return true
		}
	}
	return false
}

/*
TRANSITION GUARDS

NAMED PURE PREDICATES; EVALUATED IN DECLARED ORDER,
SHORT-CIRCUITING ON THE FIRST FAILURE
*/
type TransitionGuard struct {
	Name  string
	Check func(ast *Asset) (ok bool, reason string)
}

var GuardOwnerRequired = TransitionGuard{
	Name: "ownerRequired",
	Check: func(ast *Asset) (bool, string) {
		if !ast.HasOwner() {
			return false, "an owner must be assigned"
		}
		return true, ""
	},
}

var GuardDataWipeCertRequired = TransitionGuard{
	Name: "dataWipeCertRequired",
	Check: func(ast *Asset) (bool, string) {
		if !ast.HasDocType(DOC_TYPE_WIPE_CERT) {
			return false, "data wipe certificate required"
		}
		return true, ""
	},
}

var GuardWarrantyCheckRequired = TransitionGuard{
	Name: "warrantyCheckRequired",
	Check: func(ast *Asset) (bool, string) {
		if !ast.HasWarranty() {
			return false, "warranty record required"
		}
		return true, ""
	},
}

type Transition struct {
	From   string
	To     string
	Guards []TransitionGuard
}

/*
THE LIFECYCLE GRAPH

ONLY DECLARED EDGES ARE LEGAL; Disposed HAS NO OUTGOING EDGES

REINSTATEMENT OF A RETIRED ASSET RUNS THROUGH RE-STAGING SO THAT
EVERY DEPLOY PATH PASSES THE OWNER GUARD
*/
var TransitionTable = []Transition{
	{From: STATE_ORDERED, To: STATE_RECEIVED},

	{From: STATE_RECEIVED, To: STATE_IN_STAGING},
	{From: STATE_RECEIVED, To: STATE_IN_SERVICE, Guards: []TransitionGuard{GuardOwnerRequired}},

	{From: STATE_IN_STAGING, To: STATE_IN_SERVICE, Guards: []TransitionGuard{GuardOwnerRequired}},
	{From: STATE_IN_STAGING, To: STATE_RETIRED},

	{From: STATE_IN_SERVICE, To: STATE_IN_REPAIR, Guards: []TransitionGuard{GuardWarrantyCheckRequired}},
	{From: STATE_IN_SERVICE, To: STATE_IN_LOANER},
	{From: STATE_IN_SERVICE, To: STATE_LOST},
	{From: STATE_IN_SERVICE, To: STATE_RETIRED},

	{From: STATE_IN_REPAIR, To: STATE_IN_SERVICE, Guards: []TransitionGuard{GuardOwnerRequired}},
	{From: STATE_IN_REPAIR, To: STATE_RETIRED},

	{From: STATE_IN_LOANER, To: STATE_IN_SERVICE},
	{From: STATE_IN_LOANER, To: STATE_LOST},

	{From: STATE_LOST, To: STATE_IN_STAGING},
	{From: STATE_LOST, To: STATE_RETIRED},

	{From: STATE_RETIRED, To: STATE_IN_STAGING},
	{From: STATE_RETIRED, To: STATE_DISPOSED, Guards: []TransitionGuard{GuardDataWipeCertRequired}},
}

/*
CHECKS ONE TRANSITION AGAINST THE TABLE AND ITS GUARDS

from == to IS ALWAYS VALID ( NO-OP )
ast MAY BE nil, IN WHICH CASE ONLY TABLE MEMBERSHIP IS CHECKED
*/
func IsValidTransition(from, to string, ast *Asset) (valid bool, reason string) {

	if from == to {
		return true, ""
	}

	for _, tr := range TransitionTable {
		if tr.From != from || tr.To != to {
			continue
		}
		if ast == nil {
			return true, ""
		}
		for _, guard := range tr.Guards {
			if ok, why := guard.Check(ast); !ok {
				return false, why
			}
		}
		return true, ""
	}

	return false, fmt.Sprintf("no such transition: %s -> %s", from, to)
}

/* EVERY STATE REACHABLE BY ONE LEGAL, GUARD-PASSING EDGE FROM current */
func GetValidNextStates(current string, ast *Asset) (states []string) {

	for _, tr := range TransitionTable {
		if tr.From != current {
			continue
		}
		if ast != nil {
			pass := true
			for _, guard := range tr.Guards {
				if ok, _ := guard.Check(ast); !ok {
					pass = false
					break
				}
			}
			if !pass {
				continue
			}
		}
		states = append(states, tr.To)
	}
	return
}

/* DISPOSAL PRECONDITIONS; THE Retired -> Disposed EDGE STILL APPLIES */
func CanDispose(ast *Asset) (ok bool, reason string) {

	if ast.HasOwner() && ast.AstState != STATE_RETIRED {
		return false, "must be unassigned before disposal"
	}
	if !ast.HasDocType(DOC_TYPE_WIPE_CERT) {
		return false, "data wipe certificate required"
	}
	return true, ""
}

func CanAssign(ast *Asset) (ok bool, reason string) {

	if ast.AstState != STATE_IN_SERVICE && ast.AstState != STATE_IN_LOANER {
		return false, fmt.Sprintf("cannot assign an owner while %s", ast.AstState)
	}
	return true, ""
}

func CanCheckoutAsLoaner(ast *Asset) (ok bool, reason string) {

	if ast.AstState != STATE_IN_SERVICE {
		return false, fmt.Sprintf("loaner checkout requires In Service; asset is %s", ast.AstState)
	}
	if ast.HasOwner() {
		return false, "loaner checkout requires an unassigned asset"
	}
	return true, ""
}
