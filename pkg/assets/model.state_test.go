package assets

import "testing"

func wipedAsset() *Asset {
	return &Asset{
		AstID:    1,
		AstState: STATE_RETIRED,
		AstDocs: []AssetDoc{
			{ADocType: DOC_TYPE_WIPE_CERT, ADocName: "wipe-cert.pdf"},
		},
	}
}

func TestIsValidTransitionTable(t *testing.T) {

	tests := []struct {
		from  string
		to    string
		ast   *Asset
		valid bool
	}{
		{STATE_ORDERED, STATE_RECEIVED, nil, true},
		{STATE_RECEIVED, STATE_IN_STAGING, nil, true},
		{STATE_IN_SERVICE, STATE_LOST, nil, true},
		{STATE_LOST, STATE_IN_STAGING, nil, true},
		{STATE_RETIRED, STATE_IN_STAGING, nil, true},

		/* UNDECLARED EDGES */
		{STATE_ORDERED, STATE_DISPOSED, nil, false},
		{STATE_ORDERED, STATE_IN_SERVICE, nil, false},
		{STATE_RECEIVED, STATE_RETIRED, nil, false},
		{STATE_RETIRED, STATE_IN_SERVICE, nil, false},

		/* Disposed IS TERMINAL */
		{STATE_DISPOSED, STATE_ORDERED, nil, false},
		{STATE_DISPOSED, STATE_RETIRED, nil, false},
	}

	for _, tt := range tests {
		valid, reason := IsValidTransition(tt.from, tt.to, tt.ast)
		if valid != tt.valid {
			t.Errorf("IsValidTransition(%q, %q) = %v (%s), want %v", tt.from, tt.to, valid, reason, tt.valid)
		}
		if !valid && reason == "" {
			t.Errorf("IsValidTransition(%q, %q) rejected with no reason", tt.from, tt.to)
		}
	}
}

/* SELF-TRANSITIONS ARE ALWAYS NO-OP VALID, EVEN FROM Disposed */
func TestIsValidTransitionSelf(t *testing.T) {

	for _, state := range LifecycleStates {
		if valid, reason := IsValidTransition(state, state, &Asset{AstState: state}); !valid {
			t.Errorf("IsValidTransition(%q, %q) = false (%s)", state, state, reason)
		}
	}
}

func TestTransitionGuards(t *testing.T) {

	/* OWNER GUARD ON In Staging -> In Service */
	unowned := &Asset{AstState: STATE_IN_STAGING}
	if valid, reason := IsValidTransition(STATE_IN_STAGING, STATE_IN_SERVICE, unowned); valid {
		t.Error("unowned asset entered service")
	} else if reason != "an owner must be assigned" {
		t.Errorf("owner guard reason = %q", reason)
	}

	owned := &Asset{AstState: STATE_IN_STAGING, AstOwnerUPN: "jsmith@datacan.ca"}
	if valid, reason := IsValidTransition(STATE_IN_STAGING, STATE_IN_SERVICE, owned); !valid {
		t.Errorf("owned asset denied service: %s", reason)
	}

	/* WARRANTY GUARD ON In Service -> In Repair */
	noWarranty := &Asset{AstState: STATE_IN_SERVICE, AstOwnerUPN: "jsmith@datacan.ca"}
	if valid, _ := IsValidTransition(STATE_IN_SERVICE, STATE_IN_REPAIR, noWarranty); valid {
		t.Error("asset with no warranty record entered repair")
	}
	noWarranty.AstWarrantyEnd = 1892160000 /* 2029-12-12 */
	if valid, reason := IsValidTransition(STATE_IN_SERVICE, STATE_IN_REPAIR, noWarranty); !valid {
		t.Errorf("asset with warranty denied repair: %s", reason)
	}

	/* WIPE CERT GUARD ON Retired -> Disposed */
	noCert := &Asset{AstState: STATE_RETIRED}
	if valid, reason := IsValidTransition(STATE_RETIRED, STATE_DISPOSED, noCert); valid {
		t.Error("asset with no wipe certificate was disposed")
	} else if reason != "data wipe certificate required" {
		t.Errorf("wipe cert guard reason = %q", reason)
	}
	if valid, reason := IsValidTransition(STATE_RETIRED, STATE_DISPOSED, wipedAsset()); !valid {
		t.Errorf("wiped asset denied disposal: %s", reason)
	}

	/* nil ASSET SKIPS GUARDS; TABLE MEMBERSHIP ONLY */
	if valid, _ := IsValidTransition(STATE_RETIRED, STATE_DISPOSED, nil); !valid {
		t.Error("nil asset did not skip guards")
	}
}

func TestGetValidNextStates(t *testing.T) {

	/* UNOWNED In Staging ASSET CAN ONLY RETIRE */
	states := GetValidNextStates(STATE_IN_STAGING, &Asset{AstState: STATE_IN_STAGING})
	if len(states) != 1 || states[0] != STATE_RETIRED {
		t.Errorf("unowned staging next states = %v, want [%s]", states, STATE_RETIRED)
	}

	/* OWNED In Staging ASSET CAN ALSO DEPLOY */
	states = GetValidNextStates(STATE_IN_STAGING, &Asset{AstState: STATE_IN_STAGING, AstOwnerUPN: "jsmith@datacan.ca"})
	if len(states) != 2 {
		t.Errorf("owned staging next states = %v, want 2 states", states)
	}

	/* nil ASSET LISTS THE FULL EDGE SET */
	states = GetValidNextStates(STATE_IN_SERVICE, nil)
	if len(states) != 4 {
		t.Errorf("In Service next states = %v, want 4 edges", states)
	}

	if states = GetValidNextStates(STATE_DISPOSED, nil); len(states) != 0 {
		t.Errorf("Disposed next states = %v, want none", states)
	}
}

func TestCanDispose(t *testing.T) {

	/* STILL ASSIGNED */
	ast := &Asset{AstState: STATE_IN_SERVICE, AstOwnerUPN: "jsmith@datacan.ca"}
	if ok, reason := CanDispose(ast); ok || reason != "must be unassigned before disposal" {
		t.Errorf("CanDispose(assigned) = %v (%q)", ok, reason)
	}

	/* RETIRED BUT NO WIPE CERT */
	ast = &Asset{AstState: STATE_RETIRED}
	if ok, reason := CanDispose(ast); ok || reason != "data wipe certificate required" {
		t.Errorf("CanDispose(no cert) = %v (%q)", ok, reason)
	}

	if ok, reason := CanDispose(wipedAsset()); !ok {
		t.Errorf("CanDispose(wiped) = false (%q)", reason)
	}
}

func TestCanAssign(t *testing.T) {

	for _, state := range LifecycleStates {
		ok, _ := CanAssign(&Asset{AstState: state})
		want := state == STATE_IN_SERVICE || state == STATE_IN_LOANER
		if ok != want {
			t.Errorf("CanAssign(%q) = %v, want %v", state, ok, want)
		}
	}
}

func TestCanCheckoutAsLoaner(t *testing.T) {

	if ok, _ := CanCheckoutAsLoaner(&Asset{AstState: STATE_IN_SERVICE}); !ok {
		t.Error("unassigned In Service asset denied loaner checkout")
	}
	if ok, _ := CanCheckoutAsLoaner(&Asset{AstState: STATE_IN_SERVICE, AstOwnerUPN: "jsmith@datacan.ca"}); ok {
		t.Error("assigned asset allowed as loaner")
	}
	if ok, _ := CanCheckoutAsLoaner(&Asset{AstState: STATE_IN_STAGING}); ok {
		t.Error("staging asset allowed as loaner")
	}
}
