package assets

import (
	"math"
	"testing"
)

func TestBuildFleetReport(t *testing.T) {

	corpus := []Asset{
		{AstClass: CLASS_LAPTOP, AstState: STATE_IN_SERVICE, AstPurchaseCost: 1800},
		{AstClass: CLASS_LAPTOP, AstState: STATE_IN_SERVICE, AstPurchaseCost: 2200},
		{AstClass: CLASS_LAPTOP, AstState: STATE_IN_STAGING},
		{AstClass: CLASS_MONITOR, AstState: STATE_IN_SERVICE, AstPurchaseCost: 400},
	}

	rep := BuildFleetReport(corpus)

	if rep.Total != 4 {
		t.Errorf("Total = %d, want 4", rep.Total)
	}
	if rep.States[STATE_IN_SERVICE] != 3 || rep.States[STATE_IN_STAGING] != 1 {
		t.Errorf("States = %v", rep.States)
	}

	if len(rep.Classes) != 2 {
		t.Fatalf("Classes = %+v, want 2 entries", rep.Classes)
	}

	laptops := rep.Classes[0]
	if laptops.Class != CLASS_LAPTOP || laptops.Count != 3 || laptops.Costed != 2 {
		t.Errorf("laptop report = %+v", laptops)
	}
	if math.Abs(laptops.CostMean-2000) > 1e-9 {
		t.Errorf("laptop CostMean = %f, want 2000", laptops.CostMean)
	}

	monitors := rep.Classes[1]
	if monitors.Class != CLASS_MONITOR || monitors.Costed != 1 {
		t.Errorf("monitor report = %+v", monitors)
	}
	/* A SINGLE COSTED RECORD YIELDS NO DEVIATION */
	if monitors.CostStdDev != 0 {
		t.Errorf("monitor CostStdDev = %f, want 0", monitors.CostStdDev)
	}
}

func TestBuildFleetReportEmpty(t *testing.T) {

	rep := BuildFleetReport(nil)
	if rep.Total != 0 || len(rep.Classes) != 0 {
		t.Errorf("empty report = %+v", rep)
	}
}
