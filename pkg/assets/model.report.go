package assets

import (
	"gonum.org/v1/gonum/stat"
)

/*
FLEET REPORT

PER-CLASS COUNTS AND UNIT-COST STATISTICS OVER THE CORPUS
RECORDS WITHOUT A PURCHASE COST ARE EXCLUDED FROM THE STATISTICS
*/
type ClassReport struct {
	Class      string  `json:"class"`
	Count      int     `json:"count"`
	Costed     int     `json:"costed"`
	CostMean   float64 `json:"cost_mean"`
	CostStdDev float64 `json:"cost_std_dev"`
}

type FleetReport struct {
	Total   int            `json:"total"`
	States  map[string]int `json:"states"`
	Classes []ClassReport  `json:"classes"`
}

func BuildFleetReport(corpus []Asset) (rep FleetReport) {

	rep.Total = len(corpus)
	rep.States = make(map[string]int)

	costs := make(map[string][]float64)
	counts := make(map[string]int)

	for _, ast := range corpus {
		rep.States[ast.AstState]++
		counts[ast.AstClass]++
		if ast.AstPurchaseCost > 0 {
			costs[ast.AstClass] = append(costs[ast.AstClass], ast.AstPurchaseCost)
		}
	}

	for _, class := range AssetClasses {
		if counts[class] == 0 {
			continue
		}
		cr := ClassReport{
			Class:  class,
			Count:  counts[class],
			Costed: len(costs[class]),
		}
		if cr.Costed > 0 {
			cr.CostMean = stat.Mean(costs[class], nil)
		}
		if cr.Costed > 1 {
			cr.CostStdDev = stat.StdDev(costs[class], nil)
		}
		rep.Classes = append(rep.Classes, cr)
	}
	return
}
