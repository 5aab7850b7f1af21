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

import "strings"

/*
DUPLICATE DETECTION

DETECTS AND REPORTS CANDIDATE DUPLICATES ONLY; RESOLUTION
( MERGE / IGNORE / REJECT ) IS A DOWNSTREAM DECISION

THE SCAN IS O(N*L^2) PER CALL; CALLERS PRE-FILTER THE CORPUS
( BY CLASS ) BEFORE INVOKING AT REQUEST-TIME SCALE
*/

/* STANDARD DP EDIT DISTANCE; INSERT / DELETE / SUBSTITUTE EACH COST 1 */
func Levenshtein(a, b string) int {

	n := len(a)
	m := len(b)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}

	prev := make([]int, m+1)
	curr := make([]int, m+1)
	for j := 0; j <= m; j++ {
		prev[j] = j
	}

	for i := 1; i <= n; i++ {
		curr[0] = i
		for j := 1; j <= m; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}
	return prev[m]
}

/*
TRUE WHERE TWO SERIALS LIKELY IDENTIFY THE SAME UNIT:
 1. NORMALIZED STRINGS ARE EQUAL, OR
 2. BOTH LONGER THAN 5 AND ONE CONTAINS THE OTHER, OR
 3. EDIT DISTANCE <= 2 AND LENGTH DIFFERENCE <= 2

EMPTY SERIALS NEVER MATCH
*/
func FuzzyMatchSerial(a, b string) bool {

	na := NormalizeSerialNumber(a)
	nb := NormalizeSerialNumber(b)

	if na == "" || nb == "" {
		return false
	}

	if na == nb {
		return true
	}

	if len(na) > 5 && len(nb) > 5 {
		if strings.Contains(na, nb) || strings.Contains(nb, na) {
			return true
		}
	}

	diff := len(na) - len(nb)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 2 && Levenshtein(na, nb) <= 2
}

/*
FLAGS EVERY EXISTING RECORD THAT SHARES AN IDENTITY SIGNAL WITH THE
CANDIDATE: FUZZY SERIAL, EXACT NORMALIZED TAG, OR A SHARED DEVICE GUID
UNDER THE SAME DISCOVERY SOURCE

A RECORD IS NEVER ITS OWN DUPLICATE ( MATCHED BY GLOBAL ASSET ID )
MATCHES ARE UNRANKED AND CARRY NO CONFIDENCE SCORE
*/
func FindPotentialDuplicates(candidate *Asset, existing []Asset) (matches []Asset) {

	candTag := NormalizeAssetTag(candidate.AstTag)
	candGUIDs := candidate.GUIDMap()

	for _, ex := range existing {

		if ex.AstGlobalID == candidate.AstGlobalID {
			continue
		}

		if FuzzyMatchSerial(candidate.AstSerial, ex.AstSerial) {
			matches = append(matches, ex)
			continue
		}

		if candTag != "" && candTag == NormalizeAssetTag(ex.AstTag) {
			matches = append(matches, ex)
			continue
		}

		if sharesDeviceGUID(candGUIDs, ex.GUIDMap()) {
			matches = append(matches, ex)
		}
	}
	return
}

func sharesDeviceGUID(a, b map[string]string) bool {
	for source, guid := range a {
		if guid == "" {
			continue
		}
		if b[source] == guid {
			return true
		}
	}
	return false
}
