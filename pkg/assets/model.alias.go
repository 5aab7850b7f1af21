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
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/leehayford/als/pkg"
)

/*
MANUFACTURER / MODEL ALIAS TABLES

LOADED AT STARTUP FROM THE ALIAS FILE ( SEE LoadAliasTables )
DEFAULTS BELOW COVER THE VENDORS WE SEE MOST FROM SYNC SOURCES
*/
type AliasTable map[string]string

var mfrAliases = AliasTable{
	"hp":                "HP",
	"hewlett-packard":   "HP",
	"hewlett packard":   "HP",
	"dell inc.":         "Dell",
	"dell inc":          "Dell",
	"lenovo group ltd.": "Lenovo",
	"apple inc.":        "Apple",
	"msft":              "Microsoft",
	"microsoft corp.":   "Microsoft",
	"logi":              "Logitech",
	"samsung electronics": "Samsung",
}

var modelAliases = AliasTable{
	"tp x1c6":  "ThinkPad X1 Carbon Gen 6",
	"tp x1c9":  "ThinkPad X1 Carbon Gen 9",
	"mbp14":    "MacBook Pro 14",
	"mbp16":    "MacBook Pro 16",
	"u2419h":   "UltraSharp U2419H",
	"elitebook 840 g8": "EliteBook 840 G8",
}

var aliasRWMutex = sync.RWMutex{}

/* REPLACES THE ACTIVE ALIAS TABLES; USED AT STARTUP AND IN TESTS */
func SetAliasTables(mfr, mdl AliasTable) {
	aliasRWMutex.Lock()
	if mfr != nil {
		mfrAliases = mfr
	}
	if mdl != nil {
		modelAliases = mdl
	}
	aliasRWMutex.Unlock()
}

/*
LOADS THE ALIAS TABLES FROM A YAML FILE:

	manufacturers:
	  "hewlett-packard": HP
	models:
	  "tp x1c6": ThinkPad X1 Carbon Gen 6

MISSING FILE IS NOT AN ERROR; THE COMPILED-IN DEFAULTS REMAIN ACTIVE
*/
func LoadAliasTables(path string) (err error) {

	if path == "" {
		return
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err = v.ReadInConfig(); err != nil {
		return pkg.LogErr(err)
	}

	mfr := AliasTable{}
	for raw, canonical := range v.GetStringMapString("manufacturers") {
		mfr[raw] = canonical
	}
	mdl := AliasTable{}
	for raw, canonical := range v.GetStringMapString("models") {
		mdl[raw] = canonical
	}

	SetAliasTables(mfr, mdl)
	pkg.LogChk("Alias tables loaded.")
	return
}

func (at AliasTable) lookup(raw string) (canonical string, ok bool) {

	/* EXACT MATCH FIRST */
	if canonical, ok = at[raw]; ok {
		return
	}

	/* CASE-INSENSITIVE MATCH */
	low := strings.ToLower(raw)
	for k, v := range at {
		if strings.ToLower(k) == low {
			return v, true
		}
	}
	return "", false
}

/* RETURNS THE CANONICAL MANUFACTURER NAME; UNMATCHED INPUT PASSES THROUGH */
func NormalizeManufacturer(raw string) string {

	if raw == "" {
		return raw
	}

	aliasRWMutex.RLock()
	defer aliasRWMutex.RUnlock()

	trimmed := strings.TrimSpace(raw)
	if canonical, ok := mfrAliases.lookup(trimmed); ok {
		return canonical
	}
	return trimmed
}

/*
RETURNS THE CANONICAL MODEL NAME

WHERE NO ALIAS MATCHES AND A MANUFACTURER IS SUPPLIED, THE CANONICAL
MANUFACTURER NAME IS PREPENDED UNLESS IT ALREADY PREFIXES THE MODEL
*/
func NormalizeModel(raw, manufacturer string) string {

	if raw == "" {
		return raw
	}

	trimmed := strings.TrimSpace(raw)

	aliasRWMutex.RLock()
	canonical, ok := modelAliases.lookup(trimmed)
	aliasRWMutex.RUnlock()
	if ok {
		return canonical
	}

	if manufacturer != "" {
		mfr := NormalizeManufacturer(manufacturer)
		if mfr != "" && !strings.HasPrefix(strings.ToLower(trimmed), strings.ToLower(mfr)) {
			return mfr + " " + trimmed
		}
	}
	return trimmed
}

/* TRIM, STRIP INTERNAL WHITESPACE, UPPERCASE */
func NormalizeSerialNumber(raw string) string {

	if raw == "" {
		return raw
	}
	return strings.ToUpper(strings.Join(strings.Fields(raw), ""))
}

/* TRIM, UPPERCASE */
func NormalizeAssetTag(raw string) string {

	if raw == "" {
		return raw
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

/* APPLIES ALL NORMALIZATIONS TO AN ASSET RECORD IN PLACE */
func NormalizeAsset(ast *Asset) {

	ast.AstMfr = NormalizeManufacturer(ast.AstMfr)
	ast.AstModel = NormalizeModel(ast.AstModel, ast.AstMfr)
	ast.AstSerial = NormalizeSerialNumber(ast.AstSerial)
	ast.AstTag = NormalizeAssetTag(ast.AstTag)
	ast.AstOwnerUPN = strings.ToLower(strings.TrimSpace(ast.AstOwnerUPN))
}
