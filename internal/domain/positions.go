package domain

import "strings"

// KnownPositions is the set of position codes a valid record may carry.
var KnownPositions = map[string]bool{
	"QB": true, "HB": true, "RB": true, "FB": true, "WR": true, "TE": true,
	"LT": true, "LG": true, "C": true, "RG": true, "RT": true, "OL": true,
	"LEDG": true, "REDG": true, "EDGE": true, "LE": true, "RE": true, "DE": true,
	"DT": true, "DL": true,
	"SAM": true, "MIKE": true, "WILL": true, "LOLB": true, "MLB": true, "ROLB": true,
	"OLB": true, "LB": true,
	"CB": true, "FS": true, "SS": true, "S": true,
	"K": true, "P": true, "LS": true, "KR": true, "PR": true, "ATH": true,
}

// PositionMisreads maps position codes OCR commonly produces to the code
// actually on screen. Rosters show DT far more often than a bare OT, and the
// two differ by one stroke.
var PositionMisreads = map[string]string{
	"OT":   "DT",
	"0T":   "DT",
	"0B":   "QB",
	"Q8":   "QB",
	"OB":   "QB",
	"H8":   "HB",
	"C8":   "CB",
	"CE":   "CB",
	"F5":   "FS",
	"S5":   "SS",
	"5S":   "SS",
	"WH":   "WR",
	"VR":   "WR",
	"TF":   "TE",
	"M1KE": "MIKE",
	"W1LL": "WILL",
	"5AM":  "SAM",
	"0L":   "OL",
}

// CorrectPosition upper-cases code, applies the misread table and reports
// whether the result is a known position.
func CorrectPosition(code string) (string, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if fixed, ok := PositionMisreads[code]; ok {
		code = fixed
	}
	return code, KnownPositions[code]
}

// IsKnownPosition reports whether code is in KnownPositions.
func IsKnownPosition(code string) bool {
	return KnownPositions[code]
}

// AttributeCodes are the attribute abbreviations recognised in headers and
// detail screens.
var AttributeCodes = map[string]bool{
	"OVR": true, "SPD": true, "ACC": true, "AGI": true, "COD": true, "STR": true,
	"AWR": true, "JMP": true, "STA": true, "INJ": true, "TGH": true,
	"THP": true, "SAC": true, "MAC": true, "DAC": true, "TUP": true, "BSK": true, "PAC": true, "RUN": true,
	"CAR": true, "BCV": true, "BTK": true, "TRK": true, "SFA": true, "SPM": true, "JKM": true,
	"CTH": true, "CIT": true, "SPC": true, "RLS": true, "SRR": true, "MRR": true, "DRR": true,
	"RBK": true, "RBP": true, "RBF": true, "PBK": true, "PBP": true, "PBF": true, "LBK": true, "IBL": true,
	"TAK": true, "POW": true, "PMV": true, "FMV": true, "BSH": true, "PUR": true, "PRC": true,
	"MCV": true, "ZCV": true, "PRS": true,
	"KPW": true, "KAC": true, "RET": true,
}
