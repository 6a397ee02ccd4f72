package ledboard

// Table groups the protocol tokens screens are composed from.
// Screens take a Table instead of the constants directly so alternative
// token sets can be substituted.
type Table struct {
	Control   ControlTokens
	Flash     FlashTokens
	Special   SpecialTokens
	Pattern   PatternTokens
	Pause     PauseTokens
	Font      FontTokens
	FontColor FontColorTokens
}

// ControlTokens are the control prefixes
type ControlTokens struct {
	Flash      string
	PatternIn  string
	PatternOut string
	Special    string
	Frame      string
	LineFeed   string
	FontColor  string
}

// FlashTokens switch flashing text on and off
type FlashTokens struct {
	On  string
	Off string
}

// SpecialTokens render board-side date and time fields
type SpecialTokens struct {
	YYYY string
	MM   string
	DD   string
	HH   string
	MIN  string
	SEC  string
}

// PatternTokens select an in/out transition
type PatternTokens struct {
	RadarScan string
	ScrollUp  string
	MoveUp    string
	MoveLeft  string
	PeelOffR  string
}

// PauseTokens hold a frame for the duration that follows them
type PauseTokens struct {
	Second2      string
	Second4      string
	Millisecond4 string
}

// FontTokens select a font
type FontTokens struct {
	Normal7x6  string
	Normal14x8 string
	Normal15x9 string
	Normal16x9 string
}

// FontColorTokens select a font color
type FontColorTokens struct {
	Red           string
	Green         string
	Yellow        string
	YGRCharacter  string
	YGRHorizontal string
}

// Commands returns the token table of the board protocol.
// Every call returns a fresh copy, so callers cannot alter the table
// seen by others.
func Commands() Table {
	return Table{
		Control: ControlTokens{
			Flash:      ControlFlash,
			PatternIn:  ControlPatternIn,
			PatternOut: ControlPatternOut,
			Special:    ControlSpecial,
			Frame:      ControlFrame,
			LineFeed:   ControlLineFeed,
			FontColor:  ControlFontColor,
		},
		Flash: FlashTokens{
			On:  FlashOn,
			Off: FlashOff,
		},
		Special: SpecialTokens{
			YYYY: SpecialYYYY,
			MM:   SpecialMM,
			DD:   SpecialDD,
			HH:   SpecialHH,
			MIN:  SpecialMIN,
			SEC:  SpecialSEC,
		},
		Pattern: PatternTokens{
			RadarScan: PatternRadarScan,
			ScrollUp:  PatternScrollUp,
			MoveUp:    PatternMoveUp,
			MoveLeft:  PatternMoveLeft,
			PeelOffR:  PatternPeelOffR,
		},
		Pause: PauseTokens{
			Second2:      PauseSecond2,
			Second4:      PauseSecond4,
			Millisecond4: PauseMillisecond4,
		},
		Font: FontTokens{
			Normal7x6:  FontNormal7x6,
			Normal14x8: FontNormal14x8,
			Normal15x9: FontNormal15x9,
			Normal16x9: FontNormal16x9,
		},
		FontColor: FontColorTokens{
			Red:           FontColorRed,
			Green:         FontColorGreen,
			Yellow:        FontColorYellow,
			YGRCharacter:  FontColorYGRCharacter,
			YGRHorizontal: FontColorYGRHorizontal,
		},
	}
}
